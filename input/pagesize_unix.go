//go:build unix

package input

import "golang.org/x/sys/unix"

// osPageSize reports the OS page size in bytes.
func osPageSize() int {
	return unix.Getpagesize()
}
