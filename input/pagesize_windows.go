//go:build windows

package input

// windowsPageSize is the page size used on every supported Windows
// architecture (x86, amd64, arm64). golang.org/x/sys/windows has no
// Getpagesize equivalent — the value is a platform constant, not something
// queried at runtime.
const windowsPageSize = 4096

// osPageSize reports the OS page size in bytes.
func osPageSize() int {
	return windowsPageSize
}
