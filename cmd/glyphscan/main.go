// Command glyphscan extracts human-readable text fragments from arbitrary
// binary input across many character encodings simultaneously, each
// encoding run as an independent search mission over the same byte stream.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/coregx/glyphscan/config"
)

// version is overridable at build time: go build -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error returned from Execute to one of the exit codes
// this tool uses: 0 on success (handled by main's early return, never
// reaching here), nonzero on configuration error, I/O error, or an
// internal buffer-overflow terminal condition. Configuration errors get
// their own code (2, the traditional "bad usage" convention) so scripts
// can distinguish "fix your flags" from "something failed while running".
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}
