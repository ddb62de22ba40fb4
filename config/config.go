// Package config resolves the flat CLI configuration surface into the
// concrete pieces pipeline.Driver needs: a set of
// mission.Mission values (and their scan.ScannerState), an input.Slicer,
// and a format.Writer. It is the one package that knows how a raw
// "ENCODING[,CHARS_MIN[,AF[,UBF[,GREP]]]]" mission string and the global
// overrides combine — the cobra layer in cmd/glyphscan only ever builds an
// Options value and hands it here.
package config

import (
	"errors"
	"fmt"
)

// DefaultOutputLineLen is the output_line_char_max every mission gets
// unless OutputLineLen overrides it. Generous enough that the common case
// (terminal-width strings) never hits the cap, while still bounding
// worst-case memory.
const DefaultOutputLineLen = 256

// DefaultBufFloor is the minimum chunk size input.Slicer rounds up to a
// page multiple. 64KiB keeps the fan-out/merge overhead per
// chunk low without holding an unreasonable amount of scratch per mission.
const DefaultBufFloor = 64 * 1024

// Options is the flat option struct describing the configuration surface
// consumed by the core from the CLI layer. cmd/glyphscan populates it
// directly from cobra flags; nothing in this struct is cobra-specific.
type Options struct {
	// Paths is the positional input file list, or empty (or the single
	// element "-") to read stdin.
	Paths []string

	// Missions is the repeatable -m/--mission flag's raw values, each of
	// the form "ENCODING[,CHARS_MIN[,AF[,UBF[,GREP]]]]". A nil/empty slice
	// defaults to a single "ascii" mission, matching the reference tool's
	// own default search encoding.
	Missions []string

	// Global overrides. CharsMin, ASCIIFilter, UnicodeBlockFilter and
	// GrepChar are applied only to missions whose own spec string left the
	// corresponding field blank (mission.Override's contract);
	// OutputLineLen, CounterOffset and SameUnicodeBlock have no spec-string
	// field and apply to every mission.
	CharsMin           *uint8
	ASCIIFilter        string // alias name or hex/"hi:lo" literal; "" = unset
	UnicodeBlockFilter string // alias name or hex literal; "" = unset
	GrepChar           string // single ASCII char or integer literal; "" = unset
	OutputLineLen      int    // 0 = DefaultOutputLineLen
	CounterOffset      uint64
	SameUnicodeBlock   bool

	Radix      string // "O", "X", "D"; "" = Decimal (see format.Radix docs)
	NoMetadata bool
	Output     string // "" or "-" = stdout

	ListEncodings bool
	ShowConfig    bool
	Version       bool
}

// ErrNoMissions is never actually returned by Build (Build defaults to a
// single ascii mission instead); it is exported only so callers that choose
// to reject an explicitly empty -m/--mission flag list can do so uniformly.
var ErrNoMissions = errors.New("config: no missions configured")

// Error wraps any failure Build encounters resolving Options into a Resolved
// configuration — a malformed mission spec, an unknown radix letter, or a
// bad global filter override. It wraps the underlying error (from mission,
// filter, or the parse or os call that failed), so errors.As/errors.Is
// against those stays meaningful.
type Error struct {
	Stage string // e.g. "mission 2", "radix", "ascii-filter"
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("config: %s: %v", e.Stage, e.Err) }
func (e *Error) Unwrap() error { return e.Err }
