package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/coregx/glyphscan/filter"
	"github.com/coregx/glyphscan/format"
	"github.com/coregx/glyphscan/input"
	"github.com/coregx/glyphscan/internal/conv"
	"github.com/coregx/glyphscan/mission"
	"github.com/coregx/glyphscan/scan"
)

// Resolved is everything pipeline.Driver needs, fully built from an
// Options value: one mission.Mission and scan.ScannerState per configured
// mission, a Slicer over the configured input paths, and a Writer bound to
// the configured output sink.
type Resolved struct {
	Missions []*mission.Mission
	States   []*scan.ScannerState
	Slicer   *input.Slicer
	Writer   *format.Writer

	closeOutput func() error
}

// Close releases the output sink if Build opened one (a real file, as
// opposed to stdout). Safe to call even when Build wrote to stdout.
func (r *Resolved) Close() error {
	if r.closeOutput == nil {
		return nil
	}
	return r.closeOutput()
}

// Build resolves opts into a Resolved configuration. log receives one
// warning per file input.Slicer cannot open or read past (a non-fatal,
// per-file read error); it must not be nil.
func Build(opts Options, log *zap.SugaredLogger) (*Resolved, error) {
	override, err := buildOverride(opts)
	if err != nil {
		return nil, err
	}

	outputLineLen := opts.OutputLineLen
	if outputLineLen == 0 {
		outputLineLen = DefaultOutputLineLen
	}

	specs := opts.Missions
	if len(specs) == 0 {
		specs = []string{"ascii"}
	}
	if len(specs) > 255 {
		return nil, &Error{Stage: "missions", Err: fmt.Errorf("too many missions (%d), max 255", len(specs))}
	}

	missions := make([]mission.Mission, len(specs))
	for i, spec := range specs {
		// The len(specs) > 255 check above makes this conversion always
		// safe; conv.IntToUint8 asserts that invariant rather than
		// silently wrapping if it's ever violated by a future edit.
		m, err := mission.Build(spec, override, conv.IntToUint8(i), opts.CounterOffset, outputLineLen, opts.SameUnicodeBlock)
		if err != nil {
			return nil, &Error{Stage: fmt.Sprintf("mission %d (%q)", i, spec), Err: err}
		}
		missions[i] = m
	}

	missionPtrs := make([]*mission.Mission, len(missions))
	states := make([]*scan.ScannerState, len(missions))
	for i := range missions {
		missionPtrs[i] = &missions[i]
		states[i] = scan.NewScannerState(&missions[i])
	}

	slicer := input.NewSlicer(opts.Paths, DefaultBufFloor, func(path string, err error) {
		log.Warnw("input: skipping unreadable file", "path", path, "error", err)
	})

	radix := format.Decimal
	if opts.Radix != "" {
		radix, err = format.ParseRadix(opts.Radix)
		if err != nil {
			return nil, &Error{Stage: "radix", Err: err}
		}
	}

	multiSource := len(opts.Paths) > 1
	multiMission := len(missions) > 1

	var (
		out         io.Writer
		closeOutput func() error
	)
	if opts.Output == "" || opts.Output == "-" {
		out = os.Stdout
		closeOutput = func() error { return nil }
	} else {
		f, err := os.Create(opts.Output)
		if err != nil {
			return nil, &Error{Stage: "output", Err: err}
		}
		out = f
		closeOutput = f.Close
	}

	writer := format.NewWriter(out, multiSource, multiMission, radix, opts.NoMetadata)

	return &Resolved{
		Missions:    missionPtrs,
		States:      states,
		Slicer:      slicer,
		Writer:      writer,
		closeOutput: closeOutput,
	}, nil
}

// buildOverride turns Options' string-typed global filter overrides into
// the bitmask-typed mission.Override mission.Build consumes. Each field
// stays nil when its Options string is empty, so mission.Build's own
// per-spec fields still take precedence over the global override.
func buildOverride(opts Options) (mission.Override, error) {
	var override mission.Override
	override.CharsMin = opts.CharsMin

	if opts.ASCIIFilter != "" {
		lo, hi, err := filter.ParseAF(opts.ASCIIFilter)
		if err != nil {
			return mission.Override{}, &Error{Stage: "ascii-filter", Err: err}
		}
		override.AF = &[2]uint64{lo, hi}
	}
	if opts.UnicodeBlockFilter != "" {
		ubf, err := filter.ParseUBF(opts.UnicodeBlockFilter)
		if err != nil {
			return mission.Override{}, &Error{Stage: "unicode-block-filter", Err: err}
		}
		override.UBF = &ubf
	}
	if opts.GrepChar != "" {
		b, err := parseGrepOverride(opts.GrepChar)
		if err != nil {
			return mission.Override{}, &Error{Stage: "grep-char", Err: err}
		}
		override.Grep = &b
	}
	return override, nil
}

// parseGrepOverride mirrors mission.parseGrepChar's grammar (a single ASCII
// character, or an integer literal) since that helper is unexported and
// this is the only other caller that needs it.
func parseGrepOverride(token string) (byte, error) {
	if len(token) == 1 && token[0] < 0x80 {
		return token[0], nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(token), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid grep char %q: %w", token, err)
	}
	return byte(n), nil
}
