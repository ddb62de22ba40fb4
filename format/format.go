// Package format renders scan.Finding values into the wire-exact output
// stream:
//
//	\n [ <SRC> ' ' ] [ <PREC><POS><CONT>\t ] [ '(' <MID> ' ' <ENCLABEL> ')\t' ] <TEXT>
//
// preceded once by a leading BOM (U+FEFF).
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/coregx/glyphscan/scan"
)

// Radix selects how a Finding's position is rendered. This package always
// renders a position column unless NoMetadata suppresses it outright,
// rather than gating it on whether a radix was explicitly configured —
// see DESIGN.md for the resolved ambiguity.
type Radix int

const (
	Decimal Radix = iota
	Octal
	Hex
)

// ParseRadix accepts the three radix letters ("O", "X", "D",
// case-insensitive).
func ParseRadix(s string) (Radix, error) {
	switch s {
	case "D", "d":
		return Decimal, nil
	case "O", "o":
		return Octal, nil
	case "X", "x":
		return Hex, nil
	default:
		return Decimal, fmt.Errorf("format: unknown radix %q, want one of O, X, D", s)
	}
}

func (r Radix) render(pos uint64) string {
	switch r {
	case Octal:
		return strconv.FormatUint(pos, 8)
	case Hex:
		return strconv.FormatUint(pos, 16)
	default:
		return strconv.FormatUint(pos, 10)
	}
}

// Writer streams Findings to w in merge order, one record per WriteFinding
// call. NewWriter writes the leading BOM immediately, so even a zero-finding
// run produces it.
type Writer struct {
	w            *bufio.Writer
	multiSource  bool
	multiMission bool
	radix        Radix
	noMetadata   bool
}

// NewWriter builds a Writer and writes the stream's leading BOM. multiSource
// and multiMission control whether the SRC and "(MID LABEL)" columns are
// ever printed at all (present iff more than one input / iff more than one
// mission) — they are computed once from the resolved configuration, not
// re-derived per Finding.
//
// A failure writing the BOM itself is not returned here: bufio.Writer is
// sticky on error, so it resurfaces from the first subsequent WriteFinding
// or Flush call instead of changing NewWriter's signature for a write that,
// in practice, only fails when the sink is already broken.
func NewWriter(w io.Writer, multiSource, multiMission bool, radix Radix, noMetadata bool) *Writer {
	bw := bufio.NewWriter(w)
	bw.WriteRune('\uFEFF')
	return &Writer{
		w:            bw,
		multiSource:  multiSource,
		multiMission: multiMission,
		radix:        radix,
		noMetadata:   noMetadata,
	}
}

// WriteFinding renders one Finding. Callers are expected to call it in the
// merged order the pipeline's k-way merge produces — Writer itself applies
// no ordering.
func (fw *Writer) WriteFinding(f scan.Finding) error {
	if err := fw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("format: writing record: %w", err)
	}

	if fw.multiSource && f.InputFileID != nil {
		if _, err := fmt.Fprintf(fw.w, "%c ", 'A'+(*f.InputFileID-1)); err != nil {
			return fmt.Errorf("format: writing record: %w", err)
		}
	}

	if !fw.noMetadata {
		cont := byte(' ')
		if f.CompletesPrevious {
			cont = '+'
		}
		if _, err := fmt.Fprintf(fw.w, "%c%s%c\t", precisionGlyph(f.Precision), fw.radix.render(f.Position), cont); err != nil {
			return fmt.Errorf("format: writing record: %w", err)
		}

		if fw.multiMission && f.Mission != nil {
			label := f.Mission.EncodingLabel
			if f.Mission.PrintEncodingAsASCII {
				label = "ascii"
			}
			if _, err := fmt.Fprintf(fw.w, "(%c %s)\t", 'a'+f.Mission.MissionID, label); err != nil {
				return fmt.Errorf("format: writing record: %w", err)
			}
		}
	}

	if _, err := fw.w.WriteString(f.Text); err != nil {
		return fmt.Errorf("format: writing record: %w", err)
	}
	return nil
}

// Flush flushes any buffered output. Callers must call it once after the
// last WriteFinding to guarantee the stream reaches the sink.
func (fw *Writer) Flush() error {
	if err := fw.w.Flush(); err != nil {
		return fmt.Errorf("format: flushing output: %w", err)
	}
	return nil
}

func precisionGlyph(p scan.Precision) byte {
	switch p {
	case scan.Before:
		return '<'
	case scan.After:
		return '>'
	default:
		return ' '
	}
}
