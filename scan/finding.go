// Package scan implements the per-mission scanner: decoding a window to
// UTF-8, splitting it into candidate fragments, classifying each fragment's
// position precision, and carrying decoder residue across window boundaries.
package scan

import "github.com/coregx/glyphscan/mission"

// Precision classifies how confidently a Finding's Position pins the start
// of the original (possibly multi-byte) character run in the input stream.
type Precision int

const (
	// Exact: a fresh decoder produced the same output for the window's
	// first decode call as the mission's running decoder, so the window
	// began at a decoder-neutral boundary and Position is the offset of the
	// first character's first input byte (whether that character is single-
	// or multibyte).
	Exact Precision = iota
	// Before: the window's start did not verify as decoder-neutral, so
	// Position is a lower bound.
	Before
	// After: any fragment following the window's first in the same scan.
	After
)

func (p Precision) String() string {
	switch p {
	case Exact:
		return "Exact"
	case Before:
		return "Before"
	case After:
		return "After"
	default:
		return "Precision(?)"
	}
}

// Finding is one emitted text fragment. Text is an owned copy
// (not a slice into a FindingCollection's scratch) so Findings remain valid
// after the scratch buffer they were produced from is reused or discarded —
// see DESIGN.md for why this module copies instead of borrowing.
type Finding struct {
	InputFileID       *uint8
	Mission           *mission.Mission
	Position          uint64
	Precision         Precision
	Text              string
	CompletesPrevious bool
}

// Less implements the total order the merger uses to k-way merge missions:
// position, then mission_id, then filter's ubf, then filter's af (bitwise
// complement for tie-breaks).
func Less(a, b Finding) bool {
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	if a.Mission.MissionID != b.Mission.MissionID {
		return a.Mission.MissionID < b.Mission.MissionID
	}
	afA, ubfA := a.Mission.Filter.Bits()
	afB, ubfB := b.Mission.Filter.Bits()
	if ubfA != ubfB {
		return ubfA < ubfB
	}
	// Bitwise complement for tie-breaks: compare ^af high half first, then
	// ^af low half.
	cafAHi, cafBHi := ^afA[1], ^afB[1]
	if cafAHi != cafBHi {
		return cafAHi < cafBHi
	}
	cafALo, cafBLo := ^afA[0], ^afB[0]
	if cafALo != cafBLo {
		return cafALo < cafBLo
	}
	return a.Text < b.Text
}

// Equal reports whether two findings match on every field that defines
// equality: position, precision, encoding name, filter, text.
func Equal(a, b Finding) bool {
	if a.Position != b.Position || a.Precision != b.Precision || a.Text != b.Text {
		return false
	}
	if a.Mission.EncodingLabel != b.Mission.EncodingLabel {
		return false
	}
	afA, ubfA := a.Mission.Filter.Bits()
	afB, ubfB := b.Mission.Filter.Bits()
	return afA == afB && ubfA == ubfB
}
