// Package split implements SplitStr: the lazy, linear-time iterator that
// walks a decoded UTF-8 buffer and yields maximal runs of
// characters a filter.Utf8Filter accepts, each tagged with enough metadata
// (completes_previous, maybe_cut, to_be_refiltered) for scan.Scan to stitch
// fragments across window boundaries.
package split

import (
	"github.com/coregx/glyphscan/filter"
	"github.com/coregx/glyphscan/simd"
)

// Fragment is one candidate SplitStr emits. Text aliases the input slice
// passed to New — callers that need to keep a Fragment past the next call to
// Splitter.Next (or past the lifetime of the input slice) must copy it.
// Start is Text's byte offset within that same input slice, so a caller
// that only has the original backing array (not the Splitter's copy of the
// slice header) can still locate Text without pointer arithmetic.
type Fragment struct {
	Text              []byte
	Start             int
	CompletesPrevious bool
	MaybeCut          bool
	ToBeRefiltered    bool
	SatisfiesMin      bool
	SatisfiesGrep     bool
}

// Splitter is a pull iterator over one decoded buffer. It holds no
// allocation beyond its fields; Next never allocates except the returned
// Fragment's Text being a re-slice of the original input.
type Splitter struct {
	inp                     []byte
	pos                     int
	charsMin                int
	continuePrevious        bool
	invalidAfter            bool
	filter                  filter.Utf8Filter
	maxChars                int
	requireSameUnicodeBlock bool
	cutPending              bool
	done                    bool
	acceptTable             [256]bool
}

// New builds a Splitter over inp.
//
//   - charsMin: minimum character count for a non-continuation fragment.
//   - continuePrevious: true if the caller's previous window ended with a
//     maybe_cut fragment this buffer's leading bytes may complete.
//   - invalidAfter: true if the bytes immediately following inp (if any) are
//     known not to extend any character that touches inp's right edge —
//     either because decoding failed there or because inp is the last bytes
//     of the entire input stream.
//   - maxChars: the hard cap on fragment length in characters
//     (mission.Mission.OutputLineCharMax).
func New(inp []byte, charsMin int, continuePrevious, invalidAfter bool, f filter.Utf8Filter, maxChars int) *Splitter {
	return &Splitter{
		inp:              inp,
		charsMin:         charsMin,
		continuePrevious: continuePrevious,
		invalidAfter:     invalidAfter,
		filter:           f,
		maxChars:         maxChars,
		acceptTable:      f.AcceptTable(),
	}
}

// WithSameUnicodeBlock enables mission.Mission.RequireSameUnicodeBlock:
// once a candidate's first multibyte character has picked a leading-byte
// block (the coarse partition implied by its ubf bit index), every later
// character in that same candidate must share it, or the candidate
// terminates there exactly as if the byte had failed the filter outright.
// ASCII characters never start or break a block — they carry whatever
// block (if any) the candidate already committed to.
func (s *Splitter) WithSameUnicodeBlock(require bool) *Splitter {
	s.requireSameUnicodeBlock = require
	return s
}

// Next returns the next fragment and true, or a zero Fragment and false once
// the buffer is exhausted. Next never backtracks: s.pos strictly increases
// across the lifetime of one call, and either returns a fragment or marks
// the Splitter done — it cannot loop forever on any input.
func (s *Splitter) Next() (Fragment, bool) {
	if s.done {
		return Fragment{}, false
	}

	building := false
	candidateStart := 0
	candidateChars := 0
	candidateBlock := -1
	completesPrevious := false

	for s.pos < len(s.inp) {
		if !building {
			// Skip straight to the next byte the filter could possibly
			// start a candidate on, instead of classifying (and
			// utf8Len-ing) every rejected byte one at a time. Safe
			// because acceptTable's true entries are exactly the bytes
			// PassASCII/PassLeading below would accept for a
			// not-yet-building candidate (requireSameUnicodeBlock only
			// narrows acceptance once a candidate is already building).
			skip := simd.MemchrInTable(s.inp[s.pos:], &s.acceptTable)
			if skip < 0 {
				s.pos = len(s.inp)
				break
			}
			s.pos += skip
		}

		b := s.inp[s.pos]
		length, okLeading := utf8Len(b)
		var pass bool
		switch {
		case b < 0x80:
			pass = s.filter.PassASCII(b)
		case okLeading:
			pass = s.filter.PassLeading(b)
		default:
			pass = false
		}

		blockBreak := false
		if pass && okLeading && s.requireSameUnicodeBlock && building &&
			candidateBlock != -1 && candidateBlock != int(b&0x3F) {
			pass = false
			blockBreak = true
		}

		if pass {
			if !building {
				building = true
				candidateStart = s.pos
				candidateChars = 0
				candidateBlock = -1
				completesPrevious = (candidateStart == 0 && s.continuePrevious) || s.cutPending
				s.cutPending = false
			}
			if okLeading && s.requireSameUnicodeBlock && candidateBlock == -1 {
				candidateBlock = int(b & 0x3F)
			}
			s.pos += length
			candidateChars++
			if candidateChars >= s.maxChars {
				text := s.inp[candidateStart:s.pos]
				satisfiesMin := candidateChars >= s.charsMin
				satisfiesGrep := s.filter.SatisfiesGrep(text)
				if completesPrevious || (satisfiesMin && satisfiesGrep) {
					frag := s.fragment(candidateStart, s.pos, completesPrevious, true, false)
					s.cutPending = true
					return frag, true
				}
				// The hard cap left this run without its required grep
				// byte (or below chars_min) and completesPrevious is
				// false, so there is nothing to emit and nothing to
				// carry: unlike decideBoundary's max_chars branch, an
				// interior cut has no next window to defer into. Drop
				// the run and let the next accepted byte start a fresh
				// candidate.
				building = false
				continue
			}
			continue
		}

		if building {
			building = false
			if frag, emit := s.decideInterior(candidateStart, s.pos, completesPrevious, candidateChars); emit {
				if blockBreak {
					// The accept table would let the next call start a
					// candidate on the block-breaking character, so
					// consume it here like any rejected character.
					s.pos += length
				}
				return frag, true
			}
		}
		s.pos += length
	}

	if building {
		if frag, emit := s.decideBoundary(candidateStart, s.pos, completesPrevious, candidateChars); emit {
			// A to_be_refiltered fragment still leaves the Splitter "at
			// the end" — there is nothing left in inp to walk either way.
			s.done = true
			return frag, true
		}
	}
	s.done = true
	return Fragment{}, false
}

func (s *Splitter) decideInterior(start, end int, completesPrevious bool, chars int) (Fragment, bool) {
	text := s.inp[start:end]
	satisfiesMin := chars >= s.charsMin
	satisfiesGrep := s.filter.SatisfiesGrep(text)
	if completesPrevious || (satisfiesMin && satisfiesGrep) {
		return s.fragment(start, end, completesPrevious, false, false), true
	}
	return Fragment{}, false
}

func (s *Splitter) decideBoundary(start, end int, completesPrevious bool, chars int) (Fragment, bool) {
	text := s.inp[start:end]
	satisfiesMin := chars >= s.charsMin
	satisfiesGrep := s.filter.SatisfiesGrep(text)

	if s.invalidAfter {
		if completesPrevious || (satisfiesMin && satisfiesGrep) {
			return s.fragment(start, end, completesPrevious, false, false), true
		}
		return Fragment{}, false
	}

	if chars >= s.maxChars && satisfiesGrep {
		return s.fragment(start, end, completesPrevious, true, false), true
	}
	if completesPrevious {
		// A later part of a run already emitted as cut: emit it directly,
		// still maybe_cut, so only a run's first right-boundary fragment is
		// ever deferred.
		return s.fragment(start, end, true, true, false), true
	}
	// Defer to the next window's buffer regardless of satisfiesGrep/Min —
	// the missing grep char or extra characters may appear once this
	// fragment is glued to what follows.
	return s.fragment(start, end, completesPrevious, false, true), true
}

func (s *Splitter) fragment(start, end int, completesPrevious, maybeCut, toBeRefiltered bool) Fragment {
	text := s.inp[start:end]
	chars := charCount(text)
	return Fragment{
		Text:              text,
		Start:             start,
		CompletesPrevious: completesPrevious,
		MaybeCut:          maybeCut,
		ToBeRefiltered:    toBeRefiltered,
		SatisfiesMin:      chars >= s.charsMin,
		SatisfiesGrep:     s.filter.SatisfiesGrep(text),
	}
}

// charCount counts UTF-8 characters (not bytes) in text using the same
// leading-byte length table as the main walk, so it agrees with candidateChars
// even for the rare case a caller reconstructs a Fragment's character count
// independently (e.g. tests).
func charCount(text []byte) int {
	n := 0
	for i := 0; i < len(text); {
		length, _ := utf8Len(text[i])
		i += length
		n++
	}
	return n
}

// utf8Len returns the byte length implied by a leading byte, and whether it
// is a valid multibyte leading byte (0xC0-0xF7 range the UTF-8 spec permits
// as of 4-byte sequences). Invalid leading bytes (stray continuation bytes
//0x80-0xBF, or 0xF8-0xFF which no valid UTF-8 sequence starts with) are
// reported as length 1 so the walk always makes progress over them.
func utf8Len(b byte) (length int, validLeading bool) {
	switch {
	case b < 0x80:
		return 1, false
	case b < 0xC0:
		return 1, false
	case b < 0xE0:
		return 2, true
	case b < 0xF0:
		return 3, true
	case b < 0xF8:
		return 4, true
	default:
		return 1, false
	}
}
