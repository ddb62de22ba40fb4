// Package filter implements the per-byte acceptance predicate that every
// mission applies to a decoded window: Utf8Filter.
//
// A Utf8Filter is two dense bitmasks plus an optional required byte. The
// bitmasks classify leading bytes only — the decoder guarantees the text it
// hands to a filter is valid UTF-8, so a filter never has to reason about
// continuation bytes, overlong encodings, or surrogate halves.
package filter

import "github.com/coregx/glyphscan/simd"

// Utf8Filter is a value type (no pointers, safe to copy) that decides which
// decoded characters a mission keeps.
//
// af is split into two uint64 halves covering the 128 ASCII code points
// (afLo: 0x00-0x3F, afHi: 0x40-0x7F) since Go has no native 128-bit integer;
// bit i of the pair answers "accept ASCII byte i". ubf is a single uint64
// covering the 64 possible UTF-8 leading bytes 0xC0-0xFF; bit k answers
// "accept a multibyte character whose leading byte is 0xC0+k".
type Utf8Filter struct {
	afLo, afHi uint64
	ubf        uint64
	grepChar   *byte
}

// New builds a Utf8Filter from explicit bitmasks and an optional grep byte.
// grepChar, if non-nil, must point at a value <0x80; New panics otherwise —
// callers that parse untrusted configuration should validate before calling
// New (see mission.Build, which reports ErrGrepNotASCII instead of panicking).
func New(af [2]uint64, ubf uint64, grepChar *byte) Utf8Filter {
	if grepChar != nil && *grepChar >= 0x80 {
		panic("filter: grep char must be ASCII (<0x80)")
	}
	return Utf8Filter{afLo: af[0], afHi: af[1], ubf: ubf, grepChar: grepChar}
}

// PassASCII reports whether the filter accepts the single-byte character b.
// b must be <0x80; PassASCII panics otherwise, since the leading-byte /
// continuation-byte distinction is the caller's (split.Splitter's)
// responsibility, not this predicate's.
func (f Utf8Filter) PassASCII(b byte) bool {
	if b >= 0x80 {
		panic("filter: PassASCII requires b < 0x80")
	}
	if b < 64 {
		return (f.afLo>>b)&1 == 1
	}
	return (f.afHi>>(b-64))&1 == 1
}

// PassLeading reports whether the filter accepts a multibyte character whose
// leading byte is b. b must be >=0x80; PassLeading panics otherwise.
//
// Since the decoder only ever hands the filter valid UTF-8, a multibyte
// leading byte is always in 0xC0-0xFF, so b&0x3F uniquely identifies it
// within that range regardless of what continuation-range byte ends up here.
func (f Utf8Filter) PassLeading(b byte) bool {
	if b < 0x80 {
		panic("filter: PassLeading requires b >= 0x80")
	}
	return (f.ubf>>(b&0x3F))&1 == 1
}

// GrepChar returns the required ASCII byte and true, or (0, false) if the
// filter has no grep requirement.
func (f Utf8Filter) GrepChar() (byte, bool) {
	if f.grepChar == nil {
		return 0, false
	}
	return *f.grepChar, true
}

// SatisfiesGrep reports whether text contains the filter's grep char. A
// filter with no grep char is trivially satisfied by every text.
func (f Utf8Filter) SatisfiesGrep(text []byte) bool {
	g, ok := f.GrepChar()
	if !ok {
		return true
	}
	return simd.Memchr(text, g) >= 0
}

// acceptTable builds, on every call, a [256]bool used by split.Splitter to skip runs
// of bytes the filter rejects outright, via simd.MemchrInTable, instead of
// decoding one rune length at a time while scanning for the next candidate
// start. Table[b] is true iff PassASCII(b) (for b<0x80) or PassLeading(b)
// (for b>=0x80); continuation bytes (0x80-0xBF) are always false since they
// can never start a candidate.
func (f Utf8Filter) acceptTable() [256]bool {
	var t [256]bool
	for b := 0; b < 0x80; b++ {
		t[b] = f.PassASCII(byte(b))
	}
	for b := 0xC0; b <= 0xFF; b++ {
		t[b] = f.PassLeading(byte(b))
	}
	return t
}

// AcceptTable returns the table described by acceptTable. Exported so
// split.Splitter (and tests) can reuse one table across many calls:
// split.New builds it once per Splitter, i.e. once per decoded buffer.
func (f Utf8Filter) AcceptTable() [256]bool {
	return f.acceptTable()
}

// Bits exposes the filter's raw bitmasks. Used by scan's Finding ordering
// (sorted by filter's ubf, then filter's af), which needs a stable sort
// key but has no business reaching into Utf8Filter's fields directly.
func (f Utf8Filter) Bits() (af [2]uint64, ubf uint64) {
	return [2]uint64{f.afLo, f.afHi}, f.ubf
}
