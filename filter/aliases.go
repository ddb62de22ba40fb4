package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// allNonControlAF is the af bitmask accepted by every mission's default
// filter: every ASCII byte except the C0 control codes (0x00-0x1F) and DEL
// (0x7F). Horizontal tab, line feed and carriage return are kept so that
// multi-line findings are not silently truncated.
var allNonControlAF = buildAF(func(b byte) bool {
	switch b {
	case 0x09, 0x0A, 0x0D:
		return true
	case 0x7F:
		return false
	default:
		return b >= 0x20 && b < 0x7F
	}
})

// allCtrlWspAF accepts every ASCII byte, control codes and whitespace
// included. Used by the "All-Ctrl+Wsp" named alias.
var allCtrlWspAF = buildAF(func(byte) bool { return true })

func buildAF(accept func(b byte) bool) [2]uint64 {
	var af [2]uint64
	for b := 0; b < 128; b++ {
		if !accept(byte(b)) {
			continue
		}
		if b < 64 {
			af[0] |= 1 << uint(b)
		} else {
			af[1] |= 1 << uint(b-64)
		}
	}
	return af
}

func buildUBF(lo, hi byte) uint64 {
	var ubf uint64
	for b := int(lo); b <= int(hi); b++ {
		ubf |= 1 << uint(b&0x3F)
	}
	return ubf
}

// commonUBF accepts every valid UTF-8 multibyte leading byte (0xC2-0xF4,
// the range a conformant decoder ever actually emits). It is the ubf every
// non-ASCII mission defaults to.
var commonUBF = buildUBF(0xC2, 0xF4)

// Named aliases, anchored to UTF-8 leading-byte ranges: their exact
// boundaries are implementation constants, not part of the external
// contract beyond what --list-encodings prints.
var aliases = map[string]Utf8Filter{
	"None":              {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: 0},
	"All-Ctrl+Wsp":       {afLo: allCtrlWspAF[0], afHi: allCtrlWspAF[1], ubf: commonUBF},
	"Common":            {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: commonUBF},
	"Latin":             {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xC2, 0xC7)},
	"Cyrillic":          {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xD0, 0xD4)},
	"Greek":             {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xCE, 0xCF)},
	"Hebrew":            {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xD7, 0xD7)},
	"Arabic":            {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xD8, 0xDB)},
	"Cjk":               {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xE3, 0xE9)},
	"Hiragana-Katakana": {afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: buildUBF(0xE3, 0xE3)},
}

// DefaultASCII is the filter an ASCII-labelled mission gets when the
// configuration supplies no explicit af/ubf: accept every non-control ASCII
// byte, reject every multibyte leading byte (there is nothing to decode).
func DefaultASCII() Utf8Filter {
	return Utf8Filter{afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: 0}
}

// DefaultMultibyte is the filter any non-ASCII mission gets when the
// configuration supplies no explicit af/ubf.
func DefaultMultibyte() Utf8Filter {
	return Utf8Filter{afLo: allNonControlAF[0], afHi: allNonControlAF[1], ubf: commonUBF}
}

// Alias looks up a predefined filter by name (case-exact, e.g. "Latin",
// "Cyrillic", "All-Ctrl+Wsp", "None"). The bool reports whether the name was
// recognized.
func Alias(name string) (Utf8Filter, bool) {
	f, ok := aliases[name]
	return f, ok
}

// AliasNames returns every predefined alias name, sorted, for
// --list-encodings-style enumeration.
func AliasNames() []string {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ParseAF parses an af token: either a named alias (whose af half is used,
// ubf from the alias is ignored by the caller), a 128-bit literal written as
// "hi:lo" (two 64-bit halves, each in any base strconv.ParseUint accepts), or
// a plain integer literal that fits entirely in the low half.
func ParseAF(token string) (lo, hi uint64, err error) {
	if f, ok := Alias(token); ok {
		return f.afLo, f.afHi, nil
	}
	token = strings.TrimSpace(token)
	if hiLo := strings.SplitN(token, ":", 2); len(hiLo) == 2 {
		hi, errHi := strconv.ParseUint(strings.TrimSpace(hiLo[0]), 0, 64)
		lo, errLo := strconv.ParseUint(strings.TrimSpace(hiLo[1]), 0, 64)
		if errHi != nil {
			return 0, 0, fmt.Errorf("filter: invalid af literal %q: %w", token, errHi)
		}
		if errLo != nil {
			return 0, 0, fmt.Errorf("filter: invalid af literal %q: %w", token, errLo)
		}
		return lo, hi, nil
	}
	n, err := strconv.ParseUint(token, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("filter: invalid af literal %q: %w", token, err)
	}
	return n, 0, nil
}

// ParseUBF parses a ubf token: a named alias (whose ubf half is used) or a
// literal 64-bit integer.
func ParseUBF(token string) (uint64, error) {
	if f, ok := Alias(token); ok {
		return f.ubf, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(token), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("filter: invalid ubf literal %q: %w", token, err)
	}
	return n, nil
}
