package codec

import (
	"fmt"
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// entry binds a mission-facing encoding label to its canonical name (used in
// the "(mid label)" output column) and the Factory that builds its decoder.
type entry struct {
	label   string
	factory Factory
}

// registry maps the closed set of encoding labels mission.Build accepts to
// their decoder factories. "ascii" is deliberately absent here: it is
// handled as a special case by mission.Build before ever consulting the
// registry (it binds NewXUserDefined and sets print_encoding_as_ascii),
// never an x/text encoding.Encoding.
var registry = map[string]entry{
	"utf8":    {"utf8", NewUTF8()},
	"utf16le": {"utf16le", fromEncoding(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))},
	"utf16be": {"utf16be", fromEncoding(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))},
	"windows-1252": {"windows-1252", fromEncoding(charmap.Windows1252)},
	"iso8859-1":    {"iso8859-1", fromEncoding(charmap.ISO8859_1)},
	"iso8859-15":   {"iso8859-15", fromEncoding(charmap.ISO8859_15)},
	"big5":         {"big5", fromEncoding(traditionalchinese.Big5)},
	"gbk":          {"gbk", fromEncoding(simplifiedchinese.GBK)},
	"euc-jp":       {"euc-jp", fromEncoding(japanese.EUCJP)},
	"shift-jis":    {"shift-jis", fromEncoding(japanese.ShiftJIS)},
	"euc-kr":       {"euc-kr", fromEncoding(korean.EUCKR)},
}

// fromEncoding adapts an x/text encoding.Encoding into a Factory. Each call
// builds a fresh decoder (and therefore fresh decode state), since
// encoding.Encoding values themselves are stateless and safe to share but
// their NewDecoder() results are not.
func fromEncoding(enc encoding.Encoding) Factory {
	return func() Decoder { return newTransformDecoder(enc) }
}

// Lookup resolves a mission encoding label to its canonical name and
// Factory. name must be one of the closed set of identifiers registry
// enumerates (case-exact); unknown names are reported as an error the
// caller (mission.Build) wraps into ErrUnknownEncoding.
func Lookup(name string) (canonical string, factory Factory, err error) {
	e, ok := registry[name]
	if !ok {
		return "", nil, fmt.Errorf("codec: unknown encoding %q", name)
	}
	return e.label, e.factory, nil
}

// Names returns every encoding label Lookup accepts, sorted, plus the
// "ascii" pseudo-label mission.Build handles separately. Used by
// --list-encodings.
func Names() []string {
	names := make([]string, 0, len(registry)+1)
	names = append(names, "ascii")
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
