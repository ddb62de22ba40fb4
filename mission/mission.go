// Package mission builds the immutable per-scanner configuration that
// binds one encoding to one Utf8Filter: a Mission.
package mission

import (
	"strconv"
	"strings"

	"github.com/coregx/glyphscan/codec"
	"github.com/coregx/glyphscan/filter"
	"github.com/coregx/glyphscan/internal/conv"
)

// MinOutputLineCharMax is the smallest output_line_char_max Build accepts;
// a smaller value is rejected with ErrLineCapTooSmall.
const MinOutputLineCharMax = 6

// DefaultCharsMin is the chars_min every mission gets unless its spec string
// or an Override says otherwise.
const DefaultCharsMin = 4

// Mission is immutable once Build returns it and is shared by reference
// across the lifetime of the scan.
type Mission struct {
	MissionID               uint8
	EncodingLabel           string
	NewDecoder              codec.Factory
	CounterOffset           uint64
	CharsMin                uint8
	RequireSameUnicodeBlock bool
	Filter                  filter.Utf8Filter
	OutputLineCharMax       int
	PrintEncodingAsASCII    bool
}

// Override carries global CLI overrides a mission spec's own fields take
// precedence over: a field present in the spec string always wins;
// Override only fills in fields the spec string left blank.
type Override struct {
	CharsMin *uint8
	AF       *[2]uint64
	UBF      *uint64
	Grep     *byte
}

// Build parses one mission spec of the form
// "ENCODING[,CHARS_MIN[,AF[,UBF[,GREP]]]]" and constructs its
// Mission. missionID, counterOffset, outputLineCharMax and
// requireSameUnicodeBlock come from the surrounding configuration (they are
// shared concerns across all missions, not part of the per-mission spec
// grammar) — config.Build is the caller that supplies them.
func Build(spec string, override Override, missionID uint8, counterOffset uint64, outputLineCharMax int, requireSameUnicodeBlock bool) (Mission, error) {
	if outputLineCharMax < MinOutputLineCharMax {
		return Mission{}, &ConfigError{Spec: spec, Err: ErrLineCapTooSmall}
	}

	fields := strings.Split(spec, ",")
	if len(fields) > 5 {
		return Mission{}, &ConfigError{Spec: spec, Err: ErrTooManyFields}
	}

	encodingName := strings.TrimSpace(fields[0])
	isASCII := encodingName == "ascii"

	var (
		label      string
		newDecoder codec.Factory
	)
	if isASCII {
		label = "ascii"
		newDecoder = codec.NewXUserDefined()
	} else {
		canonical, factory, err := codec.Lookup(encodingName)
		if err != nil {
			return Mission{}, &ConfigError{Spec: spec, Err: ErrUnknownEncoding}
		}
		label = canonical
		newDecoder = factory
	}

	charsMin := DefaultCharsMin
	if override.CharsMin != nil {
		charsMin = int(*override.CharsMin)
	}
	if len(fields) >= 2 && strings.TrimSpace(fields[1]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || n < 0 || n > 255 {
			return Mission{}, &ConfigError{Spec: spec, Err: ErrBadInteger}
		}
		charsMin = n
	}

	var defaultFilter filter.Utf8Filter
	if isASCII {
		defaultFilter = filter.DefaultASCII()
	} else {
		defaultFilter = filter.DefaultMultibyte()
	}

	afLo, afHi, ubf := defaultFilterBits(defaultFilter)
	if override.AF != nil {
		afLo, afHi = override.AF[0], override.AF[1]
	}
	if override.UBF != nil {
		ubf = *override.UBF
	}
	var grep *byte
	if override.Grep != nil {
		grep = override.Grep
	}

	if len(fields) >= 3 && strings.TrimSpace(fields[2]) != "" {
		lo, hi, err := filter.ParseAF(strings.TrimSpace(fields[2]))
		if err != nil {
			return Mission{}, &ConfigError{Spec: spec, Err: ErrUnknownFilterAlias}
		}
		afLo, afHi = lo, hi
	}
	if len(fields) >= 4 && strings.TrimSpace(fields[3]) != "" {
		v, err := filter.ParseUBF(strings.TrimSpace(fields[3]))
		if err != nil {
			return Mission{}, &ConfigError{Spec: spec, Err: ErrUnknownFilterAlias}
		}
		ubf = v
	}
	if len(fields) >= 5 && strings.TrimSpace(fields[4]) != "" {
		g := strings.TrimSpace(fields[4])
		b, err := parseGrepChar(g)
		if err != nil {
			return Mission{}, &ConfigError{Spec: spec, Err: ErrBadInteger}
		}
		grep = &b
	}
	if grep != nil && *grep >= 0x80 {
		return Mission{}, &ConfigError{Spec: spec, Err: ErrGrepNotASCII}
	}

	return Mission{
		MissionID:               missionID,
		EncodingLabel:           label,
		NewDecoder:              newDecoder,
		CounterOffset:           counterOffset,
		CharsMin:                conv.IntToUint8(charsMin),
		RequireSameUnicodeBlock: requireSameUnicodeBlock,
		Filter:                  filter.New([2]uint64{afLo, afHi}, ubf, grep),
		OutputLineCharMax:       outputLineCharMax,
		PrintEncodingAsASCII:    isASCII,
	}, nil
}

// defaultFilterBits extracts the af/ubf bitmasks a default Utf8Filter
// carries, by round-tripping through its own grep-free byte predicates
// rather than exposing the struct's private fields outside package filter.
func defaultFilterBits(f filter.Utf8Filter) (afLo, afHi, ubf uint64) {
	for b := 0; b < 64; b++ {
		if f.PassASCII(byte(b)) {
			afLo |= 1 << uint(b)
		}
	}
	for b := 64; b < 128; b++ {
		if f.PassASCII(byte(b)) {
			afHi |= 1 << uint(b-64)
		}
	}
	for b := 0xC0; b <= 0xFF; b++ {
		if f.PassLeading(byte(b)) {
			ubf |= 1 << uint(b&0x3F)
		}
	}
	return afLo, afHi, ubf
}

// parseGrepChar accepts either a single ASCII character ("*") or an integer
// literal ("42", "0x2A") naming the byte value, matching how AF/UBF tokens
// are also either symbolic or numeric.
func parseGrepChar(token string) (byte, error) {
	if len(token) == 1 && token[0] < 0x80 {
		return token[0], nil
	}
	n, err := strconv.ParseUint(token, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(n), nil
}
