package config

import (
	"fmt"
	"io"

	"github.com/coregx/glyphscan/codec"
	"github.com/coregx/glyphscan/filter"
	"github.com/coregx/glyphscan/mission"
)

// WriteListEncodings prints every encoding label mission.Build accepts,
// one per line, short-circuiting any scan the way the reference tool's
// own -l flag does.
func WriteListEncodings(w io.Writer) error {
	for _, name := range codec.Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// WriteListFilterAliases prints every named Utf8Filter alias --ascii-filter
// and --unicode-block-filter accept in place of a literal mask.
func WriteListFilterAliases(w io.Writer) error {
	for _, name := range filter.AliasNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// WriteShowConfig prints the fully resolved Mission set, one line per
// mission: id, encoding label, chars_min, af/ubf as hex, grep char. Lets a
// user verify their mission specs parsed the way they intended without
// reading any input.
func WriteShowConfig(w io.Writer, missions []*mission.Mission) error {
	for _, m := range missions {
		af, ubf := m.Filter.Bits()
		grep := "none"
		if g, ok := m.Filter.GrepChar(); ok {
			grep = fmt.Sprintf("0x%02x", g)
		}
		_, err := fmt.Fprintf(w, "mission %d: encoding=%s chars_min=%d af=0x%016x%016x ubf=0x%016x grep=%s line_max=%d counter_offset=%d same_unicode_block=%t\n",
			m.MissionID, m.EncodingLabel, m.CharsMin, af[1], af[0], ubf, grep, m.OutputLineCharMax, m.CounterOffset, m.RequireSameUnicodeBlock)
		if err != nil {
			return err
		}
	}
	return nil
}
