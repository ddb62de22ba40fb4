package codec

import "github.com/coregx/glyphscan/simd"

// xUserDefinedDecoder implements the WHATWG "x-user-defined" mapping: every
// byte 0x00-0x7F maps to the identical ASCII code point, and every byte
// 0x80-0xFF maps to the private-use code point U+F780 + (b-0x80). This is
// the passthrough mission.Build uses for the "ascii" label: it never fails
// to decode a byte, so every byte of the input is visible to
// the mission's Utf8Filter, which is where high-bit bytes actually get
// rejected — filter.DefaultASCII's ubf is empty, so PassLeading(0xEF)
// (the leading byte every U+F780-U+F7FF point decodes to) is always false.
//
// golang.org/x/text has no built-in x-user-defined encoding; it is small
// enough (and specific enough to this mission's semantics) to implement
// directly rather than stretch an existing x/text charmap to fit.
type xUserDefinedDecoder struct{}

// NewXUserDefined returns a Factory for the ASCII-emulation mission encoding.
func NewXUserDefined() Factory {
	return func() Decoder { return &xUserDefinedDecoder{} }
}

func (d *xUserDefinedDecoder) Decode(dst, src []byte, _ bool) (Status, int, int) {
	// The overwhelming majority of real input is plain ASCII; bulk-copy
	// that common case instead of mapping one byte at a time.
	if simd.IsASCII(src) {
		n := len(src)
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], src[:n])
		if n < len(src) {
			return OutputFull, n, n
		}
		return InputEmpty, n, n
	}

	var nDst, nSrc int
	for nSrc < len(src) {
		b := src[nSrc]
		if b < 0x80 {
			if nDst+1 > len(dst) {
				return OutputFull, nDst, nSrc
			}
			dst[nDst] = b
			nDst++
			nSrc++
			continue
		}
		// 3-byte UTF-8 encoding of U+F780+(b-0x80):
		// 1110xxxx 10xxxxxx 10xxxxxx
		if nDst+3 > len(dst) {
			return OutputFull, nDst, nSrc
		}
		r := rune(0xF780) + rune(b) - 0x80
		dst[nDst+0] = 0xE0 | byte(r>>12)
		dst[nDst+1] = 0x80 | byte((r>>6)&0x3F)
		dst[nDst+2] = 0x80 | byte(r&0x3F)
		nDst += 3
		nSrc++
	}
	return InputEmpty, nDst, nSrc
}

func (d *xUserDefinedDecoder) Reset() {}
