package codec

import "unicode/utf8"

// utf8Decoder validates a UTF-8-labelled mission's input directly: since the
// source encoding already is (supposedly) UTF-8, decoding is "copy valid
// runes verbatim, skip invalid bytes one at a time". x/text has no
// "validate UTF-8 and report where it breaks" decoder with this module's
// partial-progress contract, so this is purpose-built rather than routed
// through transform.Transformer.
type utf8Decoder struct{}

// NewUTF8 returns a Factory for the UTF-8 mission encoding.
func NewUTF8() Factory {
	return func() Decoder { return &utf8Decoder{} }
}

func (d *utf8Decoder) Decode(dst, src []byte, atEOF bool) (Status, int, int) {
	var nDst, nSrc int
	for nSrc < len(src) {
		rest := src[nSrc:]
		if !utf8.FullRune(rest) && !atEOF {
			// Could be a valid rune's prefix; wait for more input.
			return InputEmpty, nDst, nSrc
		}
		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size <= 1 {
			// Not part of any valid UTF-8 sequence (or, at atEOF, a
			// dangling incomplete sequence that will never complete):
			// skip exactly this one byte and stop so the caller can act
			// on the malformed status before more bytes are consumed.
			nSrc++
			return Malformed, nDst, nSrc
		}
		if nDst+size > len(dst) {
			return OutputFull, nDst, nSrc
		}
		copy(dst[nDst:nDst+size], rest[:size])
		nDst += size
		nSrc += size
	}
	return InputEmpty, nDst, nSrc
}

func (d *utf8Decoder) Reset() {}
