package codec

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// transformDecoder adapts an x/text encoding.Decoder (a stateful
// transform.Transformer) to the Decoder interface.
type transformDecoder struct {
	enc encoding.Encoding
	t   transform.Transformer
}

// newTransformDecoder wraps enc.NewDecoder(). The returned Decoder owns its
// own Transformer instance so concurrent missions never share decode state.
func newTransformDecoder(enc encoding.Encoding) *transformDecoder {
	return &transformDecoder{enc: enc, t: enc.NewDecoder()}
}

func (d *transformDecoder) Decode(dst, src []byte, atEOF bool) (Status, int, int) {
	nDst, nSrc, err := d.t.Transform(dst, src, atEOF)
	switch {
	case err == nil:
		return InputEmpty, nDst, nSrc
	case errors.Is(err, transform.ErrShortDst):
		return OutputFull, nDst, nSrc
	case errors.Is(err, transform.ErrShortSrc):
		if atEOF {
			// A genuinely incomplete trailing sequence at the true end of
			// the stream can never be completed: treat the undecodable
			// remainder as malformed rather than asking for more input
			// that will never arrive.
			return Malformed, nDst, nSrc
		}
		// Plausible prefix of a longer sequence; more input may resolve it.
		return InputEmpty, nDst, nSrc
	default:
		return Malformed, nDst, nSrc
	}
}

func (d *transformDecoder) Reset() {
	d.t.Reset()
}
