package scan

import (
	"github.com/coregx/glyphscan/codec"
	"github.com/coregx/glyphscan/split"
)

// region remembers, for one decode call's output range [OutStart, OutEnd)
// inside a FindingCollection's scratch, the input-stream offset
// (relative to the bytes Scan decodes, i.e. any raw residue followed by the
// window, not the virtual stream start) that decode call began reading
// from. Scan uses this to recover each
// fragment's Position (state.consumed_bytes + the decoder input offset in
// effect when the fragment's bytes were produced) even though all of a window's
// decode calls share one contiguous scratch range that SplitStr walks in a
// single pass.
type region struct {
	outStart   int
	inputStart int
}

func (rs regionList) inputStartFor(outOffset int) int {
	// Regions are appended in increasing outStart order; the last one
	// whose outStart <= outOffset governs.
	best := 0
	for _, r := range rs {
		if r.outStart <= outOffset {
			best = r.inputStart
		} else {
			break
		}
	}
	return best
}

type regionList []region

// Scan runs one scan pass over window, advancing state and returning the
// FindingCollection it produced. inputFileID is nil for stdin, or the
// 1-based source identifier for file inputs.
func Scan(state *ScannerState, inputFileID *uint8, window []byte, isLastWindowOfStream bool) *FindingCollection {
	m := state.Mission
	firstBytePosition := state.consumedBytes

	// A decoder that stalled on an incomplete multibyte sequence at the
	// tail of the previous window (see the stall handling below) left
	// those raw, undecoded bytes in state.rawResidue: they were never
	// counted into consumedBytes, so splicing them onto the front of this
	// window reconstructs exactly the byte sequence the decoder would have
	// seen had the two windows arrived as one.
	effectiveWindow := window
	if len(state.rawResidue) > 0 {
		effectiveWindow = make([]byte, 0, len(state.rawResidue)+len(window))
		effectiveWindow = append(effectiveWindow, state.rawResidue...)
		effectiveWindow = append(effectiveWindow, window...)
	}

	leftoverLen := len(state.leftover)
	scratchCap := 3*len(effectiveWindow) + leftoverLen + 4*m.OutputLineCharMax + 64
	coll := NewFindingCollection(firstBytePosition, scratchCap)
	copy(coll.Scratch, state.leftover)

	subWindowIn := 2 * m.OutputLineCharMax
	if subWindowIn < 1 {
		subWindowIn = 1
	}

	decoderOutputStart := leftoverLen
	decoderInputStart := 0
	trailingMalformed := false
	stalled := false

	var regions regionList
	if leftoverLen > 0 {
		regions = append(regions, region{outStart: 0, inputStart: 0})
	}

	firstCallDone := false
	var windowPrecision Precision

	// effectiveWindow == nil / len 0 with isLastWindowOfStream == true (a
	// final, empty flush call) intentionally runs zero sub-windows here:
	// there is nothing new to decode, and any previously deferred leftover
	// still gets a correct invalid_after-driven SplitStr decision below,
	// since invalidAfterBuffer is true whenever isLastWindowOfStream is
	// true regardless of whether this loop body ever executes.
	for decoderInputStart < len(effectiveWindow) && !stalled {
		subEnd := decoderInputStart + subWindowIn
		if subEnd > len(effectiveWindow) {
			subEnd = len(effectiveWindow)
		}
		isLastSubWindow := subEnd == len(effectiveWindow)
		inSlice := effectiveWindow[decoderInputStart:subEnd]

		for {
			if decoderOutputStart >= len(coll.Scratch) {
				coll.ClearAndMarkIncomplete()
				state.decoder.Reset()
				state.leftover = state.leftover[:0]
				state.rawResidue = state.rawResidue[:0]
				state.consumedBytes += uint64(len(effectiveWindow))
				return coll
			}

			isFlushRound := isLastSubWindow && isLastWindowOfStream
			outSlice := coll.Scratch[decoderOutputStart:]
			status, nDst, nSrc := state.decoder.Decode(outSlice, inSlice, isFlushRound)

			if !firstCallDone {
				windowPrecision = assessPrecision(m.NewDecoder(), inSlice, isFlushRound, coll.Scratch[decoderOutputStart:decoderOutputStart+nDst])
				firstCallDone = true
			}

			// A stateless decoder signals "I need bytes this stream
			// doesn't have yet" by returning InputEmpty without consuming
			// anything: e.g. the decoder holds a valid-so-far multibyte
			// prefix (such as a word followed by the leading two bytes of
			// a three-byte character) and needs more bytes to complete it.
			// Retrying this same call would reproduce the same result
			// forever, so always break out of the per-sub-window decode
			// loop on a stall rather than only at the window's last
			// sub-window: an internal sub-window boundary can straddle a
			// multibyte character exactly as the window's own boundary
			// can, since sub-windows are an arbitrary decode-call sizing,
			// not a real input boundary.
			//
			// If this was the last sub-window, there is nothing beyond
			// inSlice in this window to supply the missing bytes, so the
			// tail is stashed as rawResidue and deferred to the next Scan
			// call. Otherwise, decoderInputStart already points at the
			// incomplete character's first byte (every earlier character
			// in this sub-window decoded successfully, or this call would
			// not have reached here with len(inSlice) > 0 after a
			// sub-window sized at least 2*output_line_char_max bytes), so
			// breaking here and leaving decoderInputStart untouched makes
			// the outer loop re-slice a fresh, larger sub-window starting
			// exactly there on its next iteration — which supplies the
			// missing bytes instead of stashing them.
			if status == codec.InputEmpty && nSrc == 0 && nDst == 0 && len(inSlice) > 0 && !isFlushRound {
				if isLastSubWindow {
					state.rawResidue = append(state.rawResidue[:0], inSlice...)
					stalled = true
				}
				break
			}

			regions = append(regions, region{outStart: decoderOutputStart, inputStart: decoderInputStart})
			decoderOutputStart += nDst
			decoderInputStart += nSrc
			inSlice = inSlice[nSrc:]

			if status == codec.Malformed {
				trailingMalformed = true
			} else {
				trailingMalformed = false
			}

			if status == codec.OutputFull {
				// Fatal for this window: mark the scratch full so the check
				// at the top of this loop clears the collection.
				decoderOutputStart = len(coll.Scratch)
				continue
			}

			// InputEmpty or Malformed: this decode call made what progress
			// it could on inSlice. If there's nothing left of this
			// sub-window's input, move to the next sub-window; a Malformed
			// byte was already skipped by the decoder (nSrc includes it),
			// so retrying the same inSlice continues past it.
			if len(inSlice) == 0 {
				break
			}
		}

	}

	if !stalled {
		state.rawResidue = state.rawResidue[:0]
	}

	invalidAfterBuffer := trailingMalformed || isLastWindowOfStream

	buf := coll.Scratch[0:decoderOutputStart]
	splitter := split.New(buf, int(m.CharsMin), state.prevPrintedAndMaybeCut, invalidAfterBuffer, m.Filter, m.OutputLineCharMax).
		WithSameUnicodeBlock(m.RequireSameUnicodeBlock)

	emittedAny := false
	var deferredOffset, deferredLength int
	haveDeferred := false

	for {
		frag, ok := splitter.Next()
		if !ok {
			break
		}
		if frag.ToBeRefiltered {
			deferredOffset = frag.Start
			deferredLength = len(frag.Text)
			haveDeferred = true
			continue
		}

		precision := After
		if !emittedAny {
			precision = windowPrecision
		}
		position := state.consumedBytes + uint64(regions.inputStartFor(frag.Start))
		coll.Push(frag.Start, len(frag.Text), inputFileID, m, position, precision, frag.CompletesPrevious)
		state.prevPrintedAndMaybeCut = frag.MaybeCut
		emittedAny = true
	}

	if haveDeferred {
		state.leftover = append(state.leftover[:0], coll.Scratch[deferredOffset:deferredOffset+deferredLength]...)
	} else {
		state.leftover = state.leftover[:0]
	}

	state.consumedBytes += uint64(decoderInputStart)
	return coll
}

// assessPrecision implements a reseed-and-compare heuristic: a fresh
// decoder decodes the same first input chunk a window's
// real (possibly stateful-from-a-prior-window) decoder just produced. If
// the bytes agree byte-for-byte, nothing was carried over from a previous
// window's decoder state, and the window's first fragment is tagged Exact;
// any mismatch means the real decoder's output depended on prior state, so
// the position is only a lower bound (Before).
//
// For an encoding whose decoder is inherently stateless (ASCII emulation,
// plain UTF-8 validation), this check always matches regardless of whether
// the first character happens to be single- or multi-byte — which is why
// this does not additionally require a multibyte first character the way a
// literal reading of "no bytes carried over" might suggest: that condition
// only has teeth for genuinely variable-width stateful encodings, and
// excluding it here is what lets an ASCII mission's very first match (whose
// first character is trivially single-byte) still report Exact.
func assessPrecision(fresh codec.Decoder, firstChunk []byte, atEOF bool, actualOut []byte) Precision {
	freshOut := make([]byte, 4*len(firstChunk)+64)
	_, freshNDst, _ := fresh.Decode(freshOut, firstChunk, atEOF)
	if freshNDst != len(actualOut) {
		return Before
	}
	for i := range actualOut {
		if freshOut[i] != actualOut[i] {
			return Before
		}
	}
	return Exact
}
