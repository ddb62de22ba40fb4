package codec

// Status classifies why a single Decode call stopped, mirroring the
// decoder contract scan.Scan drives: the target is always UTF-8, and each
// call reports exactly one of these three outcomes.
type Status int

const (
	// InputEmpty means every available source byte was consumed (or, with
	// atEOF false, the remaining bytes are a valid-so-far but incomplete
	// trailing sequence that needs more input to resolve). The caller
	// should feed more source bytes (or, if this was the last window of
	// the last source, rerun once with atEOF=true to flush).
	InputEmpty Status = iota

	// OutputFull means dst had no room for the next decoded character.
	// scan.Scan treats this as fatal for the current window: the
	// FindingCollection is cleared and marked incomplete.
	OutputFull

	// Malformed means the decoder encountered source bytes that cannot be
	// part of any valid character in its encoding. The decoder has already
	// advanced past the bad bytes (nSrc includes them); scanning resumes
	// on the next call. Fragments decoded in the same window after this
	// point are tagged scan.After.
	Malformed
)

func (s Status) String() string {
	switch s {
	case InputEmpty:
		return "InputEmpty"
	case OutputFull:
		return "OutputFull"
	case Malformed:
		return "Malformed"
	default:
		return "Status(?)"
	}
}
