package scan

import "github.com/coregx/glyphscan/mission"

// record is a pending Finding stored as an (offset, length) pair into the
// collection's own scratch buffer rather than a borrowed slice or a copied
// string — this is the module's chosen representation for FindingCollection
// (see DESIGN.md): it keeps Push allocation-free and lets
// FindingCollection itself decide, at read time via At, whether to hand out
// an owned string (it does — Go's []byte-to-string conversion always
// copies, so callers never see scratch mutate under them).
type record struct {
	offset, length    int
	inputFileID       *uint8
	mission           *mission.Mission
	position          uint64
	precision         Precision
	completesPrevious bool
}

// FindingCollection owns the fixed-size scratch buffer a scan() call
// decodes UTF-8 into, plus the ordered list of findings carved out of it.
// The buffer is never reallocated after NewFindingCollection returns.
type FindingCollection struct {
	Scratch           []byte
	FirstBytePosition uint64
	Overflow          bool
	records           []record
}

// NewFindingCollection allocates scratch once, sized scratchCap bytes.
// scratchCap must be at least 3x the input window size (one input byte
// decodes to at most three UTF-8 bytes) plus a prepended leftover; callers
// (scan.Scan) are responsible for sizing it that way.
func NewFindingCollection(firstBytePosition uint64, scratchCap int) *FindingCollection {
	return &FindingCollection{
		Scratch:           make([]byte, scratchCap),
		FirstBytePosition: firstBytePosition,
	}
}

// Push appends a finding in scan order. offset/length must describe a
// sub-range of c.Scratch (the caller decodes and splits directly into it,
// so it always knows the offset of any fragment it carves out); Push
// stores only that range, not a copy of the bytes.
func (c *FindingCollection) Push(offset, length int, inputFileID *uint8, m *mission.Mission, position uint64, precision Precision, completesPrevious bool) {
	c.records = append(c.records, record{
		offset:            offset,
		length:            length,
		inputFileID:       inputFileID,
		mission:           m,
		position:          position,
		precision:         precision,
		completesPrevious: completesPrevious,
	})
}

// ClearAndMarkIncomplete empties the collection and marks it overflowed.
// Invoked only when the scratch buffer cannot hold a window's decoded
// output: that condition is treated as fatal for the window.
func (c *FindingCollection) ClearAndMarkIncomplete() {
	c.records = c.records[:0]
	c.Overflow = true
}

// Len reports how many findings the collection holds.
func (c *FindingCollection) Len() int { return len(c.records) }

// At materializes the i'th finding, in insertion (scan) order. The returned
// Finding.Text is an owned copy, safe to retain past the collection's
// lifetime.
func (c *FindingCollection) At(i int) Finding {
	r := c.records[i]
	return Finding{
		InputFileID:       r.inputFileID,
		Mission:           r.mission,
		Position:          r.position,
		Precision:         r.precision,
		Text:              string(c.Scratch[r.offset : r.offset+r.length]),
		CompletesPrevious: r.completesPrevious,
	}
}

// Cursor yields the collection's findings in insertion order, one at a
// time; pipeline's k-way merge holds one Cursor per mission's collection.
type Cursor struct {
	c *FindingCollection
	i int
}

// Cursor returns a fresh Cursor positioned before the first finding.
func (c *FindingCollection) Cursor() *Cursor {
	return &Cursor{c: c}
}

// Next returns the next finding and true, or a zero Finding and false once
// the collection is exhausted.
func (cur *Cursor) Next() (Finding, bool) {
	if cur.i >= cur.c.Len() {
		return Finding{}, false
	}
	f := cur.c.At(cur.i)
	cur.i++
	return f, true
}
