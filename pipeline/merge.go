package pipeline

import (
	"container/heap"

	"github.com/coregx/glyphscan/scan"
)

// mergeItem is one still-open cursor the priority queue orders by its
// current head Finding, per scan.Less.
type mergeItem struct {
	cur  *scan.Cursor
	head scan.Finding
}

// mergeHeap is a container/heap min-heap of mergeItems. No ecosystem
// k-way-merge library is attested anywhere in the retrieval pack for this
// shape, so this uses stdlib's canonical priority-queue idiom (see
// DESIGN.md).
type mergeHeap []*mergeItem

func (h mergeHeap) Len() int           { return len(h) }
func (h mergeHeap) Less(i, j int) bool { return scan.Less(h[i].head, h[j].head) }
func (h mergeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)        { *h = append(*h, x.(*mergeItem)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeSink receives findings in merged order.
type mergeSink interface {
	WriteFinding(f scan.Finding) error
}

// mergeWrite performs a k-way merge over one chunk's collections (one per
// mission, in mission order) and writes each finding, in order, to sink.
func mergeWrite(collections []*scan.FindingCollection, sink mergeSink) error {
	h := make(mergeHeap, 0, len(collections))
	for _, c := range collections {
		if c == nil {
			continue
		}
		cur := c.Cursor()
		if f, ok := cur.Next(); ok {
			h = append(h, &mergeItem{cur: cur, head: f})
		}
	}
	heap.Init(&h)

	for h.Len() > 0 {
		item := heap.Pop(&h).(*mergeItem)
		if err := sink.WriteFinding(item.head); err != nil {
			return err
		}
		if f, ok := item.cur.Next(); ok {
			item.head = f
			heap.Push(&h, item)
		}
	}
	return nil
}
