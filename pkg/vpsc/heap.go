package vpsc

import "container/heap"

// constraintHeap is a min-heap of constraints ordered by a caller-supplied
// key function. Block uses one keyed by mergeOrderKey (equalities first,
// then smallest slack) for its boundary in/out structures
// (setUpInConstraints/setUpOutConstraints); the active-tree
// split search uses a plain slice scan instead, since tree size is small
// and the scan only runs once per refine iteration.
//
// No priority-queue library is used anywhere in the example corpus this
// module draws from; every hand-written heap there (e.g. the activity
// heap in a SAT variable order, or the linear-expression heap in gnark)
// reimplements the same sift-up/sift-down algorithm container/heap
// already provides, so this wraps the standard library interface instead
// of hand-rolling it again.
type constraintHeap struct {
	items []*Constraint
	key   func(*Constraint) float64
}

func newConstraintHeap(key func(*Constraint) float64) *constraintHeap {
	return &constraintHeap{key: key}
}

func (h *constraintHeap) Len() int            { return len(h.items) }
func (h *constraintHeap) Less(i, j int) bool  { return h.key(h.items[i]) < h.key(h.items[j]) }
func (h *constraintHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *constraintHeap) Push(x interface{})  { h.items = append(h.items, x.(*Constraint)) }
func (h *constraintHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

func (h *constraintHeap) insert(c *Constraint) {
	heap.Push(h, c)
}

// peekMin returns the minimum-keyed constraint without removing it, or
// nil if the heap is empty.
func (h *constraintHeap) peekMin() *Constraint {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

func (h *constraintHeap) popMin() *Constraint {
	if len(h.items) == 0 {
		return nil
	}
	return heap.Pop(h).(*Constraint)
}
