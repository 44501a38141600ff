package calq

import "container/heap"

// eventHeap implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (eq eventHeap) Len() int           { return len(eq) }
func (eq eventHeap) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq eventHeap) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventHeap) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *eventHeap) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// HeapQueue is a plain binary-heap event queue with the same Push/Pop
// surface as Queue but no bucketing and nothing to tune. It is the
// reference implementation: rebuild-transparency tests compare the calendar
// queue's pop sequence against it, and the bench harness runs it as the
// baseline engine.
type HeapQueue struct {
	events eventHeap
}

// NewHeapQueue returns an empty heap queue.
func NewHeapQueue() *HeapQueue {
	return &HeapQueue{events: make(eventHeap, 0)}
}

// Push schedules ev. Unlike Queue, no causality check applies; the heap
// does not track a time floor.
func (hq *HeapQueue) Push(ev Event) {
	heap.Push(&hq.events, ev)
}

// Pop removes and returns the earliest pending event; the second return is
// false when empty. Equal-time events pop in heap order, which is
// time-equivalent to the calendar queue's order but not identity-stable.
func (hq *HeapQueue) Pop() (Event, bool) {
	if len(hq.events) == 0 {
		return nil, false
	}
	return heap.Pop(&hq.events).(Event), true
}

// Len returns the number of pending events.
func (hq *HeapQueue) Len() int { return len(hq.events) }
