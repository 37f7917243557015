package tick

import "container/heap"

// WorkFunc is a unit of work the processor invokes once its not-before
// tick has arrived. A returned error marks the item's invocation as
// having failed; whether that stops the processor depends on Critical.
type WorkFunc func() error

// workItem is one entry in the priority queue, ordered by
// (notBeforeTicks, id) so items scheduled for the same tick run in the
// order they were added.
type workItem struct {
	fn             WorkFunc
	id             int64
	notBeforeTicks int64
	critical       bool
	tag            interface{}
}

// workQueue is a priority min-heap keyed on (notBeforeTicks, id), mirroring
// a start-time-ordered task queue but generalized to an arbitrary
// tick-count key instead of a wall-clock time.
type workQueue []*workItem

func newWorkQueue() *workQueue {
	wq := make(workQueue, 0)
	heap.Init(&wq)
	return &wq
}

func (wq workQueue) Len() int { return len(wq) }

func (wq workQueue) Less(i, j int) bool {
	if wq[i].notBeforeTicks != wq[j].notBeforeTicks {
		return wq[i].notBeforeTicks < wq[j].notBeforeTicks
	}
	return wq[i].id < wq[j].id
}

func (wq workQueue) Swap(i, j int) { wq[i], wq[j] = wq[j], wq[i] }

func (wq *workQueue) Push(x interface{}) {
	*wq = append(*wq, x.(*workItem))
}

func (wq *workQueue) Pop() interface{} {
	old := *wq
	n := len(old)
	item := old[n-1]
	*wq = old[0 : n-1]
	return item
}

func (wq workQueue) Peek() *workItem {
	if len(wq) == 0 {
		return nil
	}
	return wq[0]
}
