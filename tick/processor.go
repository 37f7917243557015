// Package tick implements the real-time loop that drives the simulation:
// a fixed-rate ticker paces a priority work queue keyed on "don't run this
// before tick N", with pause/resume and cooperative shutdown.
package tick

import (
	"container/heap"
	"context"
	"log"
	"sync"
	"time"
)

// Inbound is a message submitted from outside the simulation thread —
// e.g. a console connection goroutine handing off a compiled script — to
// be run on the simulation thread during the next tick's drain phase.
// This, and the outbound direction a host builds on top of it, are the
// only sanctioned cross-thread interfaces (spec.md §5): nothing in sched,
// program, or world ever needs a lock because nothing outside this
// drain ever touches them directly.
type Inbound func()

// inboxSize bounds how many inbound messages may be queued ahead of the
// simulation thread before Enqueue blocks its caller.
const inboxSize = 256

// Processor runs one real-time loop at a nominal rate, advancing an
// integer tick counter, draining an inbound message queue, and draining a
// priority work queue each iteration.
type Processor struct {
	ticksPerSec float64

	mu      sync.Mutex
	queue   *workQueue
	ticks   int64
	nextID  int64
	paused  bool
	stopped bool

	inbox chan Inbound
}

// New returns a processor ticking at ticksPerSec, not yet running.
func New(ticksPerSec float64) *Processor {
	return &Processor{
		ticksPerSec: ticksPerSec,
		queue:       newWorkQueue(),
		inbox:       make(chan Inbound, inboxSize),
	}
}

// Enqueue submits msg to run on the simulation thread during the next
// tick's drain phase (spec.md §4.5 step 4). It blocks until accepted or
// ctx is done, so a caller can't leak a goroutine against a processor
// that has already stopped draining.
func (p *Processor) Enqueue(ctx context.Context, msg Inbound) error {
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ticks reports the number of completed iterations of the main loop.
func (p *Processor) Ticks() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

// AddWork enqueues fn to run no earlier than delayTicks+delaySeconds (the
// latter converted using the processor's rate) from now. tag is opaque
// bookkeeping data CancelWhere's predicate can inspect; pass nil if the
// item will never need to be canceled by tag. A critical item whose
// callback returns an error propagates a stop; non-critical failures are
// logged and swallowed.
func (p *Processor) AddWork(fn WorkFunc, delayTicks int64, delaySeconds float64, critical bool, tag interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := delayTicks + int64(delaySeconds*p.ticksPerSec)
	item := &workItem{
		fn:             fn,
		id:             p.nextID,
		notBeforeTicks: p.ticks + total,
		critical:       critical,
		tag:            tag,
	}
	p.nextID++
	heap.Push(p.queue, item)
}

// CancelWhere removes every queued item whose tag satisfies pred.
func (p *Processor) CancelWhere(pred func(tag interface{}) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := newWorkQueue()
	for _, it := range *p.queue {
		if !pred(it.tag) {
			heap.Push(kept, it)
		}
	}
	p.queue = kept
}

// Pause stops the work queue from draining without stopping the loop;
// the tick counter keeps advancing in real time.
func (p *Processor) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume clears a prior Pause.
func (p *Processor) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
}

// Stop sets stopped=true; outstanding work is discarded without running.
func (p *Processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

// Run drives the main loop until Stop is called or ctx is canceled. It
// must run on the simulation goroutine — every work item, interpreter
// slice, and transition step executes here, never concurrently.
func (p *Processor) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / p.ticksPerSec)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		deadline := time.Now().Add(interval)

		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		p.ticks++
		ticks := p.ticks
		paused := p.paused
		p.mu.Unlock()

		if paused {
			continue
		}

	drainInbox:
		for {
			select {
			case msg := <-p.inbox:
				msg()
			default:
				break drainInbox
			}
			if time.Now().After(deadline) {
				break drainInbox
			}
		}

		for {
			p.mu.Lock()
			head := p.queue.Peek()
			if head == nil || head.notBeforeTicks > ticks || time.Now().After(deadline) {
				p.mu.Unlock()
				break
			}
			item := heap.Pop(p.queue).(*workItem)
			p.mu.Unlock()

			if err := item.fn(); err != nil {
				if item.critical {
					log.Printf("tick: critical work item %d failed: %v", item.id, err)
					p.Stop()
					return
				}
				log.Printf("tick: work item %d failed: %v", item.id, err)
			}
		}
	}
}
