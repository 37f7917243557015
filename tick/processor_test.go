package tick_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jslade/pro-bots/tick"
)

func runFor(p *tick.Processor, d time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	p.Run(ctx)
}

func TestAddWorkRunsInTickOrder(t *testing.T) {
	p := tick.New(1000)
	var mu sync.Mutex
	var order []int

	record := func(n int) tick.WorkFunc {
		return func() error {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			return nil
		}
	}

	p.AddWork(record(3), 3, 0, false, nil)
	p.AddWork(record(1), 1, 0, false, nil)
	p.AddWork(record(2), 2, 0, false, nil)

	runFor(p, 50*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 {
		t.Fatalf("order = %v, want 3 entries", order)
	}
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestCancelWhereRemovesTaggedWork(t *testing.T) {
	p := tick.New(1000)
	var ran bool
	var mu sync.Mutex

	type tag struct{ id int }
	p.AddWork(func() error {
		mu.Lock()
		ran = true
		mu.Unlock()
		return nil
	}, 1, 0, false, tag{id: 7})

	p.CancelWhere(func(tg interface{}) bool {
		t, ok := tg.(tag)
		return ok && t.id == 7
	})

	runFor(p, 30*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Error("canceled work item should never run")
	}
}

func TestPauseStopsQueueButKeepsTicking(t *testing.T) {
	p := tick.New(1000)
	p.Pause()

	var ran bool
	p.AddWork(func() error { ran = true; return nil }, 0, 0, false, nil)

	runFor(p, 30*time.Millisecond)

	if ran {
		t.Error("work should not drain while paused")
	}
	if p.Ticks() == 0 {
		t.Error("the tick counter should keep advancing while paused")
	}
}

func TestCriticalFailureStopsProcessor(t *testing.T) {
	p := tick.New(1000)
	p.AddWork(func() error { return errBoom }, 0, 0, true, nil)

	var ranAfter bool
	p.AddWork(func() error { ranAfter = true; return nil }, 2, 0, false, nil)

	runFor(p, 50*time.Millisecond)

	if ranAfter {
		t.Error("work queued after a critical failure should not run once the processor stops")
	}
}

func TestEnqueueRunsOnSimulationThreadDuringDrain(t *testing.T) {
	p := tick.New(1000)
	var mu sync.Mutex
	var ran bool

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	go func() {
		_ = p.Enqueue(ctx, func() {
			mu.Lock()
			ran = true
			mu.Unlock()
		})
	}()

	p.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if !ran {
		t.Error("an enqueued message should run during a later tick's drain phase")
	}
}

func TestEnqueueOrderingPreservedAcrossMessages(t *testing.T) {
	p := tick.New(1000)
	var mu sync.Mutex
	var order []int

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for i := 1; i <= 3; i++ {
		n := i
		if err := p.Enqueue(ctx, func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}); err != nil {
			t.Fatalf("enqueue %d: %v", n, err)
		}
	}

	p.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestEnqueueReturnsErrorWhenContextDone(t *testing.T) {
	p := tick.New(1)

	// Fill the inbox (never drained — the processor isn't running) so a
	// further send can't complete immediately, forcing Enqueue to observe
	// an already-canceled context instead of racing a successful send.
	bg := context.Background()
	for i := 0; i < 256; i++ {
		if err := p.Enqueue(bg, func() {}); err != nil {
			t.Fatalf("filling the inbox should not fail: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Enqueue(ctx, func() {}); err == nil {
		t.Error("Enqueue against a full inbox and a canceled context should report an error")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

var errBoom = testError("boom")
