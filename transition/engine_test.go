package transition_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jslade/pro-bots/tick"
	"github.com/jslade/pro-bots/transition"
)

func TestEngineAdvancesAndCompletes(t *testing.T) {
	p := tick.New(1000)
	e := transition.NewEngine(p)

	var mu sync.Mutex
	updates := 0
	completed := false

	tr := &transition.Transition{
		TotalSteps: 3,
		Initial:    0,
		Final:      9,
		StepTicks:  1,
		OnUpdate: func(t *transition.Transition) {
			mu.Lock()
			updates++
			mu.Unlock()
		},
		OnComplete: func(t *transition.Transition) {
			mu.Lock()
			completed = true
			mu.Unlock()
		},
	}
	e.Add(tr)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if updates != 3 {
		t.Errorf("updates = %d, want 3", updates)
	}
	if !completed {
		t.Error("transition should have completed")
	}
	if tr.Current != 9 {
		t.Errorf("Current = %v, want 9 (Final) once complete", tr.Current)
	}
	if e.Active(tr) {
		t.Error("a completed transition should no longer be active")
	}
}

func TestEngineCancelPreventsCompletion(t *testing.T) {
	p := tick.New(1000)
	e := transition.NewEngine(p)

	completed := false
	tr := &transition.Transition{
		TotalSteps: 5,
		Initial:    0,
		Final:      10,
		OnComplete: func(t *transition.Transition) { completed = true },
	}
	e.Add(tr)
	e.Cancel(tr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	if completed {
		t.Error("a canceled transition should never fire OnComplete")
	}
	if e.Active(tr) {
		t.Error("a canceled transition should not be active")
	}
}
