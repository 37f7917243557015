package transition

import "github.com/jslade/pro-bots/tick"

// Engine drives a set of in-flight Transitions through the tick
// processor's work queue. Runs entirely on the simulation thread, same as
// the world it animates, so it needs no locking.
type Engine struct {
	proc   *tick.Processor
	active map[*Transition]bool
}

// NewEngine returns an engine that schedules its work onto proc.
func NewEngine(proc *tick.Processor) *Engine {
	return &Engine{proc: proc, active: make(map[*Transition]bool)}
}

// Add registers t and immediately schedules its start work item.
func (e *Engine) Add(t *Transition) {
	e.active[t] = true
	e.proc.AddWork(func() error { return e.start(t) }, 0, 0, false, t)
}

// Cancel removes t from the queue and active set without firing
// OnComplete.
func (e *Engine) Cancel(t *Transition) {
	delete(e.active, t)
	e.proc.CancelWhere(func(tag interface{}) bool { return tag == t })
}

// Active reports whether t is still running.
func (e *Engine) Active(t *Transition) bool { return e.active[t] }

func (e *Engine) start(t *Transition) error {
	if !e.active[t] {
		return nil
	}
	if t.OnStart != nil {
		t.OnStart(t)
	}
	if t.Progress < t.TotalSteps {
		e.scheduleUpdate(t)
	} else {
		e.complete(t)
	}
	return nil
}

func (e *Engine) scheduleUpdate(t *Transition) {
	e.proc.AddWork(func() error { return e.update(t) }, t.stepTicks(), 0, false, t)
}

func (e *Engine) update(t *Transition) error {
	if !e.active[t] {
		return nil
	}
	if t.OnUpdate != nil {
		t.OnUpdate(t)
	}
	t.Progress++
	t.Current = t.Initial + (t.Final-t.Initial)*float64(t.Progress)/float64(t.TotalSteps)
	if t.Progress < t.TotalSteps {
		e.scheduleUpdate(t)
	} else {
		e.complete(t)
	}
	return nil
}

func (e *Engine) complete(t *Transition) {
	delete(e.active, t)
	if t.OnComplete != nil {
		t.OnComplete(t)
	}
}
