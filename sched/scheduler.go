// Package sched round-robins a set of vm.ExecutionContext values, giving
// each one ExecuteNext() slice per turn so that no single script can
// monopolize a tick.
package sched

import "github.com/jslade/pro-bots/vm"

// Scheduler holds two lists of contexts: runnable (still have work) and
// stopped (cooperatively parked or finished). Each call to RunOne pops the
// head of runnable, lets it execute one slice, and re-files it based on
// the context's state afterward.
type Scheduler struct {
	runnable []*vm.ExecutionContext
	stopped  []*vm.ExecutionContext
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Add enqueues a context as runnable.
func (s *Scheduler) Add(ctx *vm.ExecutionContext) {
	s.runnable = append(s.runnable, ctx)
}

// Remove drops ctx from whichever list holds it. No-op if ctx isn't
// tracked.
func (s *Scheduler) Remove(ctx *vm.ExecutionContext) {
	s.runnable = removeCtx(s.runnable, ctx)
	s.stopped = removeCtx(s.stopped, ctx)
}

func removeCtx(list []*vm.ExecutionContext, ctx *vm.ExecutionContext) []*vm.ExecutionContext {
	for i, c := range list {
		if c == ctx {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Resume moves a stopped-but-unfinished context back onto the runnable
// list, clearing its cooperative stop.
func (s *Scheduler) Resume(ctx *vm.ExecutionContext) {
	s.stopped = removeCtx(s.stopped, ctx)
	ctx.Resume()
	s.runnable = append(s.runnable, ctx)
}

// Suspend moves ctx to the stopped list and parks it, for a host-level
// suspend (e.g. the programming service's suspend_player) rather than a
// script-cooperative stop.
func (s *Scheduler) Suspend(ctx *vm.ExecutionContext) {
	s.runnable = removeCtx(s.runnable, ctx)
	ctx.Park()
	if !contains(s.stopped, ctx) {
		s.stopped = append(s.stopped, ctx)
	}
}

func contains(list []*vm.ExecutionContext, ctx *vm.ExecutionContext) bool {
	for _, c := range list {
		if c == ctx {
			return true
		}
	}
	return false
}

// RunOne pops the head of the runnable list, executes one slice, and
// re-files it: finished or parked contexts move to stopped, everything
// else rotates to the back of runnable. Reports whether any context ran.
func (s *Scheduler) RunOne() bool {
	if len(s.runnable) == 0 {
		return false
	}
	ctx := s.runnable[0]
	s.runnable = s.runnable[1:]

	ctx.ExecuteNext()

	if ctx.Stopped() {
		s.stopped = append(s.stopped, ctx)
	} else {
		s.runnable = append(s.runnable, ctx)
	}
	return true
}

// RunAllOnce runs one slice for every context currently runnable, in
// order, without letting contexts added or re-filed during this pass run
// again in the same call.
func (s *Scheduler) RunAllOnce() {
	n := len(s.runnable)
	for i := 0; i < n; i++ {
		s.RunOne()
	}
}

// Runnable reports how many contexts still have a turn pending.
func (s *Scheduler) Runnable() int { return len(s.runnable) }

// Stopped reports how many contexts are parked (finished or cooperatively
// suspended).
func (s *Scheduler) Stopped() int { return len(s.stopped) }
