// Package program implements the programming service: it binds players to
// execution contexts, owns each player's globals and built-ins, and
// translates external events into synthetic call instruction sequences.
package program

import (
	"github.com/jslade/pro-bots/compile"
	"github.com/jslade/pro-bots/sched"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
)

// BuiltinsFactory builds the read-only native map for one player,
// capturing player-specific callbacks (e.g. a bound world.Robot handle).
type BuiltinsFactory func(player string) map[string]value.NativeFunc

// Service binds players to contexts on a Scheduler, enforcing the
// single-named-context-per-player invariant.
type Service struct {
	scheduler *sched.Scheduler
	builtins  BuiltinsFactory

	globals     map[string]map[string]value.Value
	builtinsMap map[string]map[string]value.NativeFunc
	named       map[string]*vm.ExecutionContext
}

// NewService returns a service that schedules onto sch and builds each
// player's native map via builtins.
func NewService(sch *sched.Scheduler, builtins BuiltinsFactory) *Service {
	return &Service{
		scheduler:   sch,
		builtins:    builtins,
		globals:     make(map[string]map[string]value.Value),
		builtinsMap: make(map[string]map[string]value.NativeFunc),
		named:       make(map[string]*vm.ExecutionContext),
	}
}

// Compile delegates to the compiler package.
func (s *Service) Compile(source string) (*value.Block, error) {
	return compile.Program(source)
}

func (s *Service) globalsFor(player string, replace bool) map[string]value.Value {
	if replace {
		s.globals[player] = make(map[string]value.Value)
	}
	g, ok := s.globals[player]
	if !ok {
		g = make(map[string]value.Value)
		s.globals[player] = g
	}
	return g
}

func (s *Service) builtinsFor(player string) map[string]value.NativeFunc {
	b, ok := s.builtinsMap[player]
	if !ok {
		if s.builtins != nil {
			b = s.builtins(player)
		} else {
			b = make(map[string]value.NativeFunc)
		}
		s.builtinsMap[player] = b
	}
	return b
}

// Execute constructs a context for blk, installs player's globals
// (clearing them first iff replaceGlobals) and built-ins, adds it to the
// scheduler, and — if replaceProgram — evicts any prior named context for
// player and registers this one under the player's name.
func (s *Service) Execute(blk *value.Block, player string, replaceProgram, replaceGlobals bool, cb vm.Callbacks) *vm.ExecutionContext {
	globals := s.globalsFor(player, replaceGlobals)
	builtins := s.builtinsFor(player)

	name := ""
	if replaceProgram {
		name = player
	}
	ctx := vm.NewExecutionContext(blk, globals, builtins, name, cb)

	if replaceProgram {
		if prior, ok := s.named[player]; ok {
			s.scheduler.Remove(prior)
		}
		s.named[player] = ctx
	}
	s.scheduler.Add(ctx)
	return ctx
}

// EmitEvent compiles and schedules the synthetic call `name(args...)`
// against player's existing globals/built-ins as an anonymous context. If
// player's named context is currently running (present and not stopped),
// the event is dropped silently rather than risking re-entrant script
// corruption.
func (s *Service) EmitEvent(name, player string, args []value.Value, cb vm.Callbacks) {
	if ctx, ok := s.named[player]; ok && !ctx.Stopped() {
		return
	}
	ops := compile.EventCall(name, args)
	blk := &value.Block{Ops: ops}
	globals := s.globalsFor(player, false)
	builtins := s.builtinsFor(player)
	ctx := vm.NewExecutionContext(blk, globals, builtins, "", cb)
	s.scheduler.Add(ctx)
}

// SuspendPlayer parks player's named context.
func (s *Service) SuspendPlayer(player string) {
	if ctx, ok := s.named[player]; ok {
		s.scheduler.Suspend(ctx)
	}
}

// ResumePlayer resumes player's named context.
func (s *Service) ResumePlayer(player string) {
	if ctx, ok := s.named[player]; ok {
		s.scheduler.Resume(ctx)
	}
}

// HasCallable reports whether player's globals currently bind name to a
// Block.
func (s *Service) HasCallable(player, name string) bool {
	g, ok := s.globals[player]
	if !ok {
		return false
	}
	v, ok := g[name]
	if !ok {
		return false
	}
	_, isBlock := v.(*value.Block)
	return isBlock
}
