package vm

import "github.com/jslade/pro-bots/value"

// Callbacks are invoked by ExecutionContext at the points the spec names:
// OnResult when the outermost frame completes, OnException on an
// unhandled error or breakpoint, OnBreak at every cooperative yield (used
// by a host to score progress), and OnComplete right after OnResult when
// the outermost frame completes (not when the context ends through
// OnException).
type Callbacks struct {
	OnResult    func(result value.Value, ctx *ExecutionContext)
	OnException func(err error, ctx *ExecutionContext, frame *Frame)
	OnBreak     func(ctx *ExecutionContext)
	OnComplete  func(ctx *ExecutionContext)
}

// ExecutionContext drives one compiled program to completion through a
// chain of frames, one ExecuteNext() slice at a time. At most one context
// per Name is held by a scheduler; anonymous contexts (Name == "") may
// coexist with a named one for the same player.
type ExecutionContext struct {
	Name     string
	Globals  map[string]value.Value
	Builtins map[string]value.NativeFunc

	program *value.Block
	current *Frame
	stopped bool

	TotalOps          int
	OpsSinceLastYield int

	callbacks Callbacks
}

// NewExecutionContext builds a context ready to run program from its
// first instruction. Globals is shared and mutated in place; top-level
// locals alias it, per spec ("top-level locals alias globals").
func NewExecutionContext(program *value.Block, globals map[string]value.Value, builtins map[string]value.NativeFunc, name string, cb Callbacks) *ExecutionContext {
	return &ExecutionContext{
		Name:      name,
		Globals:   globals,
		Builtins:  builtins,
		program:   program,
		callbacks: cb,
	}
}

// Finished reports whether the context has run to completion (as opposed
// to being cooperatively stopped with work remaining).
func (ctx *ExecutionContext) Finished() bool {
	return ctx.stopped && ctx.current == nil
}

// Stopped reports whether the context is currently parked (cooperative
// suspension via a stop=true Breakpoint, or an unhandled exception).
func (ctx *ExecutionContext) Stopped() bool { return ctx.stopped }

// Resume clears a cooperative stop, allowing ExecuteNext to continue from
// the parked frame.
func (ctx *ExecutionContext) Resume() { ctx.stopped = false }

// Park forces the context into the stopped state without touching
// current_frame, used by a host-level suspend (as opposed to a breakpoint
// or normal completion marking it stopped from within ExecuteNext).
func (ctx *ExecutionContext) Park() { ctx.stopped = true }

// ExecuteNext runs one slice of work: it steps the current frame until a
// control signal (EnterScope, ExitScope/normal-completion, or Breakpoint)
// or an error is produced, handles that signal, and returns. It does not
// yield between consecutive pure instructions within the same frame.
func (ctx *ExecutionContext) ExecuteNext() {
	if ctx.stopped {
		return
	}
	if ctx.current == nil {
		globals := ctx.Globals
		ctx.current = NewFrame(ctx.program, nil, globals, globals, ctx.Builtins, nil)
	}

	ctx.OpsSinceLastYield = 0
	frame := ctx.current

	for {
		if frame.ip >= len(frame.ops) {
			var retVal value.Value
			hasReturn := false
			if n := len(frame.stack); n > 0 {
				retVal, hasReturn = frame.stack[n-1], true
			}
			ctx.exitScope(frame, retVal, hasReturn)
			break
		}

		enter, brk, err := step(frame)
		ctx.TotalOps++
		ctx.OpsSinceLastYield++

		if err != nil {
			ctx.fail(err, frame)
			break
		}
		if brk != nil {
			ctx.handleBreakpoint(frame, brk)
			break
		}
		if enter != nil {
			ctx.current = enter
			break
		}
	}

	if ctx.callbacks.OnBreak != nil {
		ctx.callbacks.OnBreak(ctx)
	}
}

func (ctx *ExecutionContext) exitScope(f *Frame, retVal value.Value, hasReturn bool) {
	parent := f.parent
	ctx.current = parent
	if parent != nil {
		if hasReturn {
			parent.push(retVal)
		}
		return
	}
	if ctx.callbacks.OnResult != nil {
		ctx.callbacks.OnResult(retVal, ctx)
	}
	ctx.stopped = true
	if ctx.callbacks.OnComplete != nil {
		ctx.callbacks.OnComplete(ctx)
	}
}

// handleBreakpoint implements the spec's unwinding rule: a stop=true
// breakpoint parks the context where it is; otherwise the parent chain is
// searched for the nearest frame whose next instruction is a Catch
// handling this reason, and execution resumes there with the breakpoint's
// value (if any) pushed onto that frame's stack.
func (ctx *ExecutionContext) handleBreakpoint(f *Frame, brk *value.Breakpoint) {
	if brk.Stop {
		ctx.stopped = true
		ctx.current = f
		return
	}

	for cand := f.parent; cand != nil; cand = cand.parent {
		if cand.ip >= len(cand.ops) || cand.ops[cand.ip].Op != value.Catch {
			continue
		}
		offset, handled := cand.ops[cand.ip].Handlers[brk.Reason]
		if !handled {
			continue
		}
		cand.ip += offset
		if brk.Value != nil {
			cand.push(brk.Value)
		}
		ctx.current = cand
		return
	}

	// A return with no enclosing Catch is only an error if it's still
	// inside a call chain; at the outermost frame it's just how the
	// program's value is produced, same as falling off the end.
	if brk.Reason == "return" && f.parent == nil {
		ctx.exitScope(f, brk.Value, brk.Value != nil)
		return
	}

	ctx.fail(brk, f)
}

func (ctx *ExecutionContext) fail(err error, f *Frame) {
	if ctx.callbacks.OnException != nil {
		ctx.callbacks.OnException(err, ctx, f)
	}
	ctx.current = nil
	ctx.stopped = true
}
