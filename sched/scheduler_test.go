package sched_test

import (
	"testing"

	"github.com/jslade/pro-bots/sched"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
)

func newCtx() *vm.ExecutionContext {
	blk := &value.Block{Ops: []value.Instruction{
		{Op: value.PushImmediate, Literal: value.Int(1)},
	}}
	return vm.NewExecutionContext(blk, make(map[string]value.Value), nil, "", vm.Callbacks{})
}

func TestRunOneAdvancesAndRequeues(t *testing.T) {
	s := sched.New()
	inner := &value.Block{Ops: []value.Instruction{
		{Op: value.PushImmediate, Literal: value.Int(1)},
	}}
	blk := &value.Block{Ops: []value.Instruction{
		{Op: value.PushImmediate, Literal: inner},
		{Op: value.Call, NumArgs: 0},
	}}
	ctx := vm.NewExecutionContext(blk, make(map[string]value.Value), nil, "", vm.Callbacks{})
	s.Add(ctx)
	if s.Runnable() != 1 {
		t.Fatalf("Runnable() = %d, want 1", s.Runnable())
	}
	if !s.RunOne() {
		t.Fatal("RunOne() should report it ran something")
	}
	if ctx.Finished() {
		t.Fatal("a slice that ends on entering a called block does not finish the context")
	}
}

func TestRunOneStopsOnCompletion(t *testing.T) {
	s := sched.New()
	ctx := newCtx()
	s.Add(ctx)
	s.RunOne()
	if s.Runnable() != 0 {
		t.Fatalf("Runnable() = %d, want 0 once the context finishes", s.Runnable())
	}
	if s.Stopped() != 1 {
		t.Fatalf("Stopped() = %d, want 1", s.Stopped())
	}
}

func TestSuspendAndResume(t *testing.T) {
	s := sched.New()
	blk := &value.Block{Ops: []value.Instruction{
		{Op: value.PushImmediate, Literal: value.Int(1)},
		{Op: value.PushImmediate, Literal: value.Int(2)},
	}}
	ctx := vm.NewExecutionContext(blk, make(map[string]value.Value), nil, "", vm.Callbacks{})
	s.Add(ctx)

	s.Suspend(ctx)
	if s.Runnable() != 0 || s.Stopped() != 1 {
		t.Fatalf("after Suspend: runnable=%d stopped=%d, want 0,1", s.Runnable(), s.Stopped())
	}
	if !ctx.Stopped() {
		t.Error("Suspend should park the context")
	}

	s.Resume(ctx)
	if s.Runnable() != 1 || s.Stopped() != 0 {
		t.Fatalf("after Resume: runnable=%d stopped=%d, want 1,0", s.Runnable(), s.Stopped())
	}
	if ctx.Stopped() {
		t.Error("Resume should clear the parked flag")
	}
}

func TestRemove(t *testing.T) {
	s := sched.New()
	ctx := newCtx()
	s.Add(ctx)
	s.Remove(ctx)
	if s.Runnable() != 0 {
		t.Errorf("Runnable() = %d, want 0 after Remove", s.Runnable())
	}
}
