package compile_test

import (
	"testing"

	"github.com/jslade/pro-bots/compile"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
)

func TestProgramCompilesArithmetic(t *testing.T) {
	blk, err := compile.Program("1 + 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blk.Ops) == 0 {
		t.Fatal("expected a non-empty instruction stream")
	}
}

func TestBreakOutsideWhileIsCompileError(t *testing.T) {
	if _, err := compile.Program("break"); err == nil {
		t.Error("break outside a while loop should fail to compile")
	}
}

func TestNextOutsideWhileIsCompileError(t *testing.T) {
	if _, err := compile.Program("next"); err == nil {
		t.Error("next outside a while loop should fail to compile")
	}
}

func TestBreakNextInsideWhileCompiles(t *testing.T) {
	if _, err := compile.Program("while true { break }"); err != nil {
		t.Errorf("break inside while should compile, got %v", err)
	}
	if _, err := compile.Program("while true { next }"); err != nil {
		t.Errorf("next inside while should compile, got %v", err)
	}
}

func TestEventCallProducesExecutableStream(t *testing.T) {
	ops := compile.EventCall("inc", []value.Value{value.Int(41)})
	blk := &value.Block{Ops: ops}

	builtins := map[string]value.NativeFunc{
		"inc": func(f value.Frame) (value.Value, error) {
			n, _ := f.Arg(0).(value.Int)
			return n + 1, nil
		},
	}

	var result value.Value
	var runErr error
	globals := map[string]value.Value{"inc": value.Int(0)}
	ctx := vm.NewExecutionContext(blk, globals, builtins, "", vm.Callbacks{
		OnResult:    func(v value.Value, _ *vm.ExecutionContext) { result = v },
		OnException: func(err error, _ *vm.ExecutionContext, _ *vm.Frame) { runErr = err },
	})
	for !ctx.Finished() {
		ctx.ExecuteNext()
	}
	if runErr != nil {
		t.Fatalf("unexpected error: %v", runErr)
	}
	if !result.Equal(value.Int(42)) {
		t.Errorf("result = %v, want 42", result)
	}
}
