package conformance

import (
	"fmt"

	"github.com/jslade/pro-bots/builtin"
	"github.com/jslade/pro-bots/compile"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
)

// Run compiles and executes tc's source to completion and reports whether
// the observed outcome (final result or error) matches tc.Expect.
func Run(tc TestCase) error {
	blk, compileErr := compile.Program(tc.Source)
	if compileErr != nil {
		if tc.Expect.Error != "" {
			return nil
		}
		return fmt.Errorf("unexpected compile error: %v", compileErr)
	}

	var result value.Value
	var runErr error
	ctx := vm.NewExecutionContext(blk, make(map[string]value.Value), conformanceBuiltins(), "", vm.Callbacks{
		OnResult: func(v value.Value, _ *vm.ExecutionContext) { result = v },
		OnException: func(err error, _ *vm.ExecutionContext, _ *vm.Frame) {
			runErr = err
		},
	})

	for !ctx.Finished() {
		ctx.ExecuteNext()
	}

	if tc.Expect.Error != "" {
		if runErr == nil {
			return fmt.Errorf("expected error %q, got result %v", tc.Expect.Error, result)
		}
		return nil
	}
	if runErr != nil {
		return fmt.Errorf("unexpected runtime error: %v", runErr)
	}

	if !matches(result, tc.Expect.Value) {
		return fmt.Errorf("expected %#v, got %v", tc.Expect.Value, result)
	}
	return nil
}

// conformanceBuiltins provides the native surface the fixtures exercise:
// the core language natives (object/list/block_name, shared with the
// game's own robot builtins) plus inc, a minimal native of the fixtures'
// own (spec.md §8's "native inc that returns arg1 + 1" scenario).
func conformanceBuiltins() map[string]value.NativeFunc {
	out := builtin.CoreBuiltins()
	out["inc"] = func(f value.Frame) (value.Value, error) {
		n, ok := f.Arg(0).(value.Int)
		if !ok {
			return nil, &value.TypeError{Op: "inc", Detail: "argument must be an int"}
		}
		return n + 1, nil
	}
	return out
}

func matches(got value.Value, want interface{}) bool {
	return got.Equal(toValue(want))
}

func toValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.NullValue
	case bool:
		return value.Bool(t)
	case int:
		return value.Int(t)
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case string:
		return value.Str(t)
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = toValue(e)
		}
		return value.NewList(elems)
	default:
		return value.NullValue
	}
}
