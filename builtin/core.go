package builtin

import "github.com/jslade/pro-bots/value"

// CoreBuiltins returns the language-level natives available in every
// context — robot builtins and the conformance harness alike — as opposed
// to the domain-specific robot natives in robot.go. object() and list()
// are the only way a script constructs an Object/List value from scratch;
// block_name() exposes the name the compiler attaches to a block at the
// assignment that first bound it (value/block.go), so a script can observe
// its own naming.
func CoreBuiltins() map[string]value.NativeFunc {
	r := NewRegistry()
	r.Register("object", nativeObject())
	r.Register("list", nativeList())
	r.Register("block_name", nativeBlockName())
	return r.Snapshot()
}

func nativeObject() value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		return value.NewObject(), nil
	}
}

func nativeList() value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		n := f.NumArgs()
		elems := make([]value.Value, n)
		for i := 0; i < n; i++ {
			elems[i] = f.Arg(i)
		}
		return value.NewList(elems), nil
	}
}

func nativeBlockName() value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		blk, ok := f.Arg(0).(*value.Block)
		if !ok {
			return nil, &value.TypeError{Op: "block_name", Detail: "argument must be a block"}
		}
		if blk.Name == "" {
			return value.NullValue, nil
		}
		return value.Str(blk.Name), nil
	}
}
