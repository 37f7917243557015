package vm

import "github.com/jslade/pro-bots/value"

// step executes exactly one instruction of f. It reports one of three
// outcomes: a new child frame to enter (enter != nil), a Breakpoint signal
// to unwind (brk != nil), or a genuine runtime error. On the common path
// (none of the above) f.ip has already been advanced and the caller
// should loop.
func step(f *Frame) (enter *Frame, brk *value.Breakpoint, err error) {
	instr := f.ops[f.ip]

	switch instr.Op {
	case value.PushImmediate:
		f.push(instr.Literal)
		f.ip++

	case value.GetValue:
		v, ok := f.resolve(instr.Name)
		if !ok {
			v = value.NullValue
		}
		f.push(v)
		f.ip++

	case value.Property:
		owner, e := f.pop("Property")
		if e != nil {
			return nil, nil, e
		}
		f.push(value.PropertyRef{Owner: owner, Key: value.Str(instr.Name)})
		f.ip++

	case value.GetProperty, value.GetIndex:
		ref, e := f.pop("GetProperty/GetIndex")
		if e != nil {
			return nil, nil, e
		}
		pr, ok := ref.(value.PropertyRef)
		if !ok {
			return nil, nil, &value.TypeError{Op: "get", Detail: "not a reference"}
		}
		f.push(pr.Get())
		f.ip++

	case value.Index:
		key, e := f.pop("Index")
		if e != nil {
			return nil, nil, e
		}
		owner, e := f.pop("Index")
		if e != nil {
			return nil, nil, e
		}
		f.push(value.PropertyRef{Owner: owner, Key: key})
		f.ip++

	case value.BinaryOp:
		right, e := f.pop("BinaryOp")
		if e != nil {
			return nil, nil, e
		}
		left, e := f.pop("BinaryOp")
		if e != nil {
			return nil, nil, e
		}
		result, e := evalBinary(instr.BinOp, left, right)
		if e != nil {
			return nil, nil, e
		}
		f.push(result)
		f.ip++

	case value.UnaryOp:
		operand, e := f.pop("UnaryOp")
		if e != nil {
			return nil, nil, e
		}
		var result value.Value
		switch instr.UnOp {
		case value.OpNeg:
			result, e = value.Negate(operand)
		case value.OpNot:
			result = value.LogicalNot(operand)
		}
		if e != nil {
			return nil, nil, e
		}
		f.push(result)
		f.ip++

	case value.Assignment:
		val, e := f.pop("Assignment")
		if e != nil {
			return nil, nil, e
		}
		target, e := f.pop("Assignment")
		if e != nil {
			return nil, nil, e
		}
		switch t := target.(type) {
		case value.Symbol:
			f.assign(t.Name, val)
		case value.PropertyRef:
			if e := t.Set(val); e != nil {
				return nil, nil, e
			}
		default:
			return nil, nil, &value.TypeError{Op: "Assignment", Detail: "target is not assignable"}
		}
		if _, isBlock := val.(*value.Block); !isBlock {
			f.push(val)
		}
		f.ip++

	case value.Jump:
		if e := f.jump(instr.Target); e != nil {
			return nil, nil, e
		}

	case value.JumpIf:
		cond, e := f.pop("JumpIf")
		if e != nil {
			return nil, nil, e
		}
		if value.Truthy(cond) == instr.Sense {
			if e := f.jump(instr.Target); e != nil {
				return nil, nil, e
			}
		} else {
			f.ip++
		}

	case value.Call:
		child, result, e := f.call(instr.NumArgs, instr.Local, instr.Name)
		if e != nil {
			if bp, isBrk := e.(*value.Breakpoint); isBrk {
				return nil, bp, nil
			}
			return nil, nil, e
		}
		if child == nil {
			if result != nil {
				f.push(result)
			}
			f.ip++
			return nil, nil, nil
		}
		f.ip++
		return child, nil, nil

	case value.MaybeCall:
		n := len(f.stack)
		if n == 0 {
			return nil, nil, &value.StackUnderflowError{Op: "MaybeCall"}
		}
		if _, ok := f.stack[n-1].(*value.Block); !ok {
			f.ip++
			return nil, nil, nil
		}
		child, _, e := f.call(0, false, "")
		if e != nil {
			if bp, isBrk := e.(*value.Breakpoint); isBrk {
				return nil, bp, nil
			}
			return nil, nil, e
		}
		f.ip++
		return child, nil, nil

	case value.Catch:
		f.ip++

	case value.Break:
		return nil, &value.Breakpoint{Reason: "break"}, nil

	case value.Next:
		return nil, &value.Breakpoint{Reason: "next"}, nil

	case value.Return:
		var v value.Value
		if instr.WithValue {
			var e error
			v, e = f.pop("Return")
			if e != nil {
				return nil, nil, e
			}
		}
		return nil, &value.Breakpoint{Reason: "return", Value: v}, nil

	case value.Native:
		args := make([]value.Value, instr.NumArgs)
		for i := instr.NumArgs - 1; i >= 0; i-- {
			v, e := f.pop("Native")
			if e != nil {
				return nil, nil, e
			}
			args[i] = v
		}
		fn, ok := f.builtins[instr.Name]
		if !ok {
			return nil, nil, &value.NativeError{Name: instr.Name, Err: errUnregistered}
		}
		result, e := fn(&nativeFrame{args: args, owner: f})
		if bp, isBrk := e.(*value.Breakpoint); isBrk {
			return nil, bp, nil
		}
		if e != nil {
			return nil, nil, &value.NativeError{Name: instr.Name, Err: e}
		}
		if result != nil {
			f.push(result)
		}
		f.ip++

	case value.MakeList:
		elems := make([]value.Value, instr.NumArgs)
		for i := instr.NumArgs - 1; i >= 0; i-- {
			v, e := f.pop("MakeList")
			if e != nil {
				return nil, nil, e
			}
			elems[i] = v
		}
		f.push(value.NewList(elems))
		f.ip++

	default:
		return nil, nil, &value.TypeError{Op: "dispatch", Detail: "unknown instruction"}
	}

	return nil, nil, nil
}

var errUnregistered = unregisteredNativeErr{}

type unregisteredNativeErr struct{}

func (unregisteredNativeErr) Error() string { return "native not registered" }

// jump applies a relative offset and range-checks the result; landing
// exactly at len(ops) is valid (normal completion on the next yield
// check), anything else out of [0, len(ops)] is a compile/runtime bug.
func (f *Frame) jump(offset int) error {
	target := f.ip + offset
	if target < 0 || target > len(f.ops) {
		return &value.BadJumpError{Target: target, Len: len(f.ops)}
	}
	f.ip = target
	return nil
}

// call pops n argument values (restoring source order) and the callee,
// then either builds the child frame Call raises as EnterScope (callee is
// a Block), or — when callee isn't a Block but the call site names a bare
// identifier — invokes the builtin registered under that name directly,
// returning its result with no child frame. Extra positional block
// parameters beyond the block's named parameters are bound under
// synthesized names arg1, arg2, ....
func (f *Frame) call(n int, local bool, fallbackName string) (child *Frame, result value.Value, err error) {
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, e := f.pop("Call")
		if e != nil {
			return nil, nil, e
		}
		args[i] = v
	}
	calleeVal, e := f.pop("Call")
	if e != nil {
		return nil, nil, e
	}

	blk, ok := calleeVal.(*value.Block)
	if !ok {
		if fallbackName == "" {
			return nil, nil, &value.TypeError{Op: "Call", Detail: "callee is not a block"}
		}
		fn, ok := f.builtins[fallbackName]
		if !ok {
			return nil, nil, &value.NativeError{Name: fallbackName, Err: errUnregistered}
		}
		res, e := fn(&nativeFrame{args: args, owner: f})
		if bp, isBrk := e.(*value.Breakpoint); isBrk {
			return nil, nil, bp
		}
		if e != nil {
			return nil, nil, &value.NativeError{Name: fallbackName, Err: e}
		}
		return nil, res, nil
	}

	argNames := blk.ArgNames
	if len(args) > len(argNames) {
		names := append([]string(nil), argNames...)
		for i := len(argNames); i < len(args); i++ {
			names = append(names, syntheticArgName(i-len(argNames)+1))
		}
		argNames = names
	}

	locals := f.locals
	if !local {
		locals = make(map[string]value.Value)
	}
	child = NewFrame(blk, args, locals, f.globals, f.builtins, f)
	child.argNames = argNames
	return child, nil, nil
}

func syntheticArgName(n int) string {
	const digits = "0123456789"
	if n < 10 {
		return "arg" + string(digits[n])
	}
	// Rare path (>9 positional args): build the decimal digits directly to
	// avoid pulling in strconv for one call site.
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return "arg" + string(buf)
}

// nativeFrame is the narrow value.Frame view handed to a Native
// instruction's callback: its own popped arguments, plus read/write
// access to the calling frame's globals.
type nativeFrame struct {
	args  []value.Value
	owner *Frame
}

func (n *nativeFrame) Arg(i int) value.Value {
	if i < 0 || i >= len(n.args) {
		return value.NullValue
	}
	return n.args[i]
}

func (n *nativeFrame) NumArgs() int { return len(n.args) }

func (n *nativeFrame) Global(name string) (value.Value, bool) { return n.owner.Global(name) }

func (n *nativeFrame) SetGlobal(name string, v value.Value) { n.owner.SetGlobal(name, v) }
