package value

// Add implements `+`: numeric addition with Int->Float promotion when
// either operand is a Float, and string concatenation when the left
// operand is a Str (the right operand is stringified if it isn't one).
func Add(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Int:
		switch bv := b.(type) {
		case Int:
			return av + bv, nil
		case Float:
			return Float(av) + bv, nil
		}
	case Float:
		switch bv := b.(type) {
		case Int:
			return av + Float(bv), nil
		case Float:
			return av + bv, nil
		}
	case Str:
		return av + Str(b.String()), nil
	}
	return nil, &TypeError{Op: "+", Detail: a.Kind().String() + " + " + b.Kind().String()}
}

// Sub implements `-` for numeric operands, promoting to Float when either
// side is a Float.
func Sub(a, b Value) (Value, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, &TypeError{Op: "-", Detail: a.Kind().String() + " - " + b.Kind().String()}
	}
	ai, aIsInt := a.(Int)
	bi, bIsInt := b.(Int)
	if aIsInt && bIsInt {
		return ai - bi, nil
	}
	return Float(af - bf), nil
}

// Mul implements `*` for numeric operands, promoting to Float when either
// side is a Float.
func Mul(a, b Value) (Value, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, &TypeError{Op: "*", Detail: a.Kind().String() + " * " + b.Kind().String()}
	}
	ai, aIsInt := a.(Int)
	bi, bIsInt := b.(Int)
	if aIsInt && bIsInt {
		return ai * bi, nil
	}
	return Float(af * bf), nil
}

// Div implements `/`. Division always produces a Float, even for two Int
// operands, so that `1 / 2` is 0.5 rather than 0 (spec open question,
// resolved in DESIGN.md).
func Div(a, b Value) (Value, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, &TypeError{Op: "/", Detail: a.Kind().String() + " / " + b.Kind().String()}
	}
	if bf == 0 {
		return nil, &TypeError{Op: "/", Detail: "division by zero"}
	}
	return Float(af / bf), nil
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// CompareEq implements `==`: cross-kind comparisons are false except for
// Int/Float, which compare numerically.
func CompareEq(a, b Value) Value { return Bool(a.Equal(b)) }

// CompareNeq implements `!=`.
func CompareNeq(a, b Value) Value { return Bool(!a.Equal(b)) }

// CompareLt implements `<` for numeric and string operands.
func CompareLt(a, b Value) (Value, error) {
	return compareOrdered(a, b, "<", func(x, y float64) bool { return x < y }, func(x, y string) bool { return x < y })
}

// CompareLte implements `<=`.
func CompareLte(a, b Value) (Value, error) {
	return compareOrdered(a, b, "<=", func(x, y float64) bool { return x <= y }, func(x, y string) bool { return x <= y })
}

// CompareGt implements `>`.
func CompareGt(a, b Value) (Value, error) {
	return compareOrdered(a, b, ">", func(x, y float64) bool { return x > y }, func(x, y string) bool { return x > y })
}

// CompareGte implements `>=`.
func CompareGte(a, b Value) (Value, error) {
	return compareOrdered(a, b, ">=", func(x, y float64) bool { return x >= y }, func(x, y string) bool { return x >= y })
}

func compareOrdered(a, b Value, op string, numCmp func(x, y float64) bool, strCmp func(x, y string) bool) (Value, error) {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return Bool(numCmp(af, bf)), nil
		}
	}
	if as, aok := a.(Str); aok {
		if bs, bok := b.(Str); bok {
			return Bool(strCmp(string(as), string(bs))), nil
		}
	}
	return nil, &TypeError{Op: op, Detail: a.Kind().String() + " " + op + " " + b.Kind().String()}
}

// LogicalAnd combines two already-evaluated operands. `&&` does not
// short-circuit: the compiler always emits both operands before the
// operator.
func LogicalAnd(a, b Value) Value { return Bool(Truthy(a) && Truthy(b)) }

// LogicalOr implements the non-short-circuit combination of `||`.
func LogicalOr(a, b Value) Value { return Bool(Truthy(a) || Truthy(b)) }

// LogicalNot implements unary `!`.
func LogicalNot(a Value) Value { return Bool(!Truthy(a)) }

// Negate implements unary `-`.
func Negate(a Value) (Value, error) {
	switch v := a.(type) {
	case Int:
		return -v, nil
	case Float:
		return -v, nil
	default:
		return nil, &TypeError{Op: "unary -", Detail: a.Kind().String()}
	}
}
