package vm

import "github.com/jslade/pro-bots/value"

// evalBinary dispatches a BinaryOp instruction to the value package's
// operator helpers. Logical operators are not short-circuited here: the
// compiler always emits both operands before the operator (spec emission
// rule "Arithmetic, comparison, logical: left, right, operator").
func evalBinary(op value.BinaryOperator, left, right value.Value) (value.Value, error) {
	switch op {
	case value.OpAdd:
		return value.Add(left, right)
	case value.OpSub:
		return value.Sub(left, right)
	case value.OpMul:
		return value.Mul(left, right)
	case value.OpDiv:
		return value.Div(left, right)
	case value.OpEq:
		return value.CompareEq(left, right), nil
	case value.OpNeq:
		return value.CompareNeq(left, right), nil
	case value.OpLt:
		return value.CompareLt(left, right)
	case value.OpLte:
		return value.CompareLte(left, right)
	case value.OpGt:
		return value.CompareGt(left, right)
	case value.OpGte:
		return value.CompareGte(left, right)
	case value.OpAnd:
		return value.LogicalAnd(left, right), nil
	case value.OpOr:
		return value.LogicalOr(left, right), nil
	default:
		return nil, &value.TypeError{Op: "BinaryOp", Detail: "unknown operator"}
	}
}
