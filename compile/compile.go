// Package compile walks the lang package's AST and emits the flat
// value.Instruction stream the interpreter executes. It is a tree-walking
// emitter, not a bytecode assembler: jump and catch offsets are
// instruction-index-relative (Jump(k) means "advance ip by k from the
// Jump instruction's own index"), computed by back-patching placeholders
// once the target position is known.
package compile

import (
	"fmt"

	"github.com/jslade/pro-bots/lang"
	"github.com/jslade/pro-bots/value"
)

// CompileError reports a compilation failure. Program leaves Line at 0: a
// parse failure carries its source line only inside Message, and the
// compiler's own errors (break/next outside a while, unsupported nodes)
// carry no position.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at line %d: %s", e.Line, e.Message)
}

// Program compiles source text into the outermost callable Block (no
// parameters, whose body is the script's top-level statement list).
func Program(source string) (*value.Block, error) {
	stmts, err := lang.ParseProgram(source)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	c := &compiler{}
	if err := c.compileStmts(stmts); err != nil {
		return nil, err
	}
	return &value.Block{Ops: c.ops}, nil
}

// EventCall builds the synthetic instruction stream for `name(args...)`
// with already-evaluated argument values, used by the programming service
// to dispatch external events into a running script's globals.
func EventCall(name string, args []value.Value) []value.Instruction {
	ops := []value.Instruction{{Op: value.GetValue, Name: name}}
	for _, a := range args {
		ops = append(ops, value.Instruction{Op: value.PushImmediate, Literal: a})
	}
	ops = append(ops, value.Instruction{Op: value.Call, NumArgs: len(args), Name: name})
	ops = append(ops, value.Instruction{Op: value.Catch, NumOps: 1, Handlers: map[string]int{"return": 1}})
	return ops
}

type compiler struct {
	ops        []value.Instruction
	whileDepth int
}

func (c *compiler) emit(i value.Instruction) int {
	c.ops = append(c.ops, i)
	return len(c.ops) - 1
}

func (c *compiler) compileStmts(stmts []lang.Node) error {
	for _, s := range stmts {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileStmt(n lang.Node) error {
	switch s := n.(type) {
	case *lang.IfStmt:
		return c.compileIf(s)
	case *lang.WhileStmt:
		return c.compileWhile(s)
	case lang.BreakStmt:
		if c.whileDepth == 0 {
			return &CompileError{Message: "break outside while"}
		}
		c.emit(value.Instruction{Op: value.Break})
		return nil
	case lang.NextStmt:
		if c.whileDepth == 0 {
			return &CompileError{Message: "next outside while"}
		}
		c.emit(value.Instruction{Op: value.Next})
		return nil
	case lang.ReturnStmt:
		if s.Value != nil {
			if err := c.compileExpr(s.Value, false); err != nil {
				return err
			}
		}
		c.emit(value.Instruction{Op: value.Return, WithValue: s.Value != nil})
		return nil
	default:
		return c.compileExpr(n, false)
	}
}

// compileIf implements the spec's if/else-if/else emission: condition,
// conditional jump to the else branch, the then-body wrapped as a Block
// and invoked with Call(0, local=true), an unconditional jump past any
// else branch, then the else branch (recursively, for else-if) emitted
// the same way. Back-patching against instruction-index offsets makes
// the "adjust by one instruction when there is no else" case the source
// describes unnecessary: with no Jump emitted, the natural post-Call
// position already is the correct JumpIf target.
func (c *compiler) compileIf(s *lang.IfStmt) error {
	if err := c.compileExpr(s.Cond, false); err != nil {
		return err
	}
	jumpIfIdx := c.emit(value.Instruction{Op: value.JumpIf, Sense: false})

	if err := c.compileInlineCall(s.Then, nil, c.whileDepth); err != nil {
		return err
	}

	hasElse := s.ElseIf != nil || s.ElseBody != nil
	var jumpIdx int = -1
	if hasElse {
		jumpIdx = c.emit(value.Instruction{Op: value.Jump})
	}

	elseStart := len(c.ops)
	c.ops[jumpIfIdx].Target = elseStart - jumpIfIdx

	if hasElse {
		var err error
		if s.ElseIf != nil {
			err = c.compileIf(s.ElseIf)
		} else {
			err = c.compileInlineCall(s.ElseBody, nil, c.whileDepth)
		}
		if err != nil {
			return err
		}
		pastElse := len(c.ops)
		c.ops[jumpIdx].Target = pastElse - jumpIdx
	}
	return nil
}

// compileWhile implements `while E { B }`: condition, conditional jump
// past the loop, the body wrapped as a Block invoked with
// Call(0, local=true), a Catch handling "break" (skip the jump-back,
// land past the loop) and "next" (land exactly on the jump-back, which
// re-tests the condition), then the backward Jump to the condition.
func (c *compiler) compileWhile(s *lang.WhileStmt) error {
	condStart := len(c.ops)
	if err := c.compileExpr(s.Cond, false); err != nil {
		return err
	}
	jumpIfIdx := c.emit(value.Instruction{Op: value.JumpIf, Sense: false})

	if err := c.compileInlineCall(s.Body, nil, c.whileDepth+1); err != nil {
		return err
	}

	catchIdx := c.emit(value.Instruction{Op: value.Catch, Handlers: map[string]int{"break": 2, "next": 1}})
	_ = catchIdx
	jumpBackIdx := c.emit(value.Instruction{Op: value.Jump})

	pastLoop := len(c.ops)
	c.ops[jumpIfIdx].Target = pastLoop - jumpIfIdx
	c.ops[jumpBackIdx].Target = condStart - jumpBackIdx
	return nil
}

// compileInlineCall compiles stmts into a detached Block, pushes it as an
// immediate, and invokes it with Call(0, local=true) — the pattern if/
// while bodies use so that break/next/return raised inside them unwind
// as Breakpoints rather than as ordinary frame returns.
func (c *compiler) compileInlineCall(stmts []lang.Node, argNames []string, whileDepth int) error {
	blk, err := compileBlock(stmts, argNames, whileDepth)
	if err != nil {
		return err
	}
	c.emit(value.Instruction{Op: value.PushImmediate, Literal: blk})
	c.emit(value.Instruction{Op: value.Call, NumArgs: 0, Local: true})
	return nil
}

func compileBlock(stmts []lang.Node, argNames []string, whileDepth int) (*value.Block, error) {
	sub := &compiler{whileDepth: whileDepth}
	if err := sub.compileStmts(stmts); err != nil {
		return nil, err
	}
	return &value.Block{ArgNames: argNames, Ops: sub.ops}, nil
}

var binOps = map[lang.TokenType]value.BinaryOperator{
	lang.TOKEN_PLUS:  value.OpAdd,
	lang.TOKEN_MINUS: value.OpSub,
	lang.TOKEN_STAR:  value.OpMul,
	lang.TOKEN_SLASH: value.OpDiv,
	lang.TOKEN_EQ:    value.OpEq,
	lang.TOKEN_NE:    value.OpNeq,
	lang.TOKEN_LT:    value.OpLt,
	lang.TOKEN_LE:    value.OpLte,
	lang.TOKEN_GT:    value.OpGt,
	lang.TOKEN_GE:    value.OpGte,
	lang.TOKEN_AND:   value.OpAnd,
	lang.TOKEN_OR:    value.OpOr,
}

func (c *compiler) compileExpr(n lang.Node, assignable bool) error {
	switch e := n.(type) {
	case lang.IntLiteral:
		c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.Int(e.Value)})
		return nil
	case lang.FloatLiteral:
		c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.Float(e.Value)})
		return nil
	case lang.StringLiteral:
		c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.Str(e.Value)})
		return nil
	case lang.BoolLiteral:
		c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.Bool(e.Value)})
		return nil
	case lang.NullLiteral:
		c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.NullValue})
		return nil
	case lang.ListLiteral:
		return c.compileListLiteral(e)
	case lang.Identifier:
		if assignable {
			c.emit(value.Instruction{Op: value.PushImmediate, Literal: value.Symbol{Name: e.Name}})
		} else {
			c.emit(value.Instruction{Op: value.GetValue, Name: e.Name})
		}
		return nil
	case lang.PropertyAccess:
		if err := c.compileExpr(e.Owner, false); err != nil {
			return err
		}
		c.emit(value.Instruction{Op: value.Property, Name: e.Name})
		if !assignable {
			c.emit(value.Instruction{Op: value.GetProperty})
		}
		return nil
	case lang.IndexAccess:
		if err := c.compileExpr(e.Owner, false); err != nil {
			return err
		}
		if err := c.compileExpr(e.Index, false); err != nil {
			return err
		}
		c.emit(value.Instruction{Op: value.Index})
		if !assignable {
			c.emit(value.Instruction{Op: value.GetIndex})
		}
		return nil
	case lang.BlockLiteral:
		_, err := c.compileBlockLiteral(e)
		return err
	case lang.Call:
		return c.compileCall(e)
	case lang.Assignment:
		return c.compileAssignment(e)
	case lang.BinaryExpr:
		return c.compileBinary(e)
	case lang.UnaryExpr:
		return c.compileUnary(e)
	default:
		return &CompileError{Message: fmt.Sprintf("unsupported expression node %T", n)}
	}
}

func (c *compiler) compileListLiteral(e lang.ListLiteral) error {
	for _, el := range e.Elements {
		if err := c.compileExpr(el, false); err != nil {
			return err
		}
	}
	c.emit(value.Instruction{Op: value.MakeList, NumArgs: len(e.Elements)})
	return nil
}

// compileBlockLiteral compiles a detached callable: break/next don't cross
// into it from an enclosing while, so it starts at whileDepth 0.
func (c *compiler) compileBlockLiteral(e lang.BlockLiteral) (*value.Block, error) {
	blk, err := compileBlock(e.Body, e.ArgNames, 0)
	if err != nil {
		return nil, err
	}
	c.emit(value.Instruction{Op: value.PushImmediate, Literal: blk})
	return blk, nil
}

// compileCall emits `f(args...)`. When the callee is a bare identifier,
// the Call instruction also carries that name: at runtime, if the
// resolved value isn't a Block (the identifier isn't bound to a script
// function), the interpreter falls back to invoking a builtin registered
// under that name instead.
func (c *compiler) compileCall(e lang.Call) error {
	if err := c.compileExpr(e.Callee, false); err != nil {
		return err
	}
	for _, a := range e.Args {
		if err := c.compileExpr(a, false); err != nil {
			return err
		}
	}
	name := ""
	if id, ok := e.Callee.(lang.Identifier); ok {
		name = id.Name
	}
	c.emit(value.Instruction{Op: value.Call, NumArgs: len(e.Args), Name: name})
	c.emit(value.Instruction{Op: value.Catch, NumOps: 1, Handlers: map[string]int{"return": 1}})
	return nil
}

// compileAssignment implements `target := value`: emit the target in
// assignable position (leaving Symbol or PropertyRef on the stack), then
// the value, then Assignment. If the value is itself a block literal, the
// block's Name is set from the assignable's symbol or property name (index
// targets get no name) so stack traces read better.
func (c *compiler) compileAssignment(e lang.Assignment) error {
	if err := c.compileExpr(e.Target, true); err != nil {
		return err
	}

	if blockLit, ok := e.Value.(lang.BlockLiteral); ok {
		blk, err := c.compileBlockLiteral(blockLit)
		if err != nil {
			return err
		}
		blk.Name = assignableName(e.Target)
	} else if err := c.compileExpr(e.Value, false); err != nil {
		return err
	}

	c.emit(value.Instruction{Op: value.Assignment})
	return nil
}

func assignableName(target lang.Node) string {
	switch t := target.(type) {
	case lang.Identifier:
		return t.Name
	case lang.PropertyAccess:
		return t.Name
	default:
		return ""
	}
}

func (c *compiler) compileBinary(e lang.BinaryExpr) error {
	op, ok := binOps[e.Op]
	if !ok {
		return &CompileError{Message: fmt.Sprintf("unsupported binary operator %s", e.Op)}
	}
	if err := c.compileExpr(e.Left, false); err != nil {
		return err
	}
	if err := c.compileExpr(e.Right, false); err != nil {
		return err
	}
	c.emit(value.Instruction{Op: value.BinaryOp, BinOp: op})
	return nil
}

func (c *compiler) compileUnary(e lang.UnaryExpr) error {
	if err := c.compileExpr(e.Operand, false); err != nil {
		return err
	}
	switch e.Op {
	case lang.TOKEN_MINUS:
		c.emit(value.Instruction{Op: value.UnaryOp, UnOp: value.OpNeg})
	case lang.TOKEN_NOT:
		c.emit(value.Instruction{Op: value.UnaryOp, UnOp: value.OpNot})
	default:
		return &CompileError{Message: fmt.Sprintf("unsupported unary operator %s", e.Op)}
	}
	return nil
}
