package lang

import "testing"

func TestParseProgramArithmetic(t *testing.T) {
	stmts, err := ParseProgram("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	bin, ok := stmts[0].(BinaryExpr)
	if !ok {
		t.Fatalf("want BinaryExpr, got %T", stmts[0])
	}
	if bin.Op != TOKEN_PLUS {
		t.Errorf("top-level op should be + (lower precedence binds last), got %s", bin.Op)
	}
	if _, ok := bin.Right.(BinaryExpr); !ok {
		t.Errorf("right side of + should be the * subexpression, got %T", bin.Right)
	}
}

func TestParseAssignment(t *testing.T) {
	stmts, err := ParseProgram("x := 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign, ok := stmts[0].(Assignment)
	if !ok {
		t.Fatalf("want Assignment, got %T", stmts[0])
	}
	id, ok := assign.Target.(Identifier)
	if !ok || id.Name != "x" {
		t.Errorf("assignment target = %#v, want Identifier{x}", assign.Target)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	src := `if x == 1 { "one" } else if x == 2 { "two" } else { "other" }`
	stmts, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ifStmt, ok := stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("want *IfStmt, got %T", stmts[0])
	}
	if ifStmt.ElseIf == nil {
		t.Fatal("expected an else-if chain")
	}
	if ifStmt.ElseIf.ElseBody == nil {
		t.Error("expected a final else body")
	}
}

func TestParseWhileWithBreakAndNext(t *testing.T) {
	src := `while true { if x { break } next }`
	stmts, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	while, ok := stmts[0].(*WhileStmt)
	if !ok {
		t.Fatalf("want *WhileStmt, got %T", stmts[0])
	}
	if len(while.Body) != 2 {
		t.Fatalf("want 2 body statements, got %d", len(while.Body))
	}
	if _, ok := while.Body[1].(NextStmt); !ok {
		t.Errorf("second statement should be NextStmt, got %T", while.Body[1])
	}
}

func TestParseCallAndBlockLiteral(t *testing.T) {
	src := `inc(1)`
	stmts, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := stmts[0].(Call)
	if !ok {
		t.Fatalf("want Call, got %T", stmts[0])
	}
	if id, ok := call.Callee.(Identifier); !ok || id.Name != "inc" {
		t.Errorf("callee = %#v, want Identifier{inc}", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("want 1 arg, got %d", len(call.Args))
	}

	stmts, err = ParseProgram(`f := (a, b) { a }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign, ok := stmts[0].(Assignment)
	if !ok {
		t.Fatalf("want Assignment, got %T", stmts[0])
	}
	blk, ok := assign.Value.(BlockLiteral)
	if !ok {
		t.Fatalf("want BlockLiteral, got %T", assign.Value)
	}
	if len(blk.ArgNames) != 2 {
		t.Errorf("want 2 arg names, got %v", blk.ArgNames)
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	if _, err := ParseProgram("if { }"); err == nil {
		t.Fatal("expected a parse error for a missing condition")
	}
}

func TestParseTrailingTokenIsError(t *testing.T) {
	if _, err := ParseProgram("1 )"); err == nil {
		t.Fatal("expected a parse error for an unexpected trailing token")
	}
}
