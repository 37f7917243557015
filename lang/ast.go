package lang

// Node is implemented by every AST node. It carries no behavior beyond
// tagging; the compiler type-switches on the concrete type.
type Node interface {
	node()
}

// IntLiteral is an integer literal, e.g. 42.
type IntLiteral struct{ Value int64 }

// FloatLiteral is a fractional literal, e.g. 3.14.
type FloatLiteral struct{ Value float64 }

// StringLiteral is a quoted string literal, already escape-decoded.
type StringLiteral struct{ Value string }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct{ Value bool }

// NullLiteral is `null` or `none`.
type NullLiteral struct{}

// Identifier is a bare name reference, e.g. `x`.
type Identifier struct{ Name string }

// ListLiteral is a bracketed list, e.g. `[1, 2, 3]`.
type ListLiteral struct{ Elements []Node }

// BlockLiteral is `(arg1, arg2) { ... }` or `{ ... }` with no args: a
// first-class callable value.
type BlockLiteral struct {
	ArgNames []string
	Body     []Node
}

// PropertyAccess is `Owner.Name`.
type PropertyAccess struct {
	Owner Node
	Name  string
}

// IndexAccess is `Owner[Index]`.
type IndexAccess struct {
	Owner Node
	Index Node
}

// Call is `Callee(Args...)`.
type Call struct {
	Callee Node
	Args   []Node
}

// Assignment is `Target := Value`. Target is an Identifier, PropertyAccess,
// or IndexAccess.
type Assignment struct {
	Target Node
	Value  Node
}

// BinaryExpr is a left-associative binary operator application.
type BinaryExpr struct {
	Op    TokenType
	Left  Node
	Right Node
}

// UnaryExpr is a prefix operator application (`-x`, `!x`).
type UnaryExpr struct {
	Op      TokenType
	Operand Node
}

// IfStmt is `if Cond { Then } else Else?`. Else is nil, an []Node-bearing
// *IfStmt (else-if), or a plain statement list wrapped as ElseBody.
type IfStmt struct {
	Cond     Node
	Then     []Node
	ElseIf   *IfStmt
	ElseBody []Node
}

// WhileStmt is `while Cond { Body }`.
type WhileStmt struct {
	Cond Node
	Body []Node
}

// BreakStmt is `break`.
type BreakStmt struct{}

// NextStmt is `next`.
type NextStmt struct{}

// ReturnStmt is `return` or `return Value`.
type ReturnStmt struct {
	Value Node // nil if bare `return`
}

func (IntLiteral) node()     {}
func (FloatLiteral) node()   {}
func (StringLiteral) node()  {}
func (BoolLiteral) node()    {}
func (NullLiteral) node()    {}
func (Identifier) node()     {}
func (ListLiteral) node()    {}
func (BlockLiteral) node()   {}
func (PropertyAccess) node() {}
func (IndexAccess) node()    {}
func (Call) node()           {}
func (Assignment) node()     {}
func (BinaryExpr) node()     {}
func (UnaryExpr) node()      {}
func (IfStmt) node()         {}
func (WhileStmt) node()      {}
func (BreakStmt) node()      {}
func (NextStmt) node()       {}
func (ReturnStmt) node()     {}
