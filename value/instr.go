package value

// Op tags the kind of a compiled Instruction.
type Op int

const (
	// PushImmediate pushes Literal (a literal Value) onto the value stack.
	PushImmediate Op = iota
	// GetValue resolves Name through the scope chain (args, locals,
	// globals, in that order) and pushes the result. Builtins are not
	// consulted; a name bound in none of these scopes pushes Null.
	GetValue
	// Property pushes a PropertyRef{Owner: <popped>, Key: Str(Name)}.
	Property
	// GetProperty pops a PropertyRef and pushes its resolved value.
	GetProperty
	// Index pops a key and an owner, then pushes PropertyRef{Owner, Key}.
	Index
	// GetIndex pops a PropertyRef and pushes its resolved value.
	GetIndex
	// Arithmetic/comparison/logical binary ops: pop two operands, push one
	// result. BinOp names which operator (see OpAdd/OpSub/... constants below).
	BinaryOp
	// UnaryOp pops one operand, pushes one result (negation, logical not).
	UnaryOp
	// Assignment pops a value and a target (Symbol or PropertyRef) and
	// writes through it, then pushes the assigned value (a Block value is
	// bound but not pushed).
	Assignment
	// Jump unconditionally moves ip by Target, an offset relative to the
	// Jump's own index within the same Block.
	Jump
	// JumpIf pops a condition and, when its truthiness equals Sense, moves
	// ip by Target relative to its own index; otherwise it falls through.
	JumpIf
	// Call pops NumArgs argument values (pushed in order) and a callee. A
	// Block callee runs in a child frame (a fresh scope, or the caller's
	// locals when Local is set) and yields an EnterScope control signal to
	// the driving ExecutionContext; any other callee falls back to the
	// builtin registered under Name, whose result is pushed.
	Call
	// Catch is a marker placed after a Call. When a Breakpoint unwinds into
	// a frame whose next instruction is a Catch handling its reason, ip
	// moves by Handlers[reason] relative to the Catch's own index. Executed
	// in normal flow it does nothing.
	Catch
	// Break raises a Breakpoint("break") to the nearest enclosing Catch
	// that handles it.
	Break
	// Next raises a Breakpoint("next").
	Next
	// Return raises a Breakpoint("return") carrying the popped value.
	Return
	// MaybeCall is like Call but treats a non-Block operand as a plain
	// value rather than an error — used for `x()` where x might not be
	// callable.
	MaybeCall
	// Native invokes the builtin registered under Name with NumArgs popped
	// arguments, pushing its result (or propagating its Breakpoint/error).
	Native
	// MakeList pops NumArgs values (in reverse push order) and pushes a
	// new List containing them in source order.
	MakeList
)

// BinaryOperator names the concrete operator of a BinaryOp instruction.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

// UnaryOperator names the concrete operator of a UnaryOp instruction.
type UnaryOperator int

const (
	OpNeg UnaryOperator = iota
	OpNot
)

// Instruction is one step of a compiled Block's flat instruction stream.
// Fields are reused across Op variants rather than modeled as a sum type,
// matching a flat bytecode-like representation while keeping operands
// strongly typed in Go rather than packed into bytes.
type Instruction struct {
	Op        Op
	Name      string         // GetValue/Property/Native: symbol or builtin name; Call: bare-identifier callee's name, consulted as a builtin fallback when the popped callee isn't a Block
	Literal   Value          // PushImmediate: the literal value
	BinOp     BinaryOperator // BinaryOp
	UnOp      UnaryOperator  // UnaryOp
	Target    int            // Jump/JumpIf: offset added to the instruction's own index
	Sense     bool           // JumpIf: apply the jump when popped truthiness equals Sense
	NumArgs   int            // Call/MaybeCall/Native: argument count to pop
	Local     bool           // Call: reuse the caller's locals instead of a fresh scope
	WithValue bool           // Return: whether a value was popped and attached
	NumOps    int            // Catch: set by the compiler; the interpreter does not read it
	Handlers  map[string]int // Catch: breakpoint reason -> relative resume offset
}
