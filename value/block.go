package value

import "strings"

// Block is a compiled, callable chunk: a parameter list plus a flat
// instruction stream. Blocks are produced by compiling the top-level
// program, block literals, and if/while bodies, and are themselves ordinary
// Values so they can be stored in variables or list/object fields. A Block
// is immutable after construction except for Name, which callers set
// exactly once — at the Assignment that first binds it to an identifier
// or property — so that
// later stack traces can report a useful name for an otherwise anonymous
// compiled chunk.
type Block struct {
	Name     string
	ArgNames []string
	Ops      []Instruction
}

func (b *Block) Kind() Kind { return KindBlock }

func (b *Block) String() string {
	name := b.Name
	if name == "" {
		name = "<anonymous>"
	}
	return "block " + name + "(" + strings.Join(b.ArgNames, ", ") + ")"
}

func (b *Block) Truthy() bool { return true }

func (b *Block) Equal(o Value) bool {
	ob, ok := o.(*Block)
	return ok && b == ob
}

// Frame is the subset of the interpreter's call frame exposed to native
// callables. It is declared here, rather than in the vm package, so that
// Native instructions can be described without the value package importing
// vm (which itself imports value for the Value/Instruction types).
type Frame interface {
	Arg(i int) Value
	NumArgs() int
	Global(name string) (Value, bool)
	SetGlobal(name string, v Value)
}

// NativeFunc is the signature every builtin registers under. It receives
// the calling frame and returns a result value, or an error. A native may
// return a *Breakpoint to cooperatively suspend the calling context — for
// example a movement native that must wait for a world transition to
// finish before the script can continue.
type NativeFunc func(f Frame) (Value, error)

// Breakpoint is a control signal rather than a failure, although it
// implements error so a native can return it through its error result.
// The interpreter raises Stop=false breakpoints for break, next and
// return: they unwind to the nearest enclosing Catch that handles their
// reason, and one that finds no handler ends the context through
// OnException (except a top-level return, which completes it). Stop=true,
// raised by natives, means the enclosing scheduler should park the
// context until something external resumes it.
type Breakpoint struct {
	Reason string
	Stop   bool
	Value  Value
}

func (b *Breakpoint) Error() string {
	return "breakpoint: " + b.Reason
}
