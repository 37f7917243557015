package value

import "strconv"

// PropertyRef is a live reference into a List or Object, produced by the
// Property/Index instructions and consumed by GetProperty/GetIndex
// (read) or Assignment (write). Writing through a PropertyRef mutates the
// owner in place.
type PropertyRef struct {
	Owner Value // List or Object
	Key   Value // Str (object field) or Int (list index, 0-based)
}

func (p PropertyRef) Kind() Kind { return KindPropRef }

func (p PropertyRef) String() string {
	return p.Owner.String() + "[" + p.Key.String() + "]"
}

func (p PropertyRef) Truthy() bool { return true }

func (p PropertyRef) Equal(o Value) bool {
	op, ok := o.(PropertyRef)
	return ok && p.Owner.Equal(op.Owner) && p.Key.Equal(op.Key)
}

// Get resolves the reference, returning Null if the owner is missing the
// key or the key is out of range.
func (p PropertyRef) Get() Value {
	switch owner := p.Owner.(type) {
	case Object:
		key, ok := p.Key.(Str)
		if !ok {
			return NullValue
		}
		v, present := owner.Get(string(key))
		if !present {
			return NullValue
		}
		return v
	case List:
		idx, ok := indexOf(p.Key)
		if !ok {
			return NullValue
		}
		return owner.Get(idx)
	default:
		return NullValue
	}
}

// Set writes through the reference, auto-padding lists and creating object
// fields as needed. Returns a TypeError if the owner is neither.
func (p PropertyRef) Set(v Value) error {
	switch owner := p.Owner.(type) {
	case Object:
		key, ok := p.Key.(Str)
		if !ok {
			return &TypeError{Op: "property assignment", Detail: "non-string key on object"}
		}
		owner.Set(string(key), v)
		return nil
	case List:
		idx, ok := indexOf(p.Key)
		if !ok {
			return &TypeError{Op: "index assignment", Detail: "non-integer index on list"}
		}
		owner.Set(idx, v)
		return nil
	default:
		return &TypeError{Op: "assignment", Detail: "cannot index into " + p.Owner.Kind().String()}
	}
}

func indexOf(key Value) (int, bool) {
	switch k := key.(type) {
	case Int:
		return int(k), true
	case Str:
		n, err := strconv.Atoi(string(k))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
