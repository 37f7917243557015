package value

import "strings"

// List is a shared, mutable, ordered sequence of Values. It is a small
// handle around a pointer to a slice so that copying a List copies the
// reference, not the contents — required for PropertyRef to write through
// to the same backing storage every holder of the List observes (spec:
// "PropertyRef holds a live reference to the container"). Go's garbage
// collector reclaims cycles on its own, so no manual refcounting is needed
// here the way the design notes anticipated for a non-GC host language.
type List struct {
	items *[]Value
}

// NewList builds a List owning a copy of the given elements.
func NewList(elems []Value) List {
	cp := append([]Value(nil), elems...)
	return List{items: &cp}
}

// NewEmptyList builds an empty List.
func NewEmptyList() List {
	empty := []Value{}
	return List{items: &empty}
}

func (l List) Kind() Kind { return KindList }

func (l List) String() string {
	elems := *l.items
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) Truthy() bool { return len(*l.items) > 0 }

func (l List) Equal(o Value) bool {
	ol, ok := o.(List)
	if !ok || len(*l.items) != len(*ol.items) {
		return false
	}
	for i, e := range *l.items {
		if !e.Equal((*ol.items)[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of elements.
func (l List) Len() int { return len(*l.items) }

// Elements returns the backing slice. Callers must not retain it across a
// mutation of the list.
func (l List) Elements() []Value { return *l.items }

// Get returns the 0-based element, or Null if out of range.
func (l List) Get(i int) Value {
	if i < 0 || i >= len(*l.items) {
		return NullValue
	}
	return (*l.items)[i]
}

// Set writes the 0-based index in place, auto-padding with Null when i is
// beyond the current length (spec: "appending past the current list length
// auto-pads with Null").
func (l List) Set(i int, v Value) {
	if i < 0 {
		return
	}
	for i >= len(*l.items) {
		*l.items = append(*l.items, NullValue)
	}
	(*l.items)[i] = v
}

// Append adds v to the end, in place.
func (l List) Append(v Value) {
	*l.items = append(*l.items, v)
}
