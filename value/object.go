package value

import (
	"sort"
	"strings"
)

// Object is a shared, mutable string-keyed map. Like List it is a handle
// around a pointer so every copy observes the same backing storage, which
// is what lets a PropertyRef write back through it in place.
type Object struct {
	fields *map[string]Value
}

// NewObject builds an empty Object.
func NewObject() Object {
	m := make(map[string]Value)
	return Object{fields: &m}
}

func (o Object) Kind() Kind { return KindObject }

func (o Object) String() string {
	keys := o.sortedKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + (*o.fields)[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (o Object) Truthy() bool { return len(*o.fields) > 0 }

func (o Object) Equal(other Value) bool {
	oo, ok := other.(Object)
	if !ok || len(*o.fields) != len(*oo.fields) {
		return false
	}
	for k, v := range *o.fields {
		ov, present := (*oo.fields)[k]
		if !present || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (o Object) sortedKeys() []string {
	keys := make([]string, 0, len(*o.fields))
	for k := range *o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the field value, or (Null, false) if absent.
func (o Object) Get(key string) (Value, bool) {
	v, ok := (*o.fields)[key]
	if !ok {
		return NullValue, false
	}
	return v, true
}

// Set writes the field in place.
func (o Object) Set(key string, v Value) {
	(*o.fields)[key] = v
}

// Has reports whether the key is present.
func (o Object) Has(key string) bool {
	_, ok := (*o.fields)[key]
	return ok
}
