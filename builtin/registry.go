// Package builtin implements the native callable surface exposed to
// scripts: a registry of Go functions invoked via value.Native
// instructions, plus the concrete robot natives (movement, sensing,
// diagnostics) that close over a per-player world.Robot handle.
package builtin

import "github.com/jslade/pro-bots/value"

// Registry holds the name -> native function bindings shared by every
// player's builtins map before per-player closures are layered on top.
type Registry struct {
	funcs map[string]value.NativeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]value.NativeFunc)}
}

// Register binds name to fn, overwriting any prior binding.
func (r *Registry) Register(name string, fn value.NativeFunc) {
	r.funcs[name] = fn
}

// Get looks up a registered native by name.
func (r *Registry) Get(name string) (value.NativeFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Snapshot returns a copy of the registry's name->function map, suitable
// for use as one player's builtins map (or as a base to extend with
// per-player closures).
func (r *Registry) Snapshot() map[string]value.NativeFunc {
	out := make(map[string]value.NativeFunc, len(r.funcs))
	for k, v := range r.funcs {
		out[k] = v
	}
	return out
}
