package object

import "avm1core/pkg/value"

// Callable is the "given a callable, invoke it with these arguments"
// collaborator spec.md §1 scopes the bytecode interpreter out behind.
// Virtual property getters/setters, and anything force-set onto a
// prototype as a native function, are Callables.
type Callable interface {
	Invoke(act *Activation, this Object, baseProto Object, args []value.Value) (value.Value, error)
}

// CallableFunc adapts a plain function to Callable, the same way
// http.HandlerFunc adapts a func to http.Handler. Native getters/setters
// and test fixtures use this instead of a dedicated struct per closure.
type CallableFunc func(act *Activation, this Object, baseProto Object, args []value.Value) (value.Value, error)

// Invoke calls f.
func (f CallableFunc) Invoke(act *Activation, this Object, baseProto Object, args []value.Value) (value.Value, error) {
	return f(act, this, baseProto, args)
}
