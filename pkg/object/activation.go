package object

import "avm1core/pkg/gc"

// Activation is the opaque VM holder spec.md §2/§6 says the core only
// needs two things from: a case-sensitivity flag and a mutation permit
// source. The interpreter's execution stack, scope chain, and script
// position all live one layer up and never need to reach into this core,
// so they aren't modeled here.
type Activation struct {
	arena         *gc.Arena
	caseSensitive bool
}

// NewActivation builds an Activation bound to arena, with the given
// property-name case-sensitivity mode (SWF version >= 7 is case
// sensitive in the original; callers decide).
func NewActivation(arena *gc.Arena, caseSensitive bool) *Activation {
	return &Activation{arena: arena, caseSensitive: caseSensitive}
}

// IsCaseSensitive reports the activation's case-sensitivity flag.
func (a *Activation) IsCaseSensitive() bool {
	return a.caseSensitive
}

// Arena returns the GC arena new allocations (e.g. from New) register
// into.
func (a *Activation) Arena() *gc.Arena {
	return a.arena
}
