// Package attr implements the property attribute set used throughout the
// object model: DontEnum, DontDelete, and ReadOnly, combined the way the
// original implementation's EnumSet<Attribute> does.
package attr

import "github.com/bits-and-blooms/bitset"

// Attribute is a single property flag.
type Attribute uint

const (
	// DontEnum hides a property from get_keys.
	DontEnum Attribute = iota
	// DontDelete prevents [[Delete]] from removing a property.
	DontDelete
	// ReadOnly prevents [[Set]] from overwriting a stored value.
	ReadOnly

	numAttributes
)

// Set is an immutable-by-convention collection of Attributes. The zero
// value is the empty set.
type Set struct {
	bits *bitset.BitSet
}

// Empty returns the empty attribute set.
func Empty() Set {
	return Set{}
}

// New builds a Set from the given attributes.
func New(attrs ...Attribute) Set {
	s := Set{bits: bitset.New(uint(numAttributes))}
	for _, a := range attrs {
		s.bits.Set(uint(a))
	}
	return s
}

// Has reports whether a is present in the set.
func (s Set) Has(a Attribute) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(a))
}

// With returns a copy of s with a added.
func (s Set) With(a Attribute) Set {
	ns := s.clone()
	ns.bits.Set(uint(a))
	return ns
}

// Without returns a copy of s with a removed.
func (s Set) Without(a Attribute) Set {
	ns := s.clone()
	ns.bits.Clear(uint(a))
	return ns
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	ns := s.clone()
	if other.bits != nil {
		ns.bits.InPlaceUnion(other.bits)
	}
	return ns
}

// Subtract returns s with every attribute in other removed: (s - other).
func (s Set) Subtract(other Set) Set {
	ns := s.clone()
	if other.bits != nil {
		ns.bits.InPlaceDifference(other.bits)
	}
	return ns
}

// Combine implements the set_attributes algorithm: (old - clear) | set.
func Combine(old, set, clear Set) Set {
	return old.Subtract(clear).Union(set)
}

func (s Set) clone() Set {
	if s.bits == nil {
		return New()
	}
	return Set{bits: s.bits.Clone()}
}

// IsEmpty reports whether the set has no attributes set.
func (s Set) IsEmpty() bool {
	return s.bits == nil || s.bits.None()
}
