package object

import (
	"avm1core/pkg/attr"
	"avm1core/pkg/gc"
	"avm1core/pkg/value"
)

// propertyKind discriminates Property's two variants the way the Rust
// Property enum's Stored/Virtual cases do.
type propertyKind uint8

const (
	kindStored propertyKind = iota
	kindVirtual
)

// Property is a single slot in a PropertyMap: either a stored value or a
// virtual accessor pair, each carrying an attribute set (spec.md §3, §4.2).
type Property struct {
	kind  propertyKind
	value value.Value
	get   Callable
	set   Callable
	attrs attr.Set
}

// NewStored builds a Property holding a concrete value.
func NewStored(v value.Value, attrs attr.Set) Property {
	return Property{kind: kindStored, value: v, attrs: attrs}
}

// NewVirtual builds a Property backed by a getter and an optional setter.
func NewVirtual(get, set Callable, attrs attr.Set) Property {
	return Property{kind: kindVirtual, get: get, set: set, attrs: attrs}
}

// Attributes returns the property's attribute set.
func (p *Property) Attributes() attr.Set { return p.attrs }

// SetAttributes replaces the property's attribute set.
func (p *Property) SetAttributes(a attr.Set) { p.attrs = a }

// IsEnumerable reports !DontEnum.
func (p *Property) IsEnumerable() bool { return !p.attrs.Has(attr.DontEnum) }

// CanDelete reports !DontDelete.
func (p *Property) CanDelete() bool { return !p.attrs.Has(attr.DontDelete) }

// IsVirtual reports whether this is the Virtual variant.
func (p *Property) IsVirtual() bool { return p.kind == kindVirtual }

// StoredValue returns the stored value. Only meaningful when !IsVirtual().
func (p *Property) StoredValue() value.Value { return p.value }

// Getter returns the virtual getter. Only meaningful when IsVirtual().
func (p *Property) Getter() Callable { return p.get }

// Setter returns the virtual setter, which may be nil. Only meaningful
// when IsVirtual().
func (p *Property) Setter() Callable { return p.set }

// Set implements spec.md §4.2's Property::set: applying a plain [[Set]] to
// this property. For a Stored property it writes through (unless
// ReadOnly, in which case nothing happens) and always returns nil. For a
// Virtual property it never mutates anything itself and returns the
// setter Callable the caller must invoke (nil if there is none).
func (p *Property) Set(newValue value.Value) Callable {
	switch p.kind {
	case kindStored:
		if p.attrs.Has(attr.ReadOnly) {
			return nil
		}
		p.value = newValue
		return nil
	case kindVirtual:
		return p.set
	default:
		return nil
	}
}

// Trace visits any object handles the property's payload or callable
// captures hold, per spec §5's GC trace contract ("every Property's
// payload values and callable captures").
func (p *Property) Trace(visit func(*gc.Cell)) {
	traceValue(p.value, visit)
	traceCallable(p.get, visit)
	traceCallable(p.set, visit)
}

func traceValue(v value.Value, visit func(*gc.Cell)) {
	if !v.IsObject() {
		return
	}
	if t, ok := v.AsObject().(gc.Traceable); ok {
		visit(t.GCCell())
	}
}

func traceCallable(c Callable, visit func(*gc.Cell)) {
	if c == nil {
		return
	}
	if t, ok := c.(gc.Traceable); ok {
		visit(t.GCCell())
	}
}
