// Package object implements the object model core: PropertyMap, Property,
// ArrayStorage, ScriptObject, and the Object capability set, plus the
// SharedObject delegating wrapper — spec.md §4 components 1-5.
package object

import (
	"strconv"
	"unsafe"

	"avm1core/pkg/attr"
	"avm1core/pkg/gc"
	"avm1core/pkg/value"
)

// TypeOfObject is the default type_of tag (spec.md §3).
const TypeOfObject = "object"

// Object is the capability set spec.md §6 specifies: every operation the
// interpreter needs from a script value's object handle. ScriptObject and
// SharedObject both satisfy it; SharedObject does so almost entirely by
// delegation (spec.md §4.5).
type Object interface {
	value.Handle

	// GetLocal answers an own-property read. Prototype walking for reads
	// is the interpreter's job (see Get, a free function below) — per
	// spec.md §4.4, an object only ever answers for itself here.
	GetLocal(act *Activation, name string, this Object) value.Value
	// Set runs the full [[Set]] algorithm (spec.md §4.4) with this and
	// base_proto both defaulted to the receiver, matching TObject::set.
	Set(act *Activation, name string, v value.Value)
	// Call invokes the object as a function. Plain ScriptObjects return
	// Undefined; function objects (out of scope for this core) override
	// it.
	Call(act *Activation, this Object, args []value.Value) (value.Value, error)
	// CallSetter returns the own virtual setter at name, if any, without
	// invoking it — used by the internal_set prototype walk.
	CallSetter(act *Activation, name string, v value.Value) Callable
	// New constructs a like-kind fresh child object with the receiver as
	// its prototype (spec.md §4.4 "new").
	New(act *Activation, this Object, args []value.Value) Object
	// Delete implements [[Delete]].
	Delete(act *Activation, name string) bool

	AddProperty(act *Activation, name string, get, set Callable, attrs attr.Set)
	AddPropertyWithCase(act *Activation, name string, get, set Callable, attrs attr.Set)
	DefineValue(act *Activation, name string, v value.Value, attrs attr.Set)
	SetAttributes(act *Activation, name *string, set, clear attr.Set)

	Proto() Object
	SetProto(act *Activation, proto Object)

	HasProperty(act *Activation, name string) bool
	HasOwnProperty(act *Activation, name string) bool
	HasOwnVirtual(act *Activation, name string) bool
	IsPropertyEnumerable(act *Activation, name string) bool
	GetKeys(act *Activation) []string

	AsString() string
	TypeOf() string
	Interfaces() []Object
	SetInterfaces(act *Activation, ifaces []Object)

	AsScriptObject() *ScriptObject
	// AsSharedObject narrows to a *SharedObject: the receiver itself on a
	// SharedObject, nil on a plain ScriptObject (spec.md §6 as_shared_object).
	AsSharedObject() *SharedObject

	Length() int
	SetLength(act *Activation, n int)
	Array() []value.Value
	ArrayElement(i int) value.Value
	SetArrayElement(act *Activation, i int, v value.Value) int
	DeleteArrayElement(act *Activation, i int)
}

// ScriptObjectData is the interior state a ScriptObject's Cell carries
// (spec.md §3 "ScriptObjectData").
type ScriptObjectData struct {
	prototype  Object
	values     *PropertyMap
	array      arrayStorage
	typeOf     string
	interfaces []Object
}

// Trace implements gc.Tracer: prototype, every property payload/callable,
// every interface entry, and every array element (spec.md §5's trace
// contract).
func (d *ScriptObjectData) Trace(visit func(*gc.Cell)) {
	if d.prototype != nil {
		if t, ok := d.prototype.(gc.Traceable); ok {
			visit(t.GCCell())
		}
	}
	d.values.Trace(visit)
	d.array.trace(visit)
	for _, iface := range d.interfaces {
		if t, ok := iface.(gc.Traceable); ok {
			visit(t.GCCell())
		}
	}
}

// ScriptObject is the concrete object kind spec.md §4.4 specifies in
// full: an aggregate of PropertyMap + ArrayStorage + prototype link +
// type tag + interface list, allocated in a gc.Arena.
type ScriptObject struct {
	cell *gc.Cell
}

func newData(proto Object) *ScriptObjectData {
	return &ScriptObjectData{
		prototype: proto,
		values:    NewPropertyMap(),
		typeOf:    TypeOfObject,
	}
}

// NewObject builds an empty dictionary object (ArrayStorage::Properties,
// length 0), matching ScriptObject::object.
func NewObject(arena *gc.Arena, proto Object) *ScriptObject {
	cell := arena.Allocate(newData(proto))
	return &ScriptObject{cell: cell}
}

// NewArray builds a Vector-backed array object and synchronizes its
// initial length-0 property, matching ScriptObject::array.
func NewArray(arena *gc.Arena, proto Object) *ScriptObject {
	data := newData(proto)
	data.array.mode = arrayModeVector
	cell := arena.Allocate(data)
	obj := &ScriptObject{cell: cell}
	obj.syncNativeProperty("length", someValue(value.Number(0)), false)
	return obj
}

// BareObject builds a prototype-less, value-only object intended for
// scope-chain holders, matching ScriptObject::bare_object.
func BareObject(arena *gc.Arena) *ScriptObject {
	cell := arena.Allocate(newData(nil))
	return &ScriptObject{cell: cell}
}

func (o *ScriptObject) data() *ScriptObjectData {
	return o.cell.Value().(*ScriptObjectData)
}

// GCCell exposes the backing cell for tracing (gc.Traceable).
func (o *ScriptObject) GCCell() *gc.Cell { return o.cell }

// AsPtr returns the cell's address as an identity token (spec.md §8
// testable property 7: as_ptr equality tracks underlying-object identity
// across wrapper types).
func (o *ScriptObject) AsPtr() uintptr {
	return uintptr(unsafe.Pointer(o.cell))
}

// AsScriptObject returns o itself.
func (o *ScriptObject) AsScriptObject() *ScriptObject { return o }

// AsSharedObject always returns nil: a plain ScriptObject never narrows to
// a SharedObject (spec.md §6 as_shared_object).
func (o *ScriptObject) AsSharedObject() *SharedObject { return nil }

// ForceSetFunction installs a native callable as a value property —
// host-prototype setup's way of declaring a built-in method (spec.md §6,
// ScriptObject::force_set_function). Unlike user-defined functions (which
// always get a fresh explicit prototype in the full VM), this is only
// meant for host built-ins and always writes case-sensitively, like
// DefineValue.
func (o *ScriptObject) ForceSetFunction(name string, fn Callable, attrs attr.Set, fnProto Object) {
	_ = fnProto // the concrete FunctionObject wrapper lives one layer up (out of scope); the core only needs somewhere to hang the callable.
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		d.values.Insert(name, NewStored(value.Object(&funcHandle{fn}), attrs), true)
	})
}

// funcHandle lets a bare Callable be boxed into a value.Value as an
// object handle for ForceSetFunction, without pulling a whole function
// object representation into this core (that belongs to the interpreter,
// per spec.md §1's scoping). It is always used as a *funcHandle so its
// identity token is the allocation's own address, stable across calls.
type funcHandle struct{ Callable }

func (f *funcHandle) AsPtr() uintptr {
	return uintptr(unsafe.Pointer(f))
}

func someValue(v value.Value) *value.Value { return &v }

// syncNativeProperty implements spec.md §4.4's sync_native_property:
// upsert-or-remove-or-noop against a Stored property, leaving any Virtual
// property at that name untouched.
func (o *ScriptObject) syncNativeProperty(name string, v *value.Value, enumerable bool) {
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		e := d.values.Entry(name, false)
		if e.Occupied() {
			p := e.Get()
			if p.IsVirtual() {
				return
			}
			if v == nil {
				e.RemoveEntry()
				return
			}
			*p = NewStored(*v, p.Attributes())
			return
		}
		if v == nil {
			return
		}
		attrs := attr.Empty()
		if !enumerable {
			attrs = attr.New(attr.DontEnum)
		}
		e.Insert(NewStored(*v, attrs))
	})
}

// GetLocal implements spec.md §4.4's [[Get]] (own-property only).
func (o *ScriptObject) GetLocal(act *Activation, name string, this Object) value.Value {
	if name == "__proto__" {
		return value.Object(o.data().prototype)
	}

	p := o.data().values.Get(name, act.IsCaseSensitive())
	if p == nil {
		return value.Undefined()
	}
	if !p.IsVirtual() {
		return p.StoredValue()
	}
	get := p.Getter()
	if get == nil {
		return value.Undefined()
	}
	v, err := get.Invoke(act, this, Object(o), nil)
	if err != nil {
		// Errors, even fatal ones, are silently ignored here (spec.md §7).
		return value.Undefined()
	}
	return v
}

// Set runs [[Set]] with this and base_proto both defaulted to o.
func (o *ScriptObject) Set(act *Activation, name string, v value.Value) {
	o.internalSet(act, name, v, o, Object(o))
}

func parseArrayIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(name, 10, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func coerceLength(v value.Value) int {
	f := v.ToFloat()
	if f != f { // NaN
		return 0
	}
	n := int32(abs(f))
	if n > 0 {
		return int(n)
	}
	return 0
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// internalSet is the algorithm spec.md §4.4 walks through step by step.
func (o *ScriptObject) internalSet(act *Activation, name string, v value.Value, this Object, baseProto Object) {
	if name == "__proto__" {
		var proto Object
		if v.IsObject() {
			if h, ok := v.AsObject().(Object); ok {
				proto = h
			}
		}
		o.cell.Mutate(func(t gc.Tracer) {
			t.(*ScriptObjectData).prototype = proto
		})
		return
	}

	if idx, ok := parseArrayIndex(name); ok {
		o.SetArrayElement(act, idx, v)
		return
	}

	if name == "" {
		return
	}

	if name == "length" {
		o.SetLength(act, coerceLength(v))
		// Deliberately falls through: length writes also try the virtual
		// setter walk and land in the stored-value write below (spec.md
		// §9 open question — both effects are reproduced on purpose).
	}

	// Virtual-setter prototype walk (spec.md §4.4 step 5, §5's
	// probe -> release -> walk -> invoke -> reacquire discipline).
	isVacant := !o.data().values.ContainsKey(name, act.IsCaseSensitive())
	if isVacant {
		var proto Object = o
		for proto != nil {
			if proto.HasOwnVirtual(act, name) {
				break
			}
			proto = proto.Proto()
		}
		if proto != nil {
			if setter := proto.CallSetter(act, name, v); setter != nil {
				_, _ = setter.Invoke(act, this, proto, []value.Value{v})
			}
			return // handled: do not fall through to the own-property write.
		}
	}

	var setter Callable
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		e := d.values.Entry(name, act.IsCaseSensitive())
		if e.Occupied() {
			setter = e.Get().Set(v)
			return
		}
		e.Insert(NewStored(v, attr.Empty()))
	})
	if setter != nil {
		_, _ = setter.Invoke(act, this, baseProto, []value.Value{v})
	}
}

// Call returns Undefined for a plain object; function-object wrappers
// override this.
func (o *ScriptObject) Call(act *Activation, this Object, args []value.Value) (value.Value, error) {
	return value.Undefined(), nil
}

// CallSetter returns the virtual setter stored at name, if name is both
// present and a Virtual property.
func (o *ScriptObject) CallSetter(act *Activation, name string, v value.Value) Callable {
	var setter Callable
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		e := d.values.Entry(name, act.IsCaseSensitive())
		if e.Occupied() && e.Get().IsVirtual() {
			setter = e.Get().Set(v)
		}
	})
	return setter
}

// New constructs a like-kind fresh child: an array if o is array-shaped,
// else a plain object, with this as its prototype.
func (o *ScriptObject) New(act *Activation, this Object, args []value.Value) Object {
	if o.data().array.mode == arrayModeVector {
		return NewArray(act.Arena(), this)
	}
	return NewObject(act.Arena(), this)
}

// Delete implements [[Delete]].
func (o *ScriptObject) Delete(act *Activation, name string) bool {
	deleted := false
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		p := d.values.Get(name, act.IsCaseSensitive())
		if p != nil && p.CanDelete() {
			d.values.Remove(name, act.IsCaseSensitive())
			deleted = true
		}
	})
	return deleted
}

// AddProperty inserts a Virtual property, case-sensitively.
func (o *ScriptObject) AddProperty(act *Activation, name string, get, set Callable, attrs attr.Set) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).values.Insert(name, NewVirtual(get, set, attrs), true)
	})
}

// AddPropertyWithCase inserts a Virtual property using the activation's
// case-sensitivity mode.
func (o *ScriptObject) AddPropertyWithCase(act *Activation, name string, get, set Callable, attrs attr.Set) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).values.Insert(name, NewVirtual(get, set, attrs), act.IsCaseSensitive())
	})
}

// DefineValue inserts a Stored property, always case-sensitively.
func (o *ScriptObject) DefineValue(act *Activation, name string, v value.Value, attrs attr.Set) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).values.Insert(name, NewStored(v, attrs), true)
	})
}

// SetAttributes implements spec.md §4.4: new = (old - clear) | set,
// applied to one named property or, if name is nil, to every property.
func (o *ScriptObject) SetAttributes(act *Activation, name *string, set, clear attr.Set) {
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		if name == nil {
			d.values.Iter(func(_ string, p *Property) bool {
				p.SetAttributes(attr.Combine(p.Attributes(), set, clear))
				return true
			})
			return
		}
		if p := d.values.Get(*name, false); p != nil {
			p.SetAttributes(attr.Combine(p.Attributes(), set, clear))
		}
	})
}

// Proto returns the prototype link.
func (o *ScriptObject) Proto() Object { return o.data().prototype }

// SetProto replaces the prototype link.
func (o *ScriptObject) SetProto(act *Activation, proto Object) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).prototype = proto
	})
}

// HasProperty reports own-or-inherited presence.
func (o *ScriptObject) HasProperty(act *Activation, name string) bool {
	if o.HasOwnProperty(act, name) {
		return true
	}
	if p := o.data().prototype; p != nil {
		return p.HasProperty(act, name)
	}
	return false
}

// HasOwnProperty reports own presence. __proto__ is always present
// (spec.md §4.4, invariant 1) even though it is never a real key.
func (o *ScriptObject) HasOwnProperty(act *Activation, name string) bool {
	if name == "__proto__" {
		return true
	}
	return o.data().values.ContainsKey(name, act.IsCaseSensitive())
}

// HasOwnVirtual reports whether name is an own Virtual property.
func (o *ScriptObject) HasOwnVirtual(act *Activation, name string) bool {
	p := o.data().values.Get(name, act.IsCaseSensitive())
	return p != nil && p.IsVirtual()
}

// IsPropertyEnumerable reports own-property enumerability.
func (o *ScriptObject) IsPropertyEnumerable(act *Activation, name string) bool {
	p := o.data().values.Get(name, act.IsCaseSensitive())
	return p != nil && p.IsEnumerable()
}

// GetKeys implements spec.md §4.4's enumeration algorithm: inherited
// non-shadowed keys first, then own enumerable keys, in insertion order,
// never including __proto__.
func (o *ScriptObject) GetKeys(act *Activation) []string {
	var protoKeys []string
	if proto := o.data().prototype; proto != nil {
		protoKeys = proto.GetKeys(act)
	}

	out := make([]string, 0, len(protoKeys)+o.data().values.Len())
	for _, k := range protoKeys {
		if !o.data().values.ContainsKey(k, act.IsCaseSensitive()) {
			out = append(out, k)
		}
	}
	o.data().values.Iter(func(name string, p *Property) bool {
		if p.IsEnumerable() {
			out = append(out, name)
		}
		return true
	})
	return out
}

// AsString returns the default object-to-string conversion. Subtypes
// (arrays, functions, ...) that need a different rendering belong one
// layer up, past this core's scope.
func (o *ScriptObject) AsString() string { return "[object Object]" }

// TypeOf returns the object's type tag.
func (o *ScriptObject) TypeOf() string { return o.data().typeOf }

// SetTypeOf replaces the object's type tag (e.g. "function", "movieclip").
func (o *ScriptObject) SetTypeOf(typeOf string) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).typeOf = typeOf
	})
}

// Interfaces returns the implemented-interface list.
func (o *ScriptObject) Interfaces() []Object {
	return append([]Object(nil), o.data().interfaces...)
}

// SetInterfaces replaces the implemented-interface list.
func (o *ScriptObject) SetInterfaces(act *Activation, ifaces []Object) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*ScriptObjectData).interfaces = ifaces
	})
}

// Length returns the array length overlay.
func (o *ScriptObject) Length() int { return o.data().array.len() }

// SetLength implements spec.md §4.4's set_length: Vector storage resizes
// and drops mirrored index properties for any truncated slots; Properties
// storage just rewrites its length field. Either way the "length"
// property itself is re-synced as non-enumerable.
func (o *ScriptObject) SetLength(act *Activation, newLength int) {
	var toRemove []int

	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		switch d.array.mode {
		case arrayModeVector:
			oldLength := len(d.array.vector)
			if newLength < oldLength {
				for i := newLength; i < oldLength; i++ {
					toRemove = append(toRemove, i)
				}
				d.array.vector = d.array.vector[:newLength]
			} else if newLength > oldLength {
				grown := make([]value.Value, newLength)
				copy(grown, d.array.vector)
				for i := oldLength; i < newLength; i++ {
					grown[i] = value.Undefined()
				}
				d.array.vector = grown
			}
		default:
			d.array.length = newLength
		}
	})

	for _, i := range toRemove {
		o.syncNativeProperty(strconv.Itoa(i), nil, true)
	}
	o.syncNativeProperty("length", someValue(value.Number(float64(newLength))), false)
}

// Array returns a snapshot of the array's elements in index order.
func (o *ScriptObject) Array() []value.Value {
	d := o.data()
	if d.array.mode == arrayModeVector {
		return append([]value.Value(nil), d.array.vector...)
	}
	out := make([]value.Value, d.array.length)
	for i := range out {
		out[i] = o.ArrayElement(i)
	}
	return out
}

// ArrayElement reads index i, honoring the two ArrayStorage
// representations (spec.md §4.4).
func (o *ScriptObject) ArrayElement(i int) value.Value {
	d := o.data()
	switch d.array.mode {
	case arrayModeVector:
		if i < 0 || i >= len(d.array.vector) {
			return value.Undefined()
		}
		return d.array.vector[i]
	default:
		if i < 0 || i >= d.array.length {
			return value.Undefined()
		}
		if p := d.values.Get(strconv.Itoa(i), false); p != nil && !p.IsVirtual() {
			return p.StoredValue()
		}
		return value.Undefined()
	}
}

// SetArrayElement writes index i, always mirroring it into the property
// table as an enumerable stored property first (the observable name
// surface, per spec.md §4.4), then updating whichever ArrayStorage
// representation is active. Returns the resulting length.
func (o *ScriptObject) SetArrayElement(act *Activation, i int, v value.Value) int {
	o.syncNativeProperty(strconv.Itoa(i), someValue(v), true)

	var length int
	adjustLength := false
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		switch d.array.mode {
		case arrayModeVector:
			if i >= len(d.array.vector) {
				grown := make([]value.Value, i+1)
				copy(grown, d.array.vector)
				for j := len(d.array.vector); j < i; j++ {
					grown[j] = value.Undefined()
				}
				d.array.vector = grown
			}
			d.array.vector[i] = v
			adjustLength = true
			length = len(d.array.vector)
		default:
			length = d.array.length
		}
	})
	if adjustLength {
		o.syncNativeProperty("length", someValue(value.Number(float64(length))), false)
	}
	return length
}

// DeleteArrayElement clears index i to Undefined for Vector storage
// without changing length (spec.md §9: deliberately mirrors ECMAScript
// array delete semantics). Properties storage has no array-side state to
// clear; callers use [[Delete]] on the string key instead.
func (o *ScriptObject) DeleteArrayElement(act *Activation, i int) {
	o.cell.Mutate(func(t gc.Tracer) {
		d := t.(*ScriptObjectData)
		if d.array.mode == arrayModeVector && i >= 0 && i < len(d.array.vector) {
			d.array.vector[i] = value.Undefined()
		}
	})
}

// Get implements the interpreter-side [[Get]] wrapper spec.md §4.4
// describes as living one layer up: it walks the prototype chain, asking
// each link's GetLocal only once it's established that link owns the
// property. Individual object kinds only need to implement GetLocal; this
// is the convenience most callers (including cmd/objshell and the tests)
// actually want.
func Get(act *Activation, obj Object, name string, this Object) value.Value {
	cur := obj
	for cur != nil {
		if cur.HasOwnProperty(act, name) {
			return cur.GetLocal(act, name, this)
		}
		cur = cur.Proto()
	}
	return value.Undefined()
}
