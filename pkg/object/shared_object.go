package object

import (
	"unsafe"

	"avm1core/pkg/attr"
	"avm1core/pkg/gc"
	"avm1core/pkg/value"
)

// SharedObjectData wraps a base ScriptObject and adds the persistence
// identity (a path-like name, e.g. "/my_game/settings") the shared-object
// store keys on. It is its own Cell payload, separate from base's, which
// is what makes the as_ptr discrepancy below observable at all.
type SharedObjectData struct {
	base *ScriptObject
	name string
}

// Trace visits base; name carries no object references.
func (d *SharedObjectData) Trace(visit func(*gc.Cell)) {
	visit(d.base.GCCell())
}

// SharedObject is the delegating wrapper spec.md §4.5 specifies: every
// capability-set operation forwards to base except identity (AsPtr) and
// the handful of accessors a persistence layer needs (Name/SetName).
//
// The original's SharedObject::as_ptr returns the SharedObject's own
// GcCell address, not base's — even though every other method forwards.
// spec.md §4.5's abstract wrapper rule ("wrappers MUST preserve
// identity") reads as though as_ptr should equal base's, but the concrete
// original_source (core/src/avm1/shared_object.rs) does not do that: a
// SharedObject and its base ScriptObject compare as_ptr-unequal. This
// core follows the concrete original rather than the abstract rule (see
// DESIGN.md) — callers that need "is this the same underlying object"
// across a SharedObject/ScriptObject pair must compare AsScriptObject()
// results, not AsPtr().
type SharedObject struct {
	cell *gc.Cell
}

// NewSharedObject allocates a SharedObject wrapping a freshly built plain
// object as its base, named name.
func NewSharedObject(arena *gc.Arena, proto Object, name string) *SharedObject {
	base := NewObject(arena, proto)
	cell := arena.Allocate(&SharedObjectData{base: base, name: name})
	return &SharedObject{cell: cell}
}

func (o *SharedObject) data() *SharedObjectData {
	return o.cell.Value().(*SharedObjectData)
}

func (o *SharedObject) base() *ScriptObject { return o.data().base }

// GCCell exposes the wrapper's own cell for tracing.
func (o *SharedObject) GCCell() *gc.Cell { return o.cell }

// AsPtr returns the wrapper's own cell address, per the discrepancy
// documented on SharedObject above.
func (o *SharedObject) AsPtr() uintptr {
	return uintptr(unsafe.Pointer(o.cell))
}

// Name returns the shared object's persistence path.
func (o *SharedObject) Name() string { return o.data().name }

// SetName replaces the shared object's persistence path.
func (o *SharedObject) SetName(name string) {
	o.cell.Mutate(func(t gc.Tracer) {
		t.(*SharedObjectData).name = name
	})
}

func (o *SharedObject) GetLocal(act *Activation, name string, this Object) value.Value {
	return o.base().GetLocal(act, name, this)
}

func (o *SharedObject) Set(act *Activation, name string, v value.Value) {
	o.base().Set(act, name, v)
}

func (o *SharedObject) Call(act *Activation, this Object, args []value.Value) (value.Value, error) {
	return o.base().Call(act, this, args)
}

func (o *SharedObject) CallSetter(act *Activation, name string, v value.Value) Callable {
	return o.base().CallSetter(act, name, v)
}

// New overrides base delegation: per spec.md §4.5 and the original
// (shared_object.rs's SharedObject::new -> SharedObject::empty_shared_obj),
// a SharedObject's "new" produces another SharedObject, not a plain
// object, with the VM's shared_object prototype — here, the same
// prototype link o's own base already carries — and no name, matching an
// anonymous fresh shared-object instance in the original.
func (o *SharedObject) New(act *Activation, this Object, args []value.Value) Object {
	return NewSharedObject(act.Arena(), o.base().Proto(), "")
}

func (o *SharedObject) Delete(act *Activation, name string) bool {
	return o.base().Delete(act, name)
}

func (o *SharedObject) AddProperty(act *Activation, name string, get, set Callable, attrs attr.Set) {
	o.base().AddProperty(act, name, get, set, attrs)
}

func (o *SharedObject) AddPropertyWithCase(act *Activation, name string, get, set Callable, attrs attr.Set) {
	o.base().AddPropertyWithCase(act, name, get, set, attrs)
}

func (o *SharedObject) DefineValue(act *Activation, name string, v value.Value, attrs attr.Set) {
	o.base().DefineValue(act, name, v, attrs)
}

func (o *SharedObject) SetAttributes(act *Activation, name *string, set, clear attr.Set) {
	o.base().SetAttributes(act, name, set, clear)
}

func (o *SharedObject) Proto() Object { return o.base().Proto() }

func (o *SharedObject) SetProto(act *Activation, proto Object) {
	o.base().SetProto(act, proto)
}

func (o *SharedObject) HasProperty(act *Activation, name string) bool {
	return o.base().HasProperty(act, name)
}

func (o *SharedObject) HasOwnProperty(act *Activation, name string) bool {
	return o.base().HasOwnProperty(act, name)
}

func (o *SharedObject) HasOwnVirtual(act *Activation, name string) bool {
	return o.base().HasOwnVirtual(act, name)
}

func (o *SharedObject) IsPropertyEnumerable(act *Activation, name string) bool {
	return o.base().IsPropertyEnumerable(act, name)
}

func (o *SharedObject) GetKeys(act *Activation) []string {
	return o.base().GetKeys(act)
}

func (o *SharedObject) AsString() string { return o.base().AsString() }

func (o *SharedObject) TypeOf() string { return o.base().TypeOf() }

func (o *SharedObject) Interfaces() []Object { return o.base().Interfaces() }

func (o *SharedObject) SetInterfaces(act *Activation, ifaces []Object) {
	o.base().SetInterfaces(act, ifaces)
}

// AsScriptObject returns the wrapped base, the escape hatch callers use
// to test underlying-object identity across a SharedObject/ScriptObject
// pair (see the AsPtr discrepancy note above).
func (o *SharedObject) AsScriptObject() *ScriptObject { return o.base() }

// AsSharedObject returns o itself (spec.md §6 as_shared_object: Some(*self)
// in the original).
func (o *SharedObject) AsSharedObject() *SharedObject { return o }

func (o *SharedObject) Length() int { return o.base().Length() }

func (o *SharedObject) SetLength(act *Activation, n int) { o.base().SetLength(act, n) }

func (o *SharedObject) Array() []value.Value { return o.base().Array() }

func (o *SharedObject) ArrayElement(i int) value.Value { return o.base().ArrayElement(i) }

func (o *SharedObject) SetArrayElement(act *Activation, i int, v value.Value) int {
	return o.base().SetArrayElement(act, i, v)
}

func (o *SharedObject) DeleteArrayElement(act *Activation, i int) {
	o.base().DeleteArrayElement(act, i)
}
