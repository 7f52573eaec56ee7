package object

import (
	"testing"

	"avm1core/pkg/attr"
	"avm1core/pkg/gc"
	"avm1core/pkg/value"
)

func TestSharedObjectDelegatesToBase(t *testing.T) {
	arena := gc.NewArena()
	act := NewActivation(arena, true)

	so := NewSharedObject(arena, nil, "/game/settings")
	so.DefineValue(act, "volume", value.Number(5), attr.Empty())

	if got := Get(act, so, "volume", so); got.AsNumber() != 5 {
		t.Errorf("Get through SharedObject = %v, want 5", got)
	}
	if !so.HasOwnProperty(act, "volume") {
		t.Error("HasOwnProperty should delegate to base")
	}
}

func TestSharedObjectAsPtrDiffersFromBase(t *testing.T) {
	arena := gc.NewArena()
	so := NewSharedObject(arena, nil, "/x")

	if so.AsPtr() == so.AsScriptObject().AsPtr() {
		t.Error("SharedObject.AsPtr should be its own cell's address, distinct from its base's — matches the original's SharedObject::as_ptr, not the abstract identity rule")
	}
}

func TestSharedObjectNewReturnsAnotherSharedObject(t *testing.T) {
	arena := gc.NewArena()
	act := NewActivation(arena, true)

	proto := NewObject(arena, nil)
	so := NewSharedObject(arena, proto, "/game/settings")

	child := so.New(act, so, nil)
	childShared := child.AsSharedObject()
	if childShared == nil {
		t.Fatal("SharedObject.New should return another SharedObject, not a plain object")
	}
	if childShared.Proto() != Object(proto) {
		t.Error("SharedObject.New's child should carry the same shared_object prototype as the receiver")
	}
}

func TestAsSharedObjectNarrowing(t *testing.T) {
	arena := gc.NewArena()

	plain := NewObject(arena, nil)
	if plain.AsSharedObject() != nil {
		t.Error("a plain ScriptObject should not narrow to a SharedObject")
	}

	so := NewSharedObject(arena, nil, "/x")
	if so.AsSharedObject() != so {
		t.Error("SharedObject.AsSharedObject should return the receiver itself")
	}
}

func TestSharedObjectNameRoundTrip(t *testing.T) {
	arena := gc.NewArena()
	so := NewSharedObject(arena, nil, "/a/b")
	if so.Name() != "/a/b" {
		t.Errorf("Name() = %q, want \"/a/b\"", so.Name())
	}
	so.SetName("/a/c")
	if so.Name() != "/a/c" {
		t.Errorf("Name() after SetName = %q, want \"/a/c\"", so.Name())
	}
}
