package object

import (
	"testing"

	"avm1core/pkg/attr"
	"avm1core/pkg/value"
)

func TestPropertyMapCaseSensitiveLookup(t *testing.T) {
	m := NewPropertyMap()
	m.Insert("Foo", NewStored(value.Number(1), attr.Empty()), false)

	if m.Get("foo", true) != nil {
		t.Error("case-sensitive lookup should not match a differently-cased key")
	}
	if m.Get("Foo", true) == nil {
		t.Error("case-sensitive lookup should match the exact key")
	}
}

func TestPropertyMapCaseInsensitiveLookup(t *testing.T) {
	m := NewPropertyMap()
	m.Insert("Foo", NewStored(value.Number(1), attr.Empty()), false)

	p := m.Get("FOO", false)
	if p == nil {
		t.Fatal("case-insensitive lookup should match regardless of case")
	}
	if p.StoredValue().AsNumber() != 1 {
		t.Errorf("StoredValue() = %v, want 1", p.StoredValue().AsNumber())
	}
}

func TestPropertyMapInsertPreservesOriginalCasingOnCollision(t *testing.T) {
	m := NewPropertyMap()
	m.Insert("Foo", NewStored(value.Number(1), attr.Empty()), false)
	m.Insert("FOO", NewStored(value.Number(2), attr.Empty()), false)

	var keys []string
	m.Iter(func(name string, _ *Property) bool {
		keys = append(keys, name)
		return true
	})

	if len(keys) != 1 || keys[0] != "Foo" {
		t.Errorf("keys = %v, want the original casing [\"Foo\"] preserved", keys)
	}
	if got := m.Get("foo", false).StoredValue().AsNumber(); got != 2 {
		t.Errorf("value at collided key = %v, want 2 (overwritten)", got)
	}
}

func TestPropertyMapInsertionOrderPreserved(t *testing.T) {
	m := NewPropertyMap()
	m.Insert("z", NewStored(value.Undefined(), attr.Empty()), false)
	m.Insert("a", NewStored(value.Undefined(), attr.Empty()), false)
	m.Insert("m", NewStored(value.Undefined(), attr.Empty()), false)

	var keys []string
	m.Iter(func(name string, _ *Property) bool {
		keys = append(keys, name)
		return true
	})

	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestPropertyMapEntryVacantInsert(t *testing.T) {
	m := NewPropertyMap()
	e := m.Entry("x", true)
	if e.Occupied() {
		t.Fatal("Entry on an empty map should be vacant")
	}
	e.Insert(NewStored(value.Str("hi"), attr.Empty()))

	if got := m.Get("x", true); got == nil || got.StoredValue().AsString() != "hi" {
		t.Error("vacant Entry.Insert should create the property")
	}
}

func TestPropertyMapRemove(t *testing.T) {
	m := NewPropertyMap()
	m.Insert("x", NewStored(value.Number(1), attr.Empty()), false)

	if removed := m.Remove("x", false); removed == nil {
		t.Fatal("Remove should return the removed property")
	}
	if m.ContainsKey("x", false) {
		t.Error("key should be gone after Remove")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
