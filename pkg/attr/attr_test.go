package attr

import "testing"

func TestEmptyHasNothing(t *testing.T) {
	s := Empty()
	if s.Has(DontEnum) || s.Has(DontDelete) || s.Has(ReadOnly) {
		t.Error("Empty() should have no attributes set")
	}
	if !s.IsEmpty() {
		t.Error("Empty() should report IsEmpty")
	}
}

func TestNewSetsGivenAttributes(t *testing.T) {
	s := New(DontEnum, ReadOnly)
	if !s.Has(DontEnum) {
		t.Error("expected DontEnum set")
	}
	if s.Has(DontDelete) {
		t.Error("did not expect DontDelete set")
	}
	if !s.Has(ReadOnly) {
		t.Error("expected ReadOnly set")
	}
}

func TestWithAndWithoutDoNotMutateReceiver(t *testing.T) {
	base := New(DontEnum)
	withReadOnly := base.With(ReadOnly)

	if base.Has(ReadOnly) {
		t.Error("With should not mutate the receiver")
	}
	if !withReadOnly.Has(DontEnum) || !withReadOnly.Has(ReadOnly) {
		t.Error("With should keep existing attributes and add the new one")
	}

	without := withReadOnly.Without(DontEnum)
	if !without.Has(ReadOnly) || without.Has(DontEnum) {
		t.Error("Without should drop exactly the given attribute")
	}
	if !withReadOnly.Has(DontEnum) {
		t.Error("Without should not mutate the receiver")
	}
}

func TestCombineIsSubtractThenUnion(t *testing.T) {
	old := New(DontEnum, DontDelete)
	set := New(ReadOnly)
	clear := New(DontDelete)

	got := Combine(old, set, clear)

	if !got.Has(DontEnum) {
		t.Error("expected DontEnum to survive Combine")
	}
	if got.Has(DontDelete) {
		t.Error("expected DontDelete to be cleared by Combine")
	}
	if !got.Has(ReadOnly) {
		t.Error("expected ReadOnly to be added by Combine")
	}
}

func TestUnionAndSubtract(t *testing.T) {
	a := New(DontEnum)
	b := New(ReadOnly)

	u := a.Union(b)
	if !u.Has(DontEnum) || !u.Has(ReadOnly) {
		t.Error("Union should contain both sets' attributes")
	}

	d := u.Subtract(a)
	if d.Has(DontEnum) {
		t.Error("Subtract should remove the attribute present in the other set")
	}
	if !d.Has(ReadOnly) {
		t.Error("Subtract should leave attributes absent from the other set")
	}
}
