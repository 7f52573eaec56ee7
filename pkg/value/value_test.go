package value

import "testing"

type fakeHandle struct{ id int }

func (f *fakeHandle) AsPtr() uintptr { return uintptr(f.id) }

func TestObjectNilHandleIsUndefined(t *testing.T) {
	v := Object(nil)
	if !v.IsUndefined() {
		t.Error("Object(nil) should collapse to Undefined")
	}
}

func TestToFloatCoercions(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Number(3.5), 3.5},
		{Bool(true), 1},
		{Bool(false), 0},
		{Str("42"), 42},
		{Str("  7 "), 7},
		{Null(), 0},
	}
	for _, c := range cases {
		if got := c.v.ToFloat(); got != c.want {
			t.Errorf("ToFloat(%v) = %v, want %v", c.v, got, c.want)
		}
	}

	if f := Str("not a number").ToFloat(); f == f {
		t.Error("ToFloat of a non-numeric string should be NaN")
	}
	if f := Undefined().ToFloat(); f == f {
		t.Error("ToFloat(Undefined) should be NaN")
	}
}

func TestIsFalsey(t *testing.T) {
	falsey := []Value{Undefined(), Null(), Bool(false), Number(0), Str("")}
	for _, v := range falsey {
		if !v.IsFalsey() {
			t.Errorf("%v should be falsey", v)
		}
	}

	truthy := []Value{Bool(true), Number(1), Number(-1), Str("0"), Str("a")}
	for _, v := range truthy {
		if v.IsFalsey() {
			t.Errorf("%v should not be falsey", v)
		}
	}
}

func TestIsSameValueZero(t *testing.T) {
	if !Number(0).Is(Number(0)) {
		t.Error("0 should equal 0")
	}

	a := Object(&fakeHandle{id: 1})
	b := Object(&fakeHandle{id: 1})
	c := Object(&fakeHandle{id: 2})
	if !a.Is(b) {
		t.Error("objects with the same AsPtr should be Is-equal")
	}
	if a.Is(c) {
		t.Error("objects with different AsPtr should not be Is-equal")
	}

	if Number(1).Is(Str("1")) {
		t.Error("values of different types should never be Is-equal")
	}
}

func TestToStringRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Undefined(), "undefined"},
		{Null(), "null"},
		{Bool(true), "true"},
		{Number(3), "3"},
		{Str("hi"), "hi"},
	}
	for _, c := range cases {
		if got := c.v.ToString(); got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
