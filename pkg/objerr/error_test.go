package objerr

import (
	"errors"
	"testing"
)

func TestNewStoreErrorNilPassthrough(t *testing.T) {
	if err := NewStoreError("open", "", nil); err != nil {
		t.Errorf("NewStoreError with nil err = %v, want nil", err)
	}
}

func TestStoreErrorKindAndUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewStoreError("flush", "/settings", inner)

	se, ok := err.(*StoreError)
	if !ok {
		t.Fatalf("err is %T, want *StoreError", err)
	}
	if se.Kind() != "Store" {
		t.Errorf("Kind() = %q, want \"Store\"", se.Kind())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should see through StoreError to the wrapped error")
	}
}
