// Package objerr is the object core's error surface: a small
// Kind()-tagged error type, the same shape the teacher's pkg/errors uses
// for its SyntaxError/TypeError/CompileError/RuntimeError family, cut down
// to the one concrete case this core actually needs to report through an
// error return rather than a panic or silent no-op (spec.md §7): backing
// store I/O failures.
package objerr

import "fmt"

// Error is implemented by every error this package returns.
type Error interface {
	error
	Kind() string
}

// StoreError wraps a pkg/sharedstore I/O failure (open/read/write the
// bbolt file, or a snapshot that doesn't decode) with the name of the
// shared object it was operating on.
type StoreError struct {
	Op   string // "open", "flush", "load"
	Name string // shared object name; empty for Op == "open"
	Err  error
}

func (e *StoreError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("sharedstore: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sharedstore: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StoreError) Kind() string { return "Store" }

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError, returning nil if err is nil (so
// callers can write `return objerr.NewStoreError(op, name, err)` directly
// in an error-returning function).
func NewStoreError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Name: name, Err: err}
}
