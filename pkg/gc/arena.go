// Package gc implements the tracing-collector arena the object model
// relies on for cyclic reference graphs (prototypes, closures, interface
// lists). Every allocation is a Cell registered in one Arena, and Collect
// is a mark-sweep pass from the Arena's explicit roots, so cycles through
// prototypes or captured closures that no root reaches are reclaimed.
package gc

import "fmt"

// Tracer is implemented by anything an Arena allocates. Trace must call
// visit for every other Cell this value holds a reference to.
type Tracer interface {
	Trace(visit func(*Cell))
}

// Traceable is implemented by values (typically object handles boxed in a
// Value) that are backed by a Cell but aren't themselves passed to
// Arena.Allocate directly.
type Traceable interface {
	GCCell() *Cell
}

// Cell is one allocation in an Arena. Mutating methods on the object model
// go through Mutate, which enforces the no-reentrant-mutation discipline
// spec §5 requires: a setter invoked while a write permit is held must not
// be able to re-enter the same object's interior.
type Cell struct {
	arena  *Arena
	value  Tracer
	marked bool
	locked bool
}

// Value returns the underlying payload. Reads are permit-free per spec §5.
func (c *Cell) Value() Tracer {
	return c.value
}

// Mutate acquires the cell's mutation permit for the duration of fn. It
// panics if fn (directly, or via a getter/setter it invokes) tries to
// mutate the same cell again before returning — a programmer error that
// spec §7 says is fatal and unrecoverable, not a silently-dropped write.
func (c *Cell) Mutate(fn func(v Tracer)) {
	if c.locked {
		panic(fmt.Sprintf("gc: reentrant mutation of cell %p while a permit is held", c))
	}
	c.locked = true
	defer func() { c.locked = false }()
	fn(c.value)
}

// Arena is a flat collection of Cells plus an explicit root set. Collect
// performs a mark-sweep pass from the roots; anything unreached is
// reclaimed.
type Arena struct {
	cells []*Cell
	roots []*Cell
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Allocate registers v in the arena and returns its Cell.
func (a *Arena) Allocate(v Tracer) *Cell {
	c := &Cell{arena: a, value: v}
	a.cells = append(a.cells, c)
	return c
}

// AddRoot marks c as reachable from outside the arena (VM globals, the
// activation stack, display list levels, ...). Roots are never reclaimed
// by Collect even if nothing else in the arena points to them.
func (a *Arena) AddRoot(c *Cell) {
	a.roots = append(a.roots, c)
}

// RemoveRoot undoes AddRoot. It is a no-op if c was never a root.
func (a *Arena) RemoveRoot(c *Cell) {
	for i, r := range a.roots {
		if r == c {
			a.roots = append(a.roots[:i], a.roots[i+1:]...)
			return
		}
	}
}

// Len reports how many live cells the arena currently holds.
func (a *Arena) Len() int {
	return len(a.cells)
}

// Collect traces from the root set and reclaims every cell that wasn't
// reached. It returns the number of cells reclaimed.
func (a *Arena) Collect() int {
	marked := make(map[*Cell]bool, len(a.cells))
	var mark func(c *Cell)
	mark = func(c *Cell) {
		if c == nil || marked[c] {
			return
		}
		marked[c] = true
		c.value.Trace(mark)
	}
	for _, r := range a.roots {
		mark(r)
	}

	kept := a.cells[:0]
	reclaimed := 0
	for _, c := range a.cells {
		if marked[c] {
			kept = append(kept, c)
		} else {
			reclaimed++
		}
	}
	a.cells = kept
	return reclaimed
}
