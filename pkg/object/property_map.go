package object

import (
	"avm1core/pkg/gc"

	"github.com/elliotchance/orderedmap/v3"
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// foldKey ASCII/Unicode case-folds a property name for case-insensitive
// comparison. Property names in this object model are virtually always
// ASCII identifiers or stringified array indices, so the distinction
// between ASCII-only folding (spec.md §4.1) and x/text's fuller Unicode
// fold never actually bites in practice, and reusing the teacher's own
// text-casing dependency (golang.org/x/text, used there for
// String.prototype.normalize) beats hand-rolling a byte-range fold.
func foldKey(s string) string {
	return foldCaser.String(s)
}

// PropertyMap is an ordered name -> Property mapping with case-sensitive
// and case-insensitive lookup modes (spec.md §3, §4.1). Insertion order is
// preserved via the primary orderedmap.OrderedMap; case-insensitive
// resolution uses a secondary folded-name -> canonical-name index, the
// approach spec.md §9's design notes call out as option (a).
type PropertyMap struct {
	entries *orderedmap.OrderedMap[string, *Property]
	fold    map[string]string // folded key -> canonical (originally-cased) key
}

// NewPropertyMap returns an empty PropertyMap.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{
		entries: orderedmap.NewOrderedMap[string, *Property](),
		fold:    make(map[string]string),
	}
}

// resolve finds the canonical key a lookup for name would hit, if any.
func (m *PropertyMap) resolve(name string, caseSensitive bool) (string, bool) {
	if caseSensitive {
		if _, ok := m.entries.Get(name); ok {
			return name, true
		}
		return "", false
	}
	canon, ok := m.fold[foldKey(name)]
	return canon, ok
}

// Get returns the property stored under name, or nil.
func (m *PropertyMap) Get(name string, caseSensitive bool) *Property {
	key, ok := m.resolve(name, caseSensitive)
	if !ok {
		return nil
	}
	p, _ := m.entries.Get(key)
	return p
}

// ContainsKey reports whether name resolves to a stored property.
func (m *PropertyMap) ContainsKey(name string, caseSensitive bool) bool {
	_, ok := m.resolve(name, caseSensitive)
	return ok
}

// Insert stores property under name, replacing (and returning) any
// previous property at the effective key. In case-insensitive mode, an
// existing matching key keeps its original casing and insertion position
// (spec.md §4.1): the value is replaced under the existing key, not
// reinserted under the probe's casing.
func (m *PropertyMap) Insert(name string, prop Property, caseSensitive bool) *Property {
	key := name
	if canon, ok := m.resolve(name, caseSensitive); ok {
		key = canon
	}
	var prev *Property
	if existing, ok := m.entries.Get(key); ok {
		prev = existing
	}
	p := prop
	m.entries.Set(key, &p)
	m.fold[foldKey(key)] = key
	return prev
}

// Remove deletes the property at name, if any, and returns it.
func (m *PropertyMap) Remove(name string, caseSensitive bool) *Property {
	key, ok := m.resolve(name, caseSensitive)
	if !ok {
		return nil
	}
	p, _ := m.entries.Get(key)
	m.entries.Delete(key)
	delete(m.fold, foldKey(key))
	return p
}

// Entry returns a conditional-mutation handle for name, mirroring the
// Rust PropertyMap's Entry abstraction (an occupied/vacant union) without
// needing Go generics to express the enum: Occupied() tells you which
// case you're in.
type Entry struct {
	m   *PropertyMap
	key string
	ok  bool
}

// Entry builds an Entry for name under the given case-sensitivity mode.
func (m *PropertyMap) Entry(name string, caseSensitive bool) Entry {
	key, ok := m.resolve(name, caseSensitive)
	if !ok {
		key = name
	}
	return Entry{m: m, key: key, ok: ok}
}

// Occupied reports whether the entry names an existing property.
func (e Entry) Occupied() bool { return e.ok }

// Get returns the occupied entry's property. Only valid when Occupied().
func (e Entry) Get() *Property {
	p, _ := e.m.entries.Get(e.key)
	return p
}

// Insert stores prop at the entry's key (vacant case) or overwrites it
// (occupied case), preserving position either way.
func (e Entry) Insert(prop Property) {
	p := prop
	e.m.entries.Set(e.key, &p)
	e.m.fold[foldKey(e.key)] = e.key
}

// RemoveEntry deletes the occupied entry's property.
func (e Entry) RemoveEntry() {
	e.m.entries.Delete(e.key)
	delete(e.m.fold, foldKey(e.key))
}

// Iter calls yield(name, property) for every entry in insertion order,
// stopping early if yield returns false.
func (m *PropertyMap) Iter(yield func(name string, p *Property) bool) {
	for el := m.entries.Front(); el != nil; el = el.Next() {
		if !yield(el.Key, el.Value) {
			return
		}
	}
}

// Len reports the number of stored properties.
func (m *PropertyMap) Len() int {
	return m.entries.Len()
}

// Trace visits every object handle reachable through the map's payloads,
// per the ScriptObjectData GC trace contract.
func (m *PropertyMap) Trace(visit func(*gc.Cell)) {
	m.Iter(func(_ string, p *Property) bool {
		p.Trace(visit)
		return true
	})
}
