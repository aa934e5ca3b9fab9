package resolve

import "fmt"

// NameMap is the set of names a module exposes after collecting its own
// declarations and `using`-imported names (§4.4).
type NameMap struct {
	entries map[IdKey]*Entity
}

// NewNameMap creates an empty NameMap.
func NewNameMap() *NameMap {
	return &NameMap{entries: map[IdKey]*Entity{}}
}

// Lookup returns the entity exported under name, if any.
func (m *NameMap) Lookup(name IdKey) (*Entity, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Names returns every exported identifier.
func (m *NameMap) Names() []IdKey {
	out := make([]IdKey, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	return out
}

// Conflict describes a duplicate-name collision collected while building
// a NameMap, reported as E-RES-*.
type Conflict struct {
	Name   IdKey
	First  *Entity
	Second *Entity
}

func (c Conflict) Error() string {
	return fmt.Sprintf("name %q is declared more than once (from %s and %s)", c.Name, c.First.Module, c.Second.Module)
}

// CollectNameMap merges own (a module's own top-level declarations) with
// imported (names brought in by that module's `using` declarations) into a
// single NameMap. Duplicates with distinct origins produce a Conflict;
// same-origin re-declaration is not possible since own/imported are
// disjoint collection passes.
func CollectNameMap(own []*Entity, imported []*Entity) (*NameMap, []Conflict) {
	m := NewNameMap()
	var conflicts []Conflict

	for _, e := range own {
		m.entries[e.Name] = e
	}
	for _, e := range imported {
		name := e.Name
		if e.RenamedTo != "" {
			name = e.RenamedTo
		}
		if existing, ok := m.entries[name]; ok {
			conflicts = append(conflicts, Conflict{Name: name, First: existing, Second: e})
			continue
		}
		m.entries[name] = e
	}
	return m, conflicts
}
