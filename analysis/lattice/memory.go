package lattice

import (
	"github.com/cs-au-dk/heapabs/analysis/location"
	"github.com/cs-au-dk/heapabs/utils"
	"github.com/cs-au-dk/heapabs/utils/tree"
)

// Model is the out-of-scope abstract memory state collaborator (spec
// §6): a persistent mapping from BaseID to that base's OffsetMap.
// Unlike the CallstackRegistry and MallocedBases (process-wide,
// mutable, per the Design Notes), Model is exactly the per-path state
// the dispatcher forks across alternatives and joins back together,
// so it is backed by the same persistent patricia tree the teacher
// analyzer uses for its own per-path Memory lattice.
type Model struct {
	bindings tree.Tree[location.BaseID, OffsetMap]
}

// Bottom is the empty memory state (no base bound).
func Bottom() Model {
	return Model{bindings: tree.NewTree[location.BaseID, OffsetMap](utils.HashableHasher[location.BaseID]())}
}

// FindBase looks up a base's offset-map; ok is false if the base is
// not currently bound in this state (e.g. it was freed on this path,
// or never materialized here).
func (m Model) FindBase(id location.BaseID) (OffsetMap, bool) {
	return m.bindings.Lookup(id)
}

// AddBase binds (or rebinds) a base to an offset-map, overwriting any
// previous binding. Callers that need to preserve prior contents
// across re-entry must Join themselves first (spec §4.5).
func (m Model) AddBase(id location.BaseID, om OffsetMap) Model {
	m.bindings = m.bindings.Insert(id, om)
	return m
}

// RemoveBase unbinds a base entirely, the strong-free case of spec
// §4.8.
func (m Model) RemoveBase(id location.BaseID) Model {
	m.bindings = m.bindings.Remove(id)
	return m
}

// Join computes the per-base join of two memory states: a base bound
// in only one operand keeps its binding; a base bound in both has its
// offset-maps joined.
func (m Model) Join(o Model) Model {
	m.bindings = m.bindings.Merge(o.bindings, func(a, b OffsetMap) (OffsetMap, bool) {
		return a.Join(b), false
	})
	return m
}

// ForEachBase calls f for every currently bound base, used by the
// Free Engine to rewrite dangling references and by the Leak Check to
// search for reachability.
func (m Model) ForEachBase(f func(location.BaseID, OffsetMap)) {
	m.bindings.ForEach(f)
}

// RewriteEscaping rewrites every pointer value across the whole state
// that targets one of the freed ids into ESCAPINGADDR, the Free
// Engine's "walk the entire state" step (spec §4.8). The whole value is
// replaced, including any fragments it holds to bases that were not
// freed.
func (m Model) RewriteEscaping(freed map[location.BaseID]bool) Model {
	targets := func(v Value) bool {
		if v.Kind != Pointer {
			return false
		}
		for b := range v.Ptrs {
			if freed[b] {
				return true
			}
		}
		return false
	}

	next := Bottom()
	m.ForEachBase(func(id location.BaseID, om OffsetMap) {
		next = next.AddBase(id, om.Rewrite(targets, Escaping()))
	})
	return next
}

// Size reports the number of currently bound bases (for tests/metrics).
func (m Model) Size() int {
	return m.bindings.Size()
}
