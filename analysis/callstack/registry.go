package callstack

import "github.com/cs-au-dk/heapabs/analysis/location"

// Registry maps each truncated callstack to the ordered list of bases
// previously coined at that site (spec §3's CallstackRegistry). It is
// process-wide and grows only by append (spec §5), so unlike the
// per-path Memory lattice it is modeled as a plain mutable map
// threaded through an explicit analyzer context, not a persistent,
// joinable structure — per the Design Notes, MallocedBases and the
// CallstackRegistry are "process-wide ... fields of an analyzer-wide
// context passed explicitly", not ambient singletons.
type Registry struct {
	pools map[string][]location.BaseID
}

// NewRegistry creates an empty CallstackRegistry.
func NewRegistry() *Registry {
	return &Registry{pools: make(map[string][]location.BaseID)}
}

// Pool returns the reuse pool at the given truncated callstack. The
// returned slice must be treated as read-only by callers; use Append
// to grow it.
func (r *Registry) Pool(s Callstack) []location.BaseID {
	return r.pools[s.String()]
}

// Append records a freshly coined base as the newest entry in s's
// pool.
func (r *Registry) Append(s Callstack, id location.BaseID) {
	key := s.String()
	r.pools[key] = append(r.pools[key], id)
}

// Len reports the number of distinct callstacks the registry has ever
// seen.
func (r *Registry) Len() int {
	return len(r.pools)
}
