package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// Alternative is one (return-value, resulting-state) pair of a
// builtin's c_values list (spec §6).
type Alternative struct {
	Value lattice.Value
	State lattice.Model
}

// FallibleReturn is the Fallible-Return Wrapper (spec §4.6): it always
// returns the successful pointer-to-retBase alternative, and
// additionally a (NULL, original-state) alternative when
// MallocReturnsNull is configured, modeling the nondeterministic
// allocator-failure path.
func (ctx *Context) FallibleReturn(retBase location.BaseID, origState, stateAfterAlloc lattice.Model) []Alternative {
	alts := []Alternative{
		{Value: lattice.Inject(retBase, lattice.Singleton(0)), State: stateAfterAlloc},
	}
	if ctx.Config.MallocReturnsNull {
		alts = append(alts, Alternative{
			Value: lattice.Value{Kind: lattice.Pointer, Null: true},
			State: origState,
		})
	}
	return alts
}
