package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// AddUninitialized is the Uninitialization Painter's add_uninitialized
// (spec §4.5): it builds an isotropic offset-map spanning the base's
// full allocable range (⊥ everywhere), overwrites [0, maxValidBits]
// with the UNINITIALIZED marker when maxValidBits >= 0, and joins the
// result with whatever offset-map the base already has in state
// (mandatory so that values at shared indices survive re-entry into a
// weak allocation, rather than being clobbered).
func (ctx *Context) AddUninitialized(state lattice.Model, id location.BaseID, maxValidBits int64) lattice.Model {
	size := maxValidBits + 1
	if size < 0 {
		size = 0
	}

	om := lattice.CreateIsotropic(size, lattice.Bot())
	if maxValidBits >= 0 {
		om = om.Add(0, maxValidBits, lattice.Uninit())
	}

	if existing, ok := state.FindBase(id); ok {
		om = om.Join(existing)
	}

	return state.AddBase(id, om)
}
