package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// FreeSet is the result of resolve_bases_to_free: the bases actually
// freeable from a pointer argument, whether NULL was among the
// alternatives, and whether the update must be weak.
type FreeSet struct {
	Bases  []location.BaseID
	Null   bool
	Strong bool
}

// ResolveBasesToFree is the Free Engine's resolve_bases_to_free (spec
// §4.8): it folds over ptr's (base, offset) fragments, collecting
// bases whose offset set contains zero and which are themselves
// Allocated. Any other fragment (a non-allocated, non-NULL base, or a
// non-zero offset on an otherwise-freeable base) emits a "Wrong free"
// diagnostic but does not abort resolution of the remaining
// fragments. Cardinality counts each base as 1, except an
// already-weak base counts as 2; any total > 1 forces a weak update.
func (ctx *Context) ResolveBasesToFree(site callstack.Callstack, ptr lattice.Value) FreeSet {
	var fs FreeSet
	fs.Null = ptr.Null

	card := 0
	ptr.FoldTopsetOK(func(id location.BaseID, offset lattice.Interval) bool {
		b := ctx.Arena.Get(id)
		zeroOffset := offset.Lo <= 0 && 0 <= offset.Hi

		if b.Kind != location.Allocated || !zeroOffset {
			ctx.report(newDiagnostic(InvalidFree, "wrong free: "+wrongFreeReason(b, zeroOffset), site).withBase(id))
			return true
		}

		fs.Bases = append(fs.Bases, id)
		if b.Validity.Weak {
			card += 2
		} else {
			card++
		}
		return true
	})

	fs.Strong = card <= 1
	return fs
}

func wrongFreeReason(b *location.Base, zeroOffset bool) string {
	switch {
	case b.Kind != location.Allocated && !zeroOffset:
		return "non-allocated base at non-zero offset"
	case b.Kind != location.Allocated:
		return "non-allocated, non-NULL base"
	default:
		return "non-zero offset"
	}
}

// Free is the Free Engine's free(bases, state, exact) (spec §4.8). If
// exact, every freed base's binding is removed outright (the strong
// case); either way every pointer reference anywhere in the state
// that targets a freed base is rewritten to ESCAPINGADDR, so weak
// bases are kept reachable (and their pointers made to visibly
// escape) rather than silently vanishing.
func (ctx *Context) Free(state lattice.Model, fs FreeSet, exact bool) lattice.Model {
	if len(fs.Bases) == 0 {
		return state
	}

	freed := make(map[location.BaseID]bool, len(fs.Bases))
	for _, id := range fs.Bases {
		freed[id] = true
	}

	if exact {
		for _, id := range fs.Bases {
			state = state.RemoveBase(id)
		}
	}

	state = state.RewriteEscaping(freed)
	ctx.Metrics.Frees++
	return state
}
