package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// AllocByStack is the Allocation Dispatcher's precision ladder (spec
// §4.7): at most maxLevel+1 distinct bases ever appear for a given
// truncated callstack, and the last of those (the (maxLevel+1)-th
// distinct base, index maxLevel) is born weak and every visit past it
// collapses onto it. It consults the CallstackRegistry's reuse pool,
// walking it left to right:
//   - an entry no longer bound in state (freed, or never
//     materialized on this path) is reused via the Validity Updater;
//   - the maxLevel-th bound entry is (re-)promoted to weak and
//     returned;
//   - otherwise the pool is exhausted and a fresh base is coined,
//     itself already weak when its index reaches maxLevel.
func (ctx *Context) AllocByStack(oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, constantSize bool, destType goType, initialWeak Weakness, maxLevel uint, prefix string) (location.BaseID, int64, lattice.Model) {
	stack := oracle.Wrappers().NoWrappers(oracle.CurrentStack())
	pool := ctx.Registry.Pool(stack)

	smin, smax := ctx.ExtractSize(sizev)
	ts := ctx.GuessIntendedMallocType(destType, smin, smax, constantSize)

	for nb, id := range pool {
		if _, bound := state.FindBase(id); !bound {
			b, maxValidBits := ctx.UpdateVariableValidity(id, sizev, bool(initialWeak))
			ctx.Metrics.Reuses++
			state = ctx.AddUninitialized(state, b.ID, maxValidBits)
			return b.ID, maxValidBits, state
		}
		if uint(nb) == maxLevel {
			b, maxValidBits := ctx.UpdateVariableValidity(id, sizev, true)
			state = ctx.AddUninitialized(state, b.ID, maxValidBits)
			return b.ID, maxValidBits, state
		}
	}

	index := len(pool)
	weak := initialWeak
	if uint(index) == maxLevel {
		weak = Weak
	}
	b, maxValidBits := ctx.AllocAbstract(stack, index, weak, prefix, ts)
	ctx.Registry.Append(stack, b.ID)
	state = ctx.AddUninitialized(state, b.ID, maxValidBits)
	return b.ID, maxValidBits, state
}

// AllocSize is the Dispatcher's alloc_size: no callstack memoization,
// a fresh base is coined on every visit.
func (ctx *Context) AllocSize(oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, constantSize bool, destType goType, weak Weakness, prefix string) (location.BaseID, int64, lattice.Model) {
	stack := oracle.Wrappers().NoWrappers(oracle.CurrentStack())

	smin, smax := ctx.ExtractSize(sizev)
	ts := ctx.GuessIntendedMallocType(destType, smin, smax, constantSize)

	b, maxValidBits := ctx.AllocAbstract(stack, ctx.Arena.Len(), weak, prefix, ts)
	state = ctx.AddUninitialized(state, b.ID, maxValidBits)
	return b.ID, maxValidBits, state
}
