package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// sizeSureValid is the number of bits of a base's range that are
// guaranteed valid (its min_alloc bound, 0 if min_alloc is -1).
func sizeSureValid(b *location.Base) int64 {
	if b.Validity.MinAlloc < 0 {
		return 0
	}
	return b.Validity.MinAlloc + 1
}

// reallocDestination performs the three-step destination allocation
// shared by realloc's single and multiple modes (spec §4.9 steps 1-3):
// coin the destination, clear its sure-valid prefix to ⊥, then weak-
// paste each source's contents onto it so overlapping contributions
// join rather than overwrite.
func (ctx *Context) reallocDestination(oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, sources []location.BaseID, weak Weakness, maxLevel uint) (location.BaseID, lattice.Model) {
	var destID location.BaseID
	var maxValidBits int64

	if weak {
		destID, maxValidBits, state = ctx.AllocByStack(oracle, state, sizev, false, nil, weak, maxLevel, "__realloc")
	} else {
		destID, maxValidBits, state = ctx.AllocSize(oracle, state, sizev, false, nil, weak, "__realloc")
	}

	requestedBits := maxValidBits + 1

	sureValid := requestedBits
	for _, srcID := range sources {
		src := ctx.Arena.Get(srcID)
		sv := sizeSureValid(src)
		if sv < sureValid {
			sureValid = sv
		}
	}
	if sureValid < 0 {
		sureValid = 0
	}
	if sureValid > 0 {
		destOM, _ := state.FindBase(destID)
		destOM = destOM.Add(0, sureValid-1, lattice.Bot())
		state = state.AddBase(destID, destOM)
	}

	for _, srcID := range sources {
		src := ctx.Arena.Get(srcID)
		srcOM, ok := state.FindBase(srcID)
		if !ok {
			continue
		}
		copyBits := src.Validity.MaxAlloc + 1
		if copyBits > requestedBits {
			copyBits = requestedBits
		}
		if copyBits <= 0 {
			continue
		}
		destOM, _ := state.FindBase(destID)
		destOM = destOM.Paste(srcOM, copyBits)
		state = state.AddBase(destID, destOM)
	}

	return destID, state
}

// ReallocSingle is realloc's single mode (spec §4.9): a weak
// destination via alloc_by_stack, one source base.
func (ctx *Context) ReallocSingle(site callstack.Callstack, oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, source location.BaseID, maxLevel uint) (location.BaseID, lattice.Model) {
	destID, state := ctx.reallocDestination(oracle, state, sizev, []location.BaseID{source}, Weak, maxLevel)
	state = ctx.freeReallocSources(site, state, []location.BaseID{source})
	return destID, state
}

// ReallocMultiple is realloc's multiple mode (spec §4.9): a single
// fresh strong destination per call, pasted with every source base's
// contents in turn, the sources freed weakly unless there is exactly
// one source and it is strong. This models "the destination after
// realloc" as one base holding the join of what each source
// contributed, rather than a per-source destination set; a caller
// expecting one fresh base per source should union-map over sources
// before calling.
func (ctx *Context) ReallocMultiple(site callstack.Callstack, oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, sources []location.BaseID) (location.BaseID, lattice.Model) {
	destID, state := ctx.reallocDestination(oracle, state, sizev, sources, Strong, 0)
	state = ctx.freeReallocSources(site, state, sources)
	return destID, state
}

// freeReallocSources frees the realloc's source bases (step 4): strong
// iff there is exactly one source and it is not itself weak, else
// weak.
func (ctx *Context) freeReallocSources(site callstack.Callstack, state lattice.Model, sources []location.BaseID) lattice.Model {
	strong := len(sources) == 1 && !ctx.Arena.Get(sources[0]).Validity.Weak

	fs := FreeSet{Bases: sources, Strong: strong}
	return ctx.Free(state, fs, strong)
}

// TisRealloc implements tis_realloc's variant contract (spec §4.9):
//   - the size argument must project to a concrete, non-negative
//     interval, else the call aborts this analysis path;
//   - if NULL is excluded from the source set and the requested max
//     size is zero, it behaves as a pure free;
//   - copying from a weak source is unsupported and is a fatal
//     WeakReallocUnsupported, not a diagnostic;
//   - if NULL is among the sources and the minimum requested size is
//     zero, NULL is included in the returned alternatives alongside
//     the new base (spec §9's documented, deliberately-preserved
//     quirk).
func (ctx *Context) TisRealloc(site callstack.Callstack, oracle callstack.Oracle, state lattice.Model, sizev lattice.Value, sources []location.BaseID, hasNull bool) ([]Alternative, lattice.Model) {
	iv, ok := sizev.ProjectIval()
	if !ok || iv.Lo < 0 {
		panic(newError(InvalidRealloc, "tis_realloc requires a concrete non-negative size"))
	}

	if !hasNull && iv.Hi == 0 {
		state = ctx.freeReallocSources(site, state, sources)
		return nil, state
	}

	for _, srcID := range sources {
		if ctx.Arena.Get(srcID).Validity.Weak {
			notYetImplemented("tis_realloc: copying from weak source %s", ctx.Arena.Get(srcID).Name)
		}
	}

	destID, state := ctx.reallocDestination(oracle, state, sizev, sources, Strong, 0)
	state = ctx.freeReallocSources(site, state, sources)

	alts := []Alternative{{Value: lattice.Inject(destID, lattice.Singleton(0)), State: state}}
	if hasNull && iv.Lo == 0 {
		alts = append(alts, Alternative{Value: lattice.Value{Kind: lattice.Pointer, Null: true}, State: state})
	}
	return alts, state
}
