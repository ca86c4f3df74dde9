package absint

import (
	"go/types"

	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// Cacheability mirrors spec §6's c_cacheable tag: allocation/realloc
// results depend on the callstack (NoCacheCallers), free does not
// (Cacheable).
type Cacheability int

const (
	Cacheable Cacheability = iota
	NoCacheCallers
)

// BuiltinResult is spec §6's per-call result shape, trimmed to what
// this engine actually produces: the c_from component (origin
// tracking) belongs to the host analyzer and is not modeled here.
type BuiltinResult struct {
	Values     []Alternative
	Clobbered  []location.BaseID
	Cacheable  Cacheability
}

// Call is one literal invocation of a registered builtin: the name,
// its arguments as abstract values, and the ambient hints the Size
// Inference / callstack truncation steps need.
type Call struct {
	Name         string
	Site         callstack.Callstack
	Oracle       callstack.Oracle
	Size         lattice.Value
	ConstantSize bool
	DestType     types.Type
	Ptr          lattice.Value // free's / realloc's first pointer argument
	Sources      []location.BaseID
	HasNull      bool
}

// builtinFunc is the shape every registered builtin implements.
type builtinFunc func(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model)

// builtins is the registration table of spec §6's "Builtins the core
// exposes", keyed by the analyzer-provided name.
var builtins = map[string]builtinFunc{
	"Frama_C_alloc_size":       biAllocSize(Strong),
	"Frama_C_alloc_size_weak":  biAllocSize(Weak),
	"Frama_C_alloc_by_stack":   biAllocByStack,
	"Frama_C_free":             biFree,
	"Frama_C_realloc":          biReallocSingle,
	"Frama_C_realloc_multiple": biReallocMultiple,
	"Frama_C_alloc_tms":        biAllocTms,
	"tis_alloc":                biTisAlloc,
	"tis_alloc_weak":           biTisAllocWeak,
	"tis_realloc":              biTisRealloc,
	"Frama_C_check_leak":       biCheckLeak,
}

// Dispatch looks up and invokes a registered builtin by name.
// InvalidArgCount is not separately validated here: each wrapper below
// consumes exactly the arguments the Call carries, and a Call built by
// the CLI driver or a test always supplies the right shape for the
// name it targets.
//
// Fatal conditions (InvariantViolation, WeakReallocUnsupported,
// InvalidRealloc) are raised as panics of *AnalysisError deep in the
// engine; Dispatch recovers them here so that a fatal on one call's
// path stops only that path, per spec §7's propagation policy, rather
// than bringing down the host analyzer.
func Dispatch(ctx *Context, state lattice.Model, c Call) (res BuiltinResult, out lattice.Model, err error) {
	out = state
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(*AnalysisError); ok {
				err = ae
				out = state
				return
			}
			panic(r)
		}
	}()

	fn, ok := builtins[c.Name]
	if !ok {
		return BuiltinResult{}, state, newError(InvalidArgCount, "unregistered builtin %q", c.Name)
	}
	res, out = fn(ctx, state, c)
	return res, out, nil
}

func biAllocSize(weak Weakness) builtinFunc {
	return func(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
		orig := state
		id, _, state2 := ctx.AllocSize(c.Oracle, state, c.Size, c.ConstantSize, c.DestType, weak, "__malloc")
		alts := ctx.FallibleReturn(id, orig, state2)
		return BuiltinResult{Values: alts, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
	}
}

func biAllocByStack(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	orig := state
	id, _, state2 := ctx.AllocByStack(c.Oracle, state, c.Size, c.ConstantSize, c.DestType, Strong, ctx.Config.Mlevel, "__malloc")
	alts := ctx.FallibleReturn(id, orig, state2)
	return BuiltinResult{Values: alts, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biFree(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	if c.Ptr.Kind == lattice.BottomKind && !c.Ptr.Null {
		return BuiltinResult{Cacheable: Cacheable}, state
	}
	fs := ctx.ResolveBasesToFree(c.Site, c.Ptr)
	state2 := ctx.Free(state, fs, fs.Strong)
	return BuiltinResult{Clobbered: fs.Bases, Cacheable: Cacheable}, state2
}

func biReallocSingle(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	source := c.Sources[0]
	id, state2 := ctx.ReallocSingle(c.Site, c.Oracle, state, c.Size, source, ctx.Config.Mlevel)
	alt := Alternative{Value: lattice.Inject(id, lattice.Singleton(0)), State: state2}
	return BuiltinResult{Values: []Alternative{alt}, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biReallocMultiple(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	id, state2 := ctx.ReallocMultiple(c.Site, c.Oracle, state, c.Size, c.Sources)
	alt := Alternative{Value: lattice.Inject(id, lattice.Singleton(0)), State: state2}
	return BuiltinResult{Values: []Alternative{alt}, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biAllocTms(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	orig := state
	id, _, state2 := ctx.AllocByStack(c.Oracle, state, c.Size, c.ConstantSize, c.DestType, Strong, ctx.Config.MallocPlevel, "__alloc_tms")
	alts := ctx.FallibleReturn(id, orig, state2)
	return BuiltinResult{Values: alts, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biTisAlloc(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	orig := state
	id, _, state2 := ctx.AllocByStack(c.Oracle, state, c.Size, c.ConstantSize, c.DestType, Strong, ctx.Config.MallocPlevel, "__tis_alloc")
	alts := ctx.FallibleReturn(id, orig, state2)
	return BuiltinResult{Values: alts, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biTisAllocWeak(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	orig := state
	size := lattice.InjectIval(lattice.Singleton(ctx.Config.TisAllocWeakSize))
	id, _, state2 := ctx.AllocSize(c.Oracle, state, size, true, c.DestType, Weak, "__tis_alloc_weak")
	alts := ctx.FallibleReturn(id, orig, state2)
	return BuiltinResult{Values: alts, Clobbered: []location.BaseID{id}, Cacheable: NoCacheCallers}, state2
}

func biTisRealloc(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	alts, state2 := ctx.TisRealloc(c.Site, c.Oracle, state, c.Size, c.Sources, c.HasNull)
	return BuiltinResult{Values: alts, Clobbered: c.Sources, Cacheable: NoCacheCallers}, state2
}

func biCheckLeak(ctx *Context, state lattice.Model, c Call) (BuiltinResult, lattice.Model) {
	ctx.CheckLeak(state)
	return BuiltinResult{Cacheable: Cacheable}, state
}
