package location

import "go/types"

// The four non-Allocated base kinds only ever arrive as opaque inputs
// from collaborators (a points-to set entry, a free/realloc
// argument). This package never mints or mutates them once
// registered; these constructors exist so tests and the CLI driver
// can build realistic inputs sharing the same Arena id space as
// Allocated bases.

// RegisterVar admits a declared (non-heap) variable, e.g. the
// stack-allocated `p`/`q` of spec §8 scenario 4, into the arena.
func RegisterVar(a *Arena, name string, typ types.Type) *Base {
	return a.Register(Var, name, Validity{Kind: Known}, typ)
}

// RegisterString admits a C string literal into the arena.
func RegisterString(a *Arena, literal string) *Base {
	hi := int64(len(literal))*8 - 1
	return a.Register(String, literal, Validity{Kind: Known, Lo: 0, Hi: hi}, types.NewArray(types.Typ[types.Int8], int64(len(literal))))
}

// RegisterNull admits the singleton NULL base. Free/realloc treat it
// specially: it is never a member of MallocedBases, and callers
// ordinarily track "is this NULL" via Value.Null rather than by
// comparing against this id.
func RegisterNull(a *Arena) *Base {
	return a.Register(Null, "NULL", Validity{Kind: Empty}, nil)
}

// RegisterLogicVar admits a C logic/ghost variable appearing only in
// specification annotations, never in the heap.
func RegisterLogicVar(a *Arena, name string, typ types.Type) *Base {
	return a.Register(CLogicVar, name, Validity{Kind: Unknown}, typ)
}
