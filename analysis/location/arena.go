package location

import "go/types"

// Arena is the process-wide owner of every Allocated Base. Per the
// Design Notes it backs the "stable BaseId + mutable metadata" option:
// the memory state and the CallstackRegistry only ever hold a BaseID,
// so renaming, weakening, and widening a Base in place never requires
// rewriting any reference to it.
//
// Arena grows only by insertion (spec §5): no entry is ever removed,
// even after the base is freed, since the base may still be reachable
// as an ESCAPINGADDR target or through the leak check.
type Arena struct {
	bases []*Base
}

// NewArena creates an empty base arena.
func NewArena() *Arena {
	return &Arena{}
}

// Coin mints a fresh Allocated base and assigns it the next BaseID.
func (a *Arena) Coin(name string, validity Validity, typ types.Type) *Base {
	return a.Register(Allocated, name, validity, typ)
}

// Register gives any Base kind a stable BaseID. The engine only mints
// Allocated bases this way (via Coin); tests and the CLI driver use
// Register directly to admit the four other, input-only kinds (a
// stack variable's address, a string literal, NULL, a logic variable)
// into the same id space the Free/Realloc Engines resolve pointer
// fragments against.
func (a *Arena) Register(kind BaseKind, name string, validity Validity, typ types.Type) *Base {
	b := &Base{
		ID:       BaseID(len(a.bases)),
		Kind:     kind,
		Name:     name,
		Validity: validity,
		Typ:      typ,
	}
	a.bases = append(a.bases, b)
	return b
}

// Get resolves a BaseID to its mutable Base record. Panics if the id
// was never coined by this arena: that is always an invariant
// violation in the caller, never a recoverable condition.
func (a *Arena) Get(id BaseID) *Base {
	if int(id) >= len(a.bases) {
		panic("location: invalid BaseID")
	}
	return a.bases[id]
}

// Rename overwrites a Base's name in place (e.g. inserting the "_w"
// weak suffix). Mutation is monotone: callers never un-suffix a name.
func (a *Arena) Rename(id BaseID, name string) {
	a.Get(id).Name = name
}

// Reshape overwrites a Base's validity and type in place.
func (a *Arena) Reshape(id BaseID, v Validity, typ types.Type) {
	b := a.Get(id)
	b.Validity = v
	b.Typ = typ
}

// Len reports how many bases have been coined so far.
func (a *Arena) Len() int {
	return len(a.bases)
}
