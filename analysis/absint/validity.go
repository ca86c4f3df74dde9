package absint

import (
	"go/types"

	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
	"github.com/cs-au-dk/heapabs/analysis/typesys"
)

// UpdateVariableValidity is the Validity Updater's
// update_variable_validity (spec §4.3): it requires base is Allocated
// with Variable validity (else a fatal InvariantViolation), widens its
// bit bounds to include the newly observed size, and promotes it from
// strong to weak in place when makeWeak is set — renaming it and
// weakening its C type to an unsized array. The operation is
// monotone: bounds only ever widen, and a promotion to weak never
// reverses.
func (ctx *Context) UpdateVariableValidity(id location.BaseID, sizev lattice.Value, makeWeak bool) (*location.Base, int64) {
	b := ctx.Arena.Get(id)
	if b.Kind != location.Allocated || b.Validity.Kind != location.Variable {
		invariantViolation("update_variable_validity called on %s (kind=%s, validity=%s)", b.Name, b.Kind, b.Validity.Kind)
	}

	smin, smax := ctx.ExtractSize(sizev)
	newMin, newMax := bitBounds(smin, smax)

	old := b.Validity
	widenedMin, widenedMax := old.MinAlloc, old.MaxAlloc
	if newMin < widenedMin {
		widenedMin = newMin
	}
	if newMax > widenedMax {
		widenedMax = newMax
	}

	wasStrong := !old.Weak
	weak := makeWeak || old.Weak

	name := b.Name
	typ := b.Typ
	if makeWeak && wasStrong {
		name = promoteName(name)
		typ = typesys.ArrayType(weakenedElem(typ), -1)
		ctx.Metrics.Promotions++
	}

	ctx.Arena.Rename(id, name)
	ctx.Arena.Reshape(id, location.Validity{
		Kind:     location.Variable,
		Weak:     weak,
		MinAlloc: widenedMin,
		MaxAlloc: widenedMax,
	}, typ)

	return ctx.Arena.Get(id), widenedMax
}

// weakenedElem recovers the element type of an existing array/slice
// type, for rebuilding it as an unsized array on promotion. Scalars
// (no prior array wrapper) weaken to themselves as a length-1
// element type. A base with no recorded type (nil) weakens to a char
// element type.
func weakenedElem(typ types.Type) types.Type {
	if typ == nil {
		return typesys.CharType()
	}
	switch t := typ.Underlying().(type) {
	case *types.Array:
		return t.Elem()
	case *types.Slice:
		return t.Elem()
	default:
		return typ
	}
}
