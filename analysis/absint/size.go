package absint

import (
	"go/types"

	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/typesys"
)

// TypedSize is spec §3's {min_bytes, max_bytes, elem_typ, nb_elems?}.
// GuessIntendedMallocType sets NbElems for a constant-size request
// whose bounds are equal (always a multiple of sizeof(elem_typ), since
// elem_typ falls back to char otherwise); AllocAbstract disregards it
// for a weak base.
type TypedSize struct {
	MinBytes, MaxBytes int64
	ElemTyp            types.Type
	NbElems            int64
	HasNbElems         bool
}

// ExtractSize projects an abstract size value to a [smin, smax] byte
// interval (spec §4.1). If sizev cannot be projected to an integer
// interval, it defaults to (0, MaxByteSize).
func (ctx *Context) ExtractSize(sizev lattice.Value) (smin, smax int64) {
	iv, ok := sizev.ProjectIval()
	if !ok {
		return 0, typesys.MaxByteSize
	}
	smin, smax = iv.Lo, iv.Hi
	if smin < 0 {
		smin = 0
	}
	if smax > typesys.MaxByteSize {
		smax = typesys.MaxByteSize
	}
	return smin, smax
}

// GuessIntendedMallocType implements spec §4.1's
// guess_intended_malloc_type: if the call site is an assignment whose
// lvalue has a non-void pointer type T* and both bounds are multiples
// of sizeof(T), pick T; otherwise pick char. destType is nil when no
// destination lvalue is known, or when the oracle can't resolve one.
func (ctx *Context) GuessIntendedMallocType(destType types.Type, smin, smax int64, constantSize bool) TypedSize {
	elem, ok := ctx.destinationElemType(destType)

	iv := lattice.NewInterval(smin, smax)
	elemSize := int64(1)
	if ok {
		elemSize = ctx.Types.BytesSizeOf(elem)
		if elemSize == 0 || !iv.DivisibleBy(elemSize) {
			ok = false
		}
	}
	if !ok {
		elem = typesys.CharType()
		elemSize = 1
	}

	ts := TypedSize{MinBytes: smin, MaxBytes: smax, ElemTyp: elem}
	if constantSize && smin == smax {
		ts.NbElems = smin / elemSize
		ts.HasNbElems = true
	}
	return ts
}

func (ctx *Context) destinationElemType(destType types.Type) (types.Type, bool) {
	if destType == nil {
		return nil, false
	}
	if ctx.Types.IsVoidType(destType) {
		return nil, false
	}
	elem, ok := ctx.Types.ElemType(destType)
	if !ok {
		return nil, false
	}
	if ctx.Types.IsVoidType(elem) {
		return nil, false
	}
	return elem, true
}

// ElementType picks the concrete C type to stamp on a coined base:
// scalar T if exactly one element, T[n] if n>1 known elements, an
// unsized T[] otherwise (spec §4.2).
func (ts TypedSize) ElementType() types.Type {
	if ts.HasNbElems {
		switch ts.NbElems {
		case 1:
			return ts.ElemTyp
		default:
			return typesys.ArrayType(ts.ElemTyp, ts.NbElems)
		}
	}
	return typesys.ArrayType(ts.ElemTyp, -1)
}
