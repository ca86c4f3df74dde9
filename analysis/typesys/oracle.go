// Package typesys is the out-of-scope TypeOracle collaborator (spec
// §6) given a concrete, if simplified, implementation: go/types.Type
// stands in for the C type system, the way allocation-site locations
// use go/types.Type throughout the teacher analyzer.
package typesys

import (
	"go/types"
)

// MaxByteSize bounds the byte interval Size Inference ever produces
// when it cannot project a concrete value (spec §4.1).
const MaxByteSize = 1 << 32

// Oracle answers the type questions the allocation-base lifecycle
// engine needs of its host analyzer: the byte size of a type, whether
// a type is void, how to peel pointer/array wrappers, and the fixed
// C `long` width used to interpret size arguments.
type Oracle struct {
	cache *sizeCache
}

// NewOracle creates a TypeOracle with an empty size cache.
func NewOracle() *Oracle {
	return &Oracle{cache: newSizeCache()}
}

// BytesSizeOf returns sizeof(t) in bytes, memoized in the oracle's
// empty_size_cache. Composite/array types recurse into element size.
func (o *Oracle) BytesSizeOf(t types.Type) int64 {
	if t == nil {
		return 1
	}
	if sz, ok := o.cache.lookup(t); ok {
		return sz
	}

	var sz int64
	switch tt := t.Underlying().(type) {
	case *types.Basic:
		sz = basicSize(tt)
	case *types.Pointer:
		sz = 8
	case *types.Array:
		sz = tt.Len() * o.BytesSizeOf(tt.Elem())
	case *types.Slice:
		sz = o.BytesSizeOf(tt.Elem())
	case *types.Struct:
		var total int64
		for i := 0; i < tt.NumFields(); i++ {
			total += o.BytesSizeOf(tt.Field(i).Type())
		}
		sz = total
	default:
		sz = 1
	}

	o.cache.store(t, sz)
	return sz
}

func basicSize(b *types.Basic) int64 {
	switch b.Kind() {
	case types.Bool, types.Int8, types.Uint8:
		return 1
	case types.Int16, types.Uint16:
		return 2
	case types.Int32, types.Uint32, types.Float32:
		return 4
	case types.Int64, types.Uint64, types.Float64, types.Int, types.Uint:
		return 8
	default:
		return 1
	}
}

// UnrollType peels Named wrappers down to the type's underlying shape,
// the way the analyzer resolves typedefs before inspecting a C type.
func (o *Oracle) UnrollType(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return t.Underlying()
}

// IsVoidType reports whether t stands in for C's `void`, modeled here
// as the empty interface (no fields, no methods).
func (o *Oracle) IsVoidType(t types.Type) bool {
	if t == nil {
		return true
	}
	iface, ok := o.UnrollType(t).(*types.Interface)
	return ok && iface.NumMethods() == 0
}

// ElemType returns the element type of a pointer or array lvalue type,
// used by guess_intended_malloc_type to recover `T` from `T*`.
func (o *Oracle) ElemType(t types.Type) (types.Type, bool) {
	switch tt := o.UnrollType(t).(type) {
	case *types.Pointer:
		return tt.Elem(), true
	case *types.Array:
		return tt.Elem(), true
	case *types.Slice:
		return tt.Elem(), true
	default:
		return nil, false
	}
}

// CharType is the fallback element type chosen when no typed
// destination lvalue can be inferred (spec §4.1).
func CharType() types.Type {
	return types.Typ[types.Int8]
}

// PointerTo builds the guessed C pointer type `T*`.
func PointerTo(t types.Type) types.Type {
	return types.NewPointer(t)
}

// ArrayType builds the guessed C array type `T[n]` for a known
// element count, or `T[]` (an unsized slice stand-in) when n < 0.
func ArrayType(elem types.Type, n int64) types.Type {
	if n < 0 {
		return types.NewSlice(elem)
	}
	return types.NewArray(elem, n)
}

// Kinteger64 is the fixed width (in bits) of the C `long`/size_t type
// used to interpret raw size arguments, per spec §6's `kinteger64`.
const Kinteger64 = 64
