package lattice

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/heapabs/analysis/location"
)

// Kind discriminates the handful of shapes an abstract Value can take
// in this domain: a set of pointer fragments, an integer interval, or
// one of the two sentinel markers from the glossary.
type Kind int

const (
	BottomKind Kind = iota
	Pointer
	Integer
	Uninitialized
	EscapingAddr
)

// Value is the out-of-scope AbstractValue collaborator (spec §6),
// concretely implemented. A Pointer value is a join of (base, offset
// interval) fragments, optionally "Top" when the set of possible
// bases cannot be enumerated precisely.
type Value struct {
	Kind Kind
	Ptrs map[location.BaseID]Interval
	Top  bool
	Null bool
	Ival Interval
}

// Bot is the empty/unreachable abstract value.
func Bot() Value { return Value{Kind: BottomKind} }

// Uninit is the UNINITIALIZED marker written by the Uninitialization
// Painter across a freshly allocated or resized range.
func Uninit() Value { return Value{Kind: Uninitialized} }

// Escaping is the ESCAPINGADDR marker the Free Engine rewrites
// dangling pointer references to.
func Escaping() Value { return Value{Kind: EscapingAddr} }

// Inject builds a singleton pointer value to base with offset ival.
func Inject(base location.BaseID, ival Interval) Value {
	return Value{Kind: Pointer, Ptrs: map[location.BaseID]Interval{base: ival}}
}

// InjectIval builds an integer-interval value, e.g. a size argument.
func InjectIval(ival Interval) Value {
	return Value{Kind: Integer, Ival: ival}
}

// SingletonZero is the zero value used to seed an offset before it is
// joined with concrete fragments.
func SingletonZero() Value {
	return InjectIval(Singleton(0))
}

// ProjectIval projects v to an integer interval; ok is false if v
// carries no integer component (spec §4.1's extract_size defaults to
// (0, max_byte_size) in that case).
func (v Value) ProjectIval() (Interval, bool) {
	if v.Kind != Integer {
		return Interval{}, false
	}
	return v.Ival, true
}

// FoldTopsetOK folds f over every (base, offset) fragment of a
// pointer value, short-circuiting early with ok=false the moment
// either f does or v is the imprecise Top pointer set — the concrete
// stand-in for the source's exception-based "Not_found ⇒ bail" fold
// (Design Notes: "exception-for-control-flow").
func (v Value) FoldTopsetOK(f func(location.BaseID, Interval) bool) bool {
	if v.Top {
		return false
	}
	for b, iv := range v.Ptrs {
		if !f(b, iv) {
			return false
		}
	}
	return true
}

// HasNull reports whether NULL is one of the alternatives this value
// denotes. Free/realloc track NULL out of band from Ptrs since NULL
// is not itself a Base in MallocedBases.
func (v Value) HasNull() bool {
	return v.Kind == Pointer && v.Null
}

// WithNull returns a copy of v with the NULL alternative added.
func (v Value) WithNull() Value {
	v.Null = true
	return v
}

// Join computes the union of two abstract values. Joining a Bottom
// value with anything yields the other operand; joining two Pointer
// values unions their fragment sets (taking the per-base interval
// join); joining two Integer values widens the interval.
func (v Value) Join(o Value) Value {
	if v.Kind == BottomKind {
		return o
	}
	if o.Kind == BottomKind {
		return v
	}
	if v.Kind == Uninitialized && o.Kind == Uninitialized {
		return v
	}
	if v.Kind == EscapingAddr && o.Kind == EscapingAddr {
		return v
	}
	if v.Kind == Integer && o.Kind == Integer {
		return InjectIval(v.Ival.Join(o.Ival))
	}
	if v.Kind == Pointer && o.Kind == Pointer {
		merged := make(map[location.BaseID]Interval, len(v.Ptrs)+len(o.Ptrs))
		for b, iv := range v.Ptrs {
			merged[b] = iv
		}
		for b, iv := range o.Ptrs {
			if prev, ok := merged[b]; ok {
				merged[b] = prev.Join(iv)
			} else {
				merged[b] = iv
			}
		}
		return Value{Kind: Pointer, Ptrs: merged, Top: v.Top || o.Top, Null: v.Null || o.Null}
	}
	// Heterogeneous join (e.g. a union of a pointer and UNINITIALIZED,
	// as when a weak destination's range partially overlaps a prior
	// write): widen to Top-pointer if either side is a pointer, else
	// return the right-hand operand o unchanged.
	if v.Kind == Pointer {
		v.Top = true
		return v
	}
	if o.Kind == Pointer {
		o.Top = true
		return o
	}
	return o
}

func (v Value) String() string {
	switch v.Kind {
	case BottomKind:
		return "⊥"
	case Uninitialized:
		return "UNINITIALIZED"
	case EscapingAddr:
		return "ESCAPINGADDR"
	case Integer:
		return v.Ival.String()
	case Pointer:
		parts := make([]string, 0, len(v.Ptrs))
		for b, iv := range v.Ptrs {
			parts = append(parts, fmt.Sprintf("&%d+%s", b, iv))
		}
		if v.Null {
			parts = append(parts, "NULL")
		}
		if v.Top {
			parts = append(parts, "⊤")
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
