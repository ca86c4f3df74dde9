// Package lattice implements the out-of-scope V/Model/OffsetMap
// collaborators (spec §6) with concrete, if simplified, types: a size
// interval, an abstract pointer/uninitialized value, an isotropic
// offset-map, and a Model backed by the persistent tree the teacher
// analyzer uses for its own per-path abstract memory.
package lattice

import "fmt"

// Interval is the [min,max] byte/bit interval of spec §4.1's Size
// Inference, adapted from the teacher's interval lattice but trimmed
// to the finite-bounds-only shape this domain actually needs: every
// size is capped at MaxByteSize, so no infinite bound ever arises.
type Interval struct {
	Lo, Hi int64
}

// NewInterval builds the interval [lo, hi].
func NewInterval(lo, hi int64) Interval {
	return Interval{Lo: lo, Hi: hi}
}

// Singleton builds the interval containing exactly v.
func Singleton(v int64) Interval {
	return Interval{Lo: v, Hi: v}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d]", i.Lo, i.Hi)
}

// IsSingleton reports whether the interval denotes exactly one value.
func (i Interval) IsSingleton() bool {
	return i.Lo == i.Hi
}

// Leq computes i ⊑ o: i's bounds are contained within o's.
func (i Interval) Leq(o Interval) bool {
	return o.Lo <= i.Lo && i.Hi <= o.Hi
}

// Eq computes i = o.
func (i Interval) Eq(o Interval) bool {
	return i.Lo == o.Lo && i.Hi == o.Hi
}

// Join computes the widening union of two size intervals.
func (i Interval) Join(o Interval) Interval {
	lo := i.Lo
	if o.Lo < lo {
		lo = o.Lo
	}
	hi := i.Hi
	if o.Hi > hi {
		hi = o.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

// DivisibleBy reports whether both bounds of the interval are exact
// multiples of n, the condition guess_intended_malloc_type (spec
// §4.1) uses to pick the destination's element type over char.
func (i Interval) DivisibleBy(n int64) bool {
	if n == 0 {
		return false
	}
	return i.Lo%n == 0 && i.Hi%n == 0
}
