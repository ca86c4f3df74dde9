package absint

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// Weakness selects the initial strong/weak status a freshly coined
// base is given.
type Weakness bool

const (
	Strong Weakness = false
	Weak   Weakness = true
)

// nameFor generates the Base Factory's name: prefix + site, "_w" if
// weak, and a "#index" suffix: the base's slot in the
// CallstackRegistry's reuse pool at that site for AllocByStack, or its
// position in the Arena for the unmemoized AllocSize (spec §4.2).
func nameFor(prefix, site string, index int, weak bool) string {
	base := prefix + "_" + site
	if weak {
		base += "_w"
	}
	return fmt.Sprintf("%s#%d", base, index)
}

// promoteName inserts the "_w" weak segment into an existing name,
// right before its "#index" suffix, per spec §3's invariant that a
// promoted name contains exactly one "_w" segment after the prefix.
func promoteName(name string) string {
	if strings.Contains(name, "_w#") {
		return name
	}
	i := strings.LastIndex(name, "#")
	if i < 0 {
		return name + "_w"
	}
	return name[:i] + "_w" + name[i:]
}

// AllocAbstract is the Base Factory's alloc_abstract (spec §4.2): it
// derives a TypedSize, generates a name, computes bit bounds, coins
// the base in the Arena, and records it globally as malloced.
// index is the base's position in its callstack's reuse pool, or, for
// AllocSize, its position in the Arena. A weak base always gets an
// unsized array type, whatever element count ts carries.
func (ctx *Context) AllocAbstract(site callstack.Callstack, index int, weak Weakness, prefix string, ts TypedSize) (*location.Base, int64) {
	name := nameFor(prefix, site.Top().Site, index, bool(weak))

	minAlloc, maxAlloc := bitBounds(ts.MinBytes, ts.MaxBytes)

	if weak {
		ts.HasNbElems = false
	}

	b := ctx.Arena.Coin(name, location.NewVariable(minAlloc, maxAlloc), ts.ElementType())
	b.Validity.Weak = bool(weak)
	ctx.MarkMalloced(b.ID)

	return b, maxAlloc
}

// bitBounds converts byte bounds to the bit bounds spec §4.2
// describes: min_alloc = 8*smin - 1, max_alloc = 8*smax - 1. Both may
// be -1 when the byte size is 0 (spec §8's malloc(0) boundary case).
func bitBounds(smin, smax int64) (int64, int64) {
	return 8*smin - 1, 8*smax - 1
}

