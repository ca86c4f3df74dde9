package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// LeakReport lists every malloced base the Leak Check found
// unreachable from any other base's offset-map in the given state.
type LeakReport struct {
	Leaked []leakedBase
}

type leakedBase struct {
	Name string
}

// CheckLeak is the standalone Leak Check (spec §4.10): for each base
// ever registered as malloced, decide whether it is reachable from
// any offset-map of any *other* base currently in state. A base
// reachable from none is reported as a leak.
//
// This is O(bases × state-size) and, like the source, does not detect
// cycles among malloced bases reachable only from one another — a
// documented limitation (spec §9), not a bug: a two-node malloced
// cycle with no external reference is invisible to this check.
func (ctx *Context) CheckLeak(state lattice.Model) LeakReport {
	reachable := make(map[uint32]bool)

	state.ForEachBase(func(holder location.BaseID, om lattice.OffsetMap) {
		om.IterOnValues(func(_, _ int64, v lattice.Value) {
			if v.Kind != lattice.Pointer {
				return
			}
			for target := range v.Ptrs {
				if target == holder {
					continue
				}
				reachable[target.Hash()] = true
			}
		})
	})

	var report LeakReport
	for _, id := range ctx.MallocedBases() {
		if !reachable[id.Hash()] {
			b := ctx.Arena.Get(id)
			report.Leaked = append(report.Leaked, leakedBase{Name: b.Name})
			ctx.Metrics.Leaks++
		}
	}
	return report
}
