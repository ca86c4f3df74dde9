package lattice

// OffsetMap is the out-of-scope collaborator (spec §6) representing
// one base's contents as a set of disjoint bit ranges, each carrying
// a Value. It is deliberately simple (a sorted run list) rather than
// a balanced interval tree: bases in this domain have at most a
// handful of writes (painter + a couple of copies), so the run list
// never grows large enough to matter.
type OffsetMap struct {
	runs []run
}

type run struct {
	lo, hi int64 // inclusive bit range
	v      Value
}

// CreateIsotropic builds an offset-map covering [0, size-1] bits,
// every bit carrying the same value v. size == 0 yields an empty map
// (spec §4.5's handling of malloc(0)).
func CreateIsotropic(size int64, v Value) OffsetMap {
	if size <= 0 {
		return OffsetMap{}
	}
	return OffsetMap{runs: []run{{lo: 0, hi: size - 1, v: v}}}
}

// Add overwrites [lo, hi] with v, splitting any overlapping runs.
// This models both strong overwrite (painter's initial write, a fresh
// destination's pre-copy clear) and weak paste when the caller has
// already joined v with the destination's prior value beforehand.
func (m OffsetMap) Add(lo, hi int64, v Value) OffsetMap {
	if lo > hi {
		return m
	}
	var out []run
	for _, r := range m.runs {
		switch {
		case r.hi < lo || r.lo > hi:
			out = append(out, r)
		default:
			if r.lo < lo {
				out = append(out, run{lo: r.lo, hi: lo - 1, v: r.v})
			}
			if r.hi > hi {
				out = append(out, run{lo: hi + 1, hi: r.hi, v: r.v})
			}
		}
	}
	out = append(out, run{lo: lo, hi: hi, v: v})
	return OffsetMap{runs: sortedRuns(out)}
}

// Paste weak-pastes src's contents (clipped to [0, nbits-1] bits) onto
// this map starting at offset 0, joining with whatever is already
// present at each overlapping bit rather than overwriting it — the
// "weak paste" of spec §4.9's realloc copy loop, so that when several
// sources contribute to the same destination range, the result is
// their join.
func (m OffsetMap) Paste(src OffsetMap, nbits int64) OffsetMap {
	out := m
	for _, r := range src.runs {
		lo, hi := r.lo, r.hi
		if hi >= nbits {
			hi = nbits - 1
		}
		if lo > hi {
			continue
		}
		out = out.joinRange(lo, hi, r.v)
	}
	return out
}

// joinRange joins v into [lo, hi], splitting overlaps and joining
// where a prior run already covers part of the range.
func (m OffsetMap) joinRange(lo, hi int64, v Value) OffsetMap {
	var out []run
	for _, r := range m.runs {
		switch {
		case r.hi < lo || r.lo > hi:
			out = append(out, r)
		default:
			if r.lo < lo {
				out = append(out, run{lo: r.lo, hi: lo - 1, v: r.v})
			}
			overlapLo, overlapHi := max64(r.lo, lo), min64(r.hi, hi)
			out = append(out, run{lo: overlapLo, hi: overlapHi, v: r.v.Join(v)})
			if r.hi > hi {
				out = append(out, run{lo: hi + 1, hi: r.hi, v: r.v})
			}
			lo = overlapHi + 1
		}
	}
	if lo <= hi {
		out = append(out, run{lo: lo, hi: hi, v: v})
	}
	return OffsetMap{runs: sortedRuns(out)}
}

// Join computes the per-bit join of two offset-maps.
func (m OffsetMap) Join(o OffsetMap) OffsetMap {
	out := m
	for _, r := range o.runs {
		out = out.joinRange(r.lo, r.hi, r.v)
	}
	return out
}

// IterOnValues calls f for every disjoint (lo, hi, value) run, in
// ascending offset order.
func (m OffsetMap) IterOnValues(f func(lo, hi int64, v Value)) {
	for _, r := range sortedRuns(m.runs) {
		f(r.lo, r.hi, r.v)
	}
}

// Rewrite replaces every run whose whole value matches pred with repl
// across the whole map, the mechanism the Free Engine uses to turn
// dangling pointers into ESCAPINGADDR.
func (m OffsetMap) Rewrite(pred func(v Value) bool, repl Value) OffsetMap {
	out := OffsetMap{runs: make([]run, len(m.runs))}
	for i, r := range m.runs {
		if pred(r.v) {
			out.runs[i] = run{lo: r.lo, hi: r.hi, v: repl}
		} else {
			out.runs[i] = r
		}
	}
	return out
}

func sortedRuns(runs []run) []run {
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runs[j-1].lo > runs[j].lo; j-- {
			runs[j-1], runs[j] = runs[j], runs[j-1]
		}
	}
	return runs
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
