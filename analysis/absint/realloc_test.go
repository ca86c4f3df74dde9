package absint

import (
	"testing"

	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// TestReallocSinglePreservesSourceBytesWithUninitializedPadding mirrors
// realloc(p, 8) where p held a known 32-bit value at offset [0,31]:
// the grown destination must carry p's exact content at the low end
// and UNINITIALIZED padding above it, and p itself must be freed.
func TestReallocSinglePreservesSourceBytesWithUninitializedPadding(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	p := ctx.Arena.Coin("p#0", location.NewVariable(31, 31), nil)
	ctx.MarkMalloced(p.ID)

	content := lattice.InjectIval(lattice.NewInterval(0xAA, 0xAA))
	state := lattice.Bottom().AddBase(p.ID, lattice.CreateIsotropic(32, content))

	oracle := allocOracle("Lrealloc")
	sizev := lattice.InjectIval(lattice.Singleton(8))

	destID, state := ctx.ReallocSingle(testStack("Lrealloc"), oracle, state, sizev, p.ID, ctx.Config.Mlevel)

	destBase := ctx.Arena.Get(destID)
	if !destBase.Validity.Weak {
		t.Fatalf("a single-source realloc must produce a weak destination")
	}

	destOM, ok := state.FindBase(destID)
	if !ok {
		t.Fatalf("expected the destination base to be bound")
	}

	type span struct {
		lo, hi int64
		kind   lattice.Kind
	}
	var spans []span
	destOM.IterOnValues(func(lo, hi int64, v lattice.Value) { spans = append(spans, span{lo, hi, v.Kind}) })

	if len(spans) != 2 {
		t.Fatalf("expected exactly 2 spans (copied content + padding), got %d: %v", len(spans), spans)
	}
	if spans[0].lo != 0 || spans[0].hi != 31 || spans[0].kind != lattice.Integer {
		t.Errorf("expected [0,31] to carry the copied Integer content, got %+v", spans[0])
	}
	if spans[1].lo != 32 || spans[1].hi != 63 || spans[1].kind != lattice.Uninitialized {
		t.Errorf("expected [32,63] to be UNINITIALIZED padding, got %+v", spans[1])
	}

	var copied lattice.Value
	destOM.IterOnValues(func(lo, hi int64, v lattice.Value) {
		if lo == 0 {
			copied = v
		}
	})
	if copied.Ival.Lo != 0xAA || copied.Ival.Hi != 0xAA {
		t.Errorf("expected the copied value to be exactly 0xAA, got %v", copied.Ival)
	}

	if _, ok := state.FindBase(p.ID); ok {
		t.Errorf("expected the single strong source to be freed outright")
	}
}

// TestReallocMultipleJoinsSourcesAndFreesThemWeakly mirrors
// realloc_multiple over {q, r}: the destination's content is the join
// of both sources, and since cardinality is always >= 2 for multiple
// sources, the sources are freed weakly (their own bindings survive).
func TestReallocMultipleJoinsSourcesAndFreesThemWeakly(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	q := ctx.Arena.Coin("q#0", location.NewVariable(31, 31), nil)
	r := ctx.Arena.Coin("r#0", location.NewVariable(31, 31), nil)
	ctx.MarkMalloced(q.ID)
	ctx.MarkMalloced(r.ID)

	state := lattice.Bottom().
		AddBase(q.ID, lattice.CreateIsotropic(32, lattice.InjectIval(lattice.Singleton(1)))).
		AddBase(r.ID, lattice.CreateIsotropic(32, lattice.InjectIval(lattice.Singleton(2))))

	oracle := allocOracle("Lrealloc_multi")
	sizev := lattice.InjectIval(lattice.Singleton(4))

	destID, state := ctx.ReallocMultiple(testStack("Lrealloc_multi"), oracle, state, sizev, []location.BaseID{q.ID, r.ID})

	destBase := ctx.Arena.Get(destID)
	if destBase.Validity.Weak {
		t.Errorf("realloc_multiple must mint a fresh strong destination")
	}

	destOM, ok := state.FindBase(destID)
	if !ok {
		t.Fatalf("expected the destination to be bound")
	}
	var joined lattice.Value
	destOM.IterOnValues(func(_, _ int64, v lattice.Value) { joined = v })
	if joined.Kind != lattice.Integer || joined.Ival.Lo != 1 || joined.Ival.Hi != 2 {
		t.Errorf("expected the destination to carry the join [1,2] of both sources, got %v", joined)
	}

	if _, ok := state.FindBase(q.ID); !ok {
		t.Errorf("a weakly-freed source must keep its own binding")
	}
	if _, ok := state.FindBase(r.ID); !ok {
		t.Errorf("a weakly-freed source must keep its own binding")
	}
}

func TestTisReallocZeroSizeWithoutNullBehavesAsFree(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	p := ctx.Arena.Coin("p#0", location.NewVariable(31, 31), nil)
	ctx.MarkMalloced(p.ID)
	state := lattice.Bottom().AddBase(p.ID, lattice.CreateIsotropic(32, lattice.Uninit()))

	oracle := allocOracle("Ltis")
	sizev := lattice.InjectIval(lattice.Singleton(0))

	alts, state := ctx.TisRealloc(testStack("Ltis"), oracle, state, sizev, []location.BaseID{p.ID}, false)
	if alts != nil {
		t.Errorf("expected tis_realloc(p, 0) with no NULL alternative to return no value alternatives, got %v", alts)
	}
	if _, ok := state.FindBase(p.ID); ok {
		t.Errorf("expected tis_realloc(p, 0) to free p outright")
	}
}

func TestTisReallocIncludesNullAlternativeWhenSourceMayBeNull(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	p := ctx.Arena.Coin("p#0", location.NewVariable(31, 31), nil)
	ctx.MarkMalloced(p.ID)
	state := lattice.Bottom().AddBase(p.ID, lattice.CreateIsotropic(32, lattice.Uninit()))

	oracle := allocOracle("Ltis2")
	sizev := lattice.InjectIval(lattice.NewInterval(0, 8))

	alts, _ := ctx.TisRealloc(testStack("Ltis2"), oracle, state, sizev, []location.BaseID{p.ID}, true)
	if len(alts) != 2 {
		t.Fatalf("expected the NULL-inclusion quirk to produce 2 alternatives, got %d", len(alts))
	}
	if !alts[1].Value.HasNull() {
		t.Errorf("expected the second alternative to carry the NULL alternative")
	}
}

func TestTisReallocWeakSourceIsFatal(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	weak := ctx.Arena.Coin("p_w#0", location.NewVariable(31, 31), nil)
	weak.Validity.Weak = true
	ctx.MarkMalloced(weak.ID)
	state := lattice.Bottom().AddBase(weak.ID, lattice.CreateIsotropic(32, lattice.Uninit()))

	oracle := allocOracle("Ltis3")
	sizev := lattice.InjectIval(lattice.Singleton(8))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic copying from a weak realloc source")
		}
		ae, ok := r.(*AnalysisError)
		if !ok || ae.Kind != WeakReallocUnsupported {
			t.Errorf("expected a WeakReallocUnsupported AnalysisError, got %v", r)
		}
	}()

	ctx.TisRealloc(testStack("Ltis3"), oracle, state, sizev, []location.BaseID{weak.ID}, false)
}
