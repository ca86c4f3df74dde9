package lattice

import "testing"

func TestCreateIsotropicEmptyForZeroSize(t *testing.T) {
	om := CreateIsotropic(0, Bot())
	var got []run
	om.IterOnValues(func(lo, hi int64, v Value) {
		got = append(got, run{lo, hi, v})
	})
	if len(got) != 0 {
		t.Errorf("expected no runs for size 0, got %v", got)
	}
}

func TestAddOverwritesOverlap(t *testing.T) {
	om := CreateIsotropic(64, Bot())
	om = om.Add(0, 31, Uninit())

	var runs []run
	om.IterOnValues(func(lo, hi int64, v Value) {
		runs = append(runs, run{lo, hi, v})
	})

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs after split, got %d: %v", len(runs), runs)
	}
	if runs[0].lo != 0 || runs[0].hi != 31 || runs[0].v.Kind != Uninitialized {
		t.Errorf("unexpected first run: %+v", runs[0])
	}
	if runs[1].lo != 32 || runs[1].hi != 63 || runs[1].v.Kind != BottomKind {
		t.Errorf("unexpected second run: %+v", runs[1])
	}
}

func TestPasteJoinsOverlappingSources(t *testing.T) {
	dest := CreateIsotropic(32, Bot())
	src1 := CreateIsotropic(32, Uninit())
	src1 = src1.Add(0, 31, InjectIval(Singleton(1)))
	src2 := CreateIsotropic(32, Uninit())
	src2 = src2.Add(0, 31, InjectIval(Singleton(2)))

	dest = dest.Paste(src1, 32)
	dest = dest.Paste(src2, 32)

	var got Value
	dest.IterOnValues(func(lo, hi int64, v Value) {
		got = v
	})

	if got.Kind != Integer {
		t.Fatalf("expected joined integer value, got %v", got)
	}
	if got.Ival.Lo != 1 || got.Ival.Hi != 2 {
		t.Errorf("expected join [1,2], got %v", got.Ival)
	}
}

func TestAddUninitializedIdempotentUnderJoin(t *testing.T) {
	om := CreateIsotropic(32, Bot()).Add(0, 31, Uninit())
	joined := om.Join(om)

	type span struct {
		lo, hi int64
		kind   Kind
	}
	var a, b []span
	om.IterOnValues(func(lo, hi int64, v Value) { a = append(a, span{lo, hi, v.Kind}) })
	joined.IterOnValues(func(lo, hi int64, v Value) { b = append(b, span{lo, hi, v.Kind}) })

	if len(a) != len(b) {
		t.Fatalf("join with self changed run count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs after self-join: %+v vs %+v", i, a[i], b[i])
		}
	}
}
