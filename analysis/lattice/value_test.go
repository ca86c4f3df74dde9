package lattice

import (
	"testing"

	"github.com/cs-au-dk/heapabs/analysis/location"
)

func TestJoinWithBottomIsIdentity(t *testing.T) {
	v := InjectIval(Singleton(4))
	if got := Bot().Join(v); got.Kind != Integer || got.Ival != v.Ival {
		t.Errorf("Bot().Join(v) = %v, want %v", got, v)
	}
	if got := v.Join(Bot()); got.Kind != Integer || got.Ival != v.Ival {
		t.Errorf("v.Join(Bot()) = %v, want %v", got, v)
	}
}

func TestJoinPointerUnionsFragmentsAndWidensShared(t *testing.T) {
	a := Inject(1, NewInterval(0, 31))
	b := Inject(1, NewInterval(0, 63)).Join(Inject(2, Singleton(0)))

	got := a.Join(b)
	if got.Kind != Pointer {
		t.Fatalf("expected Pointer kind, got %v", got.Kind)
	}
	if iv, ok := got.Ptrs[1]; !ok || !iv.Eq(NewInterval(0, 63)) {
		t.Errorf("expected base 1 widened to [0,63], got %v", got.Ptrs[1])
	}
	if _, ok := got.Ptrs[2]; !ok {
		t.Errorf("expected base 2 fragment to survive the union")
	}
}

func TestJoinHeterogeneousPointerBecomesTop(t *testing.T) {
	ptr := Inject(1, Singleton(0))
	got := ptr.Join(Uninit())
	if !got.Top {
		t.Errorf("expected heterogeneous join of Pointer/Uninitialized to set Top, got %v", got)
	}
}

func TestFoldTopsetOKShortCircuitsOnTop(t *testing.T) {
	v := Inject(1, Singleton(0))
	v.Top = true

	called := false
	ok := v.FoldTopsetOK(func(_ location.BaseID, _ Interval) bool {
		called = true
		return true
	})
	if ok {
		t.Errorf("expected FoldTopsetOK to report false when Top is set")
	}
	if called {
		t.Errorf("expected FoldTopsetOK to never invoke f when Top is set")
	}
}

func TestFoldTopsetOKStopsOnFirstFalse(t *testing.T) {
	v := Inject(1, Singleton(0)).Join(Inject(2, Singleton(4)))

	seen := 0
	ok := v.FoldTopsetOK(func(_ location.BaseID, _ Interval) bool {
		seen++
		return false
	})
	if ok {
		t.Errorf("expected FoldTopsetOK to report false")
	}
	if seen != 1 {
		t.Errorf("expected exactly one call before short-circuit, got %d", seen)
	}
}

func TestProjectIvalDefaultsWhenNotInteger(t *testing.T) {
	if _, ok := Uninit().ProjectIval(); ok {
		t.Errorf("expected ProjectIval to fail on a non-Integer value")
	}
	iv, ok := InjectIval(Singleton(8)).ProjectIval()
	if !ok || !iv.Eq(Singleton(8)) {
		t.Errorf("expected ProjectIval to return [8,8], got %v, %v", iv, ok)
	}
}

func TestWithNullAndHasNull(t *testing.T) {
	v := Inject(1, Singleton(0))
	if v.HasNull() {
		t.Errorf("fresh pointer value should not carry NULL")
	}
	v = v.WithNull()
	if !v.HasNull() {
		t.Errorf("expected WithNull to set the NULL alternative")
	}
}
