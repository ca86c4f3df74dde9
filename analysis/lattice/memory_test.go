package lattice

import (
	"testing"

	"github.com/cs-au-dk/heapabs/analysis/location"
)

func TestFindBaseMissingIsNotOK(t *testing.T) {
	m := Bottom()
	if _, ok := m.FindBase(7); ok {
		t.Errorf("expected FindBase to report not-ok on an empty state")
	}
}

func TestAddFindRemoveBase(t *testing.T) {
	m := Bottom()
	om := CreateIsotropic(32, Uninit())

	m = m.AddBase(1, om)
	got, ok := m.FindBase(1)
	if !ok {
		t.Fatalf("expected base 1 to be bound")
	}
	var kinds []Kind
	got.IterOnValues(func(_, _ int64, v Value) { kinds = append(kinds, v.Kind) })
	if len(kinds) != 1 || kinds[0] != Uninitialized {
		t.Errorf("unexpected bound offset-map contents: %v", kinds)
	}

	m = m.RemoveBase(1)
	if _, ok := m.FindBase(1); ok {
		t.Errorf("expected base 1 to be unbound after RemoveBase")
	}
}

func TestJoinKeepsUnilateralBindingsAndMergesShared(t *testing.T) {
	left := Bottom().AddBase(1, CreateIsotropic(32, InjectIval(Singleton(1))))
	right := Bottom().AddBase(1, CreateIsotropic(32, InjectIval(Singleton(2)))).
		AddBase(2, CreateIsotropic(32, Uninit()))

	joined := left.Join(right)

	if joined.Size() != 2 {
		t.Fatalf("expected 2 bases after join, got %d", joined.Size())
	}

	om1, ok := joined.FindBase(1)
	if !ok {
		t.Fatalf("expected base 1 present")
	}
	var v Value
	om1.IterOnValues(func(_, _ int64, got Value) { v = got })
	if v.Kind != Integer || v.Ival.Lo != 1 || v.Ival.Hi != 2 {
		t.Errorf("expected shared base to widen to [1,2], got %v", v)
	}

	if _, ok := joined.FindBase(2); !ok {
		t.Errorf("expected base 2 (bound only on the right) to survive the join")
	}
}

func TestRewriteEscapingTargetsFreedBasesOnly(t *testing.T) {
	m := Bottom().
		AddBase(1, CreateIsotropic(32, Inject(99, Singleton(0)))).
		AddBase(2, CreateIsotropic(32, Inject(100, Singleton(0))))

	freed := map[location.BaseID]bool{99: true}
	m = m.RewriteEscaping(freed)

	om1, _ := m.FindBase(1)
	var v1 Value
	om1.IterOnValues(func(_, _ int64, got Value) { v1 = got })
	if v1.Kind != EscapingAddr {
		t.Errorf("expected base 1's dangling reference to become ESCAPINGADDR, got %v", v1)
	}

	om2, _ := m.FindBase(2)
	var v2 Value
	om2.IterOnValues(func(_, _ int64, got Value) { v2 = got })
	if v2.Kind != Pointer {
		t.Errorf("expected base 2's live reference to survive untouched, got %v", v2)
	}
}

func TestForEachBaseVisitsAllBindings(t *testing.T) {
	m := Bottom().
		AddBase(1, CreateIsotropic(8, Bot())).
		AddBase(2, CreateIsotropic(8, Bot()))

	seen := map[location.BaseID]bool{}
	m.ForEachBase(func(id location.BaseID, _ OffsetMap) { seen[id] = true })

	if !seen[1] || !seen[2] || len(seen) != 2 {
		t.Errorf("expected ForEachBase to visit exactly {1,2}, got %v", seen)
	}
}
