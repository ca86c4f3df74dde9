package location

import "testing"

func TestCoinAssignsSequentialIDs(t *testing.T) {
	a := NewArena()
	b0 := a.Coin("__malloc_L#0", NewVariable(0, 31), nil)
	b1 := a.Coin("__malloc_L#1", NewVariable(0, 31), nil)

	if b0.ID != 0 || b1.ID != 1 {
		t.Fatalf("expected sequential ids 0,1, got %d,%d", b0.ID, b1.ID)
	}
	if a.Len() != 2 {
		t.Fatalf("expected arena length 2, got %d", a.Len())
	}
}

func TestRenameAndReshapeMutateInPlace(t *testing.T) {
	a := NewArena()
	b := a.Coin("__malloc_L#0", NewVariable(0, 31), nil)

	a.Rename(b.ID, "__malloc_L_w#0")
	a.Reshape(b.ID, NewVariable(0, 63), nil)

	got := a.Get(b.ID)
	if got.Name != "__malloc_L_w#0" {
		t.Errorf("expected renamed base, got %q", got.Name)
	}
	if got.Validity.MaxAlloc != 63 {
		t.Errorf("expected widened max_alloc 63, got %d", got.Validity.MaxAlloc)
	}
	if got != b {
		t.Errorf("expected Rename/Reshape to mutate the same pointer Coin returned")
	}
}

func TestGetInvalidIDPanics(t *testing.T) {
	a := NewArena()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid BaseID")
		}
	}()
	a.Get(42)
}
