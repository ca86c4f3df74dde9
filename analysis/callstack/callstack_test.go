package callstack

import "testing"

func TestNoWrappersStripsWrapperFrames(t *testing.T) {
	ws := NewWrapperSet([]string{"malloc", "xmalloc"})
	s := Callstack{
		{Func: "main", Site: "1"},
		{Func: "caller", Site: "2"},
		{Func: "xmalloc", Site: "3"},
		{Func: "malloc", Site: "4"},
	}

	got := ws.NoWrappers(s)
	want := Callstack{
		{Func: "main", Site: "1"},
		{Func: "caller", Site: "2"},
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNoWrappersNeverEmpties(t *testing.T) {
	ws := NewWrapperSet([]string{"malloc"})
	s := Callstack{
		{Func: "malloc", Site: "1"},
		{Func: "malloc", Site: "2"},
	}

	got := ws.NoWrappers(s)
	if len(got) == 0 {
		t.Fatal("NoWrappers must never reduce the stack to empty")
	}
	if len(got) != 1 {
		t.Errorf("expected exactly one frame left, got %d", len(got))
	}
}

func TestNoWrappersRequiresBothTopAndCallerAsWrappers(t *testing.T) {
	ws := NewWrapperSet([]string{"malloc"})
	s := Callstack{
		{Func: "caller", Site: "1"},
		{Func: "malloc", Site: "2"},
	}

	got := ws.NoWrappers(s)
	if !got.Equal(s) {
		t.Errorf("should not strip when the caller is not itself a wrapper, got %v", got)
	}
}

func TestRegistryAppendGrowsPoolInOrder(t *testing.T) {
	r := NewRegistry()
	s := Callstack{{Func: "main", Site: "L"}}

	r.Append(s, 10)
	r.Append(s, 11)

	pool := r.Pool(s)
	if len(pool) != 2 || pool[0] != 10 || pool[1] != 11 {
		t.Errorf("expected pool [10, 11], got %v", pool)
	}
}
