package ast

import "testing"

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must not resolve any index")
	}
	i := a.Allocate(10)
	j := a.Allocate(20)
	if i != 1 || j != 2 || a.Len() != 2 {
		t.Fatalf("indices = %d,%d len=%d", i, j, a.Len())
	}
	*a.Get(j) = 21
	if got := a.Slice()[1]; got != 21 {
		t.Fatalf("Get must return a pointer into the arena, slice has %d", got)
	}
	a.Reset()
	if a.Len() != 0 || a.Get(1) != nil {
		t.Fatalf("Reset must drop all elements")
	}
}
