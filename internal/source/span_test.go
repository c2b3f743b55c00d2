package source

import "testing"

func TestLocTo(t *testing.T) {
	l := Loc{File: 2, Off: 4}
	sp := l.To(Loc{File: 2, Off: 9})
	if sp != (Span{File: 2, Start: 4, End: 9}) {
		t.Fatalf("To = %+v", sp)
	}
	if sp.Len() != 5 || sp.Empty() {
		t.Fatalf("Len=%d Empty=%v", sp.Len(), sp.Empty())
	}
	if sp.StartLoc() != l || sp.EndLoc().Off != 9 {
		t.Fatalf("StartLoc/EndLoc mismatch: %v %v", sp.StartLoc(), sp.EndLoc())
	}
}

func TestLocThroughIncludesLastByte(t *testing.T) {
	// "(x)": '(' at 0, ')' at 2
	sp := Loc{Off: 0}.Through(Loc{Off: 2})
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("Through = %+v, want [0,3)", sp)
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("Cover = %+v", c)
	}
	if !c.Contains(a) || !c.Contains(b) || a.Contains(c) {
		t.Fatalf("Contains relation broken")
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatalf("Cover across files must be a no-op")
	}
}

func TestSpanEmpty(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Fatalf("zero-length span must be empty")
	}
	if (Span{Start: 4, End: 3}).Len() != 0 {
		t.Fatalf("inverted span must have zero length")
	}
}
