package draft

import "testing"

func TestRectNormalizes(t *testing.T) {
	r := R(10, 20, 0, 5)
	if r.Min != Pt(0, 5) || r.Max != Pt(10, 20) {
		t.Errorf("R() = %v, want Min (0,5) Max (10,20)", r)
	}
	if r.Width() != 10 || r.Height() != 15 {
		t.Errorf("size = %vx%v, want 10x15", r.Width(), r.Height())
	}
}

func TestRectUnion(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, -5, 20, 8)
	got := a.Union(b)
	if got != R(0, -5, 20, 10) {
		t.Errorf("Union() = %v, want (0,-5)-(20,10)", got)
	}
	if EmptyRect().Union(a) != a || a.Union(EmptyRect()) != a {
		t.Error("EmptyRect must be the identity of Union")
	}
	if !EmptyRect().IsEmpty() {
		t.Error("EmptyRect().IsEmpty() = false")
	}
	if EmptyRect().Width() != 0 {
		t.Error("EmptyRect().Width() should be 0")
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", R(2, 2, 4, 4), true},
		{"partial", R(5, 5, 15, 15), true},
		{"touching edge", R(10, 0, 20, 10), false},
		{"apart", R(25, 0, 30, 10), false},
		{"empty", EmptyRect(), false},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectIncludeExpand(t *testing.T) {
	r := EmptyRect().Include(Pt(1, 1)).Include(Pt(-1, 3))
	if r != R(-1, 1, 1, 3) {
		t.Errorf("Include() = %v, want (-1,1)-(1,3)", r)
	}
	if got := r.Expand(1); got != R(-2, 0, 2, 4) {
		t.Errorf("Expand() = %v, want (-2,0)-(2,4)", got)
	}
	if !r.Contains(Pt(0, 2)) || r.Contains(Pt(5, 5)) {
		t.Error("Contains() gave the wrong answer")
	}
}
