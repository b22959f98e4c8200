package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSnap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{4.9, 0},
		{5, 10},
		{23, 20},
		{17, 20},
		{-4, 0},
		{-6, -10},
		{-15, -10},
		{104.99, 100},
	}
	for _, tt := range tests {
		if got := Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapStaysOnGrid(t *testing.T) {
	for d := -200.0; d <= 200; d += 0.7 {
		s := Snap(d)
		if math.Mod(s, GridGap) != 0 {
			t.Fatalf("Snap(%v) = %v is not a grid multiple", d, s)
		}
		if math.Abs(s-d) > GridGap/2 {
			t.Fatalf("Snap(%v) = %v is more than half a step away", d, s)
		}
	}
}

func TestAccumulatorReleasesWholeSteps(t *testing.T) {
	var acc Accumulator

	if _, _, ok := acc.Add(3, 3); ok {
		t.Fatal("3px should not release a step")
	}
	sx, sy, ok := acc.Add(3, 0)
	if !ok || sx != 10 || sy != 0 {
		t.Fatalf("got (%v, %v, %v), want (10, 0, true)", sx, sy, ok)
	}
	dx, dy := acc.Pending()
	if !almostEqual(dx, -4) || !almostEqual(dy, 3) {
		t.Fatalf("pending = (%v, %v), want (-4, 3)", dx, dy)
	}

	acc.Reset()
	if dx, dy := acc.Pending(); dx != 0 || dy != 0 {
		t.Fatalf("pending after reset = (%v, %v)", dx, dy)
	}
}

func TestIsColinear(t *testing.T) {
	start, end := Pt(13, -7), Pt(241.5, 96.25)
	for _, tt := range []float64{1.0 / 3, 2.0 / 3} {
		if !IsColinear(start, Lerp(start, end, tt), end, ColinearTolerance) {
			t.Errorf("interpolated point at t=%v should be colinear", tt)
		}
	}
	if IsColinear(Pt(0, 0), Pt(50, 1), Pt(150, 0), ColinearTolerance) {
		t.Error("offset midpoint should not be colinear")
	}
}

func TestArrowheadHorizontal(t *testing.T) {
	head := Arrowhead(Pt(120, 0), Pt(180, 0))
	want := [3]Point{{170, -5}, {180, 0}, {170, 5}}
	for i := range head {
		if !almostEqual(head[i].X, want[i].X) || !almostEqual(head[i].Y, want[i].Y) {
			t.Errorf("vertex %d = %+v, want %+v", i, head[i], want[i])
		}
	}
}

func TestArrowheadVertical(t *testing.T) {
	head := Arrowhead(Pt(0, 0), Pt(0, 100))
	want := [3]Point{{5, 90}, {0, 100}, {-5, 90}}
	for i := range head {
		if !almostEqual(head[i].X, want[i].X) || !almostEqual(head[i].Y, want[i].Y) {
			t.Errorf("vertex %d = %+v, want %+v", i, head[i], want[i])
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{50, 25, 100, 100}, true},
		{"touching edge", Rect{100, 0, 10, 10}, true},
		{"disjoint", Rect{101, 0, 10, 10}, false},
		{"zero height line", Rect{-10, 20, 200, 0}, true},
		{"contained", Rect{10, 10, 5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectFromCornersNormalizes(t *testing.T) {
	got := RectFromCorners(Pt(50, 80), Pt(10, 20))
	want := Rect{X: 10, Y: 20, Width: 40, Height: 60}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Translate(30, -12).Multiply(Scale(1.5, 1.5))
	p := Pt(7, 9)
	back := m.Invert().Apply(m.Apply(p))
	if !almostEqual(back.X, p.X) || !almostEqual(back.Y, p.Y) {
		t.Fatalf("round trip = %+v, want %+v", back, p)
	}
	if !m.Multiply(m.Invert()).IsIdentity() {
		t.Fatal("m * m^-1 should be identity")
	}
}
