package control

import (
	"errors"
	"math"
	"testing"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

func mustShape(t *testing.T, kind string, x, y float64) *document.Entity {
	t.Helper()
	e, err := document.NewFactory(nil, "").CreateShape(kind, x, y)
	if err != nil {
		t.Fatalf("CreateShape(%s): %v", kind, err)
	}
	return e
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestResizeBottomRightSnaps(t *testing.T) {
	e := mustShape(t, "Rectangle", 0, 0)
	r := NewResizeController("ovl_1", e)

	if !r.Press(e, HandleBottomRight, geom.Pt(100, 50)) {
		t.Fatal("press refused")
	}
	if err := r.Drag(e, geom.Pt(123, 67)); err != nil {
		t.Fatal(err)
	}
	r.Release()

	want := geom.Rect{X: 0, Y: 0, Width: 120, Height: 70}
	if got := e.Bounds(); got != want {
		t.Errorf("entity bounds = %+v, want %+v", got, want)
	}
	if r.Box() != want {
		t.Errorf("overlay box = %+v, want %+v", r.Box(), want)
	}
	if r.Dragging() {
		t.Error("still dragging after release")
	}
}

func TestResizeCorners(t *testing.T) {
	tests := []struct {
		name   string
		handle int
		to     geom.Point
		want   geom.Rect
	}{
		{"top left", HandleTopLeft, geom.Pt(12, 8), geom.Rect{X: 10, Y: 10, Width: 90, Height: 40}},
		{"top right", HandleTopRight, geom.Pt(130, -20), geom.Rect{X: 0, Y: -20, Width: 130, Height: 70}},
		{"bottom left", HandleBottomLeft, geom.Pt(-10, 60), geom.Rect{X: -10, Y: 0, Width: 110, Height: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustShape(t, "Rectangle", 0, 0)
			r := NewResizeController("ovl", e)
			start := r.Handles(e)[tt.handle]
			r.Press(e, tt.handle, start)
			if err := r.Drag(e, tt.to); err != nil {
				t.Fatal(err)
			}
			if got := e.Bounds(); got != tt.want {
				t.Errorf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeRejectsBelowMinimum(t *testing.T) {
	e := mustShape(t, "Rectangle", 0, 0)
	r := NewResizeController("ovl", e)
	r.Press(e, HandleTopLeft, geom.Pt(0, 0))

	// width 100-80 = 20 is allowed
	if err := r.Drag(e, geom.Pt(80, 0)); err != nil {
		t.Fatal(err)
	}
	accepted := geom.Rect{X: 80, Y: 0, Width: 20, Height: 50}
	if got := e.Bounds(); got != accepted {
		t.Fatalf("bounds = %+v, want %+v", got, accepted)
	}

	// width 10 is not; the last accepted box stays
	if err := r.Drag(e, geom.Pt(90, 0)); err != nil {
		t.Fatal(err)
	}
	if got := e.Bounds(); got != accepted {
		t.Fatalf("bounds after rejected drag = %+v, want %+v", got, accepted)
	}
	if r.Box() != accepted {
		t.Fatalf("box after rejected drag = %+v", r.Box())
	}
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	e := mustShape(t, "Ellipse", 100, 100)
	r := NewResizeController("ovl", e)
	r.Press(e, HandleBottomRight, geom.Pt(150, 130))
	for x := 150.0; x > -50; x -= 7 {
		if err := r.Drag(e, geom.Pt(x, x-20)); err != nil {
			t.Fatal(err)
		}
		if b := r.Box(); b.Width < MinSize || b.Height < MinSize {
			t.Fatalf("box %+v below minimum", b)
		}
	}
}

func TestResizeCircleUsesShortSide(t *testing.T) {
	e := mustShape(t, "Circle", 50, 50)
	r := NewResizeController("ovl", e)
	r.Press(e, HandleBottomRight, geom.Pt(100, 100))
	if err := r.Drag(e, geom.Pt(140, 100)); err != nil {
		t.Fatal(err)
	}
	c := e.Shape.(*document.Circle)
	if c.Radius != 50 || c.CenterX != 70 || c.CenterY != 50 {
		t.Errorf("circle = %+v, want radius 50 at (70, 50)", c)
	}
}

func TestLockedOverlayRefusesEdits(t *testing.T) {
	e := mustShape(t, "Rectangle", 0, 0)
	r := NewResizeController("ovl", e)
	r.SetLocked(true)

	if r.Color() != LockedColor {
		t.Errorf("color = %s, want %s", r.Color(), LockedColor)
	}
	if r.Press(e, HandleBottomRight, geom.Pt(100, 50)) {
		t.Fatal("locked overlay accepted press")
	}
	before := e.Bounds()
	r.Translate(e, 10, 10)
	if e.Bounds() != before {
		t.Fatal("locked overlay moved its entity")
	}

	r.SetLocked(false)
	if r.Color() != UnlockedColor {
		t.Errorf("color = %s, want %s", r.Color(), UnlockedColor)
	}
}

func TestLineEndpointDragOnStraightArrow(t *testing.T) {
	e := mustShape(t, "Arrow", 0, 0)
	l, err := NewLineController("ovl", e)
	if err != nil {
		t.Fatal(err)
	}

	l.Press(e, 3, geom.Pt(150, 0))
	if err := l.Drag(e, geom.Pt(183, 4)); err != nil {
		t.Fatal(err)
	}

	c := e.Shape.(*document.Connector)
	want := []geom.Point{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 120, Y: 0}, {X: 180, Y: 0}}
	for i := range want {
		if !near(c.Points[i], want[i]) {
			t.Errorf("point %d = %+v, want %+v", i, c.Points[i], want[i])
		}
	}
	head := [3]geom.Point{{X: 170, Y: -5}, {X: 180, Y: 0}, {X: 170, Y: 5}}
	for i := range head {
		if !near(c.Head.Points[i], head[i]) {
			t.Errorf("head %d = %+v, want %+v", i, c.Head.Points[i], head[i])
		}
	}
	if dx, dy := l.Pending(); math.Abs(dx-3) > 1e-9 || math.Abs(dy-4) > 1e-9 {
		t.Errorf("pending = (%v, %v), want (3, 4)", dx, dy)
	}
}

func TestLineMiddleDragBendsWithoutRespacing(t *testing.T) {
	e := mustShape(t, "Line", 0, 0)
	l, _ := NewLineController("ovl", e)

	l.Press(e, 1, geom.Pt(50, 0))
	l.Drag(e, geom.Pt(50, 30))
	l.Release()

	l.Press(e, 3, geom.Pt(150, 0))
	l.Drag(e, geom.Pt(170, 0))
	l.Release()

	c := e.Shape.(*document.Connector)
	want := []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 30}, {X: 100, Y: 0}, {X: 170, Y: 0}}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, c.Points[i], want[i])
		}
	}
}

func TestLineSmallStepsAccumulate(t *testing.T) {
	e := mustShape(t, "Line", 0, 0)
	l, _ := NewLineController("ovl", e)
	l.Press(e, 0, geom.Pt(0, 0))
	c := e.Shape.(*document.Connector)

	steps := []struct {
		x     float64
		wantX float64
	}{
		{3, 0},
		{6, 10},
		{9, 10},
	}
	for _, s := range steps {
		if err := l.Drag(e, geom.Pt(s.x, 0)); err != nil {
			t.Fatal(err)
		}
		if c.Points[0].X != s.wantX {
			t.Fatalf("after pointer at %v start x = %v, want %v", s.x, c.Points[0].X, s.wantX)
		}
	}
	if !c.IsStraight() {
		t.Fatal("line should stay straight")
	}
}

func TestLineRejectsMalformedConnector(t *testing.T) {
	e := &document.Entity{ID: "ent_bad", Kind: document.KindLine, Shape: &document.Connector{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}}
	_, err := NewLineController("ovl", e)
	var invalid *document.InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
}

func TestNewPicksOverlayByShape(t *testing.T) {
	line, err := New("ovl_a", mustShape(t, "Line", 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := line.(*LineController); !ok {
		t.Errorf("line got %T", line)
	}
	box, _ := New("ovl_b", mustShape(t, "Decision", 0, 0))
	if _, ok := box.(*ResizeController); !ok {
		t.Errorf("decision got %T", box)
	}
}

func TestHandleAt(t *testing.T) {
	e := mustShape(t, "Rectangle", 0, 0)
	r := NewResizeController("ovl", e)
	if got := HandleAt(r, e, geom.Pt(103, 48)); got != HandleBottomRight {
		t.Errorf("HandleAt near bottom right = %d", got)
	}
	if got := HandleAt(r, e, geom.Pt(50, 25)); got != -1 {
		t.Errorf("HandleAt centre = %d, want -1", got)
	}
}
