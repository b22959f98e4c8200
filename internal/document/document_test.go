package document

import (
	"errors"
	"math"
	"testing"

	"github.com/inamate/flowdraw/internal/geom"
)

type stubLoader map[string]ImageInfo

func (s stubLoader) Stat(path string) (ImageInfo, error) {
	info, ok := s[path]
	if !ok {
		return ImageInfo{}, errors.New("no such file")
	}
	return info, nil
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	return NewFactory(stubLoader{
		"glyphs/process.png": {Width: 200, Height: 120},
		"photo.png":          {Width: 640, Height: 480},
	}, "glyphs")
}

func TestCreateShapeDefaults(t *testing.T) {
	f := newTestFactory(t)
	tests := []struct {
		kind   Kind
		bounds geom.Rect
	}{
		{KindRectangle, geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}},
		{KindCircle, geom.Rect{X: -40, Y: -30, Width: 100, Height: 100}},
		{KindEllipse, geom.Rect{X: -40, Y: -10, Width: 100, Height: 60}},
		{KindTriangle, geom.Rect{X: 10, Y: 20, Width: 100, Height: 100}},
		{KindDecision, geom.Rect{X: 10, Y: 20, Width: 100, Height: 100}},
		{KindInputOutput, geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}},
		{KindText, geom.Rect{X: 10, Y: 20, Width: 100, Height: 30}},
		{KindLine, geom.Rect{X: 10, Y: 20, Width: 150, Height: 0}},
		{KindArrow, geom.Rect{X: 10, Y: 15, Width: 150, Height: 10}},
		{KindProcess, geom.Rect{X: 10, Y: 20, Width: 100, Height: 60}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e, err := f.CreateShape(string(tt.kind), 10, 20)
			if err != nil {
				t.Fatalf("CreateShape: %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", e.Kind, tt.kind)
			}
			if got := e.Bounds(); got != tt.bounds {
				t.Errorf("bounds = %+v, want %+v", got, tt.bounds)
			}
		})
	}
}

func TestCreateShapeArrowHasHeadOnLastSegment(t *testing.T) {
	e, err := newTestFactory(t).CreateShape("Arrow", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	c := e.Shape.(*Connector)
	if len(c.Points) != ConnectorPoints {
		t.Fatalf("got %d points, want %d", len(c.Points), ConnectorPoints)
	}
	if c.Head == nil {
		t.Fatal("arrow has no head")
	}
	if c.Head.Points[1] != c.Points[3] {
		t.Errorf("head tip %+v, want end point %+v", c.Head.Points[1], c.Points[3])
	}
	if !c.IsStraight() {
		t.Error("default arrow should be straight")
	}

	line, _ := newTestFactory(t).CreateShape("Line", 0, 0)
	if line.Shape.(*Connector).Head != nil {
		t.Error("line should not carry a head")
	}
}

func TestCreateShapeErrors(t *testing.T) {
	f := newTestFactory(t)

	e, err := f.CreateShape("Hexagon", 0, 0)
	var unsupported *UnsupportedKindError
	if !errors.As(err, &unsupported) || e != nil {
		t.Fatalf("Hexagon: got (%v, %v), want UnsupportedKindError", e, err)
	}

	_, err = f.CreateShape("Image", 0, 0)
	var missing *MissingPathError
	if !errors.As(err, &missing) {
		t.Fatalf("Image: got %v, want MissingPathError", err)
	}

	_, err = f.CreateShape("Actor", 0, 0)
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Actor: got %v, want ResourceNotFoundError", err)
	}

	_, err = NewFactory(nil, "").CreateShape("Process", 0, 0)
	if !errors.As(err, &missing) {
		t.Fatalf("Process without glyph dir: got %v, want MissingPathError", err)
	}
}

func TestCreateImageElement(t *testing.T) {
	f := newTestFactory(t)

	e, err := f.CreateImageElement("photo.png", 5, 5)
	if err != nil {
		t.Fatalf("CreateImageElement: %v", err)
	}
	img := e.Shape.(*Image)
	if img.FitWidth != 100 || img.FitHeight != 60 || img.PixelWidth != 640 {
		t.Errorf("got %+v, want 100x60 frame over a 640px source", img)
	}

	e, err = f.CreateImageElement("missing.png", 0, 0)
	var notFound *ResourceNotFoundError
	if e != nil || !errors.As(err, &notFound) {
		t.Fatalf("got (%v, %v), want ResourceNotFoundError and no entity", e, err)
	}
	if notFound.Path != "missing.png" {
		t.Errorf("path = %q", notFound.Path)
	}
}

func TestTranslateMovesBoundsExactly(t *testing.T) {
	f := newTestFactory(t)
	for _, kind := range []Kind{KindRectangle, KindCircle, KindEllipse, KindDecision, KindText, KindArrow, KindProcess} {
		e, err := f.CreateShape(string(kind), 30, 40)
		if err != nil {
			t.Fatal(err)
		}
		before := e.Bounds()
		e.Translate(20, -10)
		if got, want := e.Bounds(), before.Translate(20, -10); got != want {
			t.Errorf("%s: bounds = %+v, want %+v", kind, got, want)
		}
	}
}

func TestResizeToBounds(t *testing.T) {
	f := newTestFactory(t)
	target := geom.Rect{X: 10, Y: 20, Width: 120, Height: 80}

	for _, kind := range []Kind{KindRectangle, KindEllipse, KindTriangle, KindInputOutput, KindText, KindProcess} {
		e, _ := f.CreateShape(string(kind), 0, 0)
		if err := e.ResizeToBounds(target); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		got := e.Bounds()
		if math.Abs(got.X-target.X) > 1e-9 || math.Abs(got.Y-target.Y) > 1e-9 ||
			math.Abs(got.Width-target.Width) > 1e-9 || math.Abs(got.Height-target.Height) > 1e-9 {
			t.Errorf("%s: bounds = %+v, want %+v", kind, got, target)
		}
	}

	circle, _ := f.CreateShape("Circle", 0, 0)
	if err := circle.ResizeToBounds(target); err != nil {
		t.Fatal(err)
	}
	c := circle.Shape.(*Circle)
	if c.Radius != 40 || c.CenterX != 70 || c.CenterY != 60 {
		t.Errorf("circle = %+v, want radius 40 centred at (70, 60)", c)
	}

	line, _ := f.CreateShape("Line", 0, 0)
	if err := line.ResizeToBounds(target); !errors.Is(err, ErrNotResizable) {
		t.Errorf("line resize: got %v, want ErrNotResizable", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	e, _ := newTestFactory(t).CreateShape("Arrow", 0, 0)
	c := e.Clone()
	c.Translate(10, 10)

	orig := e.Shape.(*Connector)
	if orig.Points[0] != geom.Pt(0, 0) {
		t.Errorf("original point moved to %+v", orig.Points[0])
	}
	if orig.Head.Points[1] != geom.Pt(150, 0) {
		t.Errorf("original head moved to %+v", orig.Head.Points[1])
	}
	if c.ID != e.ID {
		t.Error("clone should keep the id")
	}
}

func TestConnectorValidate(t *testing.T) {
	c := &Connector{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}}
	err := c.Validate("ent_x")
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) || invalid.EntityID != "ent_x" {
		t.Fatalf("got %v, want InvalidGeometryError for ent_x", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	d, err := NewSampleDiagram(newTestFactory(t))
	if err != nil {
		t.Fatalf("NewSampleDiagram: %v", err)
	}
	snap, err := d.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Entities) != d.Len() {
		t.Fatalf("got %d records, want %d", len(snap.Entities), d.Len())
	}

	back, err := DiagramFromSnapshot(snap)
	if err != nil {
		t.Fatalf("DiagramFromSnapshot: %v", err)
	}
	for i, e := range back.Entities() {
		orig := d.Entities()[i]
		if e.ID != orig.ID || e.Bounds() != orig.Bounds() {
			t.Errorf("entity %d: got %s %+v, want %s %+v", i, e.ID, e.Bounds(), orig.ID, orig.Bounds())
		}
	}
}

func TestFromRecordRejectsShortConnector(t *testing.T) {
	r := Record{
		ID:       "ent_bad",
		Kind:     KindLine,
		Shape:    ShapeConnector,
		Geometry: []byte(`{"points":[{"x":0,"y":0},{"x":10,"y":0}]}`),
	}
	_, err := FromRecord(r)
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"white", "#ffffff", false},
		{"#F00", "#ff0000", false},
		{"#0000FF", "#0000ff", false},
		{"", "", false},
		{"none", "", false},
		{"chartreuse-ish", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiagramRemoveKeepsOrder(t *testing.T) {
	f := newTestFactory(t)
	d := NewDiagram()
	var ids []string
	for i := 0; i < 3; i++ {
		e, _ := f.CreateShape("Rectangle", float64(i*10), 0)
		d.Add(e)
		ids = append(ids, e.ID)
	}
	if !d.Remove(ids[1]) {
		t.Fatal("Remove returned false")
	}
	if d.Remove(ids[1]) {
		t.Fatal("second Remove should report nothing removed")
	}
	got := d.Entities()
	if len(got) != 2 || got[0].ID != ids[0] || got[1].ID != ids[2] {
		t.Fatalf("order after remove = %v", got)
	}
}
