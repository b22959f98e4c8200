package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/inamate/flowdraw/internal/clipboard"
	"github.com/inamate/flowdraw/internal/control"
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
	"github.com/inamate/flowdraw/internal/typeid"
)

var ErrUnknownEntity = errors.New("unknown entity")

const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1
)

// Mode is the selection manager state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRectSelecting
	ModeEntitySelected
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRectSelecting:
		return "rect-selecting"
	case ModeEntitySelected:
		return "entity-selected"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Engine owns one diagram with its selection, clipboard and gesture state.
// It is not safe for concurrent use; callers confine it to one goroutine.
type Engine struct {
	diagram   *document.Diagram
	factory   *document.Factory
	clipboard *clipboard.Clipboard
	selection Selection

	mode   Mode
	anchor geom.Point
	cursor geom.Point

	// handle drag in progress
	active control.Overlay

	// whole-selection move in progress
	moving   bool
	moveLast geom.Point
	moveAcc  geom.Accumulator

	zoom     float64
	viewport geom.Rect
}

// New creates an engine over an empty diagram.
func New(factory *document.Factory) *Engine {
	return &Engine{
		diagram:   document.NewDiagram(),
		factory:   factory,
		clipboard: clipboard.New(),
		zoom:      1,
		viewport:  geom.Rect{Width: 1200, Height: 800},
	}
}

// --- Commands ---

// SetViewport sets the visible area size used for click-to-center.
func (e *Engine) SetViewport(width, height float64) {
	e.viewport = geom.Rect{Width: width, Height: height}
}

// Load replaces the diagram and re-initialises selection, clipboard and
// gesture state.
func (e *Engine) Load(s document.Snapshot) error {
	d, err := document.DiagramFromSnapshot(s)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	e.reset(d)
	return nil
}

// LoadSample replaces the diagram with the built-in sample flow.
func (e *Engine) LoadSample() error {
	d, err := document.NewSampleDiagram(e.factory)
	if err != nil {
		return fmt.Errorf("build sample: %w", err)
	}
	e.reset(d)
	return nil
}

func (e *Engine) reset(d *document.Diagram) {
	e.diagram = d
	e.selection.Reset()
	e.clipboard.Clear()
	e.endDrag()
	e.mode = ModeIdle
}

// CreateShape adds a new entity of kind at (x, y) and attaches an overlay to
// it. Factory errors leave the canvas untouched.
func (e *Engine) CreateShape(kind string, x, y float64) (string, error) {
	ent, err := e.factory.CreateShape(kind, x, y)
	if err != nil {
		return "", err
	}
	return ent.ID, e.place(ent)
}

// CreateImageElement adds an image entity loaded from path.
func (e *Engine) CreateImageElement(path string, x, y float64) (string, error) {
	ent, err := e.factory.CreateImageElement(path, x, y)
	if err != nil {
		return "", err
	}
	return ent.ID, e.place(ent)
}

// DropShape handles a toolbox drag-drop. Image needs a file dialog and is
// ignored here.
func (e *Engine) DropShape(kind string, x, y float64) (string, error) {
	if document.Kind(kind) == document.KindImage {
		return "", nil
	}
	return e.CreateShape(kind, x, y)
}

// AddShapeAtCenter creates kind at the centre of the viewport.
func (e *Engine) AddShapeAtCenter(kind string) (string, error) {
	if document.Kind(kind) == document.KindImage {
		return "", nil
	}
	c := e.ScreenToCanvas(e.viewport.Center())
	return e.CreateShape(kind, c.X, c.Y)
}

// AddImageAtCenter creates an image from a dialog result. An empty path means
// the dialog was cancelled.
func (e *Engine) AddImageAtCenter(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	c := e.ScreenToCanvas(e.viewport.Center())
	return e.CreateImageElement(path, c.X, c.Y)
}

func (e *Engine) place(ent *document.Entity) error {
	e.diagram.Add(ent)
	if _, err := e.attach(ent); err != nil {
		return err
	}
	e.mode = ModeEntitySelected
	slog.Debug("entity created", "entity", ent.ID, "kind", ent.Kind)
	return nil
}

// attach creates the overlay for ent and appends it to the selection.
func (e *Engine) attach(ent *document.Entity) (control.Overlay, error) {
	o, err := control.New(typeid.NewOverlayID(), ent)
	if err != nil {
		return nil, err
	}
	e.selection.Add(o)
	return o, nil
}

// SetText replaces the label of a text entity.
func (e *Engine) SetText(entityID, text string) error {
	ent, ok := e.diagram.Get(entityID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	tb, ok := ent.Shape.(*document.TextBox)
	if !ok {
		return fmt.Errorf("entity %s is %s, not text", entityID, ent.Kind)
	}
	tb.Text = text
	return nil
}

// FontFamilies lists the families text entities may use.
var FontFamilies = []string{"Arial", "Courier New", "Georgia", "Helvetica", "Times New Roman", "Verdana"}

// SetTextFont applies a font to every selected, unlocked text entity. Sizes
// run from 8 to 72 in steps of 2.
func (e *Engine) SetTextFont(family string, size float64) error {
	known := false
	for _, f := range FontFamilies {
		if f == family {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported font family %q", family)
	}
	if size < 8 || size > 72 || math.Mod(size, 2) != 0 {
		return fmt.Errorf("unsupported font size %v", size)
	}
	for _, o := range e.selection.Items() {
		if o.Locked() {
			continue
		}
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		if tb, ok := ent.Shape.(*document.TextBox); ok {
			tb.FontFamily, tb.FontSize = family, size
		}
	}
	return nil
}

// --- Zoom ---

// SetZoom clamps z to [MinZoom, MaxZoom] on a 0.1 grid.
func (e *Engine) SetZoom(z float64) {
	z = math.Round(z*10) / 10
	e.zoom = min(MaxZoom, max(MinZoom, z))
}

func (e *Engine) ZoomIn()  { e.SetZoom(e.zoom + ZoomStep) }
func (e *Engine) ZoomOut() { e.SetZoom(e.zoom - ZoomStep) }

// ZoomGesture reacts to a pinch factor; small factors are ignored.
func (e *Engine) ZoomGesture(factor float64) {
	switch {
	case factor > 1.05:
		e.ZoomIn()
	case factor < 0.95:
		e.ZoomOut()
	}
}

// ScrollZoom reacts to a modifier+scroll delta.
func (e *Engine) ScrollZoom(deltaY float64) {
	switch {
	case deltaY > 10:
		e.ZoomIn()
	case deltaY < -10:
		e.ZoomOut()
	}
}

// --- Queries ---

func (e *Engine) Zoom() float64 { return e.zoom }
func (e *Engine) Mode() Mode    { return e.mode }

// View maps canvas space to screen space.
func (e *Engine) View() geom.Matrix2D {
	return geom.Scale(e.zoom, e.zoom)
}

// ScreenToCanvas converts a screen position to canvas coordinates.
func (e *Engine) ScreenToCanvas(p geom.Point) geom.Point {
	return e.View().Invert().Apply(p)
}

// Diagram exposes the entity arena for read-only consumers such as export.
func (e *Engine) Diagram() *document.Diagram {
	return e.diagram
}

// Entity looks up an entity by ID.
func (e *Engine) Entity(id string) (*document.Entity, bool) {
	return e.diagram.Get(id)
}

// Snapshot serialises the whole diagram.
func (e *Engine) Snapshot() (document.Snapshot, error) {
	return e.diagram.Snapshot()
}

// SnapshotGeometry returns the record of one entity.
func (e *Engine) SnapshotGeometry(id string) (document.Record, error) {
	ent, ok := e.diagram.Get(id)
	if !ok {
		return document.Record{}, fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	return ent.Record()
}

// SelectionItem describes one selected overlay for hosts.
type SelectionItem struct {
	OverlayID string `json:"overlayId"`
	EntityID  string `json:"entityId"`
	Locked    bool   `json:"locked"`
	Color     string `json:"color"`
}

// Selection returns the selected overlays in order.
func (e *Engine) Selection() []SelectionItem {
	items := make([]SelectionItem, 0, e.selection.Len())
	for _, o := range e.selection.Items() {
		items = append(items, SelectionItem{
			OverlayID: o.ID(),
			EntityID:  o.EntityID(),
			Locked:    o.Locked(),
			Color:     o.Color(),
		})
	}
	return items
}

// SelectionRect returns the rubber-band rectangle while one is being dragged.
func (e *Engine) SelectionRect() (geom.Rect, bool) {
	if e.mode != ModeRectSelecting {
		return geom.Rect{}, false
	}
	return geom.RectFromCorners(e.anchor, e.cursor), true
}

// SelectionBounds returns the union of the selected entities' bounds.
func (e *Engine) SelectionBounds() geom.Rect {
	var result geom.Rect
	first := true
	for _, o := range e.selection.Items() {
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		if first {
			result = ent.Bounds()
			first = false
		} else {
			result = result.Union(ent.Bounds())
		}
	}
	return result
}
