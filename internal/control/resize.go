package control

import (
	"log/slog"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

// Corner handles of a resize box, clockwise from top-left.
const (
	HandleTopLeft = iota
	HandleTopRight
	HandleBottomRight
	HandleBottomLeft
)

// ResizeController is the four-corner overlay of a box entity. A drag
// computes a snapped delta from the press point and applies it to the box
// captured at press time.
type ResizeController struct {
	id       string
	entityID string
	locked   bool
	box      geom.Rect

	dragging bool
	handle   int
	origin   geom.Point
	startBox geom.Rect
}

func NewResizeController(id string, e *document.Entity) *ResizeController {
	return &ResizeController{id: id, entityID: e.ID, box: e.Bounds()}
}

func (r *ResizeController) ID() string           { return r.id }
func (r *ResizeController) EntityID() string     { return r.entityID }
func (r *ResizeController) Locked() bool         { return r.locked }
func (r *ResizeController) SetLocked(locked bool) { r.locked = locked }
func (r *ResizeController) Color() string        { return lockColor(r.locked) }
func (r *ResizeController) Dragging() bool       { return r.dragging }

// Box is the overlay frame.
func (r *ResizeController) Box() geom.Rect { return r.box }

func (r *ResizeController) Handles(*document.Entity) []geom.Point {
	c := r.box.Corners()
	return c[:]
}

func (r *ResizeController) Body(*document.Entity) geom.Rect { return r.box }

// Guides returns the dashed frame edges.
func (r *ResizeController) Guides() [4][2]geom.Point {
	c := r.box.Corners()
	return [4][2]geom.Point{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
}

func (r *ResizeController) Press(_ *document.Entity, handle int, p geom.Point) bool {
	if r.locked || handle < HandleTopLeft || handle > HandleBottomLeft {
		return false
	}
	r.dragging = true
	r.handle = handle
	r.origin = p
	r.startBox = r.box
	return true
}

// Drag resizes toward p. Updates that would make either side smaller than
// MinSize are dropped and the last accepted box stays.
func (r *ResizeController) Drag(e *document.Entity, p geom.Point) error {
	if !r.dragging || r.locked {
		return nil
	}
	dx := geom.Snap(p.X - r.origin.X)
	dy := geom.Snap(p.Y - r.origin.Y)
	next := resizeBox(r.startBox, r.handle, dx, dy)
	if next.Width < MinSize || next.Height < MinSize {
		slog.Debug("resize rejected", "entity", r.entityID, "width", next.Width, "height", next.Height)
		return nil
	}
	if err := e.ResizeToBounds(next); err != nil {
		return err
	}
	r.box = next
	return nil
}

func (r *ResizeController) Release() {
	r.dragging = false
}

func (r *ResizeController) Translate(e *document.Entity, dx, dy float64) {
	if r.locked {
		return
	}
	e.Translate(dx, dy)
	r.box = r.box.Translate(dx, dy)
	if r.dragging {
		r.startBox = r.startBox.Translate(dx, dy)
	}
}

func resizeBox(b geom.Rect, handle int, dx, dy float64) geom.Rect {
	switch handle {
	case HandleTopLeft:
		return geom.Rect{X: b.X + dx, Y: b.Y + dy, Width: b.Width - dx, Height: b.Height - dy}
	case HandleTopRight:
		return geom.Rect{X: b.X, Y: b.Y + dy, Width: b.Width + dx, Height: b.Height - dy}
	case HandleBottomRight:
		return geom.Rect{X: b.X, Y: b.Y, Width: b.Width + dx, Height: b.Height + dy}
	default:
		return geom.Rect{X: b.X + dx, Y: b.Y, Width: b.Width - dx, Height: b.Height + dy}
	}
}
