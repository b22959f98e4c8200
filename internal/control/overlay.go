// Package control holds the handle overlays attached to selected entities and
// the controllers that turn handle drags into snapped geometry edits.
package control

import (
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

const (
	HandleRadius = 5.0
	MinSize      = 20.0

	LockedColor   = "#ff0000"
	UnlockedColor = "#0000ff"
)

// GuideDash is the dash pattern of resize guide edges.
var GuideDash = []float64{5, 5}

// Overlay is the handle set bound to one selected entity. Entities are passed
// in by the caller; overlays only keep the entity ID.
type Overlay interface {
	ID() string
	EntityID() string
	Locked() bool
	SetLocked(locked bool)
	Color() string

	// Handles returns handle centres in canvas space.
	Handles(e *document.Entity) []geom.Point
	// Body is the area that starts a whole-entity move.
	Body(e *document.Entity) geom.Rect

	// Press starts a handle drag. It reports false when the overlay refuses
	// (locked, or no such handle).
	Press(e *document.Entity, handle int, p geom.Point) bool
	Drag(e *document.Entity, p geom.Point) error
	Release()
	Dragging() bool

	// Translate moves the entity by an already snapped delta. Locked
	// overlays ignore it.
	Translate(e *document.Entity, dx, dy float64)
}

// HandleAt returns the index of the handle under p, or -1.
func HandleAt(o Overlay, e *document.Entity, p geom.Point) int {
	for i, h := range o.Handles(e) {
		dx, dy := p.X-h.X, p.Y-h.Y
		if dx*dx+dy*dy <= HandleRadius*HandleRadius {
			return i
		}
	}
	return -1
}

func lockColor(locked bool) string {
	if locked {
		return LockedColor
	}
	return UnlockedColor
}

// New picks the overlay for an entity: line handles for connectors, a resize
// box for everything else.
func New(id string, e *document.Entity) (Overlay, error) {
	if e.IsConnector() {
		return NewLineController(id, e)
	}
	return NewResizeController(id, e), nil
}
