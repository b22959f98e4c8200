package control

import (
	"fmt"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

// LineController is the four-handle overlay of a connector. Raw pointer
// deltas accumulate and are applied in whole grid steps.
type LineController struct {
	id       string
	entityID string
	locked   bool

	dragging bool
	handle   int
	last     geom.Point
	acc      geom.Accumulator
}

func NewLineController(id string, e *document.Entity) (*LineController, error) {
	if _, err := connectorOf(e); err != nil {
		return nil, err
	}
	return &LineController{id: id, entityID: e.ID}, nil
}

func (l *LineController) ID() string           { return l.id }
func (l *LineController) EntityID() string     { return l.entityID }
func (l *LineController) Locked() bool         { return l.locked }
func (l *LineController) SetLocked(locked bool) { l.locked = locked }
func (l *LineController) Color() string        { return lockColor(l.locked) }
func (l *LineController) Dragging() bool       { return l.dragging }

func (l *LineController) Handles(e *document.Entity) []geom.Point {
	c, err := connectorOf(e)
	if err != nil {
		return nil
	}
	return append([]geom.Point(nil), c.Points...)
}

func (l *LineController) Body(e *document.Entity) geom.Rect {
	return e.Bounds()
}

func (l *LineController) Press(_ *document.Entity, handle int, p geom.Point) bool {
	if l.locked || handle < 0 || handle >= document.ConnectorPoints {
		return false
	}
	l.dragging = true
	l.handle = handle
	l.last = p
	l.acc.Reset()
	return true
}

// Drag moves the pressed control point. When an endpoint of a straight
// connector moves, the middle points are re-spaced at thirds.
func (l *LineController) Drag(e *document.Entity, p geom.Point) error {
	if !l.dragging || l.locked {
		return nil
	}
	c, err := connectorOf(e)
	if err != nil {
		return err
	}
	delta := p.Sub(l.last)
	l.last = p
	sx, sy, ok := l.acc.Add(delta.X, delta.Y)
	if !ok {
		return nil
	}

	straight := c.IsStraight()
	c.Points[l.handle] = c.Points[l.handle].Add(sx, sy)
	if straight && (l.handle == 0 || l.handle == document.ConnectorPoints-1) {
		c.Straighten()
	}
	c.RecomputeHead()
	return nil
}

func (l *LineController) Release() {
	l.dragging = false
}

func (l *LineController) Translate(e *document.Entity, dx, dy float64) {
	if l.locked {
		return
	}
	e.Translate(dx, dy)
}

// Pending returns the accumulated sub-step delta of the current drag.
func (l *LineController) Pending() (float64, float64) {
	return l.acc.Pending()
}

func connectorOf(e *document.Entity) (*document.Connector, error) {
	c, ok := e.Shape.(*document.Connector)
	if !ok {
		return nil, &document.InvalidGeometryError{EntityID: e.ID, Reason: fmt.Sprintf("%s is not a connector", e.Kind)}
	}
	if err := c.Validate(e.ID); err != nil {
		return nil, err
	}
	return c, nil
}
