package engine

import (
	"fmt"
	"log/slog"

	"github.com/inamate/flowdraw/internal/geom"
)

type Phase string

const (
	PhasePress   Phase = "press"
	PhaseMove    Phase = "move"
	PhaseRelease Phase = "release"
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

type TargetKind string

const (
	TargetBackground TargetKind = "background"
	TargetEntity     TargetKind = "entity"
	TargetOverlay    TargetKind = "overlay"
	TargetHandle     TargetKind = "handle"
)

// Target is what a pointer event landed on.
type Target struct {
	Kind      TargetKind `json:"kind"`
	EntityID  string     `json:"entityId,omitempty"`
	OverlayID string     `json:"overlayId,omitempty"`
	Handle    int        `json:"handle,omitempty"`
}

// Gesture is one pointer event in canvas coordinates. Screen carries the
// host's screen-space position. An empty Target is resolved with HitTest.
type Gesture struct {
	Phase  Phase      `json:"phase"`
	Button Button     `json:"button"`
	Target Target     `json:"target"`
	Point  geom.Point `json:"point"`
	Screen geom.Point `json:"screen"`
}

// ApplyGesture feeds one pointer event through the selection state machine.
// The only error it surfaces is an invalid connector reaching a controller.
func (e *Engine) ApplyGesture(g Gesture) error {
	if g.Target.Kind == "" {
		g.Target = e.HitTest(g.Point)
	}
	switch g.Phase {
	case PhasePress:
		return e.press(g)
	case PhaseMove:
		return e.drag(g.Point)
	case PhaseRelease:
		e.release(g.Point)
		return nil
	default:
		return fmt.Errorf("unknown gesture phase %q", g.Phase)
	}
}

func (e *Engine) press(g Gesture) error {
	if g.Button != ButtonPrimary {
		return nil
	}
	// a press without a matching release ends the previous drag
	e.endDrag()

	switch g.Target.Kind {
	case TargetBackground:
		e.ClearSelection()
		e.mode = ModeRectSelecting
		e.anchor, e.cursor = g.Point, g.Point
	case TargetEntity:
		return e.selectOnly(g.Target.EntityID)
	case TargetHandle:
		o, ok := e.selection.Find(g.Target.OverlayID)
		if !ok {
			return nil
		}
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			return nil
		}
		if o.Press(ent, g.Target.Handle, g.Point) {
			e.active = o
		}
	case TargetOverlay:
		o, ok := e.selection.Find(g.Target.OverlayID)
		if !ok || o.Locked() {
			return nil
		}
		e.moving = true
		e.moveLast = g.Point
		e.moveAcc.Reset()
	}
	return nil
}

func (e *Engine) drag(p geom.Point) error {
	switch {
	case e.mode == ModeRectSelecting:
		e.cursor = p
	case e.active != nil:
		ent, ok := e.diagram.Get(e.active.EntityID())
		if !ok {
			e.endDrag()
			return nil
		}
		if err := e.active.Drag(ent, p); err != nil {
			slog.Warn("handle drag rejected", "entity", ent.ID, "error", err)
			return err
		}
	case e.moving:
		d := p.Sub(e.moveLast)
		e.moveLast = p
		if sx, sy, ok := e.moveAcc.Add(d.X, d.Y); ok {
			e.moveSelection(sx, sy)
		}
	}
	return nil
}

func (e *Engine) release(p geom.Point) {
	if e.mode == ModeRectSelecting {
		e.cursor = p
		rect := geom.RectFromCorners(e.anchor, e.cursor)
		added := e.sweep(rect)
		slog.Debug("rect selection", "rect", rect, "added", added)
		e.settleMode()
		return
	}
	e.endDrag()
}

func (e *Engine) endDrag() {
	if e.active != nil {
		e.active.Release()
		e.active = nil
	}
	e.moving = false
}

func (e *Engine) settleMode() {
	if e.selection.Len() > 0 {
		e.mode = ModeEntitySelected
	} else {
		e.mode = ModeIdle
	}
}

// moveSelection applies a snapped delta to every unlocked selected entity.
func (e *Engine) moveSelection(dx, dy float64) {
	for _, o := range e.selection.Items() {
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		o.Translate(ent, dx, dy)
	}
}

// sweep attaches an overlay to every entity whose bounds intersect rect.
// Entities that already carry an overlay (a surviving locked one) are skipped.
func (e *Engine) sweep(rect geom.Rect) int {
	added := 0
	for _, ent := range e.diagram.Entities() {
		if _, ok := e.selection.ForEntity(ent.ID); ok {
			continue
		}
		if !rect.Intersects(ent.Bounds()) {
			continue
		}
		if _, err := e.attach(ent); err != nil {
			slog.Warn("cannot select entity", "entity", ent.ID, "error", err)
			continue
		}
		added++
	}
	return added
}

// selectOnly clears the selection and selects one entity. An entity that
// kept a locked overlay through the clear is not given a second one.
func (e *Engine) selectOnly(entityID string) error {
	ent, ok := e.diagram.Get(entityID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	e.ClearSelection()
	if _, ok := e.selection.ForEntity(ent.ID); !ok {
		if _, err := e.attach(ent); err != nil {
			return err
		}
	}
	e.mode = ModeEntitySelected
	return nil
}

// ClearSelection destroys every unlocked overlay.
func (e *Engine) ClearSelection() {
	e.endDrag()
	e.selection.ClearUnlocked()
	e.settleMode()
}
