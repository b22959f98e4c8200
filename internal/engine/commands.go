package engine

import (
	"encoding/json"

	"github.com/inamate/flowdraw/internal/control"
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

// DrawCommand represents a single drawing operation for the host to execute.
// The host receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path", "image", "text"
	EntityID    string        `json:"entityId,omitempty"`    // for hit correlation
	OverlayID   string        `json:"overlayId,omitempty"`   // set on overlay chrome
	Transform   []float64     `json:"transform,omitempty"`   // view matrix [a, b, c, d, e, f]
	Path        []PathCommand `json:"path,omitempty"`        // path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // fill color
	Stroke      string        `json:"stroke,omitempty"`      // stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // stroke width
	Dash        []float64     `json:"dash,omitempty"`        // stroke dash pattern
	Bounds      *geom.Rect    `json:"bounds,omitempty"`      // frame for "image" and "text"
	Source      string        `json:"source,omitempty"`      // image resource path
	Text        string        `json:"text,omitempty"`
	FontFamily  string        `json:"fontFamily,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"`
}

// DrawCommands compiles the canvas in painter's order: entities back to
// front, then overlays, then the rubber-band rectangle.
func (e *Engine) DrawCommands() []DrawCommand {
	var transform []float64
	if view := e.View(); !view.IsIdentity() {
		transform = view.ToSlice()
	}

	var commands []DrawCommand
	for _, ent := range e.diagram.Entities() {
		commands = append(commands, compileEntity(ent)...)
	}
	for _, o := range e.selection.Items() {
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		commands = append(commands, compileOverlay(o, ent)...)
	}
	if r, ok := e.SelectionRect(); ok {
		commands = append(commands, DrawCommand{
			Op:          "path",
			Path:        rectPath(r),
			Stroke:      control.UnlockedColor,
			StrokeWidth: 1,
			Dash:        control.GuideDash,
		})
	}

	for i := range commands {
		commands[i].Transform = transform
	}
	return commands
}

func compileEntity(ent *document.Entity) []DrawCommand {
	switch s := ent.Shape.(type) {
	case *document.Image:
		b := ent.Bounds()
		return []DrawCommand{{Op: "image", EntityID: ent.ID, Bounds: &b, Source: s.Source}}
	case *document.TextBox:
		b := ent.Bounds()
		return []DrawCommand{{
			Op:         "text",
			EntityID:   ent.ID,
			Bounds:     &b,
			Text:       s.Text,
			FontFamily: s.FontFamily,
			FontSize:   s.FontSize,
			Fill:       ent.Style.Fill,
		}}
	case *document.Connector:
		cmds := []DrawCommand{{
			Op:          "path",
			EntityID:    ent.ID,
			Path:        shapePath(ent),
			Stroke:      ent.Style.Stroke,
			StrokeWidth: ent.Style.StrokeWidth,
		}}
		if s.Head != nil {
			cmds = append(cmds, DrawCommand{
				Op:       "path",
				EntityID: ent.ID,
				Path:     polylinePath(s.Head.Points[:], true),
				Fill:     s.Head.Fill,
			})
		}
		return cmds
	default:
		return []DrawCommand{{
			Op:          "path",
			EntityID:    ent.ID,
			Path:        shapePath(ent),
			Fill:        ent.Style.Fill,
			Stroke:      ent.Style.Stroke,
			StrokeWidth: ent.Style.StrokeWidth,
		}}
	}
}

func compileOverlay(o control.Overlay, ent *document.Entity) []DrawCommand {
	color := o.Color()
	var cmds []DrawCommand
	if r, ok := o.(*control.ResizeController); ok {
		for _, edge := range r.Guides() {
			cmds = append(cmds, DrawCommand{
				Op:          "path",
				OverlayID:   o.ID(),
				Path:        polylinePath(edge[:], false),
				Stroke:      color,
				StrokeWidth: 1,
				Dash:        control.GuideDash,
			})
		}
	}
	for _, h := range o.Handles(ent) {
		cmds = append(cmds, DrawCommand{
			Op:        "path",
			OverlayID: o.ID(),
			Path:      ellipsePath(h.X, h.Y, control.HandleRadius, control.HandleRadius),
			Fill:      color,
		})
	}
	return cmds
}

// Render returns the draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest resolves what lies under p: overlay handles first, then overlay
// bodies, then entities front to back.
func (e *Engine) HitTest(p geom.Point) Target {
	overlays := e.selection.Items()
	for i := len(overlays) - 1; i >= 0; i-- {
		o := overlays[i]
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		if h := control.HandleAt(o, ent, p); h >= 0 {
			return Target{Kind: TargetHandle, OverlayID: o.ID(), EntityID: ent.ID, Handle: h}
		}
	}
	for i := len(overlays) - 1; i >= 0; i-- {
		o := overlays[i]
		ent, ok := e.diagram.Get(o.EntityID())
		if !ok {
			continue
		}
		if o.Body(ent).Contains(p) {
			return Target{Kind: TargetOverlay, OverlayID: o.ID(), EntityID: ent.ID}
		}
	}

	entities := e.diagram.Entities()
	for i := len(entities) - 1; i >= 0; i-- {
		if entities[i].Bounds().Contains(p) {
			return Target{Kind: TargetEntity, EntityID: entities[i].ID}
		}
	}
	return Target{Kind: TargetBackground}
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
