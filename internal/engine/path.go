package engine

import (
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/geom"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// bezier approximation constant for quarter ellipse arcs
const kappa = 0.5522847498

func rectPath(r geom.Rect) []PathCommand {
	return []PathCommand{
		{"M", r.X, r.Y},
		{"L", r.MaxX(), r.Y},
		{"L", r.MaxX(), r.MaxY()},
		{"L", r.X, r.MaxY()},
		{"Z"},
	}
}

func ellipsePath(cx, cy, rx, ry float64) []PathCommand {
	kx, ky := rx*kappa, ry*kappa
	return []PathCommand{
		{"M", cx + rx, cy},
		{"C", cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		{"C", cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		{"C", cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		{"C", cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		{"Z"},
	}
}

func polylinePath(points []geom.Point, closed bool) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(points)+1)
	path = append(path, PathCommand{"M", points[0].X, points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

// shapePath returns the outline of an entity in canvas space. Images and
// text boxes are framed by their bounds.
func shapePath(ent *document.Entity) []PathCommand {
	switch s := ent.Shape.(type) {
	case *document.Rectangle:
		return rectPath(ent.Bounds())
	case *document.Circle:
		return ellipsePath(s.CenterX, s.CenterY, s.Radius, s.Radius)
	case *document.Ellipse:
		return ellipsePath(s.CenterX, s.CenterY, s.RadiusX, s.RadiusY)
	case *document.Polygon:
		pts := make([]geom.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = p.Add(s.LayoutX, s.LayoutY)
		}
		return polylinePath(pts, true)
	case *document.Connector:
		return polylinePath(s.Points, false)
	default:
		return rectPath(ent.Bounds())
	}
}
