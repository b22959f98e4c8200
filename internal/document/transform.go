package document

import (
	"fmt"

	"github.com/inamate/flowdraw/internal/geom"
)

// Translate shifts every coordinate-bearing field of the entity by (dx, dy).
// Polygons move through their layout origin; their local points stay put.
func (e *Entity) Translate(dx, dy float64) {
	switch s := e.Shape.(type) {
	case *Rectangle:
		s.X += dx
		s.Y += dy
	case *Circle:
		s.CenterX += dx
		s.CenterY += dy
	case *Ellipse:
		s.CenterX += dx
		s.CenterY += dy
	case *Polygon:
		s.LayoutX += dx
		s.LayoutY += dy
	case *Image:
		s.X += dx
		s.Y += dy
	case *TextBox:
		s.X += dx
		s.Y += dy
	case *Connector:
		for i := range s.Points {
			s.Points[i] = s.Points[i].Add(dx, dy)
		}
		if s.Head != nil {
			for i := range s.Head.Points {
				s.Head.Points[i] = s.Head.Points[i].Add(dx, dy)
			}
		}
	default:
		panic(fmt.Sprintf("document: unknown shape %T", s))
	}
}

// Bounds returns the entity's axis-aligned bounding box in canvas space.
func (e *Entity) Bounds() geom.Rect {
	switch s := e.Shape.(type) {
	case *Rectangle:
		return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	case *Circle:
		return geom.Rect{X: s.CenterX - s.Radius, Y: s.CenterY - s.Radius, Width: 2 * s.Radius, Height: 2 * s.Radius}
	case *Ellipse:
		return geom.Rect{X: s.CenterX - s.RadiusX, Y: s.CenterY - s.RadiusY, Width: 2 * s.RadiusX, Height: 2 * s.RadiusY}
	case *Polygon:
		return geom.BoundsOf(s.Points...).Translate(s.LayoutX, s.LayoutY)
	case *Image:
		return geom.Rect{X: s.X, Y: s.Y, Width: s.FitWidth, Height: s.FitHeight}
	case *TextBox:
		return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	case *Connector:
		b := geom.BoundsOf(s.Points...)
		if s.Head != nil {
			b = b.Union(geom.BoundsOf(s.Head.Points[:]...))
		}
		return b
	default:
		panic(fmt.Sprintf("document: unknown shape %T", s))
	}
}

// ResizeToBounds fits the entity's geometry to r. Circles keep their aspect
// and take the radius min(w, h)/2 centred in r.
func (e *Entity) ResizeToBounds(r geom.Rect) error {
	switch s := e.Shape.(type) {
	case *Rectangle:
		s.X, s.Y, s.Width, s.Height = r.X, r.Y, r.Width, r.Height
	case *Circle:
		c := r.Center()
		s.CenterX, s.CenterY = c.X, c.Y
		s.Radius = min(r.Width, r.Height) / 2
	case *Ellipse:
		c := r.Center()
		s.CenterX, s.CenterY = c.X, c.Y
		s.RadiusX, s.RadiusY = r.Width/2, r.Height/2
	case *Polygon:
		local := geom.BoundsOf(s.Points...)
		sx, sy := 1.0, 1.0
		if local.Width > 0 {
			sx = r.Width / local.Width
		}
		if local.Height > 0 {
			sy = r.Height / local.Height
		}
		m := geom.Scale(sx, sy)
		for i := range s.Points {
			s.Points[i] = m.Apply(s.Points[i])
		}
		s.LayoutX = r.X - local.X*sx
		s.LayoutY = r.Y - local.Y*sy
	case *Image:
		s.X, s.Y, s.FitWidth, s.FitHeight = r.X, r.Y, r.Width, r.Height
	case *TextBox:
		s.X, s.Y, s.Width, s.Height = r.X, r.Y, r.Width, r.Height
	case *Connector:
		return ErrNotResizable
	default:
		panic(fmt.Sprintf("document: unknown shape %T", s))
	}
	return nil
}

// Clone returns a deep copy of the entity, keeping its ID.
func (e *Entity) Clone() *Entity {
	c := &Entity{ID: e.ID, Kind: e.Kind, Style: e.Style}
	switch s := e.Shape.(type) {
	case *Rectangle:
		v := *s
		c.Shape = &v
	case *Circle:
		v := *s
		c.Shape = &v
	case *Ellipse:
		v := *s
		c.Shape = &v
	case *Polygon:
		v := *s
		v.Points = append([]geom.Point(nil), s.Points...)
		c.Shape = &v
	case *Image:
		v := *s
		c.Shape = &v
	case *TextBox:
		v := *s
		c.Shape = &v
	case *Connector:
		v := Connector{Points: append([]geom.Point(nil), s.Points...)}
		if s.Head != nil {
			head := *s.Head
			v.Head = &head
		}
		c.Shape = &v
	default:
		panic(fmt.Sprintf("document: unknown shape %T", s))
	}
	return c
}

// Validate checks the connector carries exactly four control points.
func (c *Connector) Validate(entityID string) error {
	if len(c.Points) != ConnectorPoints {
		return &InvalidGeometryError{
			EntityID: entityID,
			Reason:   fmt.Sprintf("connector has %d control points, want %d", len(c.Points), ConnectorPoints),
		}
	}
	return nil
}

// IsStraight reports whether both middle control points lie on the segment
// joining the endpoints.
func (c *Connector) IsStraight() bool {
	start, end := c.Points[0], c.Points[ConnectorPoints-1]
	for _, mid := range c.Points[1 : ConnectorPoints-1] {
		if !geom.IsColinear(start, mid, end, geom.ColinearTolerance) {
			return false
		}
	}
	return true
}

// Straighten places the middle control points at 1/3 and 2/3 of the way
// between the endpoints.
func (c *Connector) Straighten() {
	start, end := c.Points[0], c.Points[ConnectorPoints-1]
	dx, dy := end.X-start.X, end.Y-start.Y
	c.Points[1] = geom.Pt(start.X+dx/3, start.Y+dy/3)
	c.Points[2] = geom.Pt(start.X+2*dx/3, start.Y+2*dy/3)
}

// RecomputeHead re-orients the arrowhead along the last segment.
func (c *Connector) RecomputeHead() {
	if c.Head == nil {
		return
	}
	c.Head.Points = geom.Arrowhead(c.Points[ConnectorPoints-2], c.Points[ConnectorPoints-1])
}
