package document

import (
	"github.com/inamate/flowdraw/internal/geom"
)

// NewSampleDiagram lays out a small decision flow: start, process, decision
// and an output step joined by arrows.
func NewSampleDiagram(f *Factory) (*Diagram, error) {
	d := NewDiagram()

	shapes := []struct {
		kind Kind
		x, y float64
	}{
		{KindEllipse, 200, 60},
		{KindRectangle, 150, 150},
		{KindDecision, 150, 240},
		{KindInputOutput, 150, 400},
		{KindText, 270, 280},
	}
	for _, s := range shapes {
		e, err := f.CreateShape(string(s.kind), s.x, s.y)
		if err != nil {
			return nil, err
		}
		d.Add(e)
	}

	links := [][2]geom.Point{
		{{X: 200, Y: 90}, {X: 200, Y: 150}},
		{{X: 200, Y: 200}, {X: 200, Y: 240}},
		{{X: 200, Y: 340}, {X: 200, Y: 400}},
	}
	for _, l := range links {
		e, err := f.CreateShape(string(KindArrow), l[0].X, l[0].Y)
		if err != nil {
			return nil, err
		}
		c := e.Shape.(*Connector)
		c.Points[ConnectorPoints-1] = l[1]
		c.Straighten()
		c.RecomputeHead()
		d.Add(e)
	}

	if text, ok := d.Get(d.order[len(shapes)-1]); ok {
		text.Shape.(*TextBox).Text = "yes"
	}
	return d, nil
}
