package geom

import "math"

const (
	ArrowLength    = 10.0
	ArrowHalfWidth = 5.0
)

// Arrowhead returns the three vertices of a triangular head whose tip sits at
// end, oriented along the segment prev→end.
func Arrowhead(prev, end Point) [3]Point {
	angle := math.Atan2(end.Y-prev.Y, end.X-prev.X)
	m := Translate(end.X, end.Y).Multiply(Rotate(angle))
	return [3]Point{
		m.Apply(Point{-ArrowLength, -ArrowHalfWidth}),
		end,
		m.Apply(Point{-ArrowLength, ArrowHalfWidth}),
	}
}
