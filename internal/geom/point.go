package geom

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Lerp returns the point at parameter t on the segment a→b.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// IsColinear reports whether mid lies on the line through start and end,
// using the 2D cross product against an absolute tolerance.
func IsColinear(start, mid, end Point, tolerance float64) bool {
	cross := (mid.Y-start.Y)*(end.X-start.X) - (mid.X-start.X)*(end.Y-start.Y)
	if cross < 0 {
		cross = -cross
	}
	return cross < tolerance
}

// ColinearTolerance is the default tolerance for IsColinear.
const ColinearTolerance = 1e-7
