package geom

import "math"

// GridGap is the grid spacing every geometric edit snaps to.
const GridGap = 10.0

// Snap rounds v to the nearest grid multiple, halves rounding up.
func Snap(v float64) float64 {
	return math.Floor(v/GridGap+0.5) * GridGap
}

// Accumulator collects raw pointer deltas and releases them in whole grid
// steps. The remainder below one step is carried into the next Add.
type Accumulator struct {
	dx, dy float64
}

// Add accrues a raw delta and returns the snapped chunk to apply. ok is false
// while neither axis has reached a full grid step.
func (a *Accumulator) Add(dx, dy float64) (sx, sy float64, ok bool) {
	a.dx += dx
	a.dy += dy
	sx, sy = Snap(a.dx), Snap(a.dy)
	if math.Abs(sx) < GridGap && math.Abs(sy) < GridGap {
		return 0, 0, false
	}
	a.dx -= sx
	a.dy -= sy
	return sx, sy, true
}

// Pending returns the unapplied remainder.
func (a *Accumulator) Pending() (float64, float64) {
	return a.dx, a.dy
}

// Reset drops any carried remainder.
func (a *Accumulator) Reset() {
	a.dx, a.dy = 0, 0
}
