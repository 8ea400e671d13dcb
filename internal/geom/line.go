package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Line is an infinite line in general form A*x + B*y + C = 0.
type Line struct {
	A, B, C float64
}

// LineThrough returns the line through p and q using the two-point form
// (q.Y-p.Y)x + (p.X-q.X)y + (q.X-p.X)p.Y - (q.Y-p.Y)p.X = 0.
func LineThrough(p, q Point) Line {
	a := q.Y - p.Y
	b := -(q.X - p.X)
	c := (q.X-p.X)*p.Y - (q.Y-p.Y)*p.X
	return Line{A: a, B: b, C: c}
}

// Norm is the length of the normal vector (A, B).
func (l Line) Norm() float64 {
	return math.Hypot(l.A, l.B)
}

// Distance is the perpendicular distance from p to the line.
func (l Line) Distance(p Point) float64 {
	return math.Abs(l.A*p.X+l.B*p.Y+l.C) / l.Norm()
}

// Shift returns the parallel line at signed distance d. Both signs of d
// must be tried to find the side that is wanted.
func (l Line) Shift(d float64) Line {
	return Line{A: l.A, B: l.B, C: l.C - l.Norm()*d}
}

// Foot returns the orthogonal projection of p onto the line.
func (l Line) Foot(p Point) Point {
	k := (l.A*p.X + l.B*p.Y + l.C) / (l.A*l.A + l.B*l.B)
	return r2.Sub(p, Point{X: k * l.A, Y: k * l.B})
}

// onSegment reports whether p lies within tol of the segment s-t.
func onSegment(p, s, t Point, tol float64) bool {
	d := r2.Sub(t, s)
	l2 := r2.Norm2(d)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, s)) < tol
	}
	if LineThrough(s, t).Distance(p) >= tol {
		return false
	}
	u := r2.Dot(r2.Sub(p, s), d) / l2
	return u >= 0 && u <= 1
}

// SegmentsIntersect reports whether the closed segments p1-p2 and q1-q2
// share at least one point.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	const tol = 1e-12
	return (d1 == 0 && onSegment(p1, q1, q2, tol)) ||
		(d2 == 0 && onSegment(p2, q1, q2, tol)) ||
		(d3 == 0 && onSegment(q1, p1, p2, tol)) ||
		(d4 == 0 && onSegment(q2, p1, p2, tol))
}

func orient(a, b, c Point) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}
