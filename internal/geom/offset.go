package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// OffsetMode selects on which side of a ring the offset ring is built.
type OffsetMode int

const (
	// InsideRing moves every edge into the region enclosed by the ring. Used
	// for the outer boundary of a section.
	InsideRing OffsetMode = iota
	// OutsideRing moves every edge away from the region enclosed by the ring.
	// Used for hole boundaries, where the concrete lies outside the ring.
	OutsideRing
)

func (m OffsetMode) String() string {
	if m == OutsideRing {
		return "outside"
	}
	return "inside"
}

// parallelTol bounds |sin| of the angle between adjacent edges below which
// their offset lines are treated as parallel.
const parallelTol = 1e-9

// Offset builds the ring whose edges are parallel to the edges of r at
// perpendicular distance t, on the side chosen by mode. Offset vertex i
// corresponds to source vertex i.
//
// The thickness must be smaller than half the local width of the ring. This
// is not checked up front; an offset ring that comes out inverted or
// self-intersecting is reported as an InvalidGeometryError.
func Offset(r Ring, t float64, mode OffsetMode) (Ring, error) {
	if err := r.Validate(); err != nil {
		return Ring{}, err
	}
	n := r.Len()

	lines := make([]Line, n)
	for i := 0; i < n; i++ {
		l, err := offsetEdge(r, i, t, mode)
		if err != nil {
			return Ring{}, err
		}
		lines[i] = l
	}

	out := make([]Point, n)
	for i := 0; i < n; i++ {
		k := cornerVertex(i, n)
		p, ok := intersect(lines[i], lines[(i+1)%n])
		if !ok {
			return Ring{}, &SingularOffsetError{Ring: r.Name, Vertex: k}
		}
		out[k] = p
	}

	src := SignedArea(r.Points)
	dst := SignedArea(out)
	if dst == 0 || math.Signbit(src) != math.Signbit(dst) {
		return Ring{}, invalid(r.Name, -1, "offset by %g (%s) inverts the ring; thickness exceeds half its width", t, mode)
	}
	for i := 0; i < n; i++ {
		s, e := r.Edge(i)
		if r2.Dot(r2.Sub(out[(i+1)%n], out[i]), r2.Sub(e, s)) <= 0 {
			return Ring{}, invalid(r.Name, i, "offset by %g (%s) collapses the edge; thickness exceeds half its width", t, mode)
		}
	}
	if e := SelfIntersection(out); e >= 0 {
		return Ring{}, invalid(r.Name, e, "offset by %g (%s) produces a self-intersecting ring", t, mode)
	}

	return Ring{Name: r.Name, Points: out}, nil
}

// cornerVertex maps the corner formed by edge i and edge i+1 to the source
// vertex they share.
func cornerVertex(edge, n int) int {
	return (edge + 1) % n
}

// offsetEdge returns the line parallel to edge i at distance t on the side
// requested by mode. The side is decided by classifying the foot of the
// edge midpoint on one candidate line against the ring itself.
func offsetEdge(r Ring, i int, t float64, mode OffsetMode) (Line, error) {
	s, e := r.Edge(i)
	l := LineThrough(s, e)
	mid := r2.Scale(0.5, r2.Add(s, e))

	cand := l.Shift(t)
	in, err := RingContains(r, cand.Foot(mid))
	if err != nil {
		return Line{}, err
	}
	if in != (mode == InsideRing) {
		cand = l.Shift(-t)
	}
	return cand, nil
}

// intersect solves the 2x2 system formed by two lines in general form.
func intersect(l1, l2 Line) (Point, bool) {
	sin := (l1.A*l2.B - l2.A*l1.B) / (l1.Norm() * l2.Norm())
	if math.Abs(sin) < parallelTol {
		return Point{}, false
	}

	a := mat.NewDense(2, 2, []float64{
		l1.A, l1.B,
		l2.A, l2.B,
	})
	b := mat.NewVecDense(2, []float64{-l1.C, -l2.C})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Point{}, false
	}
	return Point{X: x.AtVec(0), Y: x.AtVec(1)}, true
}
