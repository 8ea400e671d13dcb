package fiber

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// CoverFibers slices the strip between ring and its offset into fibers.
// Each edge of length L is split into max(1, floor(L/size)) parts, the
// offset edge into the same number. A fiber's area is the mean of its two
// sub-lengths times the thickness and its centroid is the midpoint of the
// two sub-segment midpoints.
func CoverFibers(ring, offset geom.Ring, size, thickness float64) ([]Fiber, error) {
	if ring.Len() != offset.Len() {
		return nil, fmt.Errorf("cover strip of ring %q: %d vertices but offset has %d", ring.Name, ring.Len(), offset.Len())
	}
	if size <= 0 {
		return nil, fmt.Errorf("cover strip of ring %q: element size must be positive, got %g", ring.Name, size)
	}

	var out []Fiber
	for i := 0; i < ring.Len(); i++ {
		s, e := ring.Edge(i)
		os, oe := offset.Edge(i)

		n := int(r2.Norm(r2.Sub(e, s)) / size)
		if n < 1 {
			n = 1
		}
		for j := 0; j < n; j++ {
			a0, a1 := lerp(s, e, j, n), lerp(s, e, j+1, n)
			b0, b1 := lerp(os, oe, j, n), lerp(os, oe, j+1, n)

			la := r2.Norm(r2.Sub(a1, a0))
			lb := r2.Norm(r2.Sub(b1, b0))
			ctr := r2.Scale(0.25, r2.Add(r2.Add(a0, a1), r2.Add(b0, b1)))
			out = append(out, Fiber{Y: ctr.X, Z: ctr.Y, Area: (la + lb) / 2 * thickness})
		}
	}
	return out, nil
}

// lerp returns the point j/n of the way from s to e.
func lerp(s, e geom.Point, j, n int) geom.Point {
	return r2.Add(s, r2.Scale(float64(j)/float64(n), r2.Sub(e, s)))
}
