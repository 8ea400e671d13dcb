package geom

import "math"

const (
	// boundaryTol is the distance under which a point counts as lying on an edge.
	boundaryTol = 1e-6
	// windingTol is the allowed deviation of the angle sum from a full turn.
	windingTol = 1e-11
)

// Contains reports whether p lies inside the closed polygon pts or on its
// boundary. It sums the signed angles subtended by every edge as seen from
// p; the sum is a full turn for interior points and zero for exterior ones.
// Either winding direction is accepted.
func Contains(p Point, pts []Point) (bool, error) {
	n := len(pts)
	if n < 3 {
		return false, invalid("", -1, "point classification needs at least 3 vertices, got %d", n)
	}

	var sum float64
	j := n - 1
	for i := 0; i < n; i++ {
		s, t := pts[i], pts[j]
		if onSegment(p, t, s, boundaryTol) {
			return true, nil
		}

		angle := math.Atan2(s.Y-p.Y, s.X-p.X) - math.Atan2(t.Y-p.Y, t.X-p.X)
		if angle > math.Pi {
			angle -= 2 * math.Pi
		} else if angle <= -math.Pi {
			angle += 2 * math.Pi
		}
		sum += angle
		j = i
	}

	return math.Abs(math.Abs(sum)-2*math.Pi) < windingTol, nil
}

// RingContains is Contains for a ring, tagging errors with the ring name.
func RingContains(r Ring, p Point) (bool, error) {
	in, err := Contains(p, r.Points)
	if err != nil {
		return false, invalid(r.Name, -1, "point classification needs at least 3 vertices, got %d", r.Len())
	}
	return in, nil
}
