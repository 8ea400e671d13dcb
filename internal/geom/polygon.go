package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SignedArea uses the shoelace formula. It is positive for counter-clockwise
// rings.
func SignedArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// AreaCentroid returns the absolute area and the centroid of a simple
// polygon.
func AreaCentroid(pts []Point) (area float64, c Point) {
	n := len(pts)
	if n < 3 {
		return 0, Point{}
	}

	var signedArea, sumX, sumY float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
		signedArea += cross
		sumX += (pts[i].X + pts[j].X) * cross
		sumY += (pts[i].Y + pts[j].Y) * cross
	}
	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		c = Point{X: sumX / (6 * signedArea), Y: sumY / (6 * signedArea)}
	}
	return area, c
}

// Bounds returns the bounding box of the points.
func Bounds(pts []Point) r2.Box {
	if len(pts) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// SelfIntersection returns the index of the first edge that crosses a
// non-adjacent edge of the same ring, or -1 when the ring is simple.
func SelfIntersection(pts []Point) int {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsIntersect(a1, a2, pts[j], pts[(j+1)%n]) {
				return i
			}
		}
	}
	return -1
}

// SegmentDistance is the distance from p to the closed segment s-t.
func SegmentDistance(p, s, t Point) float64 {
	d := r2.Sub(t, s)
	l2 := r2.Norm2(d)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, s))
	}
	u := math.Max(0, math.Min(1, r2.Dot(r2.Sub(p, s), d)/l2))
	return r2.Norm(r2.Sub(p, r2.Add(s, r2.Scale(u, d))))
}
