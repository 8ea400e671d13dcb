// Package mesh triangulates polygon-with-holes regions into core concrete
// elements.
package mesh

import (
	"context"
	"fmt"
	"math"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// Region is a polygon with holes. Holes must lie inside Outer and must not
// overlap each other.
type Region struct {
	Outer geom.Ring
	Holes []geom.Ring
}

// Contains reports whether p lies in the region: inside or on the outer
// ring and not strictly inside any hole.
func (r Region) Contains(p geom.Point) (bool, error) {
	in, err := geom.RingContains(r.Outer, p)
	if err != nil || !in {
		return false, err
	}
	for _, h := range r.Holes {
		inHole, err := geom.RingContains(h, p)
		if err != nil {
			return false, err
		}
		if inHole && boundaryDistance(h, p) > boundaryEps {
			return false, nil
		}
	}
	return true, nil
}

// Area is the outer ring area less the hole areas.
func (r Region) Area() float64 {
	a := math.Abs(geom.SignedArea(r.Outer.Points))
	for _, h := range r.Holes {
		a -= math.Abs(geom.SignedArea(h.Points))
	}
	return a
}

// Mesh is a triangulation. Every triangle indexes into Points and is stored
// counter-clockwise.
type Mesh struct {
	Points    []geom.Point
	Triangles [][3]int
}

// Len returns the number of triangles.
func (m Mesh) Len() int { return len(m.Triangles) }

// Triangle returns the corner points of triangle i.
func (m Mesh) Triangle(i int) (a, b, c geom.Point) {
	t := m.Triangles[i]
	return m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
}

// Mesher triangulates a region with elements of roughly the given size.
type Mesher interface {
	Mesh(ctx context.Context, region Region, size float64) (Mesh, error)
}

// MeshGenerationError is returned when no usable triangulation could be
// produced. Size is the last element size tried.
type MeshGenerationError struct {
	Size     float64
	Attempts int
	Err      error
}

func (e *MeshGenerationError) Error() string {
	return fmt.Sprintf("mesh generation failed after %d attempt(s), last size %g: %v", e.Attempts, e.Size, e.Err)
}

func (e *MeshGenerationError) Unwrap() error { return e.Err }

// TriangleArea is half the cross product of the two edges from a, positive
// for counter-clockwise triangles.
func TriangleArea(a, b, c geom.Point) float64 {
	return 0.5 * (a.X*b.Y - b.X*a.Y + b.X*c.Y - c.X*b.Y + c.X*a.Y - a.X*c.Y)
}

// TriangleCentroid is the mean of the three corners.
func TriangleCentroid(a, b, c geom.Point) geom.Point {
	return geom.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}
