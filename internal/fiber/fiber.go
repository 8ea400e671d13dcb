// Package fiber discretizes reinforced concrete sections into core, cover
// and bar fibers.
package fiber

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mesh"
)

// Fiber is an area element located at its centroid (Y, Z).
type Fiber struct {
	Y    float64
	Z    float64
	Area float64
}

// Point returns the centroid as a plane point.
func (f Fiber) Point() geom.Point {
	return geom.Point{X: f.Y, Y: f.Z}
}

// Category identifies the material a fiber belongs to.
type Category int

const (
	Core Category = iota
	Cover
	Bar
)

// Categories lists every category in output order.
var Categories = []Category{Core, Cover, Bar}

func (c Category) String() string {
	switch c {
	case Core:
		return "core"
	case Cover:
		return "cover"
	case Bar:
		return "bar"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Set holds the fibers of one section. It is not modified after a build
// returns it.
type Set struct {
	Core  []Fiber
	Cover []Fiber
	Bar   []Fiber
}

// Fibers returns the fibers of category c.
func (s Set) Fibers(c Category) []Fiber {
	switch c {
	case Core:
		return s.Core
	case Cover:
		return s.Cover
	case Bar:
		return s.Bar
	}
	return nil
}

// Area sums the fiber areas of category c.
func (s Set) Area(c Category) float64 {
	return TotalArea(s.Fibers(c))
}

// Len returns the number of fibers over all categories.
func (s Set) Len() int {
	return len(s.Core) + len(s.Cover) + len(s.Bar)
}

// LongitudinalRatio is the bar area divided by the core concrete area.
func (s Set) LongitudinalRatio() float64 {
	core := s.Area(Core)
	if core == 0 {
		return 0
	}
	return s.Area(Bar) / core
}

// TotalArea sums the areas of fs.
func TotalArea(fs []Fiber) float64 {
	areas := make([]float64, len(fs))
	for i, f := range fs {
		areas[i] = f.Area
	}
	return floats.Sum(areas)
}

// FromMesh converts every triangle of m into a fiber at its centroid.
func FromMesh(m mesh.Mesh) []Fiber {
	out := make([]Fiber, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		a, b, c := m.Triangle(i)
		ctr := mesh.TriangleCentroid(a, b, c)
		out = append(out, Fiber{Y: ctr.X, Z: ctr.Y, Area: math.Abs(mesh.TriangleArea(a, b, c))})
	}
	return out
}

// BarArea is the cross-sectional area of a bar of diameter d.
func BarArea(d float64) float64 {
	return math.Pi * d * d / 4
}
