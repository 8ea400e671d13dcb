package fiber

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// BarSpec is a bar diameter with the spacing between bar centres.
type BarSpec struct {
	Diameter float64
	Spacing  float64
}

func (b BarSpec) validate(where string) error {
	if b.Diameter <= 0 {
		return fmt.Errorf("%s: bar diameter must be positive, got %g", where, b.Diameter)
	}
	if b.Spacing <= 0 {
		return fmt.Errorf("%s: bar spacing must be positive, got %g", where, b.Spacing)
	}
	return nil
}

// BarSegment is one straight run of bars between two layout nodes.
type BarSegment struct {
	Start    int
	End      int
	Diameter float64
	Spacing  float64
}

// BarLayout is a user-specified set of bar lines. Nodes and segments are
// keyed by id; segments are placed in ascending id order.
type BarLayout struct {
	Nodes    map[int]geom.Point
	Segments map[int]BarSegment
}

// BarFibers places bars along every edge of a centerline ring. An edge of
// length L holds floor(L/spacing) equally spaced bars starting at its first
// vertex; the shared end vertex belongs to the next edge. An edge shorter
// than the spacing gets a bar at its first vertex only.
func BarFibers(centerline geom.Ring, spec BarSpec) ([]Fiber, error) {
	if err := spec.validate(fmt.Sprintf("bars of ring %q", centerline.Name)); err != nil {
		return nil, err
	}
	var out []Fiber
	for i := 0; i < centerline.Len(); i++ {
		s, e := centerline.Edge(i)
		out = appendBars(out, s, e, spec)
	}
	return out, nil
}

// UserBarFibers places bars along each segment of the layout with the same
// subdivision rule as BarFibers.
func UserBarFibers(layout BarLayout) ([]Fiber, error) {
	ids := make([]int, 0, len(layout.Segments))
	for id := range layout.Segments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []Fiber
	for _, id := range ids {
		seg := layout.Segments[id]
		where := fmt.Sprintf("bar segment %d", id)
		if err := (BarSpec{Diameter: seg.Diameter, Spacing: seg.Spacing}).validate(where); err != nil {
			return nil, err
		}
		s, ok := layout.Nodes[seg.Start]
		if !ok {
			return nil, fmt.Errorf("%s: unknown start node %d", where, seg.Start)
		}
		e, ok := layout.Nodes[seg.End]
		if !ok {
			return nil, fmt.Errorf("%s: unknown end node %d", where, seg.End)
		}
		out = appendBars(out, s, e, BarSpec{Diameter: seg.Diameter, Spacing: seg.Spacing})
	}
	return out, nil
}

func appendBars(out []Fiber, s, e geom.Point, spec BarSpec) []Fiber {
	area := BarArea(spec.Diameter)
	n := int(r2.Norm(r2.Sub(e, s)) / spec.Spacing)
	if n == 0 {
		return append(out, Fiber{Y: s.X, Z: s.Y, Area: area})
	}
	for j := 0; j < n; j++ {
		p := lerp(s, e, j, n)
		out = append(out, Fiber{Y: p.X, Z: p.Y, Area: area})
	}
	return out
}
