package fiber

import (
	"context"
	"fmt"
	"math"

	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mesh"
)

// CircleSection is a solid or hollow circular section centred on the
// origin. InnerDiameter is zero for a solid section.
type CircleSection struct {
	Diameter      float64
	InnerDiameter float64
	Cover         float64
	CoreSize      float64
	CoverSize     float64

	OuterBars *BarSpec
	HoleBars  *BarSpec
}

func (s CircleSection) hollow() bool { return s.InnerDiameter > 0 }

func (s CircleSection) validate() error {
	if s.Diameter <= 0 {
		return &geom.InvalidGeometryError{Ring: "outer", Vertex: -1, Reason: fmt.Sprintf("diameter must be positive, got %g", s.Diameter)}
	}
	if s.Cover <= 0 {
		return fmt.Errorf("cover must be positive, got %g", s.Cover)
	}
	if s.CoreSize <= 0 || s.CoverSize <= 0 {
		return fmt.Errorf("core and cover element sizes must be positive, got %g and %g", s.CoreSize, s.CoverSize)
	}
	if s.InnerDiameter < 0 {
		return &geom.InvalidGeometryError{Ring: "hole", Vertex: -1, Reason: fmt.Sprintf("inner diameter must not be negative, got %g", s.InnerDiameter)}
	}
	if coreOuter, coreInner := s.Diameter-2*s.Cover, s.InnerDiameter+2*s.Cover; coreOuter <= 0 || (s.hollow() && coreInner >= coreOuter) {
		return &geom.InvalidGeometryError{Ring: "outer", Vertex: -1, Reason: fmt.Sprintf("cover %g leaves no core between diameters %g and %g", s.Cover, s.InnerDiameter, s.Diameter)}
	}
	return nil
}

// Circle builds the fibers of a circular section. Cover fibers are equal
// sectors of the exact annulus; bars sit at angles k*2*pi/n for k = 1..n.
func (b *Builder) Circle(ctx context.Context, s CircleSection) (Set, error) {
	if err := s.validate(); err != nil {
		return Set{}, err
	}

	coreR := s.Diameter/2 - s.Cover
	region := mesh.Region{Outer: geom.Circle("core", geom.Point{}, coreR, geom.SegmentsForLength(coreR, s.CoreSize))}
	if s.hollow() {
		holeR := s.InnerDiameter/2 + s.Cover
		region.Holes = []geom.Ring{geom.Circle("core-hole", geom.Point{}, holeR, geom.SegmentsForLength(holeR, s.CoreSize))}
	}
	m, err := b.mesher.Mesh(ctx, region, s.CoreSize)
	if err != nil {
		return Set{}, fmt.Errorf("circular core: %w", err)
	}
	set := Set{Core: FromMesh(m)}

	cover, err := sectorFibers("outer", s.Diameter, s.Diameter-2*s.Cover, s.CoverSize)
	if err != nil {
		return Set{}, err
	}
	set.Cover = cover

	if s.OuterBars != nil {
		r := (s.Diameter-2*s.Cover)/2 - s.OuterBars.Diameter/2
		bars, err := ringBars("outer", r, *s.OuterBars)
		if err != nil {
			return Set{}, err
		}
		set.Bar = bars
	}

	if s.hollow() {
		cover, err := sectorFibers("hole", s.InnerDiameter, s.InnerDiameter+2*s.Cover, s.CoverSize)
		if err != nil {
			return Set{}, err
		}
		set.Cover = append(set.Cover, cover...)

		if s.HoleBars != nil {
			r := (s.InnerDiameter+2*s.Cover)/2 + s.HoleBars.Diameter/2
			bars, err := ringBars("hole", r, *s.HoleBars)
			if err != nil {
				return Set{}, err
			}
			set.Bar = append(set.Bar, bars...)
		}
	}

	b.logger.Debug("circular section built",
		"diameter", s.Diameter,
		"inner_diameter", s.InnerDiameter,
		"core", len(set.Core),
		"cover", len(set.Cover),
		"bars", len(set.Bar))
	return set, nil
}

// sectorFibers splits the annulus between diameters d and dNew into
// floor(pi*d/size) sectors of equal area.
func sectorFibers(ring string, d, dNew, size float64) ([]Fiber, error) {
	n := int(math.Pi * d / size)
	if n == 0 {
		return nil, &geom.InvalidGeometryError{Ring: ring, Vertex: -1, Reason: fmt.Sprintf("cover element size %g exceeds circumference %g", size, math.Pi*d)}
	}
	area := math.Abs(d*d-dNew*dNew) * math.Pi / 4 / float64(n)
	r := (d + dNew) / 4

	out := make([]Fiber, n)
	for k := 1; k <= n; k++ {
		a := float64(2*k-1) * math.Pi / float64(n)
		out[k-1] = Fiber{Y: r * math.Cos(a), Z: r * math.Sin(a), Area: area}
	}
	return out, nil
}

// ringBars places floor(2*pi*r/spacing) bars on a circle of radius r.
func ringBars(ring string, r float64, spec BarSpec) ([]Fiber, error) {
	if err := spec.validate(fmt.Sprintf("bars of ring %q", ring)); err != nil {
		return nil, err
	}
	if r <= 0 {
		return nil, &geom.InvalidGeometryError{Ring: ring, Vertex: -1, Reason: fmt.Sprintf("bar centerline radius %g is not positive", r)}
	}
	n := int(2 * math.Pi * r / spec.Spacing)
	if n == 0 {
		return nil, &geom.InvalidGeometryError{Ring: ring, Vertex: -1, Reason: fmt.Sprintf("bar spacing %g exceeds centerline circumference %g", spec.Spacing, 2*math.Pi*r)}
	}
	area := BarArea(spec.Diameter)
	step := 2 * math.Pi / float64(n)

	out := make([]Fiber, n)
	for k := 1; k <= n; k++ {
		a := float64(k) * step
		out[k-1] = Fiber{Y: r * math.Cos(a), Z: r * math.Sin(a), Area: area}
	}
	return out, nil
}
