package section

import (
	"math"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// Properties holds calculated gross geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // extent along y
	Height float64 // extent along z
	Area   float64 // gross area, holes removed

	// Centroid location
	CentroidY float64
	CentroidZ float64

	// Bounding box
	MinY, MaxY float64
	MinZ, MaxZ float64

	Holes int
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() (*Properties, error) {
	if s.Shape == ShapeCircle {
		return s.circleProperties(), nil
	}

	outer, holes, err := s.Rings()
	if err != nil {
		return nil, err
	}
	props := &Properties{Holes: len(holes)}

	box := geom.Bounds(outer.Points)
	props.MinY, props.MaxY = box.Min.X, box.Max.X
	props.MinZ, props.MaxZ = box.Min.Y, box.Max.Y
	props.Width = props.MaxY - props.MinY
	props.Height = props.MaxZ - props.MinZ

	// Subtract every hole's first moment from the outer ring's
	area, c := geom.AreaCentroid(outer.Points)
	my, mz := area*c.X, area*c.Y
	for _, h := range holes {
		ha, hc := geom.AreaCentroid(h.Points)
		area -= ha
		my -= ha * hc.X
		mz -= ha * hc.Y
	}
	props.Area = area
	if area > 0 {
		props.CentroidY = my / area
		props.CentroidZ = mz / area
	}
	return props, nil
}

func (s *Section) circleProperties() *Properties {
	r := s.Circle.Diameter / 2
	ri := s.Circle.InnerDiameter / 2
	props := &Properties{
		Width:  2 * r,
		Height: 2 * r,
		Area:   math.Pi * (r*r - ri*ri),
		MinY:   -r,
		MaxY:   r,
		MinZ:   -r,
		MaxZ:   r,
	}
	if ri > 0 {
		props.Holes = 1
	}
	return props
}

// outlineSegments is the chord count used to draw circular boundaries.
const outlineSegments = 120

// Outline returns the section boundary rings and the boundaries of the
// confined core, offset inward from them by the cover.
func (s *Section) Outline() (outline, core []geom.Ring, err error) {
	if s.Shape == ShapeCircle {
		var origin geom.Point
		r := s.Circle.Diameter / 2
		outline = []geom.Ring{geom.Circle("outer", origin, r, outlineSegments)}
		core = []geom.Ring{geom.Circle("outer", origin, r-s.Cover, outlineSegments)}
		if ri := s.Circle.InnerDiameter / 2; ri > 0 {
			outline = append(outline, geom.Circle("hole1", origin, ri, outlineSegments))
			core = append(core, geom.Circle("hole1", origin, ri+s.Cover, outlineSegments))
		}
		return outline, core, nil
	}

	outer, holes, err := s.Rings()
	if err != nil {
		return nil, nil, err
	}
	inner, err := geom.Offset(outer, s.Cover, geom.InsideRing)
	if err != nil {
		return nil, nil, err
	}
	outline = append([]geom.Ring{outer}, holes...)
	core = []geom.Ring{inner}
	for _, h := range holes {
		c, err := geom.Offset(h, s.Cover, geom.OutsideRing)
		if err != nil {
			return nil, nil, err
		}
		core = append(core, c)
	}
	return outline, core, nil
}
