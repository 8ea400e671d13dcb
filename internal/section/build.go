package section

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/alexiusacademia/rcfiber/internal/material"
)

func (b *BarSpec) spec() *fiber.BarSpec {
	if b == nil {
		return nil
	}
	return &fiber.BarSpec{Diameter: b.Diameter, Spacing: b.Spacing}
}

func (s *Section) outerBars() *fiber.BarSpec {
	if s.Bars == nil {
		return nil
	}
	return s.Bars.Outer.spec()
}

func (s *Section) holeBars() *fiber.BarSpec {
	if s.Bars == nil {
		return nil
	}
	return s.Bars.Hole.spec()
}

// Build discretizes the section into fibers.
func (s *Section) Build(ctx context.Context, b *fiber.Builder) (fiber.Set, error) {
	if s.Shape == ShapeCircle {
		return b.Circle(ctx, fiber.CircleSection{
			Diameter:      s.Circle.Diameter,
			InnerDiameter: s.Circle.InnerDiameter,
			Cover:         s.Cover,
			CoreSize:      s.CoreSize,
			CoverSize:     s.CoverSize,
			OuterBars:     s.outerBars(),
			HoleBars:      s.holeBars(),
		})
	}

	outer, holes, err := s.Rings()
	if err != nil {
		return fiber.Set{}, err
	}
	ps := fiber.PolygonSection{
		Outer:     outer,
		Holes:     holes,
		Cover:     s.Cover,
		CoreSize:  s.CoreSize,
		CoverSize: s.CoverSize,
		OuterBars: s.outerBars(),
		HoleBars:  s.holeBars(),
	}
	if s.UserBars != nil {
		layout := &fiber.BarLayout{
			Nodes:    make(map[int]geom.Point, len(s.UserBars.Nodes)),
			Segments: make(map[int]fiber.BarSegment, len(s.UserBars.Segments)),
		}
		for id, p := range s.UserBars.Nodes {
			layout.Nodes[id] = p.vec()
		}
		for id, seg := range s.UserBars.Segments {
			layout.Segments[id] = fiber.BarSegment{Start: seg.Start, End: seg.End, Diameter: seg.Diameter, Spacing: seg.Spacing}
		}
		ps.UserBars = layout
	}
	return b.Polygon(ctx, ps)
}

// MaterialSet holds the material models of a section.
type MaterialSet struct {
	Steel material.Steel
	Cover material.Concrete
	Core  material.Concrete

	// Confinement is the solved Mander state; zero when the section has no
	// confinement block, in which case Core equals Cover.
	Confinement mander.Result
	// RhoCC is the longitudinal ratio on the core area.
	RhoCC float64
	// YieldCurvature is the estimated yield curvature about each axis.
	YieldCurvature [2]float64
}

// MaterialModels derives the steel, cover and core models of the section.
// The longitudinal ratio is taken from the built fibers.
func (s *Section) MaterialModels(set fiber.Set) (*MaterialSet, error) {
	if s.Materials == nil {
		return nil, &ValidationError{"section has no materials block"}
	}
	sg, err := material.ParseSteelGrade(s.Materials.Steel)
	if err != nil {
		return nil, err
	}
	cg, err := material.ParseConcreteGrade(s.Materials.Concrete)
	if err != nil {
		return nil, err
	}
	steel, err := material.BarParameters(sg)
	if err != nil {
		return nil, err
	}
	cover, err := material.CoverParameters(cg)
	if err != nil {
		return nil, err
	}

	ms := &MaterialSet{Steel: steel, Cover: cover, Core: cover, RhoCC: set.LongitudinalRatio()}

	props, err := s.CalculateProperties()
	if err != nil {
		return nil, err
	}
	if s.Shape == ShapeCircle {
		k := material.YieldCurvatureCircular(steel, s.Circle.Diameter)
		ms.YieldCurvature = [2]float64{k, k}
	} else {
		ms.YieldCurvature = [2]float64{
			material.YieldCurvatureRectangular(steel, props.Width),
			material.YieldCurvatureRectangular(steel, props.Height),
		}
	}

	if s.Confinement == nil {
		return ms, nil
	}

	c := s.Confinement
	if s.Shape == ShapeCircle {
		var hoop mander.HoopType
		hoop, err = mander.ParseHoopType(s.hoop())
		if err != nil {
			return nil, err
		}
		ms.Core, ms.Confinement, err = material.CoreCircular(cg, mander.CircularInput{
			Hoop:  hoop,
			D:     s.Circle.Diameter,
			Cover: s.Cover,
			RhoCC: ms.RhoCC,
			S:     c.Spacing,
			Ds:    c.Diameter,
			Fyh:   c.Fyh,
		})
	} else {
		ms.Core, ms.Confinement, err = material.CoreRectangular(cg, mander.RectangularInput{
			Lx:    props.Width,
			Ly:    props.Height,
			Cover: s.Cover,
			RhoCC: ms.RhoCC,
			Sl:    s.Bars.Outer.Spacing,
			Dsl:   s.Bars.Outer.Diameter,
			RhoX:  c.RhoX,
			RhoY:  c.RhoY,
			St:    c.Spacing,
			Dst:   c.Diameter,
			Fyh:   c.Fyh,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("confinement of %q: %w", s.Name, err)
	}
	return ms, nil
}
