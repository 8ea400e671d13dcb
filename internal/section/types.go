package section

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/alexiusacademia/rcfiber/internal/material"
)

// Shapes a section file can describe.
const (
	ShapePolygon = "polygon"
	ShapeCircle  = "circle"
)

// Section is a reinforced concrete cross-section definition as read from
// a JSON or YAML file. Coordinates are (y, z) in the section plane and all
// lengths share one unit (metres in the bundled examples).
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Shape       string `json:"shape" yaml:"shape" validate:"required,oneof=polygon circle"`

	// Cover thickness and target element sizes
	Cover     float64 `json:"cover" yaml:"cover" validate:"gt=0"`
	CoreSize  float64 `json:"core_size" yaml:"core_size" validate:"gt=0"`
	CoverSize float64 `json:"cover_size" yaml:"cover_size" validate:"gt=0"`

	// Polygon geometry. The outer boundary should run counter-clockwise.
	Outer *Boundary  `json:"outer,omitempty" yaml:"outer,omitempty" validate:"required_if=Shape polygon"`
	Holes []Boundary `json:"holes,omitempty" yaml:"holes,omitempty" validate:"dive"`

	// Circular geometry
	Circle *Circle `json:"circle,omitempty" yaml:"circle,omitempty" validate:"required_if=Shape circle"`

	Bars     *Bars     `json:"bars,omitempty" yaml:"bars,omitempty"`
	UserBars *UserBars `json:"user_bars,omitempty" yaml:"user_bars,omitempty"`

	Materials   *Materials   `json:"materials,omitempty" yaml:"materials,omitempty"`
	Confinement *Confinement `json:"confinement,omitempty" yaml:"confinement,omitempty"`
}

// Point is a coordinate in the section plane.
type Point struct {
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (p Point) vec() geom.Point { return geom.Point{X: p.Y, Y: p.Z} }

// Boundary is a closed ring given either as an ordered vertex list or as
// id-keyed node and edge maps.
type Boundary struct {
	Vertices []Point        `json:"vertices,omitempty" yaml:"vertices,omitempty" validate:"required_without=Nodes,omitempty,min=3"`
	Nodes    map[int]Point  `json:"nodes,omitempty" yaml:"nodes,omitempty" validate:"required_without=Vertices,omitempty,min=3"`
	Edges    map[int][2]int `json:"edges,omitempty" yaml:"edges,omitempty" validate:"required_with=Nodes"`
}

// Circle describes a solid (Inner = 0) or hollow circular section.
type Circle struct {
	Diameter      float64 `json:"diameter" yaml:"diameter" validate:"gt=0"`
	InnerDiameter float64 `json:"inner_diameter,omitempty" yaml:"inner_diameter,omitempty" validate:"gte=0"`
}

// BarSpec is a bar diameter and centre spacing.
type BarSpec struct {
	Diameter float64 `json:"diameter" yaml:"diameter" validate:"gt=0"`
	Spacing  float64 `json:"spacing" yaml:"spacing" validate:"gt=0"`
}

// Bars places bars automatically along the outer boundary and the holes.
type Bars struct {
	Outer *BarSpec `json:"outer,omitempty" yaml:"outer,omitempty"`
	Hole  *BarSpec `json:"hole,omitempty" yaml:"hole,omitempty"`
}

// UserBars lists explicit bar lines.
type UserBars struct {
	Nodes    map[int]Point      `json:"nodes" yaml:"nodes" validate:"required,min=2"`
	Segments map[int]BarSegment `json:"segments" yaml:"segments" validate:"required,min=1,dive"`
}

// BarSegment is one bar line between two user nodes.
type BarSegment struct {
	Start    int     `json:"start" yaml:"start"`
	End      int     `json:"end" yaml:"end"`
	Diameter float64 `json:"diameter" yaml:"diameter" validate:"gt=0"`
	Spacing  float64 `json:"spacing" yaml:"spacing" validate:"gt=0"`
}

// Materials names the material grades of the section.
type Materials struct {
	Steel    string `json:"steel" yaml:"steel" validate:"required"`
	Concrete string `json:"concrete" yaml:"concrete" validate:"required"`
}

// Confinement describes the transverse reinforcement. Hoop applies to
// circular sections; RhoX and RhoY to polygon sections, which are treated
// as rectangles of their bounding box.
type Confinement struct {
	Hoop     string  `json:"hoop,omitempty" yaml:"hoop,omitempty" validate:"omitempty"`
	Spacing  float64 `json:"spacing" yaml:"spacing" validate:"gt=0"`
	Diameter float64 `json:"diameter" yaml:"diameter" validate:"gt=0"`
	Fyh      float64 `json:"fyh" yaml:"fyh" validate:"gt=0"`
	RhoX     float64 `json:"rho_x,omitempty" yaml:"rho_x,omitempty" validate:"gte=0"`
	RhoY     float64 `json:"rho_y,omitempty" yaml:"rho_y,omitempty" validate:"gte=0"`
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return &ValidationError{msg: "invalid section: " + strings.Join(msgs, "; ")}
		}
		return &ValidationError{msg: err.Error()}
	}

	if s.Shape == ShapeCircle {
		if len(s.Holes) > 0 || s.Outer != nil {
			return &ValidationError{"circle sections take their geometry from the circle block only"}
		}
		if s.UserBars != nil {
			return &ValidationError{"user bar lines are only supported for polygon sections"}
		}
	}
	if s.Bars != nil && s.Bars.Hole != nil && len(s.Holes) == 0 && (s.Circle == nil || s.Circle.InnerDiameter == 0) {
		return &ValidationError{"hole bars given but the section has no hole"}
	}
	if s.UserBars != nil {
		ids := make([]int, 0, len(s.UserBars.Segments))
		for id := range s.UserBars.Segments {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			seg := s.UserBars.Segments[id]
			for _, n := range []int{seg.Start, seg.End} {
				if _, ok := s.UserBars.Nodes[n]; !ok {
					return &ValidationError{msg: fmt.Sprintf("user bar segment %d references unknown node %d", id, n)}
				}
			}
		}
	}
	if s.Materials != nil {
		if _, err := material.ParseSteelGrade(s.Materials.Steel); err != nil {
			return &ValidationError{msg: err.Error()}
		}
		if _, err := material.ParseConcreteGrade(s.Materials.Concrete); err != nil {
			return &ValidationError{msg: err.Error()}
		}
	}
	if s.Confinement != nil {
		if s.Materials == nil {
			return &ValidationError{"confinement requires a materials block"}
		}
		if _, err := mander.ParseHoopType(s.hoop()); err != nil {
			return &ValidationError{msg: err.Error()}
		}
		if s.Shape != ShapeCircle && (s.Bars == nil || s.Bars.Outer == nil) {
			return &ValidationError{"confinement of a polygon section requires outer bars"}
		}
	}
	return nil
}

func (s *Section) hoop() string {
	if s.Confinement == nil || s.Confinement.Hoop == "" {
		return "spiral"
	}
	return s.Confinement.Hoop
}

// Rings converts the polygon geometry into rings. Holes are named hole1,
// hole2 and so on.
func (s *Section) Rings() (geom.Ring, []geom.Ring, error) {
	if s.Outer == nil {
		return geom.Ring{}, nil, &ValidationError{"section has no outer boundary"}
	}
	outer, err := s.Outer.ring("outer")
	if err != nil {
		return geom.Ring{}, nil, err
	}
	holes := make([]geom.Ring, len(s.Holes))
	for i, h := range s.Holes {
		holes[i], err = h.ring(fmt.Sprintf("hole%d", i+1))
		if err != nil {
			return geom.Ring{}, nil, err
		}
	}
	return outer, holes, nil
}

func (b Boundary) ring(name string) (geom.Ring, error) {
	if len(b.Vertices) > 0 {
		pts := make([]geom.Point, len(b.Vertices))
		for i, v := range b.Vertices {
			pts[i] = v.vec()
		}
		r := geom.NewRing(name, pts)
		return r, r.Validate()
	}
	nodes := make(map[int]geom.Point, len(b.Nodes))
	for id, p := range b.Nodes {
		nodes[id] = p.vec()
	}
	r, err := geom.RingFromMaps(name, nodes, b.Edges)
	if err != nil {
		return geom.Ring{}, err
	}
	return r, r.Validate()
}
