// Package material holds the steel and concrete grade tables used to build
// fiber material parameters. Stresses are in MPa, compression negative.
package material

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/rcfiber/internal/mander"
)

// Reinforcing steel constants (GB 50010 hot-rolled bars)
const (
	Es   = 200000.0 // Elastic modulus (MPa)
	Esh  = 2000.0   // Tangent at onset of strain hardening (MPa)
	EpsH = 0.045    // Strain at onset of strain hardening
	EpsU = 0.1      // Strain at peak stress
)

// Unconfined concrete strains
const (
	EpsC0 = -0.002 // Strain at peak stress
	EpsCU = -0.004 // Crushing strain
)

// SteelGrade names a reinforcing steel grade.
type SteelGrade string

const (
	HPB300 SteelGrade = "HPB300"
	HRB335 SteelGrade = "HRB335"
	HRB400 SteelGrade = "HRB400"
	HRB500 SteelGrade = "HRB500"
)

var steelYield = map[SteelGrade]float64{
	HPB300: 300,
	HRB335: 335,
	HRB400: 400,
	HRB500: 500,
}

// ConcreteGrade names a concrete strength class.
type ConcreteGrade string

var concreteCube = map[ConcreteGrade]float64{
	"C15": 15, "C20": 20, "C25": 25, "C30": 30, "C35": 35, "C40": 40,
	"C45": 45, "C50": 50, "C55": 55, "C60": 60, "C65": 65, "C70": 70,
	"C75": 75, "C80": 80,
}

// Steel holds the parameters of a strain-hardening bar model.
type Steel struct {
	Grade SteelGrade
	Fy    float64
	Fu    float64
	Es    float64
	Esh   float64
	EpsH  float64
	EpsU  float64
}

// Concrete holds the parameters of a concrete stress-strain model.
type Concrete struct {
	Fc  float64 // peak stress
	Ec  float64 // strain at peak
	Ecu float64 // crushing strain
	E   float64 // initial modulus
}

// ParseSteelGrade looks up a steel grade, ignoring case.
func ParseSteelGrade(s string) (SteelGrade, error) {
	g := SteelGrade(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := steelYield[g]; !ok {
		return "", fmt.Errorf("unknown steel grade %q (known: %s)", s, strings.Join(SteelGrades(), ", "))
	}
	return g, nil
}

// ParseConcreteGrade looks up a concrete grade, ignoring case.
func ParseConcreteGrade(s string) (ConcreteGrade, error) {
	g := ConcreteGrade(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := concreteCube[g]; !ok {
		return "", fmt.Errorf("unknown concrete grade %q (known: %s)", s, strings.Join(ConcreteGrades(), ", "))
	}
	return g, nil
}

// SteelGrades lists the known steel grades in ascending strength.
func SteelGrades() []string {
	out := make([]string, 0, len(steelYield))
	for g := range steelYield {
		out = append(out, string(g))
	}
	sort.Slice(out, func(i, j int) bool { return steelYield[SteelGrade(out[i])] < steelYield[SteelGrade(out[j])] })
	return out
}

// ConcreteGrades lists the known concrete grades in ascending strength.
func ConcreteGrades() []string {
	out := make([]string, 0, len(concreteCube))
	for g := range concreteCube {
		out = append(out, string(g))
	}
	sort.Slice(out, func(i, j int) bool { return concreteCube[ConcreteGrade(out[i])] < concreteCube[ConcreteGrade(out[j])] })
	return out
}

// BarParameters returns the bar model of grade g.
func BarParameters(g SteelGrade) (Steel, error) {
	fy, ok := steelYield[g]
	if !ok {
		return Steel{}, fmt.Errorf("unknown steel grade %q", g)
	}
	return Steel{
		Grade: g,
		Fy:    fy,
		Fu:    0.01*Es*(EpsU-EpsH) + fy,
		Es:    Es,
		Esh:   Esh,
		EpsH:  EpsH,
		EpsU:  EpsU,
	}, nil
}

// CubeStrength is the nominal cube strength R of grade g.
func CubeStrength(g ConcreteGrade) (float64, bool) {
	r, ok := concreteCube[g]
	return r, ok
}

// prismFactor converts cube to prism strength (alpha_c1).
func prismFactor(r float64) float64 {
	if r <= 50 {
		return 0.76
	}
	return 0.76 + 0.06*(r-50)/30
}

// brittleFactor reduces high-strength concrete (alpha_c2).
func brittleFactor(r float64) float64 {
	if r < 40 {
		return 1
	}
	return 1 - 0.13*(r-40)/40
}

// CoverParameters returns the unconfined concrete model of grade g:
// fc = -0.88*alpha_c1*alpha_c2*R.
func CoverParameters(g ConcreteGrade) (Concrete, error) {
	r, ok := concreteCube[g]
	if !ok {
		return Concrete{}, fmt.Errorf("unknown concrete grade %q", g)
	}
	fc := -r * 0.88 * prismFactor(r) * brittleFactor(r)
	return Concrete{
		Fc:  fc,
		Ec:  EpsC0,
		Ecu: EpsCU,
		E:   mander.ElasticModulus(fc),
	}, nil
}

// CoreCircular returns the confined concrete model of a circular column.
// The unconfined strength comes from grade g and overrides in.Fco.
func CoreCircular(g ConcreteGrade, in mander.CircularInput) (Concrete, mander.Result, error) {
	cover, err := CoverParameters(g)
	if err != nil {
		return Concrete{}, mander.Result{}, err
	}
	in.Fco = cover.Fc
	res, err := mander.Circular(in)
	if err != nil {
		return Concrete{}, mander.Result{}, err
	}
	return core(cover, res), res, nil
}

// CoreRectangular returns the confined concrete model of a rectangular
// column. The unconfined strength comes from grade g and overrides in.Fco.
func CoreRectangular(g ConcreteGrade, in mander.RectangularInput) (Concrete, mander.Result, error) {
	cover, err := CoverParameters(g)
	if err != nil {
		return Concrete{}, mander.Result{}, err
	}
	in.Fco = cover.Fc
	res, err := mander.Rectangular(in)
	if err != nil {
		return Concrete{}, mander.Result{}, err
	}
	return core(cover, res), res, nil
}

func core(cover Concrete, res mander.Result) Concrete {
	return Concrete{Fc: res.Fcc, Ec: res.Ecc, Ecu: res.Ecu, E: cover.E}
}

// YieldCurvatureCircular estimates the yield curvature of a circular
// section of diameter d.
func YieldCurvatureCircular(s Steel, d float64) float64 {
	return 2.213 * s.Fy / s.Es / d
}

// YieldCurvatureRectangular estimates the yield curvature of a rectangular
// section of depth h in the bending direction.
func YieldCurvatureRectangular(s Steel, h float64) float64 {
	return 1.957 * s.Fy / s.Es / h
}

// YieldStrain is fy/Es.
func (s Steel) YieldStrain() float64 {
	return s.Fy / s.Es
}

// Stress returns the bar stress at strain eps for a bilinear-with-
// hardening envelope, symmetric in tension and compression.
func (s Steel) Stress(eps float64) float64 {
	a := math.Abs(eps)
	var f float64
	switch {
	case a <= s.YieldStrain():
		f = s.Es * a
	case a <= s.EpsH:
		f = s.Fy
	case a <= s.EpsU:
		f = s.Fy + (s.Fu-s.Fy)*(a-s.EpsH)/(s.EpsU-s.EpsH)
	default:
		f = 0
	}
	return math.Copysign(f, eps)
}
