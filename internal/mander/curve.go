package mander

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// ElasticModulus is the initial tangent modulus 5000*sqrt(|fco|) in MPa.
func ElasticModulus(fco float64) float64 {
	return 5000 * math.Sqrt(math.Abs(fco))
}

// Curve is a sampled compressive stress-strain curve, both negative.
type Curve struct {
	Strain []float64
	Stress []float64
}

// NewCurve samples the Mander (Popovics) curve
//
//	f = fcc*x*r / (r - 1 + x^r), x = ε/εcc, r = Ec/(Ec - fcc/εcc)
//
// at n+1 equally spaced strains from zero to ecu.
func NewCurve(res Result, n int) (Curve, error) {
	if n < 1 {
		return Curve{}, fmt.Errorf("curve needs at least one interval, got %d", n)
	}
	fcc, ecc, ecu := math.Abs(res.Fcc), math.Abs(res.Ecc), math.Abs(res.Ecu)
	if fcc == 0 || ecc == 0 || ecu == 0 {
		return Curve{}, fmt.Errorf("curve needs non-zero fcc, ecc and ecu")
	}
	ec := ElasticModulus(res.Fco)
	esec := fcc / ecc
	if ec <= esec {
		return Curve{}, fmt.Errorf("secant modulus %g exceeds initial modulus %g", esec, ec)
	}
	r := ec / (ec - esec)

	c := Curve{Strain: make([]float64, n+1), Stress: make([]float64, n+1)}
	floats.Span(c.Strain, 0, ecu)
	for i, eps := range c.Strain {
		x := eps / ecc
		c.Stress[i] = -fcc * x * r / (r - 1 + math.Pow(x, r))
		c.Strain[i] = -eps
	}
	return c, nil
}

// Peak returns the strain and stress of the largest compressive sample.
func (c Curve) Peak() (strain, stress float64) {
	i := floats.MinIdx(c.Stress)
	return c.Strain[i], c.Stress[i]
}

// Energy is the area under the curve (MPa, strain-weighted), a measure of
// the compressive toughness of the concrete.
func (c Curve) Energy() float64 {
	x := make([]float64, len(c.Strain))
	f := make([]float64, len(c.Stress))
	for i := range x {
		x[i] = -c.Strain[i]
		f[i] = -c.Stress[i]
	}
	return integrate.Trapezoidal(x, f)
}
