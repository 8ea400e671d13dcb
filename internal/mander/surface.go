package mander

import (
	"fmt"
	"math"
)

const (
	// surfaceTol is the accepted |g| on the failure surface.
	surfaceTol = 1e-3
	// maxIterations caps the bisection.
	maxIterations = 200
	// Axial stress bracket, normalized by fco.
	sigma3Lo = -4.0
	sigma3Hi = -1.0
)

// Meridian coefficients of the five-parameter surface calibrated to the
// Schickert-Winkler tests. r(σa) = c0 + σa*(c1 + σa*c2).
var (
	tensileMeridian     = [3]float64{0.053627, -0.512079, -0.038226}
	compressiveMeridian = [3]float64{0.095248, -0.891175, -0.244420}
)

// ConfinementSolveError reports a failed failure-surface solve. Axis names
// the stress that could not be found ("axial") or the confinement ratio
// that was rejected ("x", "y").
type ConfinementSolveError struct {
	Axis       string
	Reason     string
	Lo, Hi     float64
	Iterations int
}

func (e *ConfinementSolveError) Error() string {
	return fmt.Sprintf("confinement solve (%s): %s [bracket %g, %g after %d iterations]",
		e.Axis, e.Reason, e.Lo, e.Hi, e.Iterations)
}

func horner(c [3]float64, x float64) float64 {
	return c[0] + x*(c[1]+x*c[2])
}

// WillamWarnke evaluates the five-parameter failure function for principal
// stresses normalized by the unconfined strength, compression negative. The
// result is zero on the surface, negative inside and positive outside.
//
// The stresses are split into mean and deviatoric parts before the octahedral
// shear and Lode angle are formed, which keeps the differences of nearly
// equal principal stresses out of the squared terms.
func WillamWarnke(sigma1, sigma2, sigma3 float64) float64 {
	sa := (sigma1 + sigma2 + sigma3) / 3
	s1, s2, s3 := sigma1-sa, sigma2-sa, sigma3-sa
	dev := math.Sqrt(s1*s1 + s2*s2 + s3*s3)
	tau := dev / math.Sqrt(5)

	cos := 1.0
	if dev > 0 {
		cos = math.Sqrt(1.5) * s1 / dev
	}

	r1 := horner(tensileMeridian, sa)
	r2 := horner(compressiveMeridian, sa)
	r21 := (r2 - r1) * (r2 + r1)
	q := 4 * r21 * cos * cos

	num := 2*r2*r21*cos + r2*(2*r1-r2)*math.Sqrt(q+r1*(5*r1-4*r2))
	den := q + (r2-2*r1)*(r2-2*r1)
	return tau/(num/den) - 1
}

// StrengthRatio returns fcc/fco for a core confined by the two lateral
// confinement ratios (lateral pressure over fco, both non-negative). It
// bisects the axial stress on [-4, -1] until the failure function is within
// 1e-3 of zero and also returns the number of bisection steps taken.
func StrengthRatio(ratioX, ratioY float64) (float64, int, error) {
	for _, r := range []struct {
		axis string
		v    float64
	}{{"x", ratioX}, {"y", ratioY}} {
		if r.v < 0 || math.IsNaN(r.v) {
			return 0, 0, &ConfinementSolveError{Axis: r.axis, Reason: fmt.Sprintf("confinement ratio %g is negative", r.v), Lo: sigma3Lo, Hi: sigma3Hi}
		}
	}

	sigma1 := -math.Min(ratioX, ratioY)
	sigma2 := -math.Max(ratioX, ratioY)
	g := func(s3 float64) float64 { return WillamWarnke(sigma1, sigma2, s3) }

	lo, hi := sigma3Lo, sigma3Hi
	glo, ghi := g(lo), g(hi)
	switch {
	case math.Abs(ghi) < surfaceTol:
		return -hi, 0, nil
	case math.Abs(glo) < surfaceTol:
		return -lo, 0, nil
	case math.IsNaN(glo) || math.IsNaN(ghi) || glo*ghi > 0:
		return 0, 0, &ConfinementSolveError{
			Axis:   "axial",
			Reason: fmt.Sprintf("failure function does not change sign over the bracket (g=%g, %g)", glo, ghi),
			Lo:     lo,
			Hi:     hi,
		}
	}

	for i := 1; i <= maxIterations; i++ {
		mid := (lo + hi) / 2
		gm := g(mid)
		if math.Abs(gm) < surfaceTol {
			return -mid, i, nil
		}
		if glo*gm < 0 {
			hi = mid
		} else {
			lo, glo = mid, gm
		}
	}
	return 0, maxIterations, &ConfinementSolveError{
		Axis:       "axial",
		Reason:     "no convergence",
		Lo:         lo,
		Hi:         hi,
		Iterations: maxIterations,
	}
}
