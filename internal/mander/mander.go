// Package mander computes confined concrete parameters with the Mander
// model. Stresses are in MPa and follow the compression-negative
// convention: inputs may carry either sign, results are negative.
package mander

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Eco is the strain at unconfined peak stress.
	Eco = 0.002
	// Esu is the rupture strain of the transverse steel.
	Esu = 0.09
)

// HoopType is the shape of circular transverse reinforcement.
type HoopType int

const (
	Spiral HoopType = iota
	Hoop
)

func (h HoopType) String() string {
	if h == Hoop {
		return "hoop"
	}
	return "spiral"
}

// ParseHoopType accepts "spiral" or "hoop" (also "circular"), in any case.
func ParseHoopType(s string) (HoopType, error) {
	switch strings.ToLower(s) {
	case "spiral":
		return Spiral, nil
	case "hoop", "circular":
		return Hoop, nil
	}
	return 0, fmt.Errorf("unknown hoop type %q (use spiral or hoop)", s)
}

// CircularInput describes a circular column. Lengths share one unit.
type CircularInput struct {
	Hoop  HoopType
	D     float64 // section diameter
	Cover float64
	RhoCC float64 // longitudinal ratio over core area
	S     float64 // hoop spacing or spiral pitch
	Ds    float64 // hoop bar diameter
	Fyh   float64 // hoop yield stress
	Fco   float64 // unconfined strength
}

// RectangularInput describes a rectangular column. RhoX and RhoY are the
// transverse volumetric ratios on the core.
type RectangularInput struct {
	Lx, Ly float64
	Cover  float64
	RhoCC  float64
	Sl     float64 // longitudinal bar spacing
	Dsl    float64 // longitudinal bar diameter
	RhoX   float64
	RhoY   float64
	St     float64 // stirrup spacing
	Dst    float64 // stirrup diameter
	Fyh    float64
	Fco    float64
}

// Result holds the confined concrete parameters.
type Result struct {
	Fco float64
	Fcc float64
	Ecc float64
	Ecu float64

	Ke float64
	// LateralPressure is the effective lateral pressure. For rectangular
	// sections it is the pair (flx, fly).
	LateralPressure [2]float64
	// StrengthRatio is fcc/fco.
	StrengthRatio float64
	// Iterations of the failure-surface bisection, zero for closed forms.
	Iterations int
}

func positive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%s must be positive, got %g", name, v)
	}
	return nil
}

// Circular evaluates the closed form for circular hoops or spirals.
func Circular(in CircularInput) (Result, error) {
	fco := math.Abs(in.Fco)
	for _, c := range []struct {
		name string
		v    float64
	}{{"diameter", in.D}, {"spacing", in.S}, {"hoop diameter", in.Ds}, {"fyh", in.Fyh}, {"fco", fco}} {
		if err := positive(c.name, c.v); err != nil {
			return Result{}, err
		}
	}
	if in.RhoCC < 0 || in.RhoCC >= 1 {
		return Result{}, fmt.Errorf("longitudinal ratio must be in [0, 1), got %g", in.RhoCC)
	}
	de := in.D - 2*in.Cover - in.Ds
	if de <= 0 {
		return Result{}, fmt.Errorf("hoop centerline diameter %g is not positive", de)
	}

	arch := 1 - in.S/(2*de)
	if in.Hoop == Hoop {
		arch *= arch
	}
	ke := arch / (1 - in.RhoCC)
	rhoS := math.Pi * in.Ds * in.Ds / (de * in.S)
	fle := 0.5 * ke * rhoS * in.Fyh

	fcc := fco * (-1.254 + 2.254*math.Sqrt(1+7.94*fle/fco) - 2*fle/fco)
	return Result{
		Fco:             -fco,
		Fcc:             -fcc,
		Ecc:             -strainAtPeak(fcc, fco),
		Ecu:             -(0.004 + 1.4*rhoS*in.Fyh*Esu/fcc),
		Ke:              ke,
		LateralPressure: [2]float64{fle, fle},
		StrengthRatio:   fcc / fco,
	}, nil
}

// Rectangular solves the failure surface for unequal lateral pressures.
func Rectangular(in RectangularInput) (Result, error) {
	fco := math.Abs(in.Fco)
	for _, c := range []struct {
		name string
		v    float64
	}{{"lx", in.Lx}, {"ly", in.Ly}, {"bar spacing", in.Sl}, {"stirrup spacing", in.St}, {"fyh", in.Fyh}, {"fco", fco}} {
		if err := positive(c.name, c.v); err != nil {
			return Result{}, err
		}
	}
	if in.RhoCC < 0 || in.RhoCC >= 1 {
		return Result{}, fmt.Errorf("longitudinal ratio must be in [0, 1), got %g", in.RhoCC)
	}

	bc := in.Lx - 2*in.Cover - in.Dst
	dc := in.Ly - 2*in.Cover - in.Dst
	if bc <= 0 || dc <= 0 {
		return Result{}, fmt.Errorf("core dimensions %g x %g are not positive", bc, dc)
	}

	// Arching between bars and between stirrup sets uses clear spacings,
	// so every factor stays dimensionless.
	nl := math.Floor(2 * (bc + dc) / in.Sl)
	wClear := in.Sl - in.Dsl
	sClear := in.St - in.Dst
	ke := (1 - nl*wClear*wClear/(6*bc*dc)) * (1 - sClear/(2*bc)) * (1 - sClear/(2*dc)) / (1 - in.RhoCC)
	if ke <= 0 {
		return Result{}, fmt.Errorf("effectiveness coefficient %g is not positive", ke)
	}

	flx := ke * in.RhoX * in.Fyh
	fly := ke * in.RhoY * in.Fyh
	ratio, iters, err := StrengthRatio(flx/fco, fly/fco)
	if err != nil {
		return Result{}, err
	}

	fcc := fco * ratio
	return Result{
		Fco:             -fco,
		Fcc:             -fcc,
		Ecc:             -strainAtPeak(fcc, fco),
		Ecu:             -(0.004 + 1.4*(in.RhoX+in.RhoY)*in.Fyh*Esu/fcc),
		Ke:              ke,
		LateralPressure: [2]float64{flx, fly},
		StrengthRatio:   ratio,
		Iterations:      iters,
	}, nil
}

func strainAtPeak(fcc, fco float64) float64 {
	return Eco * (1 + 5*(fcc/fco-1))
}
