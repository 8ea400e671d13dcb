package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/rcfiber/internal/mander"
)

func TestBarParameters(t *testing.T) {
	s, err := BarParameters(HRB400)
	require.NoError(t, err)
	assert.Equal(t, 400.0, s.Fy)
	assert.InDelta(t, 510.0, s.Fu, 1e-9)
	assert.Equal(t, 200000.0, s.Es)
	assert.InDelta(t, 0.002, s.YieldStrain(), 1e-15)

	_, err = BarParameters("HRB999")
	require.Error(t, err)
}

func TestCoverParameters(t *testing.T) {
	tests := []struct {
		grade ConcreteGrade
		fc    float64
	}{
		{"C35", -35 * 0.88 * 0.76},
		{"C40", -26.752},
		{"C60", -60 * 0.88 * 0.78 * 0.935},
		{"C80", -80 * 0.88 * 0.82 * 0.87},
	}
	for _, tt := range tests {
		c, err := CoverParameters(tt.grade)
		require.NoError(t, err)
		assert.InDelta(t, tt.fc, c.Fc, 1e-9, string(tt.grade))
		assert.Equal(t, -0.002, c.Ec)
		assert.Equal(t, -0.004, c.Ecu)
		assert.Greater(t, c.E, 0.0)
	}
}

func TestParseGrades(t *testing.T) {
	g, err := ParseSteelGrade(" hrb500 ")
	require.NoError(t, err)
	assert.Equal(t, HRB500, g)

	_, err = ParseSteelGrade("S355")
	require.Error(t, err)

	c, err := ParseConcreteGrade("c30")
	require.NoError(t, err)
	assert.Equal(t, ConcreteGrade("C30"), c)

	_, err = ParseConcreteGrade("C42")
	require.Error(t, err)

	assert.Equal(t, []string{"HPB300", "HRB335", "HRB400", "HRB500"}, SteelGrades())
	grades := ConcreteGrades()
	assert.Equal(t, "C15", grades[0])
	assert.Equal(t, "C80", grades[len(grades)-1])
}

func TestCoreCircular(t *testing.T) {
	core, res, err := CoreCircular("C40", mander.CircularInput{
		Hoop: mander.Spiral, D: 2, Cover: 0.06, RhoCC: 0.03, S: 0.1, Ds: 0.014, Fyh: 400,
	})
	require.NoError(t, err)
	assert.InDelta(t, -26.752, res.Fco, 1e-12)
	assert.Less(t, core.Fc, res.Fco)
	assert.Equal(t, res.Ecc, core.Ec)
	assert.InDelta(t, mander.ElasticModulus(-26.752), core.E, 1e-9)
}

func TestCoreRectangular(t *testing.T) {
	core, res, err := CoreRectangular("C40", mander.RectangularInput{
		Lx: 1.6, Ly: 3.2, Cover: 0.06, RhoCC: 0.02,
		Sl: 0.1846153846, Dsl: 0.028, RhoX: 0.005, RhoY: 0.005,
		St: 0.15, Dst: 0.012, Fyh: 400,
	})
	require.NoError(t, err)
	assert.InEpsilon(t, -37.56775, core.Fc, 1e-6)
	assert.Equal(t, 9, res.Iterations)
}

func TestYieldCurvature(t *testing.T) {
	s, err := BarParameters(HRB400)
	require.NoError(t, err)
	assert.InDelta(t, 2.213*0.002/2, YieldCurvatureCircular(s, 2), 1e-15)
	assert.InDelta(t, 1.957*0.002/1.6, YieldCurvatureRectangular(s, 1.6), 1e-15)
}

func TestSteelStress(t *testing.T) {
	s, err := BarParameters(HRB400)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, s.Stress(0.001), 1e-9)
	assert.InDelta(t, -400.0, s.Stress(-0.01), 1e-9)
	assert.InDelta(t, 400+110.0/2, s.Stress(0.0725), 1e-9)
	assert.Zero(t, s.Stress(0.2))
}
