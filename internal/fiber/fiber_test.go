package fiber

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mesh"
)

func square(name string, lo, hi float64) geom.Ring {
	return geom.NewRing(name, []geom.Point{{X: lo, Y: lo}, {X: hi, Y: lo}, {X: hi, Y: hi}, {X: lo, Y: hi}})
}

func TestCoverFibersStrip(t *testing.T) {
	ring := square("outer", 0, 2)
	core, err := geom.Offset(ring, 0.1, geom.InsideRing)
	require.NoError(t, err)

	fs, err := CoverFibers(ring, core, 0.5, 0.1)
	require.NoError(t, err)
	require.Len(t, fs, 16)

	for _, f := range fs {
		assert.InDelta(t, 0.5*(0.5+0.45)*0.1, f.Area, 1e-12)
	}
	assert.InDelta(t, 0.2875, fs[0].Y, 1e-12)
	assert.InDelta(t, 0.05, fs[0].Z, 1e-12)
	assert.InDelta(t, 4-1.8*1.8, TotalArea(fs), 1e-12)
}

func TestCoverFibersShortEdge(t *testing.T) {
	ring := square("outer", 0, 1)
	core, err := geom.Offset(ring, 0.1, geom.InsideRing)
	require.NoError(t, err)

	fs, err := CoverFibers(ring, core, 5, 0.1)
	require.NoError(t, err)
	assert.Len(t, fs, 4, "an edge shorter than the size still yields one fiber")
}

func TestCoverFibersMismatch(t *testing.T) {
	_, err := CoverFibers(square("outer", 0, 1), geom.NewRing("x", []geom.Point{{}, {X: 1}, {Y: 1}}), 0.1, 0.1)
	require.Error(t, err)
}

func TestBarFibers(t *testing.T) {
	centerline := square("outer", 0.11, 1.89)
	fs, err := BarFibers(centerline, BarSpec{Diameter: 0.02, Spacing: 0.3})
	require.NoError(t, err)
	require.Len(t, fs, 20)

	assert.InDelta(t, 0.11, fs[0].Y, 1e-12)
	assert.InDelta(t, 0.11, fs[0].Z, 1e-12)
	assert.InDelta(t, 0.11+1.78/5, fs[1].Y, 1e-12)
	assert.InDelta(t, 1.89, fs[5].Y, 1e-12)
	assert.InDelta(t, 0.11, fs[5].Z, 1e-12)
	for _, f := range fs {
		assert.InDelta(t, math.Pi*0.02*0.02/4, f.Area, 1e-15)
	}
}

func TestBarFibersInvalidSpec(t *testing.T) {
	_, err := BarFibers(square("outer", 0, 1), BarSpec{Diameter: 0.02})
	require.Error(t, err)
}

func TestUserBarFibers(t *testing.T) {
	layout := BarLayout{
		Nodes: map[int]geom.Point{1: {X: 0, Y: 0}, 2: {X: 1, Y: 0}, 3: {X: 1, Y: 0.1}},
		Segments: map[int]BarSegment{
			4: {Start: 2, End: 3, Diameter: 0.03, Spacing: 0.5},
			1: {Start: 1, End: 2, Diameter: 0.02, Spacing: 0.25},
		},
	}
	fs, err := UserBarFibers(layout)
	require.NoError(t, err)
	require.Len(t, fs, 5)

	for j := 0; j < 4; j++ {
		assert.InDelta(t, 0.25*float64(j), fs[j].Y, 1e-12)
		assert.InDelta(t, BarArea(0.02), fs[j].Area, 1e-15)
	}
	assert.Equal(t, Fiber{Y: 1, Z: 0, Area: BarArea(0.03)}, fs[4])

	layout.Segments[9] = BarSegment{Start: 3, End: 7, Diameter: 0.02, Spacing: 0.1}
	_, err = UserBarFibers(layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown end node 7")
}

func TestPolygonSection(t *testing.T) {
	b := NewBuilder()
	s := PolygonSection{
		Outer:     square("outer", 0, 2),
		Cover:     0.1,
		CoreSize:  0.2,
		CoverSize: 0.5,
		OuterBars: &BarSpec{Diameter: 0.02, Spacing: 0.3},
	}
	set, err := b.Polygon(context.Background(), s)
	require.NoError(t, err)

	assert.InDelta(t, 3.24, set.Area(Core), 1e-6)
	assert.InDelta(t, 0.76, set.Area(Cover), 1e-12)
	assert.Len(t, set.Bar, 20)
	assert.InDelta(t, 20*BarArea(0.02)/3.24, set.LongitudinalRatio(), 1e-6)

	again, err := b.Polygon(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, set, again)
}

func TestPolygonSectionWithHole(t *testing.T) {
	s := PolygonSection{
		Outer:     square("outer", 0, 4),
		Holes:     []geom.Ring{square("hole", 1, 3)},
		Cover:     0.1,
		CoreSize:  0.25,
		CoverSize: 0.5,
		OuterBars: &BarSpec{Diameter: 0.02, Spacing: 0.5},
		HoleBars:  &BarSpec{Diameter: 0.02, Spacing: 0.5},
		UserBars: &BarLayout{
			Nodes:    map[int]geom.Point{1: {X: 0.5, Y: 0.5}, 2: {X: 0.5, Y: 1.5}},
			Segments: map[int]BarSegment{1: {Start: 1, End: 2, Diameter: 0.016, Spacing: 0.2}},
		},
	}
	set, err := NewBuilder().Polygon(context.Background(), s)
	require.NoError(t, err)

	assert.InDelta(t, 3.8*3.8-2.2*2.2, set.Area(Core), 1e-6)
	assert.InDelta(t, (16-3.8*3.8)+(2.2*2.2-4), set.Area(Cover), 1e-12)

	// outer centerline edge 3.78 -> 7 bars, hole centerline edge 2.22 -> 4 bars
	assert.Len(t, set.Bar, 4*7+4*4+5)
	assert.InDelta(t, 0.89, set.Bar[28].Y, 1e-12, "first hole bar sits on the grown hole corner")
	assert.InDelta(t, 0.89, set.Bar[28].Z, 1e-12)
	assert.Equal(t, 0.5, set.Bar[len(set.Bar)-1].Y)
}

func TestPolygonSectionOffsetFailure(t *testing.T) {
	_, err := NewBuilder().Polygon(context.Background(), PolygonSection{
		Outer:     square("outer", 0, 1),
		Cover:     0.6,
		CoreSize:  0.1,
		CoverSize: 0.1,
	})
	var ge *geom.InvalidGeometryError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "outer", ge.Ring)
}

type failingMesher struct{}

func (failingMesher) Mesh(context.Context, mesh.Region, float64) (mesh.Mesh, error) {
	return mesh.Mesh{}, &mesh.MeshGenerationError{Size: 1, Attempts: 2, Err: mesh.ErrEmptyMesh}
}

func TestPolygonSectionMeshFailure(t *testing.T) {
	set, err := NewBuilder(WithMesher(failingMesher{})).Polygon(context.Background(), PolygonSection{
		Outer:     square("outer", 0, 1),
		Cover:     0.1,
		CoreSize:  0.1,
		CoverSize: 0.1,
	})
	var mge *mesh.MeshGenerationError
	require.True(t, errors.As(err, &mge))
	assert.Zero(t, set.Len())
}

func TestCircleSectionAreaConservation(t *testing.T) {
	set, err := NewBuilder().Circle(context.Background(), CircleSection{
		Diameter:  2,
		Cover:     0.06,
		CoreSize:  0.1,
		CoverSize: 0.1,
	})
	require.NoError(t, err)

	assert.InEpsilon(t, 2.77462, set.Area(Core), 0.02)
	assert.InEpsilon(t, 0.36697, set.Area(Cover), 0.02)
	assert.InEpsilon(t, math.Pi, set.Area(Core)+set.Area(Cover), 0.02)

	// cover sectors are an exact partition of the annulus
	assert.InDelta(t, math.Pi*(1-0.94*0.94), set.Area(Cover), 1e-12)
	d, size := 2.0, 0.1
	assert.Len(t, set.Cover, int(math.Pi*d/size))
}

func TestCircleSectionBarSpacing(t *testing.T) {
	spec := BarSpec{Diameter: 0.025, Spacing: 0.15}
	set, err := NewBuilder().Circle(context.Background(), CircleSection{
		Diameter:  2,
		Cover:     0.06,
		CoreSize:  0.2,
		CoverSize: 0.1,
		OuterBars: &spec,
	})
	require.NoError(t, err)

	r := 0.94 - 0.0125
	n := int(2 * math.Pi * r / spec.Spacing)
	require.Len(t, set.Bar, n)

	step := 2 * math.Pi / float64(n)
	first := math.Atan2(set.Bar[0].Z, set.Bar[0].Y)
	assert.InDelta(t, step, first, 1e-9, "first bar is one step past angle zero")
	for k := 1; k < n; k++ {
		a0 := math.Atan2(set.Bar[k-1].Z, set.Bar[k-1].Y)
		a1 := math.Atan2(set.Bar[k].Z, set.Bar[k].Y)
		d := math.Mod(a1-a0+2*math.Pi, 2*math.Pi)
		assert.InDelta(t, step, d, 1e-9, "bar %d", k)
		assert.InDelta(t, r, math.Hypot(set.Bar[k].Y, set.Bar[k].Z), 1e-12)
	}
}

func TestCircleSectionHollow(t *testing.T) {
	set, err := NewBuilder().Circle(context.Background(), CircleSection{
		Diameter:      2,
		InnerDiameter: 1,
		Cover:         0.05,
		CoreSize:      0.05,
		CoverSize:     0.1,
		OuterBars:     &BarSpec{Diameter: 0.02, Spacing: 0.2},
		HoleBars:      &BarSpec{Diameter: 0.02, Spacing: 0.2},
	})
	require.NoError(t, err)

	outerCover := math.Pi * (1 - 0.95*0.95)
	holeCover := math.Pi * (0.55*0.55 - 0.25)
	assert.InDelta(t, outerCover+holeCover, set.Area(Cover), 1e-12)
	assert.InEpsilon(t, math.Pi*(0.95*0.95-0.55*0.55), set.Area(Core), 0.005)

	rOuter, rHole, spacing := 0.95-0.01, 0.55+0.01, 0.2
	nOuter := int(2 * math.Pi * rOuter / spacing)
	nHole := int(2 * math.Pi * rHole / spacing)
	assert.Len(t, set.Bar, nOuter+nHole)
}

func TestCircleSectionHollowCoreArea(t *testing.T) {
	b := NewBuilder()
	for _, inner := range []float64{0.6, 1.0, 1.4} {
		for _, size := range []float64{0.04, 0.05, 0.06} {
			set, err := b.Circle(context.Background(), CircleSection{
				Diameter:      2,
				InnerDiameter: inner,
				Cover:         0.05,
				CoreSize:      size,
				CoverSize:     0.1,
			})
			require.NoError(t, err, "inner %g size %g", inner, size)

			ro, rh := 0.95, inner/2+0.05
			outer, _ := geom.AreaCentroid(geom.Circle("core", geom.Point{}, ro, geom.SegmentsForLength(ro, size)).Points)
			hole, _ := geom.AreaCentroid(geom.Circle("core-hole", geom.Point{}, rh, geom.SegmentsForLength(rh, size)).Points)
			assert.InEpsilon(t, outer-hole, set.Area(Core), 1e-6, "inner %g size %g", inner, size)
		}
	}
}

func TestCircleSectionInvalid(t *testing.T) {
	b := NewBuilder()
	_, err := b.Circle(context.Background(), CircleSection{Diameter: 0.1, Cover: 0.06, CoreSize: 0.01, CoverSize: 0.01})
	var ge *geom.InvalidGeometryError
	require.True(t, errors.As(err, &ge))

	_, err = b.Circle(context.Background(), CircleSection{Diameter: 2, Cover: 0.06, CoreSize: 0.1, CoverSize: 10})
	require.True(t, errors.As(err, &ge))

	_, err = b.Circle(context.Background(), CircleSection{
		Diameter: 2, Cover: 0.06, CoreSize: 0.1, CoverSize: 0.1,
		OuterBars: &BarSpec{Diameter: 0.02, Spacing: 100},
	})
	require.True(t, errors.As(err, &ge))
}

func TestTextSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	set := Set{
		Core:  []Fiber{{Y: 1, Z: 2, Area: 0.5}, {Y: -0.25, Z: 0.125, Area: 1e-7}},
		Cover: []Fiber{{Y: 3, Z: 4, Area: 0.25}},
	}
	require.NoError(t, TextSink{Dir: dir}.WriteSet(set))

	core, err := os.ReadFile(filepath.Join(dir, "coreDivide.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1.000000 2.000000 0.500000\n-0.250000 0.125000 0.000000\n", string(core))

	cover, err := os.ReadFile(filepath.Join(dir, "coverDivide.txt"))
	require.NoError(t, err)
	assert.Equal(t, "3.000000 4.000000 0.250000\n", string(cover))

	bar, err := os.ReadFile(filepath.Join(dir, "barDivide.txt"))
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(bar)))
}
