package mesh

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

func meshArea(m Mesh) float64 {
	var sum float64
	for i := 0; i < m.Len(); i++ {
		a, b, c := m.Triangle(i)
		sum += TriangleArea(a, b, c)
	}
	return sum
}

func TestDelaunaySquare(t *testing.T) {
	region := Region{Outer: geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})}
	m, err := NewDelaunay(nil).Mesh(context.Background(), region, 0.1)
	require.NoError(t, err)
	require.Greater(t, m.Len(), 50)

	assert.InDelta(t, 1.0, meshArea(m), 1e-9)
	for i := 0; i < m.Len(); i++ {
		a, b, c := m.Triangle(i)
		assert.Greater(t, TriangleArea(a, b, c), 0.0, "triangle %d must be counter-clockwise", i)
	}
}

func TestDelaunayWithHole(t *testing.T) {
	outer := geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	hole := geom.NewRing("hole", []geom.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}})
	m, err := NewDelaunay(nil).Mesh(context.Background(), Region{Outer: outer, Holes: []geom.Ring{hole}}, 0.25)
	require.NoError(t, err)

	assert.InDelta(t, 12.0, meshArea(m), 1e-6)
	for i := 0; i < m.Len(); i++ {
		a, b, c := m.Triangle(i)
		ctr := TriangleCentroid(a, b, c)
		inHole := ctr.X > 1 && ctr.X < 3 && ctr.Y > 1 && ctr.Y < 3
		assert.False(t, inHole, "triangle %d centroid %v inside hole", i, ctr)
	}
}

func TestDelaunayDisk(t *testing.T) {
	r := 0.94
	ring := geom.Circle("core", geom.Point{}, r, geom.SegmentsForLength(r, 0.05))
	m, err := NewDelaunay(nil).Mesh(context.Background(), Region{Outer: ring}, 0.05)
	require.NoError(t, err)

	polyArea, _ := geom.AreaCentroid(ring.Points)
	assert.InEpsilon(t, polyArea, meshArea(m), 1e-6)
	assert.InEpsilon(t, math.Pi*r*r, meshArea(m), 0.01)
}

func TestDelaunayHollowCircleTilesRegion(t *testing.T) {
	const ro = 0.95
	for _, inner := range []float64{0.6, 1.0, 1.4} {
		for _, size := range []float64{0.03, 0.04, 0.05, 0.06} {
			rh := inner/2 + 0.05
			region := Region{
				Outer: geom.Circle("core", geom.Point{}, ro, geom.SegmentsForLength(ro, size)),
				Holes: []geom.Ring{geom.Circle("core-hole", geom.Point{}, rh, geom.SegmentsForLength(rh, size))},
			}
			m, err := NewDelaunay(nil).Mesh(context.Background(), region, size)
			require.NoError(t, err, "inner %g size %g", inner, size)

			outerArea, _ := geom.AreaCentroid(region.Outer.Points)
			holeArea, _ := geom.AreaCentroid(region.Holes[0].Points)
			assert.InEpsilon(t, outerArea-holeArea, meshArea(m), 1e-6, "inner %g size %g", inner, size)
			assert.InEpsilon(t, region.Area(), meshArea(m), 1e-6, "inner %g size %g", inner, size)
			for i := 0; i < m.Len(); i++ {
				a, b, c := m.Triangle(i)
				require.Greater(t, TriangleArea(a, b, c), 0.0, "inner %g size %g triangle %d", inner, size, i)
				ctr := TriangleCentroid(a, b, c)
				require.Greater(t, math.Hypot(ctr.X, ctr.Y), rh, "inner %g size %g triangle %d", inner, size, i)
			}
		}
	}
}

func TestDelaunayAreaMismatch(t *testing.T) {
	// A hole reaching past the outer ring cannot be tiled to the region area.
	region := Region{
		Outer: geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}),
		Holes: []geom.Ring{geom.NewRing("hole", []geom.Point{{X: 0.75, Y: 0.75}, {X: 1.25, Y: 0.75}, {X: 1.25, Y: 1.25}, {X: 0.75, Y: 1.25}})},
	}
	assert.InDelta(t, 0.75, region.Area(), 1e-15)

	_, err := NewDelaunay(nil).Mesh(context.Background(), region, 0.1)
	var mge *MeshGenerationError
	require.True(t, errors.As(err, &mge), "got %v", err)
	assert.Equal(t, 1, mge.Attempts)
	assert.ErrorIs(t, err, ErrAreaMismatch)

	_, err = WithRetry(NewDelaunay(nil), nil).Mesh(context.Background(), region, 0.1)
	require.True(t, errors.As(err, &mge), "got %v", err)
	assert.Equal(t, 2, mge.Attempts)
	assert.InDelta(t, 0.2, mge.Size, 1e-15)
	assert.ErrorIs(t, err, ErrAreaMismatch)
}

func TestJitter(t *testing.T) {
	seen := map[[2]float64]bool{}
	for attempt := 0; attempt < seedAttempts; attempt++ {
		for row := 0; row < 20; row++ {
			for col := 0; col < 20; col++ {
				u, v := jitter(row, col, attempt)
				require.GreaterOrEqual(t, u, -0.5)
				require.Less(t, u, 0.5)
				require.GreaterOrEqual(t, v, -0.5)
				require.Less(t, v, 0.5)
				seen[[2]float64{u, v}] = true
			}
		}
	}
	assert.Len(t, seen, seedAttempts*20*20, "every point and attempt gets its own offset")
}

func TestDelaunayInvalidSize(t *testing.T) {
	region := Region{Outer: geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})}
	_, err := NewDelaunay(nil).Mesh(context.Background(), region, 0)
	var mge *MeshGenerationError
	require.True(t, errors.As(err, &mge))
	assert.Equal(t, 1, mge.Attempts)
}

func TestDelaunayCancelled(t *testing.T) {
	region := Region{Outer: geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})}
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := NewDelaunay(nil).Mesh(ctx, region, 0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type scriptedMesher struct {
	sizes []float64
	fails int
}

func (s *scriptedMesher) Mesh(ctx context.Context, region Region, size float64) (Mesh, error) {
	s.sizes = append(s.sizes, size)
	if len(s.sizes) <= s.fails {
		return Mesh{}, &MeshGenerationError{Size: size, Attempts: 1, Err: ErrEmptyMesh}
	}
	return Mesh{
		Points:    []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Triangles: [][3]int{{0, 1, 2}},
	}, nil
}

func TestWithRetry(t *testing.T) {
	region := Region{Outer: geom.NewRing("outer", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})}

	t.Run("first attempt succeeds", func(t *testing.T) {
		s := &scriptedMesher{}
		_, err := WithRetry(s, nil).Mesh(context.Background(), region, 0.1)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1}, s.sizes)
	})

	t.Run("coarsened retry succeeds", func(t *testing.T) {
		s := &scriptedMesher{fails: 1}
		m, err := WithRetry(s, nil).Mesh(context.Background(), region, 0.1)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
		assert.Equal(t, []float64{0.1, 0.2}, s.sizes)
	})

	t.Run("both attempts fail", func(t *testing.T) {
		s := &scriptedMesher{fails: 2}
		_, err := WithRetry(s, nil).Mesh(context.Background(), region, 0.1)
		var mge *MeshGenerationError
		require.True(t, errors.As(err, &mge))
		assert.Equal(t, 2, mge.Attempts)
		assert.InDelta(t, 0.2, mge.Size, 1e-15)
		assert.ErrorIs(t, err, ErrEmptyMesh)
	})
}

func TestTriangleArea(t *testing.T) {
	a, b, c := geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, geom.Point{X: 0, Y: 3}
	assert.InDelta(t, 3.0, TriangleArea(a, b, c), 1e-15)
	assert.InDelta(t, -3.0, TriangleArea(a, c, b), 1e-15)
	ctr := TriangleCentroid(a, b, c)
	assert.InDelta(t, 2.0/3, ctr.X, 1e-15)
	assert.InDelta(t, 1.0, ctr.Y, 1e-15)
}
