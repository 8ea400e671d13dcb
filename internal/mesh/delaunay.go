package mesh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// ErrEmptyMesh is wrapped when triangulation leaves no triangle inside the
// region.
var ErrEmptyMesh = errors.New("triangulation produced no triangles inside the region")

// ErrAreaMismatch is wrapped when the kept triangles do not tile the region,
// which happens when the triangulator returns overlapping triangles.
var ErrAreaMismatch = errors.New("triangles do not tile the region")

const (
	// boundaryEps matches the boundary tolerance of the point classifier.
	boundaryEps = 1e-6
	// areaTol is the relative difference allowed between the summed
	// triangle area and the region area.
	areaTol = 1e-6
	// seedAttempts is how many lattice jitters are tried before giving up.
	seedAttempts = 3
	// jitterAmp scales the lattice jitter, as a fraction of the pitch.
	jitterAmp = 0.15
)

// Delaunay meshes a region by seeding the subdivided boundary plus a
// jittered triangular lattice of interior points and triangulating them.
// Triangles whose centroid falls outside the region are discarded. The kept
// triangles must add up to the region area; if they do not, the lattice is
// reseeded with a different jitter.
type Delaunay struct {
	Logger *slog.Logger
}

// NewDelaunay returns a Delaunay mesher. A nil logger uses slog.Default().
func NewDelaunay(logger *slog.Logger) *Delaunay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Delaunay{Logger: logger}
}

func (d *Delaunay) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Mesh implements Mesher.
func (d *Delaunay) Mesh(ctx context.Context, region Region, size float64) (Mesh, error) {
	fail := func(err error) (Mesh, error) {
		return Mesh{}, &MeshGenerationError{Size: size, Attempts: 1, Err: err}
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return fail(fmt.Errorf("element size must be positive, got %g", size))
	}
	if err := region.Outer.Validate(); err != nil {
		return fail(err)
	}
	for _, h := range region.Holes {
		if err := h.Validate(); err != nil {
			return fail(err)
		}
	}

	want := region.Area()
	var covered float64
	for attempt := 0; attempt < seedAttempts; attempt++ {
		m, got, err := d.mesh(ctx, region, size, attempt)
		if err != nil {
			if ctx.Err() != nil {
				return Mesh{}, err
			}
			return fail(err)
		}
		if len(m.Triangles) == 0 {
			return fail(ErrEmptyMesh)
		}
		if math.Abs(got-want) <= areaTol*want {
			d.logger().Debug("mesh generated",
				"ring", region.Outer.Name,
				"size", size,
				"attempt", attempt+1,
				"triangles", len(m.Triangles))
			return m, nil
		}
		covered = got
		d.logger().Debug("mesh does not tile the region, reseeding",
			"ring", region.Outer.Name,
			"size", size,
			"attempt", attempt+1,
			"covered", got,
			"area", want)
	}
	return fail(fmt.Errorf("%w: triangles cover %g, region area is %g", ErrAreaMismatch, covered, want))
}

// mesh runs one seeding and triangulation pass and returns the kept
// triangles with their total area.
func (d *Delaunay) mesh(ctx context.Context, region Region, size float64, attempt int) (Mesh, float64, error) {
	seeds, err := seedPoints(ctx, region, size, attempt)
	if err != nil {
		return Mesh{}, 0, err
	}
	d.logger().Debug("mesh seeds placed",
		"ring", region.Outer.Name,
		"holes", len(region.Holes),
		"size", size,
		"points", len(seeds))

	tri, err := triangulate(ctx, seeds)
	if err != nil {
		return Mesh{}, 0, err
	}

	m := Mesh{Points: make([]geom.Point, len(tri.Points))}
	for i, p := range tri.Points {
		m.Points[i] = geom.Point{X: p.X, Y: p.Y}
	}

	var total float64
	minArea := 1e-10 * size * size
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		t := [3]int{tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]}
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]

		area := TriangleArea(a, b, c)
		if math.Abs(area) < minArea {
			continue
		}
		in, err := region.Contains(TriangleCentroid(a, b, c))
		if err != nil {
			return Mesh{}, 0, err
		}
		if !in {
			continue
		}
		if area < 0 {
			t[1], t[2] = t[2], t[1]
		}
		m.Triangles = append(m.Triangles, t)
		total += math.Abs(area)
	}
	return m, total, nil
}

// triangulate runs the triangulation in its own goroutine so the caller can
// abandon it when ctx is done.
func triangulate(ctx context.Context, pts []delaunay.Point) (*delaunay.Triangulation, error) {
	type result struct {
		tri *delaunay.Triangulation
		err error
	}
	done := make(chan result, 1)
	go func() {
		tri, err := delaunay.Triangulate(pts)
		done <- result{tri, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("triangulation interrupted: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("triangulate %d points: %w", len(pts), r.err)
		}
		return r.tri, nil
	}
}

// seedPoints subdivides every ring edge at the element size and fills the
// outer ring with a triangular lattice of the same pitch, keeping lattice
// points at least half a pitch away from any boundary. Points inside holes
// are kept too; their triangles are dropped with the hole.
func seedPoints(ctx context.Context, region Region, size float64, attempt int) ([]delaunay.Point, error) {
	rings := append([]geom.Ring{region.Outer}, region.Holes...)

	var pts []delaunay.Point
	for _, r := range rings {
		for i := 0; i < r.Len(); i++ {
			s, e := r.Edge(i)
			n := int(math.Ceil(r2.Norm(r2.Sub(e, s)) / size))
			if n < 1 {
				n = 1
			}
			for j := 0; j < n; j++ {
				p := r2.Add(s, r2.Scale(float64(j)/float64(n), r2.Sub(e, s)))
				pts = append(pts, delaunay.Point{X: p.X, Y: p.Y})
			}
		}
	}

	box := geom.Bounds(region.Outer.Points)
	dy := size * math.Sqrt(3) / 2
	rows := int(math.Ceil((box.Max.Y - box.Min.Y) / dy))
	cols := int(math.Ceil((box.Max.X-box.Min.X)/size)) + 1
	for row := 0; row < rows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("seeding interrupted: %w", err)
		}
		for col := 0; col < cols; col++ {
			u, v := jitter(row, col, attempt)
			p := geom.Point{
				X: box.Min.X + (float64(col)+0.5*float64(row%2)+jitterAmp*u)*size,
				Y: box.Min.Y + (float64(row)+0.5+jitterAmp*v)*dy,
			}
			in, err := geom.RingContains(region.Outer, p)
			if err != nil {
				return nil, err
			}
			if !in || nearBoundary(rings, p, size/2) {
				continue
			}
			pts = append(pts, delaunay.Point{X: p.X, Y: p.Y})
		}
	}
	return pts, nil
}

// jitter returns a deterministic offset in [-0.5, 0.5) for a lattice point.
// An exact lattice is full of cocircular points, which the triangulator
// does not resolve reliably.
func jitter(row, col, attempt int) (u, v float64) {
	const g1, g2, g3 = 0.6180339887498949, 0.7548776662466927, 0.5698402909980532
	r, c, a := float64(row), float64(col), float64(attempt)
	_, u = math.Modf(r*g1 + c*g2 + a*g3)
	_, v = math.Modf(r*g3 + c*g1 + a*g2)
	return u - 0.5, v - 0.5
}

func nearBoundary(rings []geom.Ring, p geom.Point, d float64) bool {
	for _, r := range rings {
		if boundaryDistance(r, p) < d {
			return true
		}
	}
	return false
}

func boundaryDistance(r geom.Ring, p geom.Point) float64 {
	best := math.Inf(1)
	for i := 0; i < r.Len(); i++ {
		s, e := r.Edge(i)
		best = math.Min(best, geom.SegmentDistance(p, s, e))
	}
	return best
}
