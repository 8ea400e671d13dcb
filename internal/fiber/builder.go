package fiber

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mesh"
)

// Builder turns section descriptions into fiber sets. It holds no state
// between builds.
type Builder struct {
	mesher mesh.Mesher
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMesher replaces the core mesher.
func WithMesher(m mesh.Mesher) Option {
	return func(b *Builder) { b.mesher = m }
}

// WithLogger sets the logger used for build progress.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns a Builder that meshes cores with a retrying Delaunay
// mesher unless another one is supplied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.mesher == nil {
		b.mesher = mesh.WithRetry(mesh.NewDelaunay(b.logger), b.logger)
	}
	return b
}

// PolygonSection is an arbitrary polygon with optional holes.
type PolygonSection struct {
	Outer     geom.Ring
	Holes     []geom.Ring
	Cover     float64
	CoreSize  float64
	CoverSize float64

	// OuterBars and HoleBars place bars automatically along the outer
	// boundary and along every hole. Either may be nil.
	OuterBars *BarSpec
	HoleBars  *BarSpec

	// UserBars are placed in addition to the automatic bars.
	UserBars *BarLayout
}

func (s PolygonSection) validate() error {
	if s.Cover <= 0 {
		return fmt.Errorf("cover must be positive, got %g", s.Cover)
	}
	if s.CoreSize <= 0 || s.CoverSize <= 0 {
		return fmt.Errorf("core and cover element sizes must be positive, got %g and %g", s.CoreSize, s.CoverSize)
	}
	return nil
}

// ringResult collects everything derived from one boundary ring.
type ringResult struct {
	core  geom.Ring
	cover []Fiber
	bars  []Fiber
}

// Polygon builds the fibers of a polygon section. The outer ring and each
// hole are processed concurrently; output order is outer ring first, then
// holes in input order.
func (b *Builder) Polygon(ctx context.Context, s PolygonSection) (Set, error) {
	if err := s.validate(); err != nil {
		return Set{}, err
	}

	rings := append([]geom.Ring{s.Outer}, s.Holes...)
	results := make([]ringResult, len(rings))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range rings {
		mode, bars := geom.InsideRing, s.OuterBars
		if i > 0 {
			mode, bars = geom.OutsideRing, s.HoleBars
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.ring(r, mode, bars, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Set{}, err
	}

	region := mesh.Region{Outer: results[0].core}
	for _, res := range results[1:] {
		region.Holes = append(region.Holes, res.core)
	}
	m, err := b.mesher.Mesh(ctx, region, s.CoreSize)
	if err != nil {
		return Set{}, fmt.Errorf("core of %q: %w", s.Outer.Name, err)
	}

	set := Set{Core: FromMesh(m)}
	for _, res := range results {
		set.Cover = append(set.Cover, res.cover...)
		set.Bar = append(set.Bar, res.bars...)
	}
	if s.UserBars != nil {
		user, err := UserBarFibers(*s.UserBars)
		if err != nil {
			return Set{}, err
		}
		set.Bar = append(set.Bar, user...)
	}

	b.logger.Debug("polygon section built",
		"ring", s.Outer.Name,
		"holes", len(s.Holes),
		"core", len(set.Core),
		"cover", len(set.Cover),
		"bars", len(set.Bar))
	return set, nil
}

func (b *Builder) ring(r geom.Ring, mode geom.OffsetMode, bars *BarSpec, s PolygonSection) (ringResult, error) {
	core, err := geom.Offset(r, s.Cover, mode)
	if err != nil {
		return ringResult{}, err
	}
	cover, err := CoverFibers(r, core, s.CoverSize, s.Cover)
	if err != nil {
		return ringResult{}, err
	}
	res := ringResult{core: core, cover: cover}

	if bars != nil {
		centerline, err := geom.Offset(r, s.Cover+bars.Diameter/2, mode)
		if err != nil {
			return ringResult{}, err
		}
		res.bars, err = BarFibers(centerline, *bars)
		if err != nil {
			return ringResult{}, err
		}
	}

	b.logger.Debug("ring discretized",
		"ring", r.Name,
		"mode", mode.String(),
		"vertices", r.Len(),
		"cover", len(res.cover),
		"bars", len(res.bars))
	return res, nil
}
