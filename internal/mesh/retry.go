package mesh

import (
	"context"
	"errors"
	"log/slog"
)

// coarsenFactor scales the element size for the single retry.
const coarsenFactor = 2

// Retrying wraps a Mesher and retries once at a coarser element size when
// the first attempt fails or comes back empty.
type Retrying struct {
	next   Mesher
	logger *slog.Logger
}

// WithRetry wraps m. A nil logger uses slog.Default().
func WithRetry(m Mesher, logger *slog.Logger) *Retrying {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying{next: m, logger: logger}
}

// Mesh implements Mesher.
func (r *Retrying) Mesh(ctx context.Context, region Region, size float64) (Mesh, error) {
	m, err := r.next.Mesh(ctx, region, size)
	if err == nil && m.Len() > 0 {
		return m, nil
	}
	if ctx.Err() != nil {
		return Mesh{}, err
	}
	if err == nil {
		err = ErrEmptyMesh
	}

	coarse := size * coarsenFactor
	r.logger.Warn("mesh attempt failed, retrying coarser",
		"ring", region.Outer.Name,
		"size", size,
		"retry_size", coarse,
		"error", err)

	m, err = r.next.Mesh(ctx, region, coarse)
	if err == nil && m.Len() > 0 {
		return m, nil
	}
	if ctx.Err() != nil {
		return Mesh{}, err
	}
	if err == nil {
		err = ErrEmptyMesh
	}
	var mge *MeshGenerationError
	if errors.As(err, &mge) {
		err = mge.Err
	}
	return Mesh{}, &MeshGenerationError{Size: coarse, Attempts: 2, Err: err}
}
