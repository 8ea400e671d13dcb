package geom

import "fmt"

// InvalidGeometryError reports a ring that cannot be processed: too few
// vertices, a malformed edge loop, or an offset ring that folds over itself.
// Vertex is -1 when the failure is not tied to a single vertex.
type InvalidGeometryError struct {
	Ring   string
	Vertex int
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	if e.Vertex < 0 {
		return fmt.Sprintf("invalid geometry in ring %q: %s", e.Ring, e.Reason)
	}
	return fmt.Sprintf("invalid geometry in ring %q at vertex %d: %s", e.Ring, e.Vertex, e.Reason)
}

// SingularOffsetError is returned when the two offset lines meeting at a
// vertex are (nearly) parallel and have no usable intersection.
type SingularOffsetError struct {
	Ring   string
	Vertex int
}

func (e *SingularOffsetError) Error() string {
	return fmt.Sprintf("singular offset in ring %q at vertex %d: adjacent edges are parallel", e.Ring, e.Vertex)
}

func invalid(ring string, vertex int, format string, args ...any) error {
	return &InvalidGeometryError{Ring: ring, Vertex: vertex, Reason: fmt.Sprintf(format, args...)}
}
