package geom

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a coordinate in the local section plane. X holds the section y
// axis and Y holds the section z axis.
type Point = r2.Vec

// Ring is a closed boundary. Edge i connects Points[i] to Points[(i+1)%n];
// the closing edge is implicit, so the first point is not repeated.
type Ring struct {
	Name   string
	Points []Point
}

// NewRing copies pts into a named ring.
func NewRing(name string, pts []Point) Ring {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Ring{Name: name, Points: cp}
}

// Len returns the number of vertices.
func (r Ring) Len() int { return len(r.Points) }

// Edge returns the endpoints of edge i.
func (r Ring) Edge(i int) (Point, Point) {
	n := len(r.Points)
	return r.Points[i%n], r.Points[(i+1)%n]
}

// Validate checks the ring has at least three vertices and no zero-length
// edges.
func (r Ring) Validate() error {
	n := len(r.Points)
	if n < 3 {
		return invalid(r.Name, -1, "ring needs at least 3 vertices, got %d", n)
	}
	for i := 0; i < n; i++ {
		s, t := r.Edge(i)
		if r2.Norm(r2.Sub(t, s)) < 1e-12 {
			return invalid(r.Name, i, "zero-length edge")
		}
	}
	return nil
}

// RingFromMaps converts an id-keyed vertex map and edge map into an ordered
// ring. The edges must chain into a single closed loop that visits every
// vertex once. The walk starts from the edge with the smallest id.
func RingFromMaps(name string, nodes map[int]Point, edges map[int][2]int) (Ring, error) {
	if len(edges) < 3 {
		return Ring{}, invalid(name, -1, "ring needs at least 3 edges, got %d", len(edges))
	}
	if len(edges) != len(nodes) {
		return Ring{}, invalid(name, -1, "%d edges for %d vertices", len(edges), len(nodes))
	}

	next := make(map[int]int, len(edges))
	for id, e := range edges {
		if _, ok := nodes[e[0]]; !ok {
			return Ring{}, invalid(name, e[0], "edge %d references unknown vertex", id)
		}
		if _, ok := nodes[e[1]]; !ok {
			return Ring{}, invalid(name, e[1], "edge %d references unknown vertex", id)
		}
		if _, dup := next[e[0]]; dup {
			return Ring{}, invalid(name, e[0], "vertex starts more than one edge")
		}
		next[e[0]] = e[1]
	}

	ids := make([]int, 0, len(edges))
	for id := range edges {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	start := edges[ids[0]][0]

	pts := make([]Point, 0, len(nodes))
	seen := make(map[int]bool, len(nodes))
	for v := start; ; {
		if seen[v] {
			if v != start {
				return Ring{}, invalid(name, v, "edges revisit a vertex before closing")
			}
			break
		}
		seen[v] = true
		pts = append(pts, nodes[v])
		nv, ok := next[v]
		if !ok {
			return Ring{}, invalid(name, v, "edge loop is open")
		}
		v = nv
	}
	if len(pts) != len(nodes) {
		return Ring{}, invalid(name, -1, "edge loop closes after %d of %d vertices", len(pts), len(nodes))
	}
	return Ring{Name: name, Points: pts}, nil
}

// Circle returns a regular polygon with n vertices approximating a circle.
// The first vertex lies on the positive X axis and vertices run
// counter-clockwise.
func Circle(name string, center Point, radius float64, n int) Ring {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r2.Add(center, Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}
	return Ring{Name: name, Points: pts}
}

// SegmentsForLength returns how many chords of roughly the given size are
// needed to follow a circle of the given radius, never fewer than 12.
func SegmentsForLength(radius, size float64) int {
	n := int(math.Ceil(2 * math.Pi * radius / size))
	if n < 12 {
		n = 12
	}
	return n
}

func (r Ring) String() string {
	return fmt.Sprintf("%s(%d vertices)", r.Name, len(r.Points))
}
