package section

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mander"
)

const boxJSON = `{
  "name": "Box",
  "shape": "polygon",
  "cover": 0.1,
  "core_size": 0.25,
  "cover_size": 0.5,
  "outer": {
    "nodes": {"1": {"y": 0, "z": 0}, "2": {"y": 4, "z": 0}, "3": {"y": 4, "z": 4}, "4": {"y": 0, "z": 4}},
    "edges": {"1": [1, 2], "2": [2, 3], "3": [3, 4], "4": [4, 1]}
  },
  "holes": [
    {"vertices": [{"y": 1, "z": 1}, {"y": 3, "z": 1}, {"y": 3, "z": 3}, {"y": 1, "z": 3}]}
  ],
  "bars": {
    "outer": {"diameter": 0.02, "spacing": 0.5},
    "hole": {"diameter": 0.02, "spacing": 0.5}
  }
}`

const boxYAML = `
name: Box
shape: polygon
cover: 0.1
core_size: 0.25
cover_size: 0.5
outer:
  nodes:
    1: {y: 0, z: 0}
    2: {y: 4, z: 0}
    3: {y: 4, z: 4}
    4: {y: 0, z: 4}
  edges:
    1: [1, 2]
    2: [2, 3]
    3: [3, 4]
    4: [4, 1]
holes:
  - vertices:
      - {y: 1, z: 1}
      - {y: 3, z: 1}
      - {y: 3, z: 3}
      - {y: 1, z: 3}
bars:
  outer: {diameter: 0.02, spacing: 0.5}
  hole: {diameter: 0.02, spacing: 0.5}
`

func TestParseJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Parse([]byte(boxJSON), JSON)
	require.NoError(t, err)
	fromYAML, err := Parse([]byte(boxYAML), YAML)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, shape := range []string{ShapePolygon, ShapeCircle} {
		for _, format := range []Format{JSON, YAML} {
			sec, err := Example(shape)
			require.NoError(t, err)
			data, err := sec.Marshal(format)
			require.NoError(t, err)
			back, err := Parse(data, format)
			require.NoError(t, err, "%s as %s", shape, format)
			assert.Equal(t, sec, back, "%s as %s", shape, format)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.yml")
	require.NoError(t, os.WriteFile(path, []byte(boxYAML), 0o644))

	sec, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Box", sec.Name)

	_, err = LoadFromFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Section)
	}{
		{"missing shape", func(s *Section) { s.Shape = "" }},
		{"unknown shape", func(s *Section) { s.Shape = "ellipse" }},
		{"zero cover", func(s *Section) { s.Cover = 0 }},
		{"polygon without outer", func(s *Section) { s.Outer = nil }},
		{"two vertices", func(s *Section) { s.Outer = &Boundary{Vertices: []Point{{0, 0}, {1, 0}}} }},
		{"nodes without edges", func(s *Section) { s.Outer.Edges = nil }},
		{"zero bar spacing", func(s *Section) { s.Bars.Outer.Spacing = 0 }},
		{"unknown steel", func(s *Section) { s.Materials.Steel = "S355" }},
		{"confinement without bars", func(s *Section) { s.Bars = nil }},
		{"hole bars without hole", func(s *Section) { s.Bars.Hole = &BarSpec{Diameter: 0.02, Spacing: 0.2} }},
		{"user bar unknown node", func(s *Section) {
			s.UserBars = &UserBars{
				Nodes:    map[int]Point{1: {0, 0}, 2: {1, 0}},
				Segments: map[int]BarSegment{1: {Start: 1, End: 3, Diameter: 0.02, Spacing: 0.1}},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec, err := Example(ShapePolygon)
			require.NoError(t, err)
			require.NoError(t, sec.Validate())

			tt.mutate(sec)
			err = sec.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
}

func TestValidateCircle(t *testing.T) {
	sec, err := Example(ShapeCircle)
	require.NoError(t, err)
	sec.Circle = nil
	var ve *ValidationError
	require.True(t, errors.As(sec.Validate(), &ve))

	sec, err = Example(ShapeCircle)
	require.NoError(t, err)
	sec.Confinement.Hoop = "square"
	require.True(t, errors.As(sec.Validate(), &ve))

	// the validator and the hoop parser accept the same spellings
	for _, hoop := range []string{"spiral", "Spiral", "hoop", "HOOP", "circular", "Circular"} {
		sec, err = Example(ShapeCircle)
		require.NoError(t, err)
		sec.Confinement.Hoop = hoop
		require.NoError(t, sec.Validate(), hoop)
		_, err = mander.ParseHoopType(hoop)
		require.NoError(t, err, hoop)
	}
}

func TestCalculateProperties(t *testing.T) {
	sec, err := Parse([]byte(boxJSON), JSON)
	require.NoError(t, err)
	props, err := sec.CalculateProperties()
	require.NoError(t, err)

	assert.InDelta(t, 12.0, props.Area, 1e-12)
	assert.InDelta(t, 2.0, props.CentroidY, 1e-12)
	assert.InDelta(t, 2.0, props.CentroidZ, 1e-12)
	assert.Equal(t, 4.0, props.Width)
	assert.Equal(t, 1, props.Holes)

	circ, err := Example(ShapeCircle)
	require.NoError(t, err)
	cp, err := circ.CalculateProperties()
	require.NoError(t, err)
	assert.InDelta(t, 3.14159265, cp.Area, 1e-8)
}

func TestBuildPolygon(t *testing.T) {
	sec, err := Parse([]byte(boxJSON), JSON)
	require.NoError(t, err)

	set, err := sec.Build(context.Background(), fiber.NewBuilder())
	require.NoError(t, err)
	assert.InDelta(t, 3.8*3.8-2.2*2.2, set.Area(fiber.Core), 1e-6)
	assert.InDelta(t, 2.4, set.Area(fiber.Cover), 1e-9)
	assert.Len(t, set.Bar, 4*7+4*4)
}

func TestMaterialModelsCircle(t *testing.T) {
	sec, err := Example(ShapeCircle)
	require.NoError(t, err)

	set, err := sec.Build(context.Background(), fiber.NewBuilder())
	require.NoError(t, err)
	ms, err := sec.MaterialModels(set)
	require.NoError(t, err)

	assert.InDelta(t, -26.752, ms.Cover.Fc, 1e-9)
	assert.Less(t, ms.Core.Fc, ms.Cover.Fc)
	assert.Greater(t, ms.RhoCC, 0.0)
	assert.InDelta(t, 2.213*0.002/2, ms.YieldCurvature[0], 1e-12)
	assert.Equal(t, ms.YieldCurvature[0], ms.YieldCurvature[1])
}

func TestMaterialModelsRectangle(t *testing.T) {
	sec, err := Example(ShapePolygon)
	require.NoError(t, err)

	set, err := sec.Build(context.Background(), fiber.NewBuilder())
	require.NoError(t, err)
	ms, err := sec.MaterialModels(set)
	require.NoError(t, err)

	assert.Less(t, ms.Core.Fc, ms.Cover.Fc)
	assert.Greater(t, ms.Confinement.Iterations, 0)
	assert.InDelta(t, 1.957*0.002/1.6, ms.YieldCurvature[0], 1e-12)
	assert.InDelta(t, 1.957*0.002/3.2, ms.YieldCurvature[1], 1e-12)
}

func TestMaterialModelsWithoutConfinement(t *testing.T) {
	sec, err := Example(ShapeCircle)
	require.NoError(t, err)
	sec.Confinement = nil

	ms, err := sec.MaterialModels(fiber.Set{})
	require.NoError(t, err)
	assert.Equal(t, ms.Cover, ms.Core)
}

func TestOutline(t *testing.T) {
	sec, err := Parse([]byte(boxJSON), JSON)
	require.NoError(t, err)
	outline, core, err := sec.Outline()
	require.NoError(t, err)
	require.Len(t, outline, 2)
	require.Len(t, core, 2)

	props, err := sec.CalculateProperties()
	require.NoError(t, err)
	assert.InDelta(t, 3.8, geomWidth(core[0]), 1e-9)
	assert.InDelta(t, 2.2, geomWidth(core[1]), 1e-9)
	assert.Equal(t, props.Width, geomWidth(outline[0]))

	circ, err := Example(ShapeCircle)
	require.NoError(t, err)
	outline, core, err = circ.Outline()
	require.NoError(t, err)
	require.Len(t, outline, 1)
	assert.InDelta(t, 2-2*0.06, geomWidth(core[0]), 1e-9)
}

func geomWidth(r geom.Ring) float64 {
	b := geom.Bounds(r.Points)
	return b.Max.X - b.Min.X
}
