package section

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a section file.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("unknown format %q (use json or yaml)", s)
}

// FormatForPath picks the format from the file extension. Anything other
// than .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// LoadFromFile loads a section definition from a JSON or YAML file
func LoadFromFile(path string) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sec, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sec, nil
}

// Parse decodes and validates a section definition.
func Parse(data []byte, format Format) (*Section, error) {
	var sec Section
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &sec); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &sec); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	if err := sec.Validate(); err != nil {
		return nil, err
	}
	return &sec, nil
}

// Marshal encodes the section in the given format.
func (s *Section) Marshal(format Format) ([]byte, error) {
	if format == YAML {
		return yaml.Marshal(s)
	}
	return json.MarshalIndent(s, "", "  ")
}

// Example returns a sample definition of the given shape, used as a
// starting template for new section files.
func Example(shape string) (*Section, error) {
	switch shape {
	case ShapeCircle:
		return &Section{
			Name:      "CircularPier",
			Shape:     ShapeCircle,
			Cover:     0.06,
			CoreSize:  0.2,
			CoverSize: 0.2,
			Circle:    &Circle{Diameter: 2},
			Bars:      &Bars{Outer: &BarSpec{Diameter: 0.032, Spacing: 0.119}},
			Materials: &Materials{Steel: "HRB400", Concrete: "C40"},
			Confinement: &Confinement{
				Hoop:     "spiral",
				Spacing:  0.1,
				Diameter: 0.014,
				Fyh:      400,
			},
		}, nil
	case ShapePolygon:
		return &Section{
			Name:      "RectangularPier",
			Shape:     ShapePolygon,
			Cover:     0.06,
			CoreSize:  0.2,
			CoverSize: 0.3,
			Outer: &Boundary{
				Nodes: map[int]Point{1: {0.8, 1.6}, 2: {-0.8, 1.6}, 3: {-0.8, -1.6}, 4: {0.8, -1.6}},
				Edges: map[int][2]int{1: {1, 2}, 2: {2, 3}, 3: {3, 4}, 4: {4, 1}},
			},
			Bars:      &Bars{Outer: &BarSpec{Diameter: 0.028, Spacing: 0.1846153846}},
			Materials: &Materials{Steel: "HRB400", Concrete: "C40"},
			Confinement: &Confinement{
				Spacing:  0.15,
				Diameter: 0.012,
				Fyh:      400,
				RhoX:     0.005,
				RhoY:     0.005,
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown shape %q (use %s or %s)", shape, ShapePolygon, ShapeCircle)
}
