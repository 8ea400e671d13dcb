package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/geom"
)

var (
	coreColor  = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	coverColor = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	barColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// SectionPlot holds what is drawn in a fiber section plot.
type SectionPlot struct {
	Title string
	// Outline rings are drawn solid, Core rings dashed.
	Outline []geom.Ring
	Core    []geom.Ring
	Fibers  fiber.Set
}

// ExportSection draws the section outline and every fiber centroid to an
// image file. The format follows the file extension (png, svg, pdf);
// anything else gets ".png" appended.
func ExportSection(data SectionPlot, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Fiber Section"
	}
	p.X.Label.Text = "y"
	p.Y.Label.Text = "z"

	for _, r := range data.Outline {
		l, err := ringLine(r)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.Black
		p.Add(l)
	}
	for _, r := range data.Core {
		l, err := ringLine(r)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
	}

	layers := []struct {
		c      fiber.Category
		color  color.Color
		radius vg.Length
	}{
		{fiber.Core, coreColor, vg.Points(1.5)},
		{fiber.Cover, coverColor, vg.Points(1.5)},
		{fiber.Bar, barColor, vg.Points(3)},
	}
	for _, layer := range layers {
		fs := data.Fibers.Fibers(layer.c)
		if len(fs) == 0 {
			continue
		}
		s, err := plotter.NewScatter(fiberXYs(fs))
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = layer.color
		s.GlyphStyle.Radius = layer.radius
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%d)", layer.c, len(fs)), s)
	}
	p.Legend.Top = true

	// Keep the section undistorted
	box := fiberBounds(data)
	side := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y) * 1.1
	cx, cy := (box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2
	p.X.Min, p.X.Max = cx-side/2, cx+side/2
	p.Y.Min, p.Y.Max = cy-side/2, cy+side/2

	return save(p, 8*vg.Inch, 8*vg.Inch, filename)
}

// Series is one named curve.
type Series struct {
	Name string
	X, Y []float64
}

// ExportCurve plots one or more curves on shared axes.
func ExportCurve(title, xLabel, yLabel string, series []Series, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		xys := make(plotter.XYs, len(s.X))
		for i := range s.X {
			xys[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
		}
		args = append(args, s.Name, xys)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func ringLine(r geom.Ring) (*plotter.Line, error) {
	pts := make(plotter.XYs, r.Len()+1)
	for i, v := range r.Points {
		pts[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	pts[r.Len()] = pts[0]
	return plotter.NewLine(pts)
}

func fiberXYs(fs []fiber.Fiber) plotter.XYs {
	pts := make(plotter.XYs, len(fs))
	for i, f := range fs {
		pts[i] = plotter.XY{X: f.Y, Y: f.Z}
	}
	return pts
}

func fiberBounds(data SectionPlot) r2.Box {
	var pts []geom.Point
	for _, r := range data.Outline {
		pts = append(pts, r.Points...)
	}
	for _, c := range fiber.Categories {
		for _, f := range data.Fibers.Fibers(c) {
			pts = append(pts, f.Point())
		}
	}
	if len(pts) == 0 {
		return r2.Box{Max: geom.Point{X: 1, Y: 1}}
	}
	return geom.Bounds(pts)
}
