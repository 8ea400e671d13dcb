// Package diagram renders fiber sections and material curves, either as
// terminal text or as image files.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/geom"
)

// Map glyphs, in increasing priority. A cell holding fibers of several
// categories shows the highest one.
var glyphs = map[fiber.Category]byte{
	fiber.Core:  '.',
	fiber.Cover: ':',
	fiber.Bar:   'O',
}

// DrawFiberMap renders the fiber centroids of a set on a character grid
// cols wide. Terminal cells are about twice as tall as wide, so the grid
// uses half as many rows per unit length.
func DrawFiberMap(set fiber.Set, cols int) string {
	if cols < 8 {
		cols = 8
	}
	var pts []geom.Point
	for _, c := range fiber.Categories {
		for _, f := range set.Fibers(c) {
			pts = append(pts, f.Point())
		}
	}
	if len(pts) == 0 {
		return "  (no fibers)\n"
	}

	box := geom.Bounds(pts)
	w := box.Max.X - box.Min.X
	h := box.Max.Y - box.Min.Y
	span := math.Max(w, h)
	if span == 0 {
		span = 1
	}
	scale := float64(cols-1) / span
	width := int(math.Round(w*scale)) + 1
	rows := int(math.Round(h*scale/2)) + 1

	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}
	for _, c := range fiber.Categories {
		g := glyphs[c]
		for _, f := range set.Fibers(c) {
			col := int(math.Round((f.Y - box.Min.X) * scale))
			// Row 0 is the top of the section
			row := rows - 1 - int(math.Round((f.Z-box.Min.Y)*scale/2))
			grid[row][col] = g
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("\n  %c core (%d)   %c cover (%d)   %c bar (%d)\n",
		glyphs[fiber.Core], len(set.Core),
		glyphs[fiber.Cover], len(set.Cover),
		glyphs[fiber.Bar], len(set.Bar)))
	sb.WriteString(fmt.Sprintf("  y: %.3f to %.3f   z: %.3f to %.3f\n", box.Min.X, box.Max.X, box.Min.Y, box.Max.Y))
	return sb.String()
}

// DrawCurve renders the Y values of one or more series as a terminal line
// chart. X values are assumed evenly spaced; series of different lengths
// are stretched to the same width.
func DrawCurve(caption string, series []Series, width, height int) string {
	data := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	for _, s := range series {
		if len(s.Y) == 0 {
			continue
		}
		data = append(data, s.Y)
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return "  (no data)\n"
	}
	opts := []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Offset(4),
		asciigraph.Caption(caption),
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesLegends(names...))
	}
	return asciigraph.PlotMany(data, opts...) + "\n"
}

// DrawSummaryBox draws a framed box with a title and lines of text.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	// fmt pads by runes
	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}

	border := strings.Repeat("═", maxLen+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
