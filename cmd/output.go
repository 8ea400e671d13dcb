package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcfiber/internal/diagram"
	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/geom"
	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/alexiusacademia/rcfiber/internal/material"
	"github.com/spf13/cobra"
)

const rule = "───────────────────────────────────────────────────────────────"

func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printFibers(set fiber.Set) {
	fmt.Println("FIBERS:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Category\tCount\tArea\n")
	fmt.Fprintf(w, "  ────────\t─────\t────\n")
	for _, c := range fiber.Categories {
		fmt.Fprintf(w, "  %s\t%d\t%.6f\n", c, len(set.Fibers(c)), set.Area(c))
	}
	fmt.Fprintf(w, "  total\t%d\t%.6f\n", set.Len(), set.Area(fiber.Core)+set.Area(fiber.Cover)+set.Area(fiber.Bar))
	w.Flush()
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Longitudinal ratio (ρcc):\t%.4f%%\n", 100*set.LongitudinalRatio())
	w.Flush()
	fmt.Println()
}

func printConfinement(res mander.Result) {
	fmt.Println("CONFINED CONCRETE (MANDER):")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Unconfined strength (f'co):\t%.3f MPa\n", res.Fco)
	fmt.Fprintf(w, "  Confinement effectiveness (ke):\t%.4f\n", res.Ke)
	if res.LateralPressure[1] != 0 && res.LateralPressure[1] != res.LateralPressure[0] {
		fmt.Fprintf(w, "  Lateral pressure (f'lx, f'ly):\t%.4f, %.4f MPa\n", res.LateralPressure[0], res.LateralPressure[1])
	} else {
		fmt.Fprintf(w, "  Lateral pressure (f'l):\t%.4f MPa\n", res.LateralPressure[0])
	}
	fmt.Fprintf(w, "  Strength ratio (f'cc/f'co):\t%.4f\n", res.StrengthRatio)
	if res.Iterations > 0 {
		fmt.Fprintf(w, "  Failure surface iterations:\t%d\n", res.Iterations)
	}
	fmt.Fprintf(w, "  Confined strength (f'cc):\t%.3f MPa\n", res.Fcc)
	fmt.Fprintf(w, "  Strain at peak (εcc):\t%.6f\n", res.Ecc)
	fmt.Fprintf(w, "  Ultimate strain (εcu):\t%.6f\n", res.Ecu)
	w.Flush()
	fmt.Println()
}

func printSteel(s material.Steel) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Grade:\t%s\n", s.Grade)
	fmt.Fprintf(w, "  fy:\t%.1f MPa\n", s.Fy)
	fmt.Fprintf(w, "  fu:\t%.1f MPa\n", s.Fu)
	fmt.Fprintf(w, "  Es:\t%.0f MPa\n", s.Es)
	fmt.Fprintf(w, "  Esh:\t%.0f MPa\n", s.Esh)
	fmt.Fprintf(w, "  εy:\t%.6f\n", s.YieldStrain())
	fmt.Fprintf(w, "  εsh:\t%.4f\n", s.EpsH)
	fmt.Fprintf(w, "  εsu:\t%.4f\n", s.EpsU)
	w.Flush()
}

func printConcrete(label string, c material.Concrete) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s fc:\t%.3f MPa\n", label, c.Fc)
	fmt.Fprintf(w, "  %s εc:\t%.6f\n", label, c.Ec)
	fmt.Fprintf(w, "  %s εcu:\t%.6f\n", label, c.Ecu)
	fmt.Fprintf(w, "  %s Ec:\t%.0f MPa\n", label, c.E)
	w.Flush()
}

// fiberOutputs holds the shared output flags of the build commands.
type fiberOutputs struct {
	dir   string
	plot  string
	ascii bool
	cols  int
}

func (o fiberOutputs) write(title string, set fiber.Set, outline, core []geom.Ring) error {
	if o.ascii {
		fmt.Println("FIBER MAP:")
		fmt.Println(rule)
		fmt.Println(diagram.DrawFiberMap(set, o.cols))
	}
	if o.dir != "" {
		if err := (fiber.TextSink{Dir: o.dir}).WriteSet(set); err != nil {
			return fmt.Errorf("writing fibers: %w", err)
		}
		fmt.Printf("Fibers written to: %s\n", o.dir)
	}
	if o.plot != "" {
		err := diagram.ExportSection(diagram.SectionPlot{
			Title:   title,
			Outline: outline,
			Core:    core,
			Fibers:  set,
		}, o.plot)
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("Diagram exported to: %s\n", o.plot)
	}
	return nil
}

func (o *fiberOutputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "output", "o", "", "Directory for the core, cover and bar fiber tables")
	cmd.Flags().StringVar(&o.plot, "plot", "", "Export a section plot to file (png, svg, pdf)")
	cmd.Flags().BoolVar(&o.ascii, "ascii", false, "Show an ASCII fiber map")
	cmd.Flags().IntVar(&o.cols, "cols", 60, "Width of the ASCII fiber map in characters")
}
