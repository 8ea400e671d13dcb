package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/section"
	"github.com/spf13/cobra"
)

var (
	circleDiameter     float64
	circleInner        float64
	circleCover        float64
	circleCoreSize     float64
	circleCoverSize    float64
	circleBarDiameter  float64
	circleBarSpacing   float64
	circleHoleBarDiam  float64
	circleHoleBarSpace float64
	circleTimeout      time.Duration
	circleOut          fiberOutputs
)

var sectionCircleCmd = &cobra.Command{
	Use:   "circle",
	Short: "Build a solid or hollow circular section",
	Long: `Discretize a circular section given by its diameters.

Cover fibers are equal-area sectors of the cover annulus, bars are
spaced evenly around the core boundary and the core disk or annulus
is meshed into triangles. Give --inner for a hollow section.

Examples:
  rcfiber section circle -D 2 --cover 0.06 --bar-diameter 0.032 --bar-spacing 0.12
  rcfiber section circle -D 3 --inner 1.8 --cover 0.05 --core-size 0.1 --ascii`,
	Run: runSectionCircle,
}

func init() {
	sectionCmd.AddCommand(sectionCircleCmd)

	sectionCircleCmd.Flags().Float64VarP(&circleDiameter, "diameter", "D", 0, "Outer diameter [required]")
	sectionCircleCmd.Flags().Float64Var(&circleInner, "inner", 0, "Inner diameter of a hollow section")
	sectionCircleCmd.Flags().Float64Var(&circleCover, "cover", 0, "Cover thickness [required]")
	sectionCircleCmd.Flags().Float64Var(&circleCoreSize, "core-size", 0.2, "Core fiber size")
	sectionCircleCmd.Flags().Float64Var(&circleCoverSize, "cover-size", 0.2, "Cover fiber size")
	sectionCircleCmd.MarkFlagRequired("diameter")
	sectionCircleCmd.MarkFlagRequired("cover")

	// Reinforcement
	sectionCircleCmd.Flags().Float64Var(&circleBarDiameter, "bar-diameter", 0, "Outer bar diameter")
	sectionCircleCmd.Flags().Float64Var(&circleBarSpacing, "bar-spacing", 0, "Outer bar spacing")
	sectionCircleCmd.Flags().Float64Var(&circleHoleBarDiam, "hole-bar-diameter", 0, "Inner bar diameter")
	sectionCircleCmd.Flags().Float64Var(&circleHoleBarSpace, "hole-bar-spacing", 0, "Inner bar spacing")
	sectionCircleCmd.MarkFlagsRequiredTogether("bar-diameter", "bar-spacing")
	sectionCircleCmd.MarkFlagsRequiredTogether("hole-bar-diameter", "hole-bar-spacing")

	sectionCircleCmd.Flags().DurationVar(&circleTimeout, "timeout", time.Minute, "Give up meshing after this long")
	circleOut.register(sectionCircleCmd)
}

func runSectionCircle(cmd *cobra.Command, args []string) {
	sec := &section.Section{
		Name:      "Circle",
		Shape:     section.ShapeCircle,
		Cover:     circleCover,
		CoreSize:  circleCoreSize,
		CoverSize: circleCoverSize,
		Circle:    &section.Circle{Diameter: circleDiameter, InnerDiameter: circleInner},
	}
	if circleBarSpacing > 0 || circleHoleBarSpace > 0 {
		sec.Bars = &section.Bars{}
		if circleBarSpacing > 0 {
			sec.Bars.Outer = &section.BarSpec{Diameter: circleBarDiameter, Spacing: circleBarSpacing}
		}
		if circleHoleBarSpace > 0 {
			sec.Bars.Hole = &section.BarSpec{Diameter: circleHoleBarDiam, Spacing: circleHoleBarSpace}
		}
	}
	if err := sec.Validate(); err != nil {
		fmt.Printf("Error validating section: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), circleTimeout)
	defer cancel()

	set, err := sec.Build(ctx, fiber.NewBuilder(fiber.WithLogger(logger)))
	if err != nil {
		fmt.Printf("Error building section: %v\n", err)
		os.Exit(1)
	}

	printHeader("CIRCULAR FIBER SECTION")

	fmt.Println("SECTION GEOMETRY:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Diameter:\t%.4f\n", circleDiameter)
	if circleInner > 0 {
		fmt.Fprintf(w, "  Inner diameter:\t%.4f\n", circleInner)
	}
	fmt.Fprintf(w, "  Gross Area:\t%.6f\n", math.Pi/4*(circleDiameter*circleDiameter-circleInner*circleInner))
	fmt.Fprintf(w, "  Cover:\t%.4f\n", circleCover)
	w.Flush()
	fmt.Println()

	printFibers(set)

	outline, core, err := sec.Outline()
	if err != nil {
		fmt.Printf("Error tracing section outline: %v\n", err)
		os.Exit(1)
	}
	if err := circleOut.write(sec.Name, set, outline, core); err != nil {
		fmt.Printf("Error %v\n", err)
		os.Exit(1)
	}
}
