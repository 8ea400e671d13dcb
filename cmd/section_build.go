package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/rcfiber/internal/diagram"
	"github.com/alexiusacademia/rcfiber/internal/fiber"
	"github.com/alexiusacademia/rcfiber/internal/section"
	"github.com/spf13/cobra"
)

var (
	sectionBuildFile    string
	sectionBuildTimeout time.Duration
	sectionBuildOut     fiberOutputs
)

var sectionBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the fibers of a section file",
	Long: `Discretize the section defined in a JSON or YAML file into core,
cover and bar fibers.

The core is meshed into triangles of roughly core_size, the cover is
split into strips of roughly cover_size, and bars are placed along the
core boundary. When the file has a materials block the steel, cover
and confined core models are reported as well.

Examples:
  rcfiber section build --file pier.yaml
  rcfiber section build -f box.json -o fibers --plot box.png
  rcfiber section build -f box.json --ascii --timeout 30s`,
	Run: runSectionBuild,
}

func init() {
	sectionCmd.AddCommand(sectionBuildCmd)

	sectionBuildCmd.Flags().StringVarP(&sectionBuildFile, "file", "f", "", "Path to section JSON or YAML file [required]")
	sectionBuildCmd.MarkFlagRequired("file")
	sectionBuildCmd.Flags().DurationVar(&sectionBuildTimeout, "timeout", time.Minute, "Give up meshing after this long")

	sectionBuildOut.register(sectionBuildCmd)
}

func runSectionBuild(cmd *cobra.Command, args []string) {
	sec, err := section.LoadFromFile(sectionBuildFile)
	if err != nil {
		fmt.Printf("Error loading section: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sectionBuildTimeout)
	defer cancel()

	set, err := sec.Build(ctx, fiber.NewBuilder(fiber.WithLogger(logger)))
	if err != nil {
		fmt.Printf("Error building section: %v\n", err)
		os.Exit(1)
	}
	props, err := sec.CalculateProperties()
	if err != nil {
		fmt.Printf("Error computing section properties: %v\n", err)
		os.Exit(1)
	}

	printHeader("FIBER SECTION")
	if sec.Name != "" {
		fmt.Printf("  Section: %s\n", sec.Name)
	}
	if sec.Description != "" {
		fmt.Printf("  Description: %s\n", sec.Description)
	}
	fmt.Println()

	fmt.Println("SECTION GEOMETRY:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Shape:\t%s\n", sec.Shape)
	fmt.Fprintf(w, "  Width:\t%.4f\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.4f\n", props.Height)
	fmt.Fprintf(w, "  Gross Area:\t%.6f\n", props.Area)
	fmt.Fprintf(w, "  Centroid (y, z):\t%.4f, %.4f\n", props.CentroidY, props.CentroidZ)
	fmt.Fprintf(w, "  Holes:\t%d\n", props.Holes)
	fmt.Fprintf(w, "  Cover:\t%.4f\n", sec.Cover)
	fmt.Fprintf(w, "  Core / cover fiber size:\t%.4f / %.4f\n", sec.CoreSize, sec.CoverSize)
	w.Flush()
	fmt.Println()

	printFibers(set)
	fmt.Print(diagram.DrawSummaryBox("FIBER SECTION "+sec.Name, []string{
		fmt.Sprintf("%d core, %d cover, %d bar fibers", len(set.Core), len(set.Cover), len(set.Bar)),
		fmt.Sprintf("Concrete area %.6f of %.6f gross", set.Area(fiber.Core)+set.Area(fiber.Cover), props.Area),
		fmt.Sprintf("ρcc = %.4f%%", 100*set.LongitudinalRatio()),
	}))
	fmt.Println()

	if sec.Materials != nil {
		ms, err := sec.MaterialModels(set)
		if err != nil {
			fmt.Printf("Error building material models: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("MATERIALS:")
		fmt.Println(rule)
		printSteel(ms.Steel)
		printConcrete("Cover", ms.Cover)
		printConcrete("Core", ms.Core)
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Yield curvature (y, z):\t%.6f, %.6f\n", ms.YieldCurvature[0], ms.YieldCurvature[1])
		w.Flush()
		fmt.Println()
		if sec.Confinement != nil {
			printConfinement(ms.Confinement)
		}
	}

	outline, core, err := sec.Outline()
	if err != nil {
		fmt.Printf("Error tracing section outline: %v\n", err)
		os.Exit(1)
	}
	if err := sectionBuildOut.write(sec.Name, set, outline, core); err != nil {
		fmt.Printf("Error %v\n", err)
		os.Exit(1)
	}
}
