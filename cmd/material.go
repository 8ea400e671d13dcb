package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/rcfiber/internal/diagram"
	"github.com/alexiusacademia/rcfiber/internal/material"
	"github.com/spf13/cobra"
)

var (
	materialSteel    string
	materialConcrete string
	materialPlot     string
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Steel and concrete grade parameters",
	Long: `Show the material models of the steel and concrete grades.

Without flags every grade is listed. With --steel or --concrete the
full parameters of one grade are shown. --plot exports the steel
stress-strain envelope of the selected steel grade.

Examples:
  rcfiber material
  rcfiber material --steel HRB400 --plot hrb400.png
  rcfiber material --concrete C40`,
	Run: runMaterial,
}

func init() {
	rootCmd.AddCommand(materialCmd)

	materialCmd.Flags().StringVar(&materialSteel, "steel", "", "Steel grade to show")
	materialCmd.Flags().StringVar(&materialConcrete, "concrete", "", "Concrete grade to show")
	materialCmd.Flags().StringVar(&materialPlot, "plot", "", "Export the steel stress-strain curve to file (png, svg, pdf)")
}

func runMaterial(cmd *cobra.Command, args []string) {
	if materialSteel == "" && materialConcrete == "" {
		if err := listMaterials(); err != nil {
			fmt.Printf("Error listing materials: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHeader("MATERIAL PARAMETERS")
	if materialConcrete != "" {
		g, err := material.ParseConcreteGrade(materialConcrete)
		if err != nil {
			fmt.Printf("Error loading material: %v\n", err)
			os.Exit(1)
		}
		c, err := material.CoverParameters(g)
		if err != nil {
			fmt.Printf("Error loading material: %v\n", err)
			os.Exit(1)
		}
		r, _ := material.CubeStrength(g)
		fmt.Println("CONCRETE:")
		fmt.Println(rule)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Grade:\t%s\n", g)
		fmt.Fprintf(w, "  Cube strength (R):\t%.0f MPa\n", r)
		w.Flush()
		printConcrete("Unconfined", c)
		fmt.Println()
	}

	if materialSteel == "" {
		if materialPlot != "" {
			fmt.Println("Error: --plot needs a --steel grade")
			os.Exit(1)
		}
		return
	}
	g, err := material.ParseSteelGrade(materialSteel)
	if err != nil {
		fmt.Printf("Error loading material: %v\n", err)
		os.Exit(1)
	}
	s, err := material.BarParameters(g)
	if err != nil {
		fmt.Printf("Error loading material: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("STEEL:")
	fmt.Println(rule)
	printSteel(s)
	fmt.Println()

	if materialPlot == "" {
		return
	}
	strain := make([]float64, 201)
	floats.Span(strain, 0, s.EpsU)
	stress := make([]float64, len(strain))
	for i, eps := range strain {
		stress[i] = s.Stress(eps)
	}
	err = diagram.ExportCurve(fmt.Sprintf("%s Steel", g), "Strain", "Stress (MPa)",
		[]diagram.Series{{Name: string(g), X: strain, Y: stress}}, materialPlot)
	if err != nil {
		fmt.Printf("Error exporting curve: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Curve exported to: %s\n", materialPlot)
	return
}

func listMaterials() error {
	printHeader("MATERIAL GRADES")

	fmt.Println("STEEL:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Grade\tfy (MPa)\tfu (MPa)\tεy\n")
	fmt.Fprintf(w, "  ─────\t────────\t────────\t──\n")
	for _, name := range material.SteelGrades() {
		s, err := material.BarParameters(material.SteelGrade(name))
		if err != nil {
			return fmt.Errorf("material: %w", err)
		}
		fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.5f\n", name, s.Fy, s.Fu, s.YieldStrain())
	}
	w.Flush()
	fmt.Println()

	fmt.Println("CONCRETE:")
	fmt.Println(rule)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Grade\tR (MPa)\tfc (MPa)\tEc (MPa)\n")
	fmt.Fprintf(w, "  ─────\t───────\t────────\t────────\n")
	for _, name := range material.ConcreteGrades() {
		g := material.ConcreteGrade(name)
		c, err := material.CoverParameters(g)
		if err != nil {
			return fmt.Errorf("material: %w", err)
		}
		r, _ := material.CubeStrength(g)
		fmt.Fprintf(w, "  %s\t%.0f\t%.3f\t%.0f\n", name, r, c.Fc, c.E)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  Unconfined strains: εc = %.3f, εcu = %.3f\n", material.EpsC0, material.EpsCU)
	fmt.Println()
	return nil
}
