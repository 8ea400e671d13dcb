package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcfiber/internal/diagram"
	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/alexiusacademia/rcfiber/internal/material"
	"github.com/spf13/cobra"
)

var confineCmd = &cobra.Command{
	Use:   "confine",
	Short: "Mander confined concrete parameters",
	Long: `Compute confined concrete strength and strains with the Mander model.

Circular columns use the closed form for equal lateral pressure.
Rectangular columns solve the five-parameter multiaxial failure
surface for the strength ratio under unequal confinement.

Strengths are in MPa. Compressive stresses and strains are reported
as negative values.

Subcommands:
  circular     - Spirally or hoop confined circular column
  rectangular  - Rectangular column with rectangular hoops`,
}

// confineFlags are shared by the confine subcommands.
type confineFlags struct {
	fco      float64
	concrete string
	curve    string
	points   int
	ascii    bool
}

func (f *confineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.fco, "fco", 0, "Unconfined strength f'co in MPa, negative in compression")
	cmd.Flags().StringVar(&f.concrete, "concrete", "", "Concrete grade giving f'co (e.g. C40)")
	cmd.MarkFlagsOneRequired("fco", "concrete")
	cmd.MarkFlagsMutuallyExclusive("fco", "concrete")
	cmd.Flags().StringVar(&f.curve, "curve", "", "Export the stress-strain curve to file (png, svg, pdf)")
	cmd.Flags().IntVar(&f.points, "points", 100, "Curve samples")
	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "Show an ASCII stress-strain curve")
}

// strength returns f'co, looking the grade up when one was given.
func (f confineFlags) strength() (float64, error) {
	if f.concrete == "" {
		return f.fco, nil
	}
	g, err := material.ParseConcreteGrade(f.concrete)
	if err != nil {
		return 0, err
	}
	c, err := material.CoverParameters(g)
	if err != nil {
		return 0, err
	}
	return c.Fc, nil
}

func (f confineFlags) report(res mander.Result) error {
	printConfinement(res)

	c, err := mander.NewCurve(res, f.points)
	if err != nil {
		return fmt.Errorf("building stress-strain curve: %w", err)
	}
	strain, stress := c.Peak()
	fmt.Println("STRESS-STRAIN CURVE:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Initial modulus (Ec):\t%.0f MPa\n", mander.ElasticModulus(res.Fco))
	fmt.Fprintf(w, "  Sampled peak:\t%.3f MPa at %.6f\n", stress, strain)
	fmt.Fprintf(w, "  Energy to εcu:\t%.5f MPa\n", c.Energy())
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("CONFINED CONCRETE", []string{
		fmt.Sprintf("f'cc = %.3f MPa", res.Fcc),
		fmt.Sprintf("εcc  = %.6f", res.Ecc),
		fmt.Sprintf("εcu  = %.6f", res.Ecu),
	}))
	fmt.Println()

	if f.ascii {
		// Plot compression upward
		mag := make([]float64, len(c.Stress))
		for i, v := range c.Stress {
			mag[i] = -v
		}
		caption := fmt.Sprintf("compressive stress (MPa), strain 0 to %.4f", -res.Ecu)
		fmt.Println(diagram.DrawCurve(caption, []diagram.Series{{Name: "Mander", Y: mag}}, 60, 15))
	}

	if f.curve == "" {
		return nil
	}
	err = diagram.ExportCurve("Confined Concrete", "Strain", "Stress (MPa)",
		[]diagram.Series{{Name: "Mander", X: c.Strain, Y: c.Stress}}, f.curve)
	if err != nil {
		return fmt.Errorf("exporting curve: %w", err)
	}
	fmt.Printf("Curve exported to: %s\n", f.curve)
	return nil
}

func init() {
	rootCmd.AddCommand(confineCmd)
}
