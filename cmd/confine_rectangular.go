package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/spf13/cobra"
)

var (
	confRectLx    float64
	confRectLy    float64
	confRectCover float64
	confRectRho   float64
	confRectSl    float64
	confRectDsl   float64
	confRectRhoX  float64
	confRectRhoY  float64
	confRectSt    float64
	confRectDst   float64
	confRectFyh   float64
	confRectFlags confineFlags
)

var confineRectangularCmd = &cobra.Command{
	Use:   "rectangular",
	Short: "Confinement of a rectangular column",
	Long: `Compute Mander confined concrete parameters of a rectangular column
with rectangular hoops. Unequal lateral pressures along x and y are
resolved on the multiaxial failure surface.

Examples:
  rcfiber confine rectangular --lx 1.6 --ly 3.2 --cover 0.06 --rho-cc 0.012 \
      --sl 0.185 --dsl 0.028 --rho-x 0.005 --rho-y 0.005 --st 0.15 --dst 0.012 \
      --fyh 400 --concrete C40`,
	Run: runConfineRectangular,
}

func init() {
	confineCmd.AddCommand(confineRectangularCmd)

	f := confineRectangularCmd.Flags()
	f.Float64Var(&confRectLx, "lx", 0, "Section width along x in m [required]")
	f.Float64Var(&confRectLy, "ly", 0, "Section depth along y in m [required]")
	f.Float64Var(&confRectCover, "cover", 0, "Cover to hoop centerline in m [required]")
	f.Float64Var(&confRectRho, "rho-cc", 0, "Longitudinal steel ratio on the core")
	f.Float64Var(&confRectSl, "sl", 0, "Longitudinal bar spacing in m [required]")
	f.Float64Var(&confRectDsl, "dsl", 0, "Longitudinal bar diameter in m")
	f.Float64Var(&confRectRhoX, "rho-x", 0, "Transverse steel ratio along x [required]")
	f.Float64Var(&confRectRhoY, "rho-y", 0, "Transverse steel ratio along y [required]")
	f.Float64Var(&confRectSt, "st", 0, "Hoop spacing in m [required]")
	f.Float64Var(&confRectDst, "dst", 0, "Hoop bar diameter in m [required]")
	f.Float64Var(&confRectFyh, "fyh", 0, "Hoop yield stress in MPa [required]")
	for _, name := range []string{"lx", "ly", "cover", "sl", "rho-x", "rho-y", "st", "dst", "fyh"} {
		confineRectangularCmd.MarkFlagRequired(name)
	}
	confRectFlags.register(confineRectangularCmd)
}

func runConfineRectangular(cmd *cobra.Command, args []string) {
	fco, err := confRectFlags.strength()
	if err != nil {
		fmt.Printf("Error computing confinement: %v\n", err)
		os.Exit(1)
	}
	in := mander.RectangularInput{
		Lx:    confRectLx,
		Ly:    confRectLy,
		Cover: confRectCover,
		RhoCC: confRectRho,
		Sl:    confRectSl,
		Dsl:   confRectDsl,
		RhoX:  confRectRhoX,
		RhoY:  confRectRhoY,
		St:    confRectSt,
		Dst:   confRectDst,
		Fyh:   confRectFyh,
		Fco:   fco,
	}
	res, err := mander.Rectangular(in)
	if err != nil {
		fmt.Printf("Error computing confinement: %v\n", err)
		os.Exit(1)
	}

	printHeader("MANDER CONFINEMENT - RECTANGULAR COLUMN")
	fmt.Println("INPUT:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Section (lx × ly):\t%.4f × %.4f m\n", in.Lx, in.Ly)
	fmt.Fprintf(w, "  Cover:\t%.4f m\n", in.Cover)
	fmt.Fprintf(w, "  ρcc:\t%.5f\n", in.RhoCC)
	fmt.Fprintf(w, "  Longitudinal spacing / bar:\t%.4f / %.4f m\n", in.Sl, in.Dsl)
	fmt.Fprintf(w, "  ρx / ρy:\t%.5f / %.5f\n", in.RhoX, in.RhoY)
	fmt.Fprintf(w, "  Hoop spacing / bar:\t%.4f / %.4f m\n", in.St, in.Dst)
	fmt.Fprintf(w, "  fyh:\t%.1f MPa\n", in.Fyh)
	w.Flush()
	fmt.Println()

	if err := confRectFlags.report(res); err != nil {
		fmt.Printf("Error %v\n", err)
		os.Exit(1)
	}
}
