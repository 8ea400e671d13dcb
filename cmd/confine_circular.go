package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcfiber/internal/mander"
	"github.com/spf13/cobra"
)

var (
	confCircHoop  string
	confCircD     float64
	confCircCover float64
	confCircRho   float64
	confCircS     float64
	confCircDs    float64
	confCircFyh   float64
	confCircFlags confineFlags
)

var confineCircularCmd = &cobra.Command{
	Use:   "circular",
	Short: "Confinement of a circular column",
	Long: `Compute Mander confined concrete parameters of a circular column
confined by a spiral or by circular hoops.

Examples:
  rcfiber confine circular -D 2 --cover 0.06 --rho-cc 0.0157 -s 0.1 --ds 0.014 --fyh 400 --concrete C40
  rcfiber confine circular --hoop hoop -D 1.2 --cover 0.05 --rho-cc 0.02 -s 0.1 --ds 0.012 --fyh 400 --fco -30`,
	Run: runConfineCircular,
}

func init() {
	confineCmd.AddCommand(confineCircularCmd)

	confineCircularCmd.Flags().StringVar(&confCircHoop, "hoop", "spiral", "Transverse steel (spiral or hoop)")
	confineCircularCmd.Flags().Float64VarP(&confCircD, "diameter", "D", 0, "Section diameter in m [required]")
	confineCircularCmd.Flags().Float64Var(&confCircCover, "cover", 0, "Cover to hoop centerline in m [required]")
	confineCircularCmd.Flags().Float64Var(&confCircRho, "rho-cc", 0, "Longitudinal steel ratio on the core")
	confineCircularCmd.Flags().Float64VarP(&confCircS, "spacing", "s", 0, "Hoop spacing or spiral pitch in m [required]")
	confineCircularCmd.Flags().Float64Var(&confCircDs, "ds", 0, "Hoop bar diameter in m [required]")
	confineCircularCmd.Flags().Float64Var(&confCircFyh, "fyh", 0, "Hoop yield stress in MPa [required]")
	for _, name := range []string{"diameter", "cover", "spacing", "ds", "fyh"} {
		confineCircularCmd.MarkFlagRequired(name)
	}
	confCircFlags.register(confineCircularCmd)
}

func runConfineCircular(cmd *cobra.Command, args []string) {
	hoop, err := mander.ParseHoopType(confCircHoop)
	if err != nil {
		fmt.Printf("Error computing confinement: %v\n", err)
		os.Exit(1)
	}
	fco, err := confCircFlags.strength()
	if err != nil {
		fmt.Printf("Error computing confinement: %v\n", err)
		os.Exit(1)
	}
	in := mander.CircularInput{
		Hoop:  hoop,
		D:     confCircD,
		Cover: confCircCover,
		RhoCC: confCircRho,
		S:     confCircS,
		Ds:    confCircDs,
		Fyh:   confCircFyh,
		Fco:   fco,
	}
	res, err := mander.Circular(in)
	if err != nil {
		fmt.Printf("Error computing confinement: %v\n", err)
		os.Exit(1)
	}

	printHeader("MANDER CONFINEMENT - CIRCULAR COLUMN")
	fmt.Println("INPUT:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Transverse steel:\t%s\n", in.Hoop)
	fmt.Fprintf(w, "  Diameter:\t%.4f m\n", in.D)
	fmt.Fprintf(w, "  Cover:\t%.4f m\n", in.Cover)
	fmt.Fprintf(w, "  ρcc:\t%.5f\n", in.RhoCC)
	fmt.Fprintf(w, "  Spacing / bar:\t%.4f / %.4f m\n", in.S, in.Ds)
	fmt.Fprintf(w, "  fyh:\t%.1f MPa\n", in.Fyh)
	w.Flush()
	fmt.Println()

	if err := confCircFlags.report(res); err != nil {
		fmt.Printf("Error %v\n", err)
		os.Exit(1)
	}
}
