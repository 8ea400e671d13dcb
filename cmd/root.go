package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/rcfiber/internal/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "rcfiber",
	Short: "Reinforced Concrete Fiber Section Builder",
	Long: `rcfiber - Reinforced Concrete Fiber Section Builder

A CLI tool that discretizes reinforced concrete cross-sections into
core, cover and bar fibers for fiber-based structural analysis.

This tool helps structural engineers:
  - Mesh arbitrary polygonal sections, with holes, into fibers
  - Build solid and hollow circular sections
  - Place longitudinal bars automatically or from a user layout
  - Compute Mander confined concrete parameters
  - Look up steel and concrete grade parameters`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   rcfiber v%-47s║\n", version.Version)
		fmt.Println("  ║   Reinforced Concrete Fiber Section Builder               ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Discretizes reinforced concrete sections into fibers for")
		fmt.Println("  fiber-based structural analysis.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Polygonal sections with holes, meshed into core fibers")
		fmt.Println("    • Solid and hollow circular sections")
		fmt.Println("    • Cover strips and automatic or user-placed bars")
		fmt.Println("    • Mander confined concrete model")
		fmt.Println("    • Steel and concrete grade tables")
		fmt.Println()
		fmt.Println("  Use 'rcfiber --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log mesh and build progress to stderr")
}
