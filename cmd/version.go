package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcfiber/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcfiber",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Reinforced Concrete Fiber Section Builder")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
