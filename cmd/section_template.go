package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/rcfiber/internal/section"
	"github.com/spf13/cobra"
)

var (
	templateShape  string
	templateFormat string
)

var sectionTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a sample section file",
	Long: `Print a sample section definition to start a new section file from.

Examples:
  rcfiber section template > pier.yaml
  rcfiber section template --shape circle --format json > pier.json`,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := section.ParseFormat(templateFormat)
		if err != nil {
			fmt.Printf("Error writing template: %v\n", err)
			os.Exit(1)
		}
		sec, err := section.Example(templateShape)
		if err != nil {
			fmt.Printf("Error writing template: %v\n", err)
			os.Exit(1)
		}
		data, err := sec.Marshal(format)
		if err != nil {
			fmt.Printf("Error writing template: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

func init() {
	sectionCmd.AddCommand(sectionTemplateCmd)

	sectionTemplateCmd.Flags().StringVar(&templateShape, "shape", section.ShapePolygon, "Section shape (polygon or circle)")
	sectionTemplateCmd.Flags().StringVar(&templateFormat, "format", "yaml", "Output format (json or yaml)")
}
