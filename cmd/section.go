package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Fiber discretization of reinforced concrete sections",
	Long: `Discretize reinforced concrete sections into core, cover and bar
fibers.

A section is defined in a JSON or YAML file (chosen by extension).
The outer boundary and holes are given either as an ordered vertex
list or as node and edge maps.

Subcommands:
  build     - Build the fibers of a section file
  circle    - Build a solid or hollow circular section from flags
  template  - Print a sample section file

Example YAML file structure:
name: Box
shape: polygon
cover: 0.05
core_size: 0.1
cover_size: 0.2
outer:
  vertices:
    - {y: 0, z: 0}
    - {y: 1, z: 0}
    - {y: 1, z: 1}
    - {y: 0, z: 1}
bars:
  outer: {diameter: 0.025, spacing: 0.15}
materials:
  steel: HRB400
  concrete: C40`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
