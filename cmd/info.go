/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Build a lattice and print its statistics",
	Long: `
Builds the lattice described by a parameter file and prints node, tet and
cell counts per subdivision level with the material bounds,

vnlattice info -I lattice.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := readParameters(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ip.Print(out)
		lt := buildLattice(ip)
		fmt.Fprintf(out, "Lattice Statistics:\n")
		fmt.Fprintf(out, "  Nodes: %d\n", lt.NumNodes())
		fmt.Fprintf(out, "  Tets: %d\n", lt.NumTets())
		fmt.Fprintf(out, "  Cells: %d\n", lt.NumCentroids())
		levels := make(map[uint16]int)
		var sizes []uint16
		for tet := 0; tet < lt.NumTets(); tet++ {
			size := lt.TetCentroid(tet).Size()
			if levels[size] == 0 {
				sizes = append(sizes, size)
			}
			levels[size]++
		}
		for _, size := range sizes {
			fmt.Fprintf(out, "  Size %d tets: %d\n", size, levels[size])
		}
		box := lt.Bounds()
		fmt.Fprintf(out, "  Bounds: [%8.4f %8.4f %8.4f] - [%8.4f %8.4f %8.4f]\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	addParametersFlag(InfoCmd)
}
