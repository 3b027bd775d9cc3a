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
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

// LocateCmd represents the locate command
var LocateCmd = &cobra.Command{
	Use:   "locate x y z",
	Short: "Find the tet and barycentric weights of a material point",
	Long: `
Builds the lattice described by a parameter file and locates a material space
point in it,

vnlattice locate -I lattice.yaml 1.5 2.25 0.75`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var m [3]float64
		for i, arg := range args {
			var err error
			if m[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return fmt.Errorf("coordinate %d: %w", i, err)
			}
		}
		ip, err := readParameters(cmd)
		if err != nil {
			return err
		}
		lt := buildLattice(ip)
		a, err := lt.LocateMaterialPoint(r3.Vec{X: m[0], Y: m[1], Z: m[2]})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tet: %d\n", a.Tet)
		fmt.Fprintf(out, "Centroid: %v\n", lt.TetCentroid(a.Tet))
		w := a.Weights.Full()
		fmt.Fprintf(out, "Weights: [%8.5f %8.5f %8.5f %8.5f]\n", w[0], w[1], w[2], w[3])
		for i, n := range lt.TetNodes(a.Tet) {
			p := lt.NodeMaterialCoordinate(n)
			fmt.Fprintf(out, "  Node %d: %d at [%8.4f %8.4f %8.4f]\n", i, n, p.X, p.Y, p.Z)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(LocateCmd)
	addParametersFlag(LocateCmd)
}
