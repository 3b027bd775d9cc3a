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
	"github.com/spf13/cobra"

	"github.com/notargets/vnlattice/bcc/tetmesh"
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the lattice as a solver mesh and print its statistics",
	Long: `
Builds the lattice described by a parameter file, converts it to a tetrahedral
mesh with face and edge connectivity and prints the mesh statistics,

vnlattice export -I lattice.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := readParameters(cmd)
		if err != nil {
			return err
		}
		m := tetmesh.FromLattice(buildLattice(ip))
		m.PrintStatistics(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ExportCmd)
	addParametersFlag(ExportCmd)
}
