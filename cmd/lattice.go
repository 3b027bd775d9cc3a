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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/InputParameters"
	"github.com/notargets/vnlattice/bcc/centroid"
	"github.com/notargets/vnlattice/bcc/lattice"
	"github.com/notargets/vnlattice/logger"
)

const exampleFile = `
########################################
Title: "Test Case"
UnitSpacing: 0.5
MinCorner: [0, 0, 0]
MacroSize: 4
GridCubes: [4, 4, 4]
RefineMin: [4, 4, 4]
RefineMax: [12, 12, 12]
MaxSubdivisionLevels: 8
########################################
`

func addParametersFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for lattice parameters like:\n\t- UnitSpacing\n\t- GridCubes")
}

// readParameters reads the file named by the -I flag, parameters in the file
// override the logging flags
func readParameters(cmd *cobra.Command) (ip *InputParameters.LatticeParameters, err error) {
	var (
		fileName string
		data     []byte
	)
	if fileName, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile), example:%s", exampleFile)
	}
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters.LatticeParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if ip.LogLevel != "" || ip.LogFile != "" {
		if err = logger.Init(ip.LogLevel, ip.LogFile); err != nil {
			return nil, err
		}
	}
	return
}

// buildLattice fills the grid cubes with tets of the macro size, subdividing
// those centered in the refined region to the finest level
func buildLattice(ip *InputParameters.LatticeParameters) *lattice.Lattice {
	lt := lattice.NewLattice(lattice.Config{
		UnitSpacing:          ip.UnitSpacing,
		MinCorner:            r3.Vec{X: ip.MinCorner[0], Y: ip.MinCorner[1], Z: ip.MinCorner[2]},
		MaxSubdivisionLevels: ip.MaxSubdivisionLevels,
		Logger:               logger.Log,
	})
	lattice.NewBuilder(lt).FillGraded(uint16(ip.MacroSize), [3]int{0, 0, 0}, ip.GridCubes,
		func(c centroid.Centroid) bool { return ip.InRefinedRegion(c.GridLocus()) })
	logger.Log.Info("lattice built", zap.String("title", ip.Title),
		zap.Int("nodes", lt.NumNodes()), zap.Int("tets", lt.NumTets()))
	return lt
}
