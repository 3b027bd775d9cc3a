package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/notargets/vnlattice/bcc/lattice"
)

// Parameters obtained from the YAML input file
type LatticeParameters struct {
	Title       string     `json:"Title"`
	UnitSpacing float64    `json:"UnitSpacing"` // Material length of one lattice unit
	MinCorner   [3]float64 `json:"MinCorner"`   // Material position of the lattice origin
	// Tets of MacroSize fill GridCubes cubes of that size from the origin
	MacroSize int    `json:"MacroSize"`
	GridCubes [3]int `json:"GridCubes"`
	// Tets centered inside [RefineMin,RefineMax], in lattice units, are subdivided to the finest level
	RefineMin            [3]float64 `json:"RefineMin"`
	RefineMax            [3]float64 `json:"RefineMax"`
	MaxSubdivisionLevels int        `json:"MaxSubdivisionLevels"`
	LogLevel             string     `json:"LogLevel"`
	LogFile              string     `json:"LogFile"`
}

func (ip *LatticeParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	if ip.MacroSize == 0 {
		ip.MacroSize = 1
	}
	return ip.Validate()
}

func (ip *LatticeParameters) Validate() error {
	if ip.UnitSpacing <= 0 {
		return fmt.Errorf("UnitSpacing must be positive, have %g", ip.UnitSpacing)
	}
	if ip.MaxSubdivisionLevels < 0 || ip.MaxSubdivisionLevels > lattice.SubdivisionLevelLimit {
		return fmt.Errorf("MaxSubdivisionLevels must be in [0,%d], have %d",
			lattice.SubdivisionLevelLimit, ip.MaxSubdivisionLevels)
	}
	if ip.MacroSize <= 0 || ip.MacroSize&(ip.MacroSize-1) != 0 {
		return fmt.Errorf("MacroSize must be a power of two, have %d", ip.MacroSize)
	}
	// Point location promotes at most levels-1 times from a microtet
	levels := ip.MaxSubdivisionLevels
	if levels == 0 {
		levels = lattice.DefaultMaxSubdivisionLevels
	}
	if ip.MacroSize > 1<<(levels-1) {
		return fmt.Errorf("MacroSize %d is coarser than %d subdivision levels reach", ip.MacroSize, levels)
	}
	for i, n := range ip.GridCubes {
		if n <= 0 {
			return fmt.Errorf("GridCubes[%d] must be positive, have %d", i, n)
		}
		// Doubled coordinates of the far corner must fit in 16 bits
		if 2*n*ip.MacroSize >= 1<<16-1 {
			return fmt.Errorf("GridCubes[%d] = %d of size %d exceeds the lattice range", i, n, ip.MacroSize)
		}
	}
	return nil
}

func (ip *LatticeParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.5f\t\t= UnitSpacing\n", ip.UnitSpacing)
	fmt.Fprintf(w, "%v\t\t= MinCorner\n", ip.MinCorner)
	fmt.Fprintf(w, "[%d]\t\t\t= MacroSize\n", ip.MacroSize)
	fmt.Fprintf(w, "%v\t\t= GridCubes\n", ip.GridCubes)
	if ip.Refined() {
		fmt.Fprintf(w, "%v - %v\t= Refined Region\n", ip.RefineMin, ip.RefineMax)
	}
	fmt.Fprintf(w, "[%d]\t\t\t= Max Subdivision Levels\n", ip.MaxSubdivisionLevels)
}

// Refined reports whether any part of the lattice is subdivided below MacroSize
func (ip *LatticeParameters) Refined() bool {
	if ip.MacroSize == 1 {
		return false
	}
	for i := range ip.RefineMin {
		if ip.RefineMin[i] >= ip.RefineMax[i] {
			return false
		}
	}
	return true
}

// InRefinedRegion reports whether the lattice point p is in the refined region
func (ip *LatticeParameters) InRefinedRegion(p [3]float64) bool {
	if !ip.Refined() {
		return false
	}
	for i := range p {
		if p[i] < ip.RefineMin[i] || p[i] > ip.RefineMax[i] {
			return false
		}
	}
	return true
}
