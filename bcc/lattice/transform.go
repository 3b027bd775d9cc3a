package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
)

// Transform maps lattice space to material space with a uniform spacing and
// the material position of the lattice origin.
type Transform struct {
	UnitSpacing float64
	MinCorner   r3.Vec
}

func NewTransform(unitSpacing float64, minCorner r3.Vec) Transform {
	if !(unitSpacing > 0) {
		panic(fmt.Errorf("lattice unit spacing must be positive, have %v", unitSpacing))
	}
	return Transform{UnitSpacing: unitSpacing, MinCorner: minCorner}
}

func (tr Transform) ToMaterial(g centroid.GridLocus) r3.Vec {
	return r3.Add(tr.MinCorner, r3.Scale(tr.UnitSpacing, g.Vec()))
}

func (tr Transform) ToLattice(m r3.Vec) centroid.GridLocus {
	return centroid.GridLocusFromVec(r3.Scale(1/tr.UnitSpacing, r3.Sub(m, tr.MinCorner)))
}

// Bounds returns the material space box covered by lattice loci in [lo,hi]
func (tr Transform) Bounds(lo, hi centroid.GridLocus) r3.Box {
	return r3.Box{Min: tr.ToMaterial(lo), Max: tr.ToMaterial(hi)}
}
