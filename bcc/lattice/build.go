package lattice

import (
	"fmt"
	"math/bits"

	"github.com/notargets/vnlattice/bcc/centroid"
)

// Builder populates a lattice with tets whose nodes are shared by position.
// It is the initial tessellation path, cuts add virtual noded copies through
// Lattice.AddNode and Lattice.AddTet directly.
type Builder struct {
	lt     *Lattice
	nodeAt map[centroid.Locus]int
}

func NewBuilder(lt *Lattice) *Builder {
	b := &Builder{lt: lt, nodeAt: make(map[centroid.Locus]int)}
	for i, l := range lt.nodes {
		if _, present := b.nodeAt[l]; !present {
			b.nodeAt[l] = i
		}
	}
	return b
}

func (b *Builder) node(l centroid.Locus) int {
	if n, present := b.nodeAt[l]; present {
		return n
	}
	n := b.lt.AddNode(l)
	b.nodeAt[l] = n
	return n
}

// AddCentroid adds the tet of centroid c unless one is already present and
// returns its index
func (b *Builder) AddCentroid(c centroid.Centroid) int {
	if !c.IsValid() {
		panic(fmt.Errorf("cannot add the invalid centroid"))
	}
	if tets := b.lt.tetHash[c]; len(tets) > 0 {
		return tets[0]
	}
	var nodes [4]int
	for i, l := range c.NodeLoci() {
		nodes[i] = b.node(l)
	}
	return b.lt.AddTet(c, nodes)
}

// FillCube adds the six microtets of the unit cube at minCorner
func (b *Builder) FillCube(minCorner [3]int) {
	for _, c := range centroid.UnitCubeCentroids(minCorner) {
		b.AddCentroid(c)
	}
}

// FillBox adds the microtets of every unit cube with minimum corner in [lo,hi)
func (b *Builder) FillBox(lo, hi [3]int) {
	b.FillMacro(1, lo, hi)
}

// FillMacro adds tets of the given size for every size scaled unit cube with
// minimum corner in [lo,hi), in units of size
func (b *Builder) FillMacro(size uint16, lo, hi [3]int) {
	for _, c := range MacroCentroids(size, lo, hi) {
		b.AddCentroid(c)
	}
}

// FillGraded is FillMacro with the tets selected by refine replaced by their
// finest level descendants
func (b *Builder) FillGraded(size uint16, lo, hi [3]int, refine func(c centroid.Centroid) bool) {
	levels := bits.TrailingZeros16(size)
	for _, c := range MacroCentroids(size, lo, hi) {
		if levels > 0 && refine(c) {
			b.AddSubdivided(c, levels)
		} else {
			b.AddCentroid(c)
		}
	}
}

// AddSubdivided adds the descendants of c levels below it, skipping children
// outside the lattice octant
func (b *Builder) AddSubdivided(c centroid.Centroid, levels int) {
	if levels == 0 {
		b.AddCentroid(c)
		return
	}
	for _, kid := range c.Subdivide() {
		if kid.IsValid() {
			b.AddSubdivided(kid, levels-1)
		}
	}
}

// MacroCentroids lists without repeats the centroids of size scaled unit cubes
// with minimum corner in [lo,hi)
func MacroCentroids(size uint16, lo, hi [3]int) (cs []centroid.Centroid) {
	if size == 0 || size&(size-1) != 0 {
		panic(fmt.Errorf("tet size %d is not a power of two", size))
	}
	seen := make(map[centroid.Centroid]bool)
	for x := lo[0]; x < hi[0]; x++ {
		for y := lo[1]; y < hi[1]; y++ {
			for z := lo[2]; z < hi[2]; z++ {
				for _, mc := range centroid.UnitCubeCentroids([3]int{x, y, z}) {
					c := centroid.Centroid{mc[0] * size, mc[1] * size, mc[2] * size}
					if !seen[c] {
						seen[c] = true
						cs = append(cs, c)
					}
				}
			}
		}
	}
	return
}
