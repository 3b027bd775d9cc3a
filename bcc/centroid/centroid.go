package centroid

import (
	"fmt"
)

/*
Centroid identifies one tetrahedron of the BCC lattice hierarchy. The three
coordinates are the tetrahedron centroid position doubled, so every centroid is
integral. The lowest set bit shared by the triple gives the resolution size, the
axis carrying that bit is the half axis.

	size 1 tets (microtets) have exactly one odd coordinate
	size 2 tets have exactly one coordinate with bit 1 set and all bit 0 clear
	...
*/
type Centroid [3]uint16

// Invalid is returned wherever a neighbor or child would fall outside the
// non-negative lattice octant.
var Invalid = Centroid{0xFFFF, 0xFFFF, 0xFFFF}

// NoFace accompanies Invalid for face queries that hit the domain boundary
const NoFace = -1

// EdgeVertices is the node position pair for each of the 6 tetrahedron edges
var EdgeVertices = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// FaceVertices returns the tet node positions making up a face. Face f holds
// nodes f, f+1, f+2 (mod 4), faces 0 and 2 are clockwise, 1 and 3 counter
// clockwise.
func FaceVertices(face int) (verts [3]int) {
	checkFace(face)
	for i := range verts {
		verts[i] = (face + i) & 3
	}
	return
}

func checkFace(face int) {
	if face < 0 || face > 3 {
		panic(fmt.Errorf("face index %d out of range [0,3]", face))
	}
}

func (c Centroid) IsValid() bool {
	return c != Invalid
}

// Decode returns the half axis and resolution size of the centroid. A triple
// with no set bits is not a centroid and panics.
func (c Centroid) Decode() (halfAxis int, size uint16) {
	for dd := uint16(1); dd != 0; dd <<= 1 {
		for i := 0; i < 3; i++ {
			if c[i]&dd != 0 {
				return i, dd
			}
		}
	}
	panic(fmt.Errorf("centroid %v does not encode a tetrahedron", c))
}

func (c Centroid) Size() uint16 {
	_, size := c.Decode()
	return size
}

// IsMicro reports whether the centroid is at the finest level
func (c Centroid) IsMicro() bool {
	return c.Size() == 1
}

// Level counts subdivision levels, 1 for microtets, 2 for size 2 and so on
func (c Centroid) Level() (level int) {
	for size := c.Size(); size != 0; size >>= 1 {
		level++
	}
	return
}

// Up reports the tet orientation. Up tets have the half axis hinge pair below
// the secondary axis edge pair.
func (c Centroid) Up() bool {
	hc, size := c.Decode()
	return c.up(hc, size)
}

func (c Centroid) up(hc int, size uint16) bool {
	lub := uint32(size) << 1
	c2 := (hc + 2) % 3
	return uint32(c[hc])&lub == uint32(c[c2])&lub
}

func (c Centroid) mustBeMicro(op string) int {
	hc, size := c.Decode()
	if size != 1 {
		panic(fmt.Errorf("%s requires a microtet, centroid %v has size %d", op, c, size))
	}
	return hc
}

// NodeLoci returns the four integer lattice positions of the tet nodes, in the
// node order every face and edge convention is built on.
func (c Centroid) NodeLoci() (nodes [4]Locus) {
	hc, size := c.Decode()
	var (
		s    = int32(size)
		lub  = s << 1
		c1   = (hc + 1) % 3
		c2   = (hc + 2) % 3
		gl   [4][3]int32
		isUp = c.up(hc, size)
	)
	for i := range gl {
		for j := 0; j < 3; j++ {
			gl[i][j] = int32(c[j])
		}
	}
	if isUp {
		gl[0][hc] -= s
		gl[1][hc] -= s
		gl[2][hc] += s
		gl[3][hc] += s
		gl[2][c2] += lub
		gl[3][c2] -= lub
	} else {
		gl[0][hc] += s
		gl[1][hc] += s
		gl[2][hc] -= s
		gl[3][hc] -= s
		gl[2][c2] -= lub
		gl[3][c2] += lub
	}
	gl[0][c1] -= lub
	gl[1][c1] += lub
	for i := range gl {
		for j := 0; j < 3; j++ {
			nodes[i][j] = gl[i][j] >> 1
		}
	}
	return
}

// Promote returns the centroid of the tet one level coarser that contains c.
// Core children only move along the half axis, corner children also shift a
// secondary axis by the parent cell size.
func (c Centroid) Promote() (up Centroid) {
	hc, lb := c.Decode()
	var (
		x2 = lb << 1
		x4 = lb << 2
		c1 = (hc + 1) % 3
		c2 = (hc + 2) % 3
	)
	up = c
	if up[hc]&x2 != 0 {
		up[hc] += lb
	} else {
		up[hc] -= lb
	}
	if up[c1]&x2 != 0 && up[hc]&x4 != up[c2]&x4 {
		return
	}
	if up[c2]&x2 != 0 && up[hc]&x4 != up[c1]&x4 {
		return
	}
	// corner child
	up[hc] = c[hc]
	if up[hc]&x2 != 0 {
		up[hc] -= lb
	} else {
		up[hc] += lb
	}
	nudge := func(axis, other int) {
		if (up[other]&x4 != 0) == (up[axis]&x4 != 0) {
			up[axis] += x2
		} else {
			up[axis] -= x2
		}
	}
	if up[c1]&x2 != 0 {
		nudge(c1, c2)
	} else {
		nudge(c2, c1)
	}
	return
}

// Subdivide returns the 8 children of a macrotet. Children 0-3 are the corner
// tets, 4-7 the core tets sharing the parent half axis. A child that would
// leave the lattice octant is returned as Invalid.
func (c Centroid) Subdivide() (kids [8]Centroid) {
	hc, level := c.Decode()
	if level < 2 {
		panic(fmt.Errorf("cannot subdivide microtet %v", c))
	}
	var (
		lu      = level << 1
		ld      = level >> 1
		c1      = (hc + 1) % 3
		c2      = (hc + 2) % 3
		isUp    = c[hc]&lu == c[c2]&lu
		invalid [8]bool
	)
	for i := range kids {
		kids[i] = c
	}
	if isUp {
		kids[0][hc] -= ld
		kids[1][hc] -= ld
		kids[2][hc] += ld
		kids[3][hc] += ld
	} else {
		kids[0][hc] += ld
		kids[1][hc] += ld
		kids[2][hc] -= ld
		kids[3][hc] -= ld
	}
	shiftDown := func(k, axis int, amount uint16) {
		if kids[k][axis] < amount {
			invalid[k] = true
			return
		}
		kids[k][axis] -= amount
	}
	shiftDown(0, c1, level)
	kids[1][c1] += level
	lo, hi := 2, 3
	if isUp {
		lo, hi = 3, 2
	}
	shiftDown(lo, c2, level)
	kids[hi][c2] += level
	shiftDown(4, c1, ld)
	kids[5][c1] += ld
	shiftDown(6, c2, ld)
	kids[7][c2] += ld
	for i := range kids {
		if invalid[i] {
			kids[i] = Invalid
		}
	}
	return
}

// cubeSplit gives, per half axis, the sign of the secondary axis diagonal of
// the unit cube whose minimum corner has the given parities.
func cubeSplit(minCorner [3]int) (split [3]bool) {
	odd := [3]bool{minCorner[0]&1 == 1, minCorner[1]&1 == 1, minCorner[2]&1 == 1}
	switch {
	case odd[0] == odd[1] && odd[1] == odd[2]:
		return [3]bool{true, true, true}
	case odd[0] == odd[1]:
		return [3]bool{false, false, true}
	case odd[0] == odd[2]:
		return [3]bool{false, true, false}
	default:
		return [3]bool{true, false, false}
	}
}

// UnitCubeCentroids returns the six microtets partitioning the unit lattice
// cube at minCorner, two per half axis.
func UnitCubeCentroids(minCorner [3]int) (cs [6]Centroid) {
	for i := 0; i < 3; i++ {
		if minCorner[i] < 0 || 2*minCorner[i]+2 > 0xFFFE {
			panic(fmt.Errorf("unit cube corner %v outside the lattice octant", minCorner))
		}
	}
	split := cubeSplit(minCorner)
	var center [3]int
	for i := range center {
		center[i] = 2*minCorner[i] + 1
	}
	for i := 0; i < 3; i++ {
		c1 := (i + 1) % 3
		c2 := (i + 2) % 3
		for j := 0; j < 2; j++ {
			cc := center
			sign := 1
			if j == 1 {
				sign = -1
			}
			cc[c1] += sign
			if split[i] {
				cc[c2] -= sign
			} else {
				cc[c2] += sign
			}
			cs[2*i+j] = Centroid{uint16(cc[0]), uint16(cc[1]), uint16(cc[2])}
		}
	}
	return
}

// UnitCubeCentroidLoci returns the same tets as UnitCubeCentroids as grid
// loci of their centroids.
func UnitCubeCentroidLoci(minCorner [3]int) (loci [6]GridLocus) {
	for i, c := range UnitCubeCentroids(minCorner) {
		loci[i] = c.GridLocus()
	}
	return
}

// GridLocus returns the centroid position in lattice space
func (c Centroid) GridLocus() GridLocus {
	return GridLocus{float64(c[0]) * .5, float64(c[1]) * .5, float64(c[2]) * .5}
}

func (c Centroid) String() string {
	if !c.IsValid() {
		return "[invalid]"
	}
	return fmt.Sprintf("[%d %d %d]", c[0], c[1], c[2])
}
