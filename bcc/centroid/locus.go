package centroid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Locus is an integer lattice node position. Positions may be negative on the
// domain boundary, where micro tet nodes reach one unit below the octant.
type Locus [3]int32

// GridLocus is a continuous position in lattice space
type GridLocus [3]float64

func (l Locus) GridLocus() GridLocus {
	return GridLocus{float64(l[0]), float64(l[1]), float64(l[2])}
}

func (g GridLocus) Vec() r3.Vec {
	return r3.Vec{X: g[0], Y: g[1], Z: g[2]}
}

func GridLocusFromVec(v r3.Vec) GridLocus {
	return GridLocus{v.X, v.Y, v.Z}
}

// Lerp returns g + t*(h-g)
func (g GridLocus) Lerp(h GridLocus, t float64) (p GridLocus) {
	for i := range p {
		p[i] = g[i] + t*(h[i]-g[i])
	}
	return
}

// LowestContaining returns the microtet containing lattice point p. The unit
// cube is found by flooring, the tet within it by the largest and smallest
// fractional offsets after reflecting the axis the cube parity flips. Ties go
// to the lowest axis for the largest offset and the highest axis for the
// smallest, so a point on a shared face is always claimed by exactly one tet
// which contains it. ok is false for points outside the lattice octant.
func LowestContaining(p GridLocus) (c Centroid, ok bool) {
	var (
		floor [3]int
		d     [3]float64
		odd   [3]bool
	)
	for i := range p {
		f := math.Floor(p[i])
		if math.IsNaN(f) || f < 0 || f > 0x7FFE {
			return Invalid, false
		}
		floor[i] = int(f)
		d[i] = p[i] - f
		odd[i] = floor[i]&1 == 1
	}
	flip := -1
	switch {
	case odd[0] == odd[1] && odd[1] == odd[2]:
	case odd[0] == odd[1]:
		flip = 2
	case odd[0] == odd[2]:
		flip = 1
	default:
		flip = 0
	}
	if flip >= 0 {
		d[flip] = 1 - d[flip]
	}
	mx := 0
	for a := 1; a < 3; a++ {
		if d[a] > d[mx] {
			mx = a
		}
	}
	lo, hi := (mx+1)%3, (mx+2)%3
	if lo > hi {
		lo, hi = hi, lo
	}
	mn := hi
	if d[lo] < d[hi] {
		mn = lo
	}
	var cc [3]int
	for i := range cc {
		cc[i] = 2*floor[i] + 1
	}
	if mx == flip {
		cc[mx]--
	} else {
		cc[mx]++
	}
	if mn == flip {
		cc[mn]++
	} else {
		cc[mn]--
	}
	return Centroid{uint16(cc[0]), uint16(cc[1]), uint16(cc[2])}, true
}

/*
InsideTet is the closed half space test for lattice point p against the tet
of centroid c. Points on faces, edges and nodes are inside. Every face lies in
a plane p[a]+p[b] = k/2 or p[a]-p[b] = k/2 for integer k, and k/2 is exact, so
a point exactly on a shared face is inside both tets.
*/
func InsideTet(c Centroid, p GridLocus) bool {
	hc, size := c.Decode()
	var (
		c1 = (hc + 1) % 3
		c2 = (hc + 2) % 3
		s  = int(size)
		h  = int(c[hc])
		v1 = int(c[c1])
		v2 = int(c[c2])
	)
	half := func(k int) float64 { return float64(k) * .5 }
	if c.up(hc, size) {
		return p[c2]-p[hc] <= half(v2-h+s) && p[c2]+p[hc] >= half(v2+h-s) &&
			p[c1]+p[hc] <= half(v1+h+s) && p[hc]-p[c1] <= half(h-v1+s)
	}
	return p[c2]+p[hc] <= half(v2+h+s) && p[hc]-p[c2] <= half(h-v2+s) &&
		p[c1]-p[hc] <= half(v1-h+s) && p[c1]+p[hc] >= half(v1+h-s)
}

// InsideTetLocus is InsideTet for an integer node position
func InsideTetLocus(c Centroid, l Locus) bool {
	return InsideTet(c, l.GridLocus())
}
