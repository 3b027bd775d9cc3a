package centroid

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// latticeCentroids enumerates every tet of the given size whose unit cube
// scaled copy has its minimum corner in [0,n)^3
func latticeCentroids(size uint16, n int) (cs []Centroid) {
	seen := make(map[Centroid]bool)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				for _, c := range UnitCubeCentroids([3]int{x, y, z}) {
					sc := Centroid{c[0] * size, c[1] * size, c[2] * size}
					if !seen[sc] {
						seen[sc] = true
						cs = append(cs, sc)
					}
				}
			}
		}
	}
	return
}

func sortedLoci(l []Locus) []Locus {
	out := append([]Locus{}, l...)
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func faceLoci(c Centroid, face int) []Locus {
	nodes := c.NodeLoci()
	var out []Locus
	for _, v := range FaceVertices(face) {
		out = append(out, nodes[v])
	}
	return sortedLoci(out)
}

func TestDecode(t *testing.T) {
	var (
		hc   int
		size uint16
	)
	hc, size = Centroid{1, 2, 0}.Decode()
	assert.Equal(t, 0, hc)
	assert.Equal(t, uint16(1), size)
	hc, size = Centroid{2, 1, 0}.Decode()
	assert.Equal(t, 1, hc)
	assert.Equal(t, uint16(1), size)
	hc, size = Centroid{4, 8, 2}.Decode()
	assert.Equal(t, 2, hc)
	assert.Equal(t, uint16(2), size)
	hc, size = Centroid{8, 16, 0}.Decode()
	assert.Equal(t, 0, hc)
	assert.Equal(t, uint16(8), size)
	assert.Equal(t, 4, Centroid{8, 16, 0}.Level())
	assert.True(t, Centroid{0, 2, 1}.IsMicro())
	assert.False(t, Invalid.IsValid())

	// No set bits is not a tet
	assert.Panics(t, func() { Centroid{}.Decode() })
}

func TestNodeLoci(t *testing.T) {
	// Scenario tet of the unit cube at the origin
	nodes := Centroid{2, 1, 0}.NodeLoci()
	assert.Equal(t, [4]Locus{{1, 1, -1}, {1, 1, 1}, {0, 0, 0}, {2, 0, 0}}, nodes)

	// The centroid is the node average, every node is inside its own tet
	for _, size := range []uint16{1, 2, 4, 8} {
		for _, c := range latticeCentroids(size, 4) {
			var sum [3]int32
			for _, n := range c.NodeLoci() {
				for i := range sum {
					sum[i] += n[i]
				}
				assert.True(t, InsideTetLocus(c, n), "node %v of %v", n, c)
			}
			for i := range sum {
				require.Equal(t, 2*int32(c[i]), sum[i], "centroid %v", c)
			}
		}
	}
}

func TestPromoteSubdivide(t *testing.T) {
	// Round trip through every valid child
	for _, size := range []uint16{2, 4, 8} {
		var nInvalid int
		for _, c := range latticeCentroids(size, 5) {
			for _, kid := range c.Subdivide() {
				if !kid.IsValid() {
					nInvalid++
					continue
				}
				require.Equal(t, size>>1, kid.Size())
				require.Equal(t, c, kid.Promote(), "child %v of %v", kid, c)
				// Children lie inside the parent
				for _, n := range kid.NodeLoci() {
					assert.True(t, InsideTetLocus(c, n))
				}
			}
		}
		// Tets on the octant faces lose children
		assert.Greater(t, nInvalid, 0)
	}
	// Microtets promote to a containing tet and are among its children
	for _, c := range latticeCentroids(1, 8) {
		up := c.Promote()
		assert.Equal(t, uint16(2), up.Size())
		for _, n := range c.NodeLoci() {
			assert.True(t, InsideTetLocus(up, n))
		}
		assert.Contains(t, up.Subdivide(), c)
	}
	assert.Panics(t, func() { Centroid{1, 2, 0}.Subdivide() })
}

func TestUnitCubeCentroids(t *testing.T) {
	assert.Equal(t, [6]Centroid{{1, 2, 0}, {1, 0, 2}, {0, 1, 2}, {2, 1, 0}, {2, 0, 1}, {0, 2, 1}},
		UnitCubeCentroids([3]int{0, 0, 0}))
	loci := UnitCubeCentroidLoci([3]int{0, 0, 0})
	assert.Equal(t, GridLocus{.5, 1, 0}, loci[0])

	// Four diagonal patterns over the eight parity classes
	patterns := make(map[[6]Centroid]bool)
	for i := 0; i < 8; i++ {
		corner := [3]int{i & 1, (i >> 1) & 1, (i >> 2) & 1}
		var rel [6]Centroid
		for j, c := range UnitCubeCentroids(corner) {
			for k := 0; k < 3; k++ {
				rel[j][k] = c[k] - uint16(2*corner[k])
			}
		}
		patterns[rel] = true
	}
	assert.Equal(t, 4, len(patterns))

	// Every interior point is claimed by exactly one of the six
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5000; trial++ {
		corner := [3]int{r.Intn(6), r.Intn(6), r.Intn(6)}
		var p GridLocus
		for i := range p {
			p[i] = float64(corner[i]) + r.Float64()
		}
		var nIn int
		for _, c := range UnitCubeCentroids(corner) {
			if InsideTet(c, p) {
				nIn++
			}
		}
		require.Equal(t, 1, nIn, "point %v in cube %v", p, corner)
	}
}

func TestLowestContaining(t *testing.T) {
	// The largest offset axis sets the split: the +x node of the cube
	c, ok := LowestContaining(GridLocus{.9, .1, .1})
	require.True(t, ok)
	assert.Equal(t, Centroid{2, 1, 0}, c)
	assert.Contains(t, c.NodeLoci(), Locus{2, 0, 0})
	assert.True(t, InsideTet(c, GridLocus{.9, .1, .1}))

	// Dyadic offsets hit faces, edges and corners exactly, the chosen tet
	// must still contain the point and belong to the floor cube
	r := rand.New(rand.NewSource(2))
	denoms := []int{2, 4, 8, 16, 1024}
	for trial := 0; trial < 20000; trial++ {
		var (
			p      GridLocus
			corner [3]int
			den    = denoms[r.Intn(len(denoms))]
		)
		for i := range p {
			corner[i] = 1 + r.Intn(6)
			p[i] = float64(corner[i]) + float64(r.Intn(den))/float64(den)
		}
		c, ok = LowestContaining(p)
		require.True(t, ok)
		require.True(t, InsideTet(c, p), "point %v resolved to %v", p, c)
		assert.Contains(t, UnitCubeCentroids(corner), c)
	}

	_, ok = LowestContaining(GridLocus{-.5, 1, 1})
	assert.False(t, ok)
}

func TestInsideTetOnFaces(t *testing.T) {
	// Offsets that are not exact binary fractions, placed on the internal
	// split planes and the cube walls
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20000; trial++ {
		var (
			corner = [3]int{1 + r.Intn(6), 1 + r.Intn(6), 1 + r.Intn(6)}
			d      = [3]float64{r.Float64(), r.Float64(), r.Float64()}
			ax     = r.Perm(3)
			a, b   = ax[0], ax[1]
			p      GridLocus
		)
		switch trial % 4 {
		case 0:
			d[b] = d[a]
		case 1:
			d[b] = 1 - d[a]
		case 2:
			d[a] = 0
		default:
			d[a] = float64(r.Intn(3)) / 3
			d[b] = d[a]
		}
		for i := range p {
			p[i] = float64(corner[i]) + d[i]
		}
		var nIn int
		for _, c := range UnitCubeCentroids(corner) {
			if InsideTet(c, p) {
				nIn++
			}
		}
		require.NotZero(t, nIn, "point %v in cube %v claimed by none", p, corner)
		c, ok := LowestContaining(p)
		require.True(t, ok)
		require.True(t, InsideTet(c, p), "point %v resolved to %v", p, c)
	}
}

func TestFaceAdjacentMicrotet(t *testing.T) {
	var nBoundary int
	for _, c := range latticeCentroids(1, 6) {
		for face := 0; face < 4; face++ {
			adj, adjFace := c.FaceAdjacentMicrotet(face)
			if !adj.IsValid() {
				assert.Equal(t, NoFace, adjFace)
				nBoundary++
				continue
			}
			assert.True(t, adj.IsMicro())
			assert.Equal(t, faceLoci(c, face), faceLoci(adj, adjFace), "%v face %d", c, face)
			back, backFace := adj.FaceAdjacentMicrotet(adjFace)
			assert.Equal(t, c, back)
			assert.Equal(t, face, backFace)
		}
	}
	assert.Greater(t, nBoundary, 0)
	assert.Panics(t, func() { Centroid{2, 4, 0}.FaceAdjacentMicrotet(0) })
	assert.Panics(t, func() { Centroid{1, 2, 0}.FaceAdjacentMicrotet(4) })
}

func TestFaceAdjacentCentroid(t *testing.T) {
	for _, size := range []uint16{1, 2, 4, 8} {
		all := make(map[Centroid]bool)
		for _, c := range latticeCentroids(size, 6) {
			all[c] = true
		}
		for _, c := range latticeCentroids(size, 4) {
			for face := 0; face < 4; face++ {
				adj, adjFace := c.FaceAdjacentCentroid(face)
				if !adj.IsValid() {
					// Only octant boundary faces lack a neighbor
					fl := faceLoci(c, face)
					for cc := range all {
						if cc == c {
							continue
						}
						for f := 0; f < 4; f++ {
							require.NotEqual(t, fl, faceLoci(cc, f), "%v face %d has neighbor %v", c, face, cc)
						}
					}
					continue
				}
				require.Equal(t, size, adj.Size())
				require.Equal(t, faceLoci(c, face), faceLoci(adj, adjFace), "size %d %v face %d", size, c, face)
				back, backFace := adj.FaceAdjacentCentroid(adjFace)
				assert.Equal(t, c, back)
				assert.Equal(t, face, backFace)
				if size == 1 {
					m, mf := c.FaceAdjacentMicrotet(face)
					assert.Equal(t, m, adj)
					assert.Equal(t, mf, adjFace)
				}
			}
		}
	}
}

func TestNodeMicroCentroids(t *testing.T) {
	for _, node := range []Locus{{4, 4, 4}, {3, 5, 3}} {
		cs := NodeMicroCentroids(node)
		seen := make(map[Centroid]bool)
		for _, c := range cs {
			require.True(t, c.IsValid())
			assert.True(t, c.IsMicro())
			assert.Contains(t, c.NodeLoci(), node)
			seen[c] = true
		}
		assert.Equal(t, 24, len(seen))
	}
	// A node on the octant corner loses the tets below it
	var nInvalid int
	for _, c := range NodeMicroCentroids(Locus{0, 0, 0}) {
		if !c.IsValid() {
			nInvalid++
			continue
		}
		assert.Contains(t, c.NodeLoci(), Locus{0, 0, 0})
	}
	assert.Greater(t, nInvalid, 0)
}

func TestEdgeFaces(t *testing.T) {
	for e, ev := range EdgeVertices {
		for _, f := range EdgeFaces(e) {
			fv := FaceVertices(f)
			assert.Contains(t, fv, ev[0])
			assert.Contains(t, fv, ev[1])
		}
	}
	// faces omitting node positions 2 and 3
	assert.Equal(t, [2]int{3, 0}, FacesContaining(0, 1))
}
