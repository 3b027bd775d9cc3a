package lattice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
)

var testMinCorner = r3.Vec{X: -1, Y: 2, Z: .5}

func newTestLattice(maxLevels int) *Lattice {
	return NewLattice(Config{
		UnitSpacing:          .5,
		MinCorner:            testMinCorner,
		MaxSubdivisionLevels: maxLevels,
	})
}

// newBoxLattice fills the unit cubes with minimum corner in [0,n)^3
func newBoxLattice(n int) *Lattice {
	lt := newTestLattice(0)
	NewBuilder(lt).FillBox([3]int{0, 0, 0}, [3]int{n, n, n})
	return lt
}

func randomWeights(r *rand.Rand) (w Barycentric) {
	for {
		for i := range w {
			w[i] = r.Float64()
		}
		if w[0]+w[1]+w[2] <= 1 {
			return
		}
	}
}

// embed anchors surface vertex v at lattice point p
func embed(t *testing.T, lt *Lattice, v int, p centroid.GridLocus) {
	tet, _, err := lt.LocateGridLocus(p)
	require.NoError(t, err)
	lt.SetVertexEmbedding(v, tet, lt.TetBarycentric(tet, p))
}

func TestLatticeStore(t *testing.T) {
	lt := newTestLattice(0)
	assert.Equal(t, DefaultMaxSubdivisionLevels, lt.MaxSubdivisionLevels())
	assert.Equal(t, SubdivisionLevelLimit, newTestLattice(SubdivisionLevelLimit).MaxSubdivisionLevels())
	assert.Panics(t, func() { newTestLattice(SubdivisionLevelLimit + 1) })
	b := NewBuilder(lt)
	c := centroid.Centroid{1, 2, 0}
	tet := b.AddCentroid(c)
	assert.Equal(t, 0, tet)
	assert.Equal(t, 4, lt.NumNodes())
	// Builder adds a centroid once
	assert.Equal(t, tet, b.AddCentroid(c))
	assert.Equal(t, []int{0}, lt.CentroidTets(c))

	// A virtual noded copy over fresh nodes
	var nodes [4]int
	for i, l := range c.NodeLoci() {
		nodes[i] = lt.AddNode(l)
	}
	dup := lt.AddTet(c, nodes)
	assert.Equal(t, []int{tet, dup}, lt.CentroidTets(c))
	assert.Equal(t, 8, lt.NumNodes())
	assert.Equal(t, 1, lt.NumCentroids())
	assert.False(t, lt.sharesNode(tet, dup))

	// Node positions must match the centroid
	assert.Panics(t, func() { lt.AddTet(centroid.Centroid{1, 0, 2}, nodes) })
	// Macrotets are unique
	mc := centroid.Centroid{2, 4, 0}
	b.AddCentroid(mc)
	var mnodes [4]int
	for i, l := range mc.NodeLoci() {
		mnodes[i] = lt.AddNode(l)
	}
	assert.Panics(t, func() { lt.AddTet(mc, mnodes) })

	lt.Clear()
	assert.Equal(t, 0, lt.NumTets())
	assert.Equal(t, 0, lt.NumNodes())
	assert.False(t, lt.Populated(c))
	assert.Equal(t, -1, lt.VertexTet(0))
}

func TestTransform(t *testing.T) {
	lt := newTestLattice(0)
	tr := lt.Transform()
	g := centroid.GridLocus{1, 2, 3}
	m := lt.LatticeToMaterial(g)
	assert.InDelta(t, -.5, m.X, 1.e-14)
	assert.InDelta(t, 3., m.Y, 1.e-14)
	assert.InDelta(t, 2., m.Z, 1.e-14)
	back := tr.ToLattice(m)
	assert.InDeltaSlice(t, g[:], back[:], 1.e-14)
	assert.Equal(t, g, lt.MaterialToLattice(m))
	assert.Panics(t, func() { NewTransform(0, r3.Vec{}) })

	lt = newBoxLattice(2)
	box := lt.Bounds()
	assert.True(t, box.Min.X < box.Max.X)
	// Micro tets reach one unit below the octant
	assert.InDelta(t, testMinCorner.X-.5, box.Min.X, 1.e-14)
}

func TestNodeSpatialVector(t *testing.T) {
	lt := newBoxLattice(2)
	// Filling before a buffer is assigned is misuse
	assert.Panics(t, func() { lt.MaterialCoordsToNodeSpatialVector() })
	lt.SetNodeSpatialCoords(make([]r3.Vec, lt.NumNodes()-1))
	assert.Panics(t, func() { lt.MaterialCoordsToNodeSpatialVector() })

	buf := make([]r3.Vec, lt.NumNodes())
	lt.SetNodeSpatialCoords(buf)
	lt.MaterialCoordsToNodeSpatialVector()
	for n := 0; n < lt.NumNodes(); n++ {
		assert.Equal(t, lt.NodeMaterialCoordinate(n), buf[n])
	}
}

func TestBarycentricRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	check := func(lt *Lattice) {
		for tet := 0; tet < lt.NumTets(); tet++ {
			c := lt.TetCentroid(tet)
			for trial := 0; trial < 4; trial++ {
				w := randomWeights(r)
				p := lt.BarycentricToLattice(tet, w)
				assert.InDeltaSlice(t, p[:], func() []float64 {
					q := CentroidBarycentricToLattice(c, w)
					return q[:]
				}(), 1.e-12)
				back, err := lt.LatticeToBarycentric(p, c)
				require.NoError(t, err)
				require.InDeltaSlice(t, w[:], back[:], 1.e-9, "tet %d centroid %v", tet, c)
				tb := lt.TetBarycentric(tet, p)
				assert.InDeltaSlice(t, w[:], tb[:], 1.e-9)
			}
			// Nodes map to the unit weights
			for i, n := range lt.TetNodes(tet) {
				w, err := lt.LatticeToBarycentric(lt.NodeLocus(n).GridLocus(), c)
				require.NoError(t, err)
				full := w.Full()
				for j := range full {
					expected := 0.
					if i == j {
						expected = 1
					}
					assert.InDelta(t, expected, full[j], 1.e-12)
				}
			}
		}
	}
	check(newBoxLattice(3))
	for _, size := range []uint16{2, 4} {
		lt := newTestLattice(0)
		NewBuilder(lt).FillMacro(size, [3]int{0, 0, 0}, [3]int{2, 2, 2})
		check(lt)
	}

	// Macrotets are solved against the stored tet
	lt := newTestLattice(0)
	_, err := lt.LatticeToBarycentric(centroid.GridLocus{1, 1, 1}, centroid.Centroid{2, 4, 0})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVertexEmbedding(t *testing.T) {
	lt := newBoxLattice(3)
	p := centroid.GridLocus{2.3, 1.7, 2.2}
	embed(t, lt, 5, p)
	assert.Equal(t, 6, lt.NumVertices())
	assert.Equal(t, -1, lt.VertexTet(2))
	tet := lt.VertexTet(5)
	require.GreaterOrEqual(t, tet, 0)
	assert.True(t, centroid.InsideTet(lt.TetCentroid(tet), p))
	vp := lt.VertexGridLocus(5)
	assert.InDeltaSlice(t, p[:], vp[:], 1.e-12)
	m := lt.VertexMaterialCoordinate(5)
	assert.InDelta(t, 0., r3.Norm(r3.Sub(m, lt.LatticeToMaterial(p))), 1.e-12)
	assert.Equal(t, lt.BarycentricToMaterial(tet, lt.VertexWeights(5)), m)
	assert.Panics(t, func() { lt.VertexGridLocus(2) })
	assert.Panics(t, func() { lt.SetVertexEmbedding(0, lt.NumTets(), Barycentric{}) })
}
