package lattice

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
	"github.com/notargets/vnlattice/utils"
)

// Barycentric holds the weights of tet nodes 1, 2 and 3, node 0 carries
// 1 - sum of the three.
type Barycentric [3]float64

// Full returns the weights of all four tet nodes
func (w Barycentric) Full() [4]float64 {
	return [4]float64{1 - w[0] - w[1] - w[2], w[0], w[1], w[2]}
}

// microInverse maps an offset within a microtet to barycentric weights, one per
// half axis for the two parity classes of the tet position.
var microInverse = [6]*mat.Dense{
	mat.NewDense(3, 3, []float64{-.5, .5, 0, .5, 0, .5, .5, 0, -.5}),
	mat.NewDense(3, 3, []float64{0, -.5, .5, .5, .5, 0, -.5, .5, 0}),
	mat.NewDense(3, 3, []float64{.5, 0, -.5, 0, .5, .5, 0, -.5, .5}),
	mat.NewDense(3, 3, []float64{.5, .5, 0, -.5, 0, -.5, -.5, 0, .5}),
	mat.NewDense(3, 3, []float64{0, .5, .5, -.5, -.5, 0, .5, -.5, 0}),
	mat.NewDense(3, 3, []float64{.5, 0, .5, 0, -.5, -.5, 0, .5, -.5}),
}

func affine(loci [4]centroid.GridLocus, w Barycentric) (p centroid.GridLocus) {
	full := w.Full()
	for i := range p {
		for j, l := range loci {
			p[i] += full[j] * l[i]
		}
	}
	return
}

// BarycentricToLattice returns the lattice point at weights w within tet
func (lt *Lattice) BarycentricToLattice(tet int, w Barycentric) centroid.GridLocus {
	return affine(lt.tetLoci(tet), w)
}

// CentroidBarycentricToLattice is BarycentricToLattice for the tet shape of
// centroid c, the tet need not be stored
func CentroidBarycentricToLattice(c centroid.Centroid, w Barycentric) centroid.GridLocus {
	var loci [4]centroid.GridLocus
	for i, l := range c.NodeLoci() {
		loci[i] = l.GridLocus()
	}
	return affine(loci, w)
}

// LatticeToBarycentric returns the weights of lattice point p in the tet of
// centroid c. Microtets use a constant inverse for their shape, macrotets
// solve against the edge vectors of the stored tet.
func (lt *Lattice) LatticeToBarycentric(p centroid.GridLocus, c centroid.Centroid) (w Barycentric, err error) {
	hc, size := c.Decode()
	if size == 1 {
		return microBarycentric(p, c, hc), nil
	}
	tets := lt.tetHash[c]
	if len(tets) == 0 {
		err = fmt.Errorf("macrotet %v is not populated: %w", c, ErrNotFound)
		return
	}
	return lt.solveBarycentric(lt.tetLoci(tets[0]), p), nil
}

func microBarycentric(p centroid.GridLocus, c centroid.Centroid, hc int) (w Barycentric) {
	var (
		xyz = [3]float64{float64(c[0] >> 1), float64(c[1] >> 1), float64(c[2] >> 1)}
		c1  = (hc + 1) % 3
		k   = hc
		b   = mat.NewVecDense(3, nil)
		wv  mat.VecDense
	)
	for i := range xyz {
		b.SetVec(i, p[i]-xyz[i])
	}
	if ((c[hc]>>1)+(c[c1]>>1))&1 == 0 {
		k = hc + 3
		b.SetVec(hc, b.AtVec(hc)-1)
	}
	b.SetVec(c1, b.AtVec(c1)+1)
	wv.MulVec(microInverse[k], b)
	for i := range w {
		w[i] = wv.AtVec(i)
	}
	return
}

func (lt *Lattice) solveBarycentric(loci [4]centroid.GridLocus, p centroid.GridLocus) (w Barycentric) {
	var (
		A   [3][3]float64
		rhs [3]float64
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = loci[j+1][i] - loci[0][i]
		}
		rhs[i] = p[i] - loci[0][i]
	}
	x, cond, err := utils.RobustSolve3(A, rhs)
	if err != nil {
		lt.log.Warn("barycentric solve", zap.Float64("condition", cond), zap.Error(err),
			zap.Float64s("locus", p[:]))
	}
	return Barycentric(x)
}

// TetBarycentric returns the weights of p within a stored tet
func (lt *Lattice) TetBarycentric(tet int, p centroid.GridLocus) Barycentric {
	c := lt.tetCentroids[tet]
	if hc, size := c.Decode(); size == 1 {
		return microBarycentric(p, c, hc)
	}
	return lt.solveBarycentric(lt.tetLoci(tet), p)
}

// VertexGridLocus is the lattice position of embedded surface vertex v
func (lt *Lattice) VertexGridLocus(v int) centroid.GridLocus {
	return lt.BarycentricToLattice(lt.mustVertexTet(v), lt.vertexWeights[v])
}

func (lt *Lattice) VertexMaterialCoordinate(v int) r3.Vec {
	return lt.xform.ToMaterial(lt.VertexGridLocus(v))
}

func (lt *Lattice) LatticeToMaterial(g centroid.GridLocus) r3.Vec {
	return lt.xform.ToMaterial(g)
}

func (lt *Lattice) MaterialToLattice(m r3.Vec) centroid.GridLocus {
	return lt.xform.ToLattice(m)
}

// BarycentricToMaterial is the material position of weights w in tet
func (lt *Lattice) BarycentricToMaterial(tet int, w Barycentric) r3.Vec {
	return lt.xform.ToMaterial(lt.BarycentricToLattice(tet, w))
}
