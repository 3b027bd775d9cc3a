package lattice

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
)

// Surface is the embedding mesh as seen by point location
type Surface interface {
	TriangleVertices(tri int) [3]int
	// TriangleMaterial reports whether the triangle still maps to solid
	TriangleMaterial(tri int) bool
	VertexMaterial(v int) bool
}

// Anchor is a tet and the barycentric weights of a point within it
type Anchor struct {
	Tet     int
	Weights Barycentric
}

// populatedCentroid returns the finest populated centroid containing p and the
// number of promotions needed to reach it. Sizes up to 2^(maxLevels-1) are
// searched.
func (lt *Lattice) populatedCentroid(p centroid.GridLocus) (c centroid.Centroid, promotions int, err error) {
	var ok bool
	if c, ok = centroid.LowestContaining(p); !ok {
		err = fmt.Errorf("grid locus %v is outside the lattice octant: %w", p, ErrNotFound)
		return
	}
	for ; promotions < lt.maxLevels; promotions++ {
		if lt.Populated(c) {
			return
		}
		if promotions+1 < lt.maxLevels {
			c = c.Promote()
		}
	}
	err = fmt.Errorf("no populated tet contains %v within %d levels: %w", p, lt.maxLevels, ErrDiverged)
	return centroid.Invalid, lt.maxLevels, err
}

// LocateGridLocus returns the tet containing lattice point p and the number of
// promotions above the finest level it took. Virtual noded microtets at p
// return ErrBlocked, they need surface context to tell apart.
func (lt *Lattice) LocateGridLocus(p centroid.GridLocus) (tet, promotions int, err error) {
	var c centroid.Centroid
	if c, promotions, err = lt.populatedCentroid(p); err != nil {
		return -1, promotions, err
	}
	tets := lt.tetHash[c]
	if len(tets) > 1 {
		return -1, promotions, fmt.Errorf("%d virtual noded tets at %v: %w", len(tets), c, ErrBlocked)
	}
	return tets[0], promotions, nil
}

// LocateMaterialPoint is LocateGridLocus for a material position, returning the
// anchor of the point
func (lt *Lattice) LocateMaterialPoint(m r3.Vec) (a Anchor, err error) {
	p := lt.xform.ToLattice(m)
	if a.Tet, _, err = lt.LocateGridLocus(p); err != nil {
		return
	}
	a.Weights = lt.TetBarycentric(a.Tet, p)
	return
}

// ParametricTriangleTet returns the tet containing the point at uv on triangle
// tri and its lattice position. uv weights triangle vertices 1 and 2.
func (lt *Lattice) ParametricTriangleTet(surf Surface, tri int, uv [2]float64) (tet int, p centroid.GridLocus, err error) {
	if !surf.TriangleMaterial(tri) {
		return -1, p, fmt.Errorf("triangle %d: %w", tri, ErrNoMaterial)
	}
	verts := surf.TriangleVertices(tri)
	var loci [3]centroid.GridLocus
	for i, v := range verts {
		loci[i] = lt.VertexGridLocus(v)
	}
	for i := range p {
		p[i] = loci[0][i]*(1-uv[0]-uv[1]) + loci[1][i]*uv[0] + loci[2][i]*uv[1]
	}
	tet, err = lt.resolveSurfacePoint(verts[:], p)
	if err != nil {
		err = fmt.Errorf("triangle %d at %v: %w", tri, uv, err)
	}
	return
}

// ParametricEdgeTet returns the tet containing the point at parameter t along
// the surface edge v0-v1
func (lt *Lattice) ParametricEdgeTet(surf Surface, v0, v1 int, t float64) (tet int, p centroid.GridLocus, err error) {
	if !surf.VertexMaterial(v0) || !surf.VertexMaterial(v1) {
		return -1, p, fmt.Errorf("edge %d-%d: %w", v0, v1, ErrNoMaterial)
	}
	p = lt.VertexGridLocus(v0).Lerp(lt.VertexGridLocus(v1), t)
	tet, err = lt.resolveSurfacePoint([]int{v0, v1}, p)
	if err != nil {
		err = fmt.Errorf("edge %d-%d at %g: %w", v0, v1, t, err)
	}
	return
}

// TriangleAnchor returns the tet and weights anchoring the uv point of tri
func (lt *Lattice) TriangleAnchor(surf Surface, tri int, uv [2]float64) (a Anchor, err error) {
	var p centroid.GridLocus
	if a.Tet, p, err = lt.ParametricTriangleTet(surf, tri, uv); err != nil {
		return Anchor{Tet: -1}, err
	}
	a.Weights = lt.TetBarycentric(a.Tet, p)
	return
}

/*
resolveSurfacePoint finds the tet holding p, a point on the surface primitive
with vertices verts. Virtual noded microtets at p are told apart by, in order:

	a vertex of the primitive already embedded in one of them
	a single candidate sharing a node with a vertex tet
	a solid path from a vertex to p ending in one of them
*/
func (lt *Lattice) resolveSurfacePoint(verts []int, p centroid.GridLocus) (tet int, err error) {
	var (
		c          centroid.Centroid
		promotions int
	)
	if c, promotions, err = lt.populatedCentroid(p); err != nil {
		return -1, err
	}
	if promotions > 0 {
		lt.log.Debug("surface point promoted", zap.Int("promotions", promotions),
			zap.Stringer("centroid", c))
	}
	tets := lt.tetHash[c]
	if len(tets) == 1 {
		return tets[0], nil
	}
	for _, v := range verts {
		if vt := lt.VertexTet(v); slices.Contains(tets, vt) {
			return vt, nil
		}
	}
	var sharing []int
	for _, cand := range tets {
		for _, v := range verts {
			if vt := lt.VertexTet(v); vt >= 0 && lt.sharesNode(cand, vt) {
				sharing = append(sharing, cand)
				break
			}
		}
	}
	if len(sharing) == 1 {
		return sharing[0], nil
	}
	var (
		target  = lt.xform.ToMaterial(p)
		blocked bool
	)
	for _, v := range verts {
		if lt.VertexTet(v) < 0 {
			continue
		}
		end, perr := lt.SolidLinePath(v, target)
		switch {
		case perr == nil:
			if slices.Contains(tets, end) {
				return end, nil
			}
		case errors.Is(perr, ErrDiverged):
			return -1, perr
		case errors.Is(perr, ErrBlocked):
			blocked = true
		}
	}
	if blocked {
		lt.log.Warn("surface point blocked", zap.Stringer("centroid", c), zap.Int("candidates", len(tets)))
		return -1, fmt.Errorf("%d virtual noded tets at %v: %w", len(tets), c, ErrBlocked)
	}
	return -1, fmt.Errorf("no solid path reaches any of %d tets at %v: %w", len(tets), c, ErrNotFound)
}
