package lattice

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
)

const (
	// pathNudge is the lattice distance past an exit face used to find the
	// neighbor across a change of resolution
	pathNudge = 1.e-6
	pathTol   = 1.e-9
)

/*
SolidLinePath walks the straight segment from surface vertex to the material
point target through face adjacent tets, returning the tet containing target.
ErrNotFound means the segment leaves the tessellation or crosses a cut,
ErrBlocked that a crossing reached virtual noded tets it could not tell apart.
*/
func (lt *Lattice) SolidLinePath(vertex int, target r3.Vec) (tet int, err error) {
	var (
		cur     = lt.mustVertexTet(vertex)
		S       = lt.VertexGridLocus(vertex)
		T       = lt.xform.ToLattice(target)
		N       = r3.Sub(T.Vec(), S.Vec())
		length  = r3.Norm(N)
		visited = make(map[int]bool)
	)
	if length == 0 {
		return cur, nil
	}
	dir := r3.Scale(1/length, N)
	for step := 0; step <= len(lt.tetNodes); step++ {
		if visited[cur] {
			lt.log.Warn("solid path revisits tet", zap.Int("vertex", vertex), zap.Int("tet", cur))
			return -1, fmt.Errorf("solid path from vertex %d revisits tet %d: %w", vertex, cur, ErrBlocked)
		}
		visited[cur] = true
		tOut, exit := lt.exitFace(cur, S, T)
		if exit < 0 || tOut > 1 || scalar.EqualWithinAbs(tOut, 1, pathTol) {
			return cur, nil
		}
		if cur, err = lt.crossFace(cur, exit, S.Lerp(T, tOut), dir); err != nil {
			if errors.Is(err, ErrBlocked) {
				lt.log.Warn("solid path blocked", zap.Int("vertex", vertex), zap.Error(err))
			}
			return -1, fmt.Errorf("solid path from vertex %d: %w", vertex, err)
		}
	}
	return -1, fmt.Errorf("solid path from vertex %d exceeds %d tets: %w", vertex, len(lt.tetNodes), ErrDiverged)
}

// exitFace returns the segment parameter and face where the line S-T leaves
// tet, the face opposite the first node whose weight reaches zero
func (lt *Lattice) exitFace(tet int, S, T centroid.GridLocus) (tOut float64, face int) {
	var (
		wS = lt.TetBarycentric(tet, S).Full()
		wT = lt.TetBarycentric(tet, T).Full()
	)
	tOut, face = math.Inf(1), -1
	for i := range wS {
		d := wT[i] - wS[i]
		if d >= 0 {
			continue
		}
		if t := wS[i] / -d; t < tOut {
			// the face omitting node position i
			tOut, face = t, (i+1)&3
		}
	}
	return
}

// crossFace returns the tet across face of cur for a segment crossing at x
// heading along dir
func (lt *Lattice) crossFace(cur, face int, x centroid.GridLocus, dir r3.Vec) (next int, err error) {
	c := lt.tetCentroids[cur]
	if c.IsMicro() {
		adj, _ := c.FaceAdjacentMicrotet(face)
		if !adj.IsValid() {
			return -1, fmt.Errorf("tet %d face %d is on the lattice boundary: %w", cur, face, ErrNotFound)
		}
		if lt.Populated(adj) {
			tets, _ := lt.FaceAdjacentMicrotets(cur, face)
			switch len(tets) {
			case 1:
				return tets[0], nil
			case 0:
				return -1, fmt.Errorf("tet %d face %d is cut from %v: %w", cur, face, adj, ErrNotFound)
			default:
				return -1, fmt.Errorf("tet %d face %d has %d neighbors: %w", cur, face, len(tets), ErrBlocked)
			}
		}
	} else {
		adj, adjFace := c.FaceAdjacentCentroid(face)
		if !adj.IsValid() {
			return -1, fmt.Errorf("tet %d face %d is on the lattice boundary: %w", cur, face, ErrNotFound)
		}
		if tets := lt.tetHash[adj]; len(tets) > 0 {
			if sameFace(lt.faceNodes(cur, face), lt.faceNodes(tets[0], adjFace)) {
				return tets[0], nil
			}
			return -1, fmt.Errorf("tet %d face %d is cut from %v: %w", cur, face, adj, ErrNotFound)
		}
	}
	// The neighbor is at another resolution
	q := centroid.GridLocusFromVec(r3.Add(x.Vec(), r3.Scale(pathNudge, dir)))
	nc, _, err := lt.populatedCentroid(q)
	if err != nil {
		if errors.Is(err, ErrDiverged) {
			return -1, fmt.Errorf("segment leaves the tessellation at %v: %w", x, ErrNotFound)
		}
		return -1, err
	}
	cands := lt.tetHash[nc]
	if len(cands) == 1 {
		return cands[0], nil
	}
	var connected []int
	for _, cand := range cands {
		if lt.sharesNode(cand, cur) {
			connected = append(connected, cand)
		}
	}
	switch len(connected) {
	case 1:
		return connected[0], nil
	case 0:
		return -1, fmt.Errorf("no tet at %v connects to tet %d: %w", nc, cur, ErrNotFound)
	}
	return -1, fmt.Errorf("%d virtual noded tets at %v connect to tet %d: %w", len(connected), nc, cur, ErrBlocked)
}
