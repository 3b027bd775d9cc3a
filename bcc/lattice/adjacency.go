package lattice

import (
	"fmt"

	"github.com/notargets/vnlattice/bcc/centroid"
)

// edgeRingLimit bounds the walk around an edge, interior edges are shared by
// at most 6 microtets
const edgeRingLimit = 16

func (lt *Lattice) faceNodes(tet, face int) (nodes [3]int) {
	for i, v := range centroid.FaceVertices(face) {
		nodes[i] = lt.tetNodes[tet][v]
	}
	return
}

/*
FaceAdjacentMicrotets returns the tets across face of microtet tet and the
face index they share it on. Of the tets at the neighboring centroid only those
holding all three face nodes qualify, a virtual noded copy on the other side of
a cut shares none of them. An empty result with a valid adjFace means the
neighbor cell exists but is disconnected or unpopulated, adjFace NoFace means
the face is on the lattice boundary.
*/
func (lt *Lattice) FaceAdjacentMicrotets(tet, face int) (tets []int, adjFace int) {
	c := lt.tetCentroids[tet]
	adj, adjFace := c.FaceAdjacentMicrotet(face)
	if !adj.IsValid() {
		return nil, centroid.NoFace
	}
	fn := lt.faceNodes(tet, face)
	for _, cand := range lt.tetHash[adj] {
		if sameFace(fn, lt.faceNodes(cand, adjFace)) {
			tets = append(tets, cand)
		}
	}
	return
}

func sameFace(a, b [3]int) bool {
	for _, n := range b {
		if n != a[0] && n != a[1] && n != a[2] {
			return false
		}
	}
	return true
}

// EdgeNodes returns the node indices of edge 0-5 of tet, edges are ordered
// 0-1, 0-2, 0-3, 1-2, 1-3, 2-3 by tet node position
func (lt *Lattice) EdgeNodes(tet, edge int) (n0, n1 int) {
	if edge < 0 || edge > 5 {
		panic(fmt.Errorf("edge index %d out of range [0,5]", edge))
	}
	ev := centroid.EdgeVertices[edge]
	return lt.tetNodes[tet][ev[0]], lt.tetNodes[tet][ev[1]]
}

func nodePosition(nodes [4]int, n int) int {
	for i, m := range nodes {
		if m == n {
			return i
		}
	}
	return -1
}

/*
EdgeAdjacentMicrotets returns every microtet sharing edge of tet, tet first.
The ring of tets around the edge is walked through face adjacency starting from
each of the two faces holding the edge, stopping when the ring closes or meets
the boundary or a cut. More than one candidate across a face returns
ErrBlocked.
*/
func (lt *Lattice) EdgeAdjacentMicrotets(tet, edge int) (tets []int, err error) {
	if !lt.tetCentroids[tet].IsMicro() {
		panic(fmt.Errorf("EdgeAdjacentMicrotets requires a microtet, tet %d is %v", tet, lt.tetCentroids[tet]))
	}
	n0, n1 := lt.EdgeNodes(tet, edge)
	tets = append(tets, tet)
	for _, start := range centroid.EdgeFaces(edge) {
		var (
			cur    = tet
			face   = start
			closed bool
		)
		for step := 0; ; step++ {
			if step == edgeRingLimit {
				err = fmt.Errorf("edge %d-%d ring exceeds %d tets: %w", n0, n1, edgeRingLimit, ErrDiverged)
				return
			}
			adj, adjFace := lt.FaceAdjacentMicrotets(cur, face)
			if len(adj) == 0 {
				break
			}
			if len(adj) > 1 {
				err = fmt.Errorf("tet %d face %d has %d face neighbors: %w", cur, face, len(adj), ErrBlocked)
				return
			}
			next := adj[0]
			if next == tet {
				closed = true
				break
			}
			tets = append(tets, next)
			var (
				nodes = lt.tetNodes[next]
				faces = centroid.FacesContaining(nodePosition(nodes, n0), nodePosition(nodes, n1))
			)
			face = faces[0]
			if face == adjFace {
				face = faces[1]
			}
			cur = next
		}
		if closed {
			break
		}
	}
	return
}
