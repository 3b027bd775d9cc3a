package centroid

import "fmt"

// FaceAdjacentMicrotet returns the microtet across face of c and the face
// index of the shared face on that neighbor. Faces reaching outside the lattice
// octant return (Invalid, NoFace).
func (c Centroid) FaceAdjacentMicrotet(face int) (adj Centroid, adjFace int) {
	checkFace(face)
	ha := c.mustBeMicro("FaceAdjacentMicrotet")
	adj = c
	aha := (ha + 1) % 3
	if ((uint32(c[ha])+uint32(c[aha]))>>1)&1 != 0 {
		if face < 1 || face > 2 {
			if adj[ha] < 1 {
				return Invalid, NoFace
			}
			adj[ha]--
			aha = (ha + 2) % 3
			if face < 1 {
				adj[aha]++
				return adj, 1
			}
			if adj[aha] < 1 {
				return Invalid, NoFace
			}
			adj[aha]--
			return adj, 1
		}
		adj[ha]++
		if face < 2 {
			adj[aha]++
			return adj, 3
		}
		if adj[aha] < 1 {
			return Invalid, NoFace
		}
		adj[aha]--
		return adj, 0
	}
	if face < 1 || face > 2 {
		adj[ha]++
		aha = (ha + 2) % 3
		if face > 2 {
			adj[aha]++
			return adj, 2
		}
		if adj[aha] < 1 {
			return Invalid, NoFace
		}
		adj[aha]--
		return adj, 2
	}
	if adj[ha] < 1 {
		return Invalid, NoFace
	}
	adj[ha]--
	if face < 2 {
		adj[aha]++
		return adj, 0
	}
	if adj[aha] < 1 {
		return Invalid, NoFace
	}
	adj[aha]--
	return adj, 3
}

// FaceAdjacentCentroid is FaceAdjacentMicrotet for a tet of any size. The
// neighbor has the same size as c.
func (c Centroid) FaceAdjacentCentroid(face int) (adj Centroid, adjFace int) {
	checkFace(face)
	ha, size := c.Decode()
	var (
		s2   = size << 1
		odd  = func(aha int) bool { return ((uint32(c[ha])+uint32(c[aha]))>>1)&uint32(size) != 0 }
		aha  int
		down = func() bool {
			if adj[aha] < s2 {
				return false
			}
			adj[aha] -= s2
			return true
		}
	)
	adj = c
	adj[ha] -= size
	if face < 1 || face > 2 {
		aha = (ha + 2) % 3
		adj[aha] += size
		if odd(aha) {
			adj[ha] += s2
			if face < 1 && !down() {
				return Invalid, NoFace
			}
			return adj, 2
		}
		if face > 2 && !down() {
			return Invalid, NoFace
		}
		return adj, 1
	}
	aha = (ha + 1) % 3
	adj[aha] += size
	if face > 1 && !down() {
		return Invalid, NoFace
	}
	if odd(aha) {
		adj[ha] += s2
		if face > 1 {
			return adj, 0
		}
		return adj, 3
	}
	if face > 1 {
		return adj, 3
	}
	return adj, 0
}

// NodeMicroCentroids returns the 24 microtets having node as one of their
// nodes, four around each of the six lattice directions leaving the node.
// Tets outside the lattice octant are returned as Invalid.
func NodeMicroCentroids(node Locus) (cs [24]Centroid) {
	var n int
	for dim := 0; dim < 3; dim++ {
		for _, pos := range [2]int32{-1, 1} {
			tc := node
			tc[dim] += pos
			for i := 0; i < 4; i++ {
				var doubled [3]int32
				for j := range doubled {
					doubled[j] = tc[j] << 1
				}
				hc := ((i >> 1) + 1 + dim) % 3
				if i&1 == 1 {
					doubled[hc]++
				} else {
					doubled[hc]--
				}
				cs[n] = fromDoubled(doubled)
				n++
			}
		}
	}
	return
}

func fromDoubled(d [3]int32) Centroid {
	for _, v := range d {
		if v < 0 || v >= 0xFFFF {
			return Invalid
		}
	}
	return Centroid{uint16(d[0]), uint16(d[1]), uint16(d[2])}
}

// EdgeFaces returns the two faces of a tet that contain edge (0-5)
func EdgeFaces(edge int) (faces [2]int) {
	if edge < 0 || edge > 5 {
		panic(fmt.Errorf("edge index %d out of range [0,5]", edge))
	}
	return FacesContaining(EdgeVertices[edge][0], EdgeVertices[edge][1])
}

// FacesContaining returns the two faces holding both node positions i and j
func FacesContaining(i, j int) (faces [2]int) {
	var n int
	for k := 0; k < 4; k++ {
		if k == i || k == j {
			continue
		}
		// face (k+1)&3 omits node position k
		faces[n] = (k + 1) & 3
		n++
	}
	return
}
