package tetmesh

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
	"github.com/notargets/vnlattice/bcc/lattice"
	"github.com/notargets/vnlattice/types"
	"github.com/notargets/vnlattice/utils"
)

// Face represents a face of an element
type Face struct {
	Key     types.FaceKey // Sorted node indices
	Element int           // Parent element
	LocalID int           // Local face ID within element
}

// Mesh is a lattice exported as a tetrahedral mesh for a solver
type Mesh struct {
	// Geometry
	Vertices []r3.Vec // Node material coordinates [nvertices]

	// Element data
	EtoV      [][4]int            // Element to vertex connectivity, lattice node order
	Centroids []centroid.Centroid // Lattice cell of each element

	// Connectivity (built during initialization)
	EToE [][4]int // Element to element connectivity, -1 on boundaries and cuts
	EToF [][4]int // Local face index within the neighbor, -1 on boundaries and cuts

	// Face data
	Faces   []Face                // All unique faces in mesh
	FaceMap map[types.FaceKey]int // Map from sorted nodes to face ID

	// Edge data
	Edges   []types.EdgeKey
	EdgeMap map[types.EdgeKey]int

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int
	// Faces claimed by more than two elements, left unconnected past the first pair
	NonManifoldFaces int
}

// FromLattice exports every lattice tet and node, vertex and element indices
// are the lattice node and tet indices
func FromLattice(lt *lattice.Lattice) (m *Mesh) {
	m = &Mesh{
		Vertices:    make([]r3.Vec, lt.NumNodes()),
		EtoV:        make([][4]int, lt.NumTets()),
		Centroids:   make([]centroid.Centroid, lt.NumTets()),
		NumElements: lt.NumTets(),
		NumVertices: lt.NumNodes(),
	}
	for n := range m.Vertices {
		m.Vertices[n] = lt.NodeMaterialCoordinate(n)
	}
	for tet := range m.EtoV {
		m.EtoV[tet] = lt.TetNodes(tet)
		m.Centroids[tet] = lt.TetCentroid(tet)
	}
	m.BuildConnectivity()
	m.BuildEdges()
	return
}

// FaceNodes returns the nodes of local face of elem, face f holds node
// positions f, f+1 and f+2 mod 4
func (m *Mesh) FaceNodes(elem, face int) (nodes [3]int) {
	for i, pos := range centroid.FaceVertices(face) {
		nodes[i] = m.EtoV[elem][pos]
	}
	return
}

// BuildConnectivity builds element-to-element and face connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][4]int, m.NumElements)
	m.EToF = make([][4]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[types.FaceKey]int)
	m.NonManifoldFaces = 0
	// Second element seen on each face
	paired := make(map[int]bool)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		// Initialize to -1 (boundary)
		m.EToE[elemID] = [4]int{-1, -1, -1, -1}
		m.EToF[elemID] = [4]int{-1, -1, -1, -1}

		for localFaceID := 0; localFaceID < 4; localFaceID++ {
			key := types.NewFaceKey(m.FaceNodes(elemID, localFaceID))
			faceID, exists := m.FaceMap[key]
			if !exists {
				m.FaceMap[key] = len(m.Faces)
				m.Faces = append(m.Faces, Face{Key: key, Element: elemID, LocalID: localFaceID})
				continue
			}
			if paired[faceID] {
				// A virtual noded copy over the same nodes
				m.NonManifoldFaces++
				continue
			}
			paired[faceID] = true
			face := m.Faces[faceID]
			m.EToE[elemID][localFaceID] = face.Element
			m.EToF[elemID][localFaceID] = face.LocalID
			m.EToE[face.Element][face.LocalID] = elemID
			m.EToF[face.Element][face.LocalID] = localFaceID
		}
	}
	m.NumFaces = len(m.Faces)
}

// BuildEdges collects the unique element edges in order of first appearance
func (m *Mesh) BuildEdges() {
	m.Edges = m.Edges[:0]
	m.EdgeMap = make(map[types.EdgeKey]int)
	for _, nodes := range m.EtoV {
		for _, ev := range centroid.EdgeVertices {
			ek := types.NewEdgeKey([2]int{nodes[ev[0]], nodes[ev[1]]})
			if _, present := m.EdgeMap[ek]; !present {
				m.EdgeMap[ek] = len(m.Edges)
				m.Edges = append(m.Edges, ek)
			}
		}
	}
}

// BoundaryFaces counts element faces without a neighbor
func (m *Mesh) BoundaryFaces() (n int) {
	for _, nbrs := range m.EToE {
		for _, nbr := range nbrs {
			if nbr < 0 {
				n++
			}
		}
	}
	return
}

// JacobianCondition is the condition number of the edge vectors from vertex 0
// of elem, every BCC tet has the same shape so it flags distorted exports
func (m *Mesh) JacobianCondition(elem int) float64 {
	var (
		nodes = m.EtoV[elem]
		J     = mat.NewDense(3, 3, nil)
	)
	for i := 1; i < 4; i++ {
		e := r3.Sub(m.Vertices[nodes[i]], m.Vertices[nodes[0]])
		J.SetRow(i-1, []float64{e.X, e.Y, e.Z})
	}
	return utils.ConditionNumber(J)
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces)
	fmt.Fprintf(w, "  Edges: %d\n", len(m.Edges))

	// Count elements per subdivision level
	levelCounts := make(map[int]int)
	var maxLevel int
	for _, c := range m.Centroids {
		l := c.Level()
		levelCounts[l]++
		maxLevel = max(maxLevel, l)
	}
	fmt.Fprintf(w, "  Element levels:\n")
	for l := 0; l <= maxLevel; l++ {
		if levelCounts[l] > 0 {
			fmt.Fprintf(w, "    %d: %d\n", l, levelCounts[l])
		}
	}

	var worst float64
	for elem := range m.EtoV {
		worst = max(worst, m.JacobianCondition(elem))
	}
	fmt.Fprintf(w, "  Max Jacobian condition: %.4f\n", worst)

	fmt.Fprintf(w, "  Boundary faces: %d\n", m.BoundaryFaces())
	if m.NonManifoldFaces > 0 {
		fmt.Fprintf(w, "  Non-manifold faces: %d\n", m.NonManifoldFaces)
	}
}
