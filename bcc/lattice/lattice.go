package lattice

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/vnlattice/bcc/centroid"
)

const (
	DefaultMaxSubdivisionLevels = 8
	// SubdivisionLevelLimit keeps the promotion arithmetic of the largest tets
	// inside 16 bits
	SubdivisionLevelLimit = 14
)

// Config holds the construction time lattice parameters
type Config struct {
	UnitSpacing float64
	MinCorner   r3.Vec
	// MaxSubdivisionLevels bounds every promotion and demotion loop
	MaxSubdivisionLevels int
	Logger               *zap.Logger
}

/*
Lattice is the virtual noded BCC tetrahedral store. Nodes and tets are append
only and addressed by stable indices, tets sharing a centroid are the virtual
noded copies of one lattice cell.

	nodes:        integer lattice position of each node, several nodes may share a position
	tetNodes:     four node indices per tet
	tetCentroids: centroid of each tet, index aligned with tetNodes
	tetHash:      centroid to tet indices
*/
type Lattice struct {
	xform        Transform
	maxLevels    int
	log          *zap.Logger
	nodes        []centroid.Locus
	tetNodes     [][4]int
	tetCentroids []centroid.Centroid
	tetHash      map[centroid.Centroid][]int

	// Surface vertex embeddings
	vertexTets    []int
	vertexWeights []Barycentric

	// Externally owned node material coordinates
	spatialCoords []r3.Vec
}

func NewLattice(cfg Config) *Lattice {
	if cfg.MaxSubdivisionLevels <= 0 {
		cfg.MaxSubdivisionLevels = DefaultMaxSubdivisionLevels
	}
	if cfg.MaxSubdivisionLevels > SubdivisionLevelLimit {
		panic(fmt.Errorf("max subdivision levels %d exceeds the limit of %d", cfg.MaxSubdivisionLevels, SubdivisionLevelLimit))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Lattice{
		xform:     NewTransform(cfg.UnitSpacing, cfg.MinCorner),
		maxLevels: cfg.MaxSubdivisionLevels,
		log:       cfg.Logger,
		tetHash:   make(map[centroid.Centroid][]int),
	}
}

// Clear empties every collection, the transform and limits are kept
func (lt *Lattice) Clear() {
	lt.nodes = nil
	lt.tetNodes = nil
	lt.tetCentroids = nil
	lt.tetHash = make(map[centroid.Centroid][]int)
	lt.vertexTets = nil
	lt.vertexWeights = nil
	lt.spatialCoords = nil
}

func (lt *Lattice) Transform() Transform           { return lt.xform }
func (lt *Lattice) MaxSubdivisionLevels() int      { return lt.maxLevels }
func (lt *Lattice) NumNodes() int                  { return len(lt.nodes) }
func (lt *Lattice) NumTets() int                   { return len(lt.tetNodes) }
func (lt *Lattice) NodeLocus(n int) centroid.Locus { return lt.nodes[n] }
func (lt *Lattice) TetNodes(tet int) [4]int        { return lt.tetNodes[tet] }

func (lt *Lattice) TetCentroid(tet int) centroid.Centroid {
	return lt.tetCentroids[tet]
}

// AddNode appends a node at lattice position l and returns its index
func (lt *Lattice) AddNode(l centroid.Locus) int {
	lt.nodes = append(lt.nodes, l)
	return len(lt.nodes) - 1
}

// AddTet appends a tet of centroid c over nodes. Node positions must match the
// centroid node loci in order. A macrotet centroid may only be added once.
func (lt *Lattice) AddTet(c centroid.Centroid, nodes [4]int) int {
	loci := c.NodeLoci()
	for i, n := range nodes {
		if n < 0 || n >= len(lt.nodes) {
			panic(fmt.Errorf("tet %v references node %d, lattice has %d nodes", c, n, len(lt.nodes)))
		}
		if lt.nodes[n] != loci[i] {
			panic(fmt.Errorf("tet %v node %d at %v, expected %v", c, i, lt.nodes[n], loci[i]))
		}
	}
	if !c.IsMicro() && len(lt.tetHash[c]) > 0 {
		panic(fmt.Errorf("macrotet %v already present as tet %d", c, lt.tetHash[c][0]))
	}
	tet := len(lt.tetNodes)
	lt.tetNodes = append(lt.tetNodes, nodes)
	lt.tetCentroids = append(lt.tetCentroids, c)
	lt.tetHash[c] = append(lt.tetHash[c], tet)
	return tet
}

// CentroidTets returns every tet at centroid c. Only microtets return more
// than one.
func (lt *Lattice) CentroidTets(c centroid.Centroid) []int {
	return lt.tetHash[c]
}

// Populated reports whether any tet occupies centroid c
func (lt *Lattice) Populated(c centroid.Centroid) bool {
	return len(lt.tetHash[c]) > 0
}

func (lt *Lattice) NumCentroids() int {
	return len(lt.tetHash)
}

func (lt *Lattice) tetLoci(tet int) (loci [4]centroid.GridLocus) {
	for i, n := range lt.tetNodes[tet] {
		loci[i] = lt.nodes[n].GridLocus()
	}
	return
}

func (lt *Lattice) sharesNode(t1, t2 int) bool {
	for _, n1 := range lt.tetNodes[t1] {
		for _, n2 := range lt.tetNodes[t2] {
			if n1 == n2 {
				return true
			}
		}
	}
	return false
}

// SetVertexEmbedding anchors surface vertex v in tet with weights
func (lt *Lattice) SetVertexEmbedding(v, tet int, w Barycentric) {
	if tet < 0 || tet >= len(lt.tetNodes) {
		panic(fmt.Errorf("vertex %d embedded in tet %d, lattice has %d tets", v, tet, len(lt.tetNodes)))
	}
	for len(lt.vertexTets) <= v {
		lt.vertexTets = append(lt.vertexTets, -1)
		lt.vertexWeights = append(lt.vertexWeights, Barycentric{})
	}
	lt.vertexTets[v] = tet
	lt.vertexWeights[v] = w
}

func (lt *Lattice) NumVertices() int {
	return len(lt.vertexTets)
}

// VertexTet returns the tet embedding surface vertex v, -1 if v is not embedded
func (lt *Lattice) VertexTet(v int) int {
	if v < 0 || v >= len(lt.vertexTets) {
		return -1
	}
	return lt.vertexTets[v]
}

func (lt *Lattice) VertexWeights(v int) Barycentric {
	return lt.vertexWeights[v]
}

func (lt *Lattice) mustVertexTet(v int) int {
	tet := lt.VertexTet(v)
	if tet < 0 {
		panic(fmt.Errorf("surface vertex %d has no lattice embedding", v))
	}
	return tet
}

// SetNodeSpatialCoords assigns the caller owned buffer filled by
// MaterialCoordsToNodeSpatialVector
func (lt *Lattice) SetNodeSpatialCoords(buf []r3.Vec) {
	lt.spatialCoords = buf
}

// MaterialCoordsToNodeSpatialVector writes the material position of every node
// into the assigned spatial coordinate buffer
func (lt *Lattice) MaterialCoordsToNodeSpatialVector() {
	if lt.spatialCoords == nil {
		panic(fmt.Errorf("node spatial coordinate buffer not assigned"))
	}
	if len(lt.spatialCoords) < len(lt.nodes) {
		panic(fmt.Errorf("node spatial coordinate buffer holds %d nodes, lattice has %d",
			len(lt.spatialCoords), len(lt.nodes)))
	}
	for i, l := range lt.nodes {
		lt.spatialCoords[i] = lt.xform.ToMaterial(l.GridLocus())
	}
}

func (lt *Lattice) NodeMaterialCoordinate(n int) r3.Vec {
	return lt.xform.ToMaterial(lt.nodes[n].GridLocus())
}

// TetMaterialCentroid is the material position of the tet centroid
func (lt *Lattice) TetMaterialCentroid(tet int) r3.Vec {
	return lt.xform.ToMaterial(lt.tetCentroids[tet].GridLocus())
}

// Bounds returns the material box spanned by the lattice nodes
func (lt *Lattice) Bounds() (box r3.Box) {
	if len(lt.nodes) == 0 {
		return
	}
	lo, hi := lt.nodes[0].GridLocus(), lt.nodes[0].GridLocus()
	for _, n := range lt.nodes[1:] {
		g := n.GridLocus()
		for i := range g {
			lo[i] = min(lo[i], g[i])
			hi[i] = max(hi[i], g[i])
		}
	}
	return lt.xform.Bounds(lo, hi)
}
