package topo

// Point is an n-dimensional coordinate. The kernel stores it as given and
// never reads its components.
type Point []float64

// Dim returns the number of components.
func (p Point) Dim() int { return len(p) }

// VertexID is a handle to a vertex of a Body.
type VertexID struct{ handle }

// EdgeID is a handle to an edge of a Body.
type EdgeID struct{ handle }

// HalfEdgeID is a handle to a half-edge (directed edge use) of a Body.
type HalfEdgeID struct{ handle }

// LoopID is a handle to a loop of a Body.
type LoopID struct{ handle }

// FaceID is a handle to a face of a Body.
type FaceID struct{ handle }

func (id VertexID) String() string   { return id.format("vertex") }
func (id EdgeID) String() string     { return id.format("edge") }
func (id HalfEdgeID) String() string { return id.format("halfedge") }
func (id LoopID) String() string     { return id.format("loop") }
func (id FaceID) String() string     { return id.format("face") }

type vertex struct {
	name     string
	coord    Point
	halfEdge HalfEdgeID // a half-edge whose origin is this vertex
}

type halfEdge struct {
	name   string
	origin VertexID
	next   HalfEdgeID
	prev   HalfEdgeID
	edge   EdgeID // zero for a solitary half-edge
	loop   LoopID
}

type edge struct {
	name  string
	plus  HalfEdgeID
	minus HalfEdgeID
}

type loop struct {
	name     string
	face     FaceID
	halfEdge HalfEdgeID // representative member
}

type face struct {
	name    string
	outer   LoopID
	rings   []LoopID
	surface any
}
