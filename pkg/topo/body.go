package topo

import "github.com/samber/lo"

// Body is the owner of every entity of one shell. It is created by MVFS and
// emptied by KVFS.
type Body struct {
	name string
	ids  *IDAllocator

	vertices  arena[vertex]
	edges     arena[edge]
	halfEdges arena[halfEdge]
	loops     arena[loop]
	faces     arena[face]
}

func newBody(ids *IDAllocator) *Body {
	return &Body{name: ids.Allocate(CategoryBody), ids: ids}
}

// Name returns the body's identifier, e.g. "B1".
func (b *Body) Name() string { return b.name }

// Allocator returns the identifier allocator the body was created with.
func (b *Body) Allocator() *IDAllocator { return b.ids }

func (b *Body) NumVertices() int  { return b.vertices.len() }
func (b *Body) NumEdges() int     { return b.edges.len() }
func (b *Body) NumHalfEdges() int { return b.halfEdges.len() }
func (b *Body) NumLoops() int     { return b.loops.len() }
func (b *Body) NumFaces() int     { return b.faces.len() }

// NumRings returns the number of inner loops over all faces.
func (b *Body) NumRings() int {
	n := 0
	for _, h := range b.faces.handles() {
		f, _ := b.faces.get(h)
		n += len(f.rings)
	}
	return n
}

// EulerPoincare returns V - E + F - R. For a single connected shell without
// through-holes it is 2 after every completed operator.
func (b *Body) EulerPoincare() int {
	return b.NumVertices() - b.NumEdges() + b.NumFaces() - b.NumRings()
}

// IsEmpty reports whether the body owns no entities.
func (b *Body) IsEmpty() bool {
	return b.vertices.len() == 0 && b.edges.len() == 0 && b.halfEdges.len() == 0 &&
		b.loops.len() == 0 && b.faces.len() == 0
}

// Vertices lists live vertices in storage order.
func (b *Body) Vertices() []VertexID {
	return lo.Map(b.vertices.handles(), func(h handle, _ int) VertexID { return VertexID{h} })
}

// Edges lists live edges in storage order.
func (b *Body) Edges() []EdgeID {
	return lo.Map(b.edges.handles(), func(h handle, _ int) EdgeID { return EdgeID{h} })
}

// HalfEdges lists live half-edges in storage order.
func (b *Body) HalfEdges() []HalfEdgeID {
	return lo.Map(b.halfEdges.handles(), func(h handle, _ int) HalfEdgeID { return HalfEdgeID{h} })
}

// Loops lists live loops in storage order.
func (b *Body) Loops() []LoopID {
	return lo.Map(b.loops.handles(), func(h handle, _ int) LoopID { return LoopID{h} })
}

// Faces lists live faces in storage order.
func (b *Body) Faces() []FaceID {
	return lo.Map(b.faces.handles(), func(h handle, _ int) FaceID { return FaceID{h} })
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

// VertexName returns the identifier of v, or "" if v is not live.
func (b *Body) VertexName(v VertexID) string {
	if r, ok := b.vertices.get(v.handle); ok {
		return r.name
	}
	return ""
}

// EdgeName returns the identifier of e, or "" if e is not live.
func (b *Body) EdgeName(e EdgeID) string {
	if r, ok := b.edges.get(e.handle); ok {
		return r.name
	}
	return ""
}

// HalfEdgeName returns the identifier of h, or "" if h is not live.
func (b *Body) HalfEdgeName(h HalfEdgeID) string {
	if r, ok := b.halfEdges.get(h.handle); ok {
		return r.name
	}
	return ""
}

// LoopName returns the identifier of l, or "" if l is not live.
func (b *Body) LoopName(l LoopID) string {
	if r, ok := b.loops.get(l.handle); ok {
		return r.name
	}
	return ""
}

// FaceName returns the identifier of f, or "" if f is not live.
func (b *Body) FaceName(f FaceID) string {
	if r, ok := b.faces.get(f.handle); ok {
		return r.name
	}
	return ""
}

// LookupVertex finds a live vertex by identifier.
func (b *Body) LookupVertex(name string) (VertexID, bool) {
	return lo.Find(b.Vertices(), func(v VertexID) bool { return b.VertexName(v) == name })
}

// LookupEdge finds a live edge by identifier.
func (b *Body) LookupEdge(name string) (EdgeID, bool) {
	return lo.Find(b.Edges(), func(e EdgeID) bool { return b.EdgeName(e) == name })
}

// LookupLoop finds a live loop by identifier.
func (b *Body) LookupLoop(name string) (LoopID, bool) {
	return lo.Find(b.Loops(), func(l LoopID) bool { return b.LoopName(l) == name })
}

// LookupFace finds a live face by identifier.
func (b *Body) LookupFace(name string) (FaceID, bool) {
	return lo.Find(b.Faces(), func(f FaceID) bool { return b.FaceName(f) == name })
}

// ---------------------------------------------------------------------------
// Checked lookups
// ---------------------------------------------------------------------------

func (b *Body) lookupVertex(op string, id VertexID) (*vertex, error) {
	r, ok := b.vertices.get(id.handle)
	if !ok {
		return nil, stale(op, id.String())
	}
	return r, nil
}

func (b *Body) lookupEdge(op string, id EdgeID) (*edge, error) {
	r, ok := b.edges.get(id.handle)
	if !ok {
		return nil, stale(op, id.String())
	}
	return r, nil
}

func (b *Body) lookupHalfEdge(op string, id HalfEdgeID) (*halfEdge, error) {
	r, ok := b.halfEdges.get(id.handle)
	if !ok {
		return nil, stale(op, id.String())
	}
	return r, nil
}

func (b *Body) lookupLoop(op string, id LoopID) (*loop, error) {
	r, ok := b.loops.get(id.handle)
	if !ok {
		return nil, stale(op, id.String())
	}
	return r, nil
}

func (b *Body) lookupFace(op string, id FaceID) (*face, error) {
	r, ok := b.faces.get(id.handle)
	if !ok {
		return nil, stale(op, id.String())
	}
	return r, nil
}

// Unchecked accessors for use inside operators once preconditions hold.
// They return nil for dead handles.

func (b *Body) vtx(id VertexID) *vertex {
	r, _ := b.vertices.get(id.handle)
	return r
}

func (b *Body) edg(id EdgeID) *edge {
	r, _ := b.edges.get(id.handle)
	return r
}

func (b *Body) he(id HalfEdgeID) *halfEdge {
	r, _ := b.halfEdges.get(id.handle)
	return r
}

func (b *Body) lp(id LoopID) *loop {
	r, _ := b.loops.get(id.handle)
	return r
}

func (b *Body) fc(id FaceID) *face {
	r, _ := b.faces.get(id.handle)
	return r
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func (b *Body) newVertex(p Point) VertexID {
	return VertexID{b.vertices.alloc(vertex{name: b.ids.Allocate(CategoryVertex), coord: p})}
}

func (b *Body) newEdge() EdgeID {
	return EdgeID{b.edges.alloc(edge{name: b.ids.Allocate(CategoryEdge)})}
}

func (b *Body) newHalfEdge(origin VertexID, l LoopID) HalfEdgeID {
	return HalfEdgeID{b.halfEdges.alloc(halfEdge{
		name:   b.ids.Allocate(CategoryHalfEdge),
		origin: origin,
		loop:   l,
	})}
}

func (b *Body) newLoop(f FaceID) LoopID {
	return LoopID{b.loops.alloc(loop{name: b.ids.Allocate(CategoryLoop), face: f})}
}

func (b *Body) newFace() FaceID {
	return FaceID{b.faces.alloc(face{name: b.ids.Allocate(CategoryFace)})}
}

// unlink releases every entity. Released records are zeroed, so no
// cross-reference survives.
func (b *Body) unlink() {
	b.faces.clear()
	b.loops.clear()
	b.vertices.clear()
	b.edges.clear()
	b.halfEdges.clear()
}
