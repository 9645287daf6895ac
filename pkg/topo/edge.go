package topo

// EdgeUses returns the positive and negative half-edges of e.
func (b *Body) EdgeUses(e EdgeID) (plus, minus HalfEdgeID, err error) {
	r, err := b.lookupEdge("EdgeUses", e)
	if err != nil {
		return HalfEdgeID{}, HalfEdgeID{}, err
	}
	return r.plus, r.minus, nil
}

// EdgeVertices returns the origins of the positive and negative uses of e,
// i.e. the edge's start and end in its positive direction.
func (b *Body) EdgeVertices(e EdgeID) (from, to VertexID, err error) {
	r, err := b.lookupEdge("EdgeVertices", e)
	if err != nil {
		return VertexID{}, VertexID{}, err
	}
	return b.he(r.plus).origin, b.he(r.minus).origin, nil
}

// FindEdge returns an edge joining v1 and v2 in either direction.
func (b *Body) FindEdge(v1, v2 VertexID) (EdgeID, bool) {
	for _, e := range b.Edges() {
		r := b.edg(e)
		a, c := b.he(r.plus).origin, b.he(r.minus).origin
		if (a == v1 && c == v2) || (a == v2 && c == v1) {
			return e, true
		}
	}
	return EdgeID{}, false
}
