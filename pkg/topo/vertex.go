package topo

// Coordinate returns the point v was created with, unchanged.
func (b *Body) Coordinate(v VertexID) (Point, error) {
	r, err := b.lookupVertex("Coordinate", v)
	if err != nil {
		return nil, err
	}
	return r.coord, nil
}

// VertexHalfEdge returns the half-edge recorded as leaving v.
func (b *Body) VertexHalfEdge(v VertexID) (HalfEdgeID, error) {
	r, err := b.lookupVertex("VertexHalfEdge", v)
	if err != nil {
		return HalfEdgeID{}, err
	}
	return r.halfEdge, nil
}

// Degree returns the number of edges incident on v. It walks radially
// around v, stepping from each outgoing half-edge to the next outgoing one
// through its mate, until the starting half-edge recurs. An isolated vertex
// (whose half-edge is solitary) has degree 0.
func (b *Body) Degree(v VertexID) (int, error) {
	const op = "Degree"
	r, err := b.lookupVertex(op, v)
	if err != nil {
		return 0, err
	}
	start := r.halfEdge
	sh := b.he(start)
	if sh == nil {
		return 0, invariant(op, r.name, "incident half-edge %s is not live", start)
	}
	if sh.edge.IsZero() {
		return 0, nil
	}

	limit := b.halfEdges.len()
	n := 0
	cur := start
	for {
		n++
		m, err := b.Mate(cur)
		if err != nil {
			return 0, err
		}
		cur = b.he(m).next
		if cur == start {
			return n, nil
		}
		if n > limit {
			return 0, invariant(op, r.name, "radial walk did not return to %s", b.HalfEdgeName(start))
		}
	}
}
