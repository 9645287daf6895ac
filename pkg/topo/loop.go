package topo

// LoopFace returns the face that owns l.
func (b *Body) LoopFace(l LoopID) (FaceID, error) {
	r, err := b.lookupLoop("LoopFace", l)
	if err != nil {
		return FaceID{}, err
	}
	return r.face, nil
}

// LoopHalfEdge returns the representative half-edge of l.
func (b *Body) LoopHalfEdge(l LoopID) (HalfEdgeID, error) {
	r, err := b.lookupLoop("LoopHalfEdge", l)
	if err != nil {
		return HalfEdgeID{}, err
	}
	return r.halfEdge, nil
}

// LoopLength counts the members of l by walking from its representative.
func (b *Body) LoopLength(l LoopID) (int, error) {
	r, err := b.lookupLoop("LoopLength", l)
	if err != nil {
		return 0, err
	}
	n := 0
	for range b.Walk(r.halfEdge) {
		n++
	}
	return n, nil
}

// LoopHalfEdges lists the members of l in next order, starting at its
// representative.
func (b *Body) LoopHalfEdges(l LoopID) ([]HalfEdgeID, error) {
	r, err := b.lookupLoop("LoopHalfEdges", l)
	if err != nil {
		return nil, err
	}
	return b.cycle(r.halfEdge), nil
}

// LoopVertices lists the origins of the members of l in next order.
func (b *Body) LoopVertices(l LoopID) ([]VertexID, error) {
	hs, err := b.LoopHalfEdges(l)
	if err != nil {
		return nil, err
	}
	out := make([]VertexID, len(hs))
	for i, h := range hs {
		out[i] = b.he(h).origin
	}
	return out, nil
}

// insertAfter splices n into the cycle right after existing. It does not
// check that existing belongs to any particular loop, nor set n's loop.
func (b *Body) insertAfter(n, existing HalfEdgeID) {
	after := b.he(existing).next
	b.link(existing, n)
	b.link(n, after)
}

// remove splices h out of its cycle and leaves it self-linked.
func (b *Body) remove(h HalfEdgeID) {
	r := b.he(h)
	if r.next != h {
		b.link(r.prev, r.next)
	}
	r.next, r.prev = h, h
}

// relabel assigns every member of the cycle through start to l.
func (b *Body) relabel(start HalfEdgeID, l LoopID) {
	for _, h := range b.Walk(start) {
		b.he(h).loop = l
	}
}

// findInLoop returns the first member of l, starting at its representative,
// that originates at v.
func (b *Body) findInLoop(l LoopID, v VertexID) (HalfEdgeID, bool) {
	r := b.lp(l)
	if r == nil {
		return HalfEdgeID{}, false
	}
	for _, h := range b.Walk(r.halfEdge) {
		if b.he(h).origin == v {
			return h, true
		}
	}
	return HalfEdgeID{}, false
}
