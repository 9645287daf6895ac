package topo

import "iter"

// Origin returns the vertex h starts at.
func (b *Body) Origin(h HalfEdgeID) (VertexID, error) {
	r, err := b.lookupHalfEdge("Origin", h)
	if err != nil {
		return VertexID{}, err
	}
	return r.origin, nil
}

// Next returns the half-edge following h in its loop.
func (b *Body) Next(h HalfEdgeID) (HalfEdgeID, error) {
	r, err := b.lookupHalfEdge("Next", h)
	if err != nil {
		return HalfEdgeID{}, err
	}
	return r.next, nil
}

// Prev returns the half-edge preceding h in its loop.
func (b *Body) Prev(h HalfEdgeID) (HalfEdgeID, error) {
	r, err := b.lookupHalfEdge("Prev", h)
	if err != nil {
		return HalfEdgeID{}, err
	}
	return r.prev, nil
}

// EdgeOf returns the edge owning h; the zero EdgeID for a solitary half-edge.
func (b *Body) EdgeOf(h HalfEdgeID) (EdgeID, error) {
	r, err := b.lookupHalfEdge("EdgeOf", h)
	if err != nil {
		return EdgeID{}, err
	}
	return r.edge, nil
}

// LoopOf returns the loop containing h.
func (b *Body) LoopOf(h HalfEdgeID) (LoopID, error) {
	r, err := b.lookupHalfEdge("LoopOf", h)
	if err != nil {
		return LoopID{}, err
	}
	return r.loop, nil
}

// IsSolitary reports whether h has no owning edge. Only the sole member of a
// one-element loop can be solitary.
func (b *Body) IsSolitary(h HalfEdgeID) (bool, error) {
	r, err := b.lookupHalfEdge("IsSolitary", h)
	if err != nil {
		return false, err
	}
	return r.edge.IsZero(), nil
}

// Mate returns the other half-edge of h's edge.
func (b *Body) Mate(h HalfEdgeID) (HalfEdgeID, error) {
	const op = "Mate"
	r, err := b.lookupHalfEdge(op, h)
	if err != nil {
		return HalfEdgeID{}, err
	}
	if r.edge.IsZero() {
		return HalfEdgeID{}, invariant(op, r.name, "solitary half-edge has no mate")
	}
	e := b.edg(r.edge)
	switch {
	case e == nil:
		return HalfEdgeID{}, invariant(op, r.name, "owning edge %s is not live", r.edge)
	case e.plus == h:
		return e.minus, nil
	case e.minus == h:
		return e.plus, nil
	}
	return HalfEdgeID{}, invariant(op, r.name, "edge %s does not reference this half-edge", e.name)
}

// mate is Mate without checks, for operators whose preconditions already
// established that h has an edge.
func (b *Body) mate(h HalfEdgeID) HalfEdgeID {
	e := b.edg(b.he(h).edge)
	if e.plus == h {
		return e.minus
	}
	return e.plus
}

// PreviousInLoop finds the half-edge whose next is h by walking forward from
// h. Unlike Prev it does not trust the prev link, so it is usable while a
// splice is half done.
func (b *Body) PreviousInLoop(h HalfEdgeID) (HalfEdgeID, error) {
	const op = "PreviousInLoop"
	r, err := b.lookupHalfEdge(op, h)
	if err != nil {
		return HalfEdgeID{}, err
	}
	cur := r.next
	for i := 0; i <= b.halfEdges.len(); i++ {
		c := b.he(cur)
		if c == nil {
			return HalfEdgeID{}, invariant(op, r.name, "next chain reaches dead half-edge %s", cur)
		}
		if c.next == h {
			return cur, nil
		}
		cur = c.next
	}
	return HalfEdgeID{}, invariant(op, r.name, "next chain does not return to this half-edge")
}

// Walk returns a traversal of the next chain starting at start. It yields
// each member once, with its position, and stops when start recurs. The
// sequence is lazy and may be ranged over any number of times. A dead start
// yields nothing; a corrupted chain is cut off after NumHalfEdges steps.
func (b *Body) Walk(start HalfEdgeID) iter.Seq2[int, HalfEdgeID] {
	return func(yield func(int, HalfEdgeID) bool) {
		if b.he(start) == nil {
			return
		}
		limit := b.halfEdges.len()
		cur := start
		for i := 0; i < limit; i++ {
			if !yield(i, cur) {
				return
			}
			c := b.he(cur)
			if c == nil {
				return
			}
			cur = c.next
			if cur == start {
				return
			}
		}
	}
}

// cycle collects the next chain from start.
func (b *Body) cycle(start HalfEdgeID) []HalfEdgeID {
	var out []HalfEdgeID
	for _, h := range b.Walk(start) {
		out = append(out, h)
	}
	return out
}

// link sets c as the successor of a.
func (b *Body) link(a, c HalfEdgeID) {
	b.he(a).next = c
	b.he(c).prev = a
}
