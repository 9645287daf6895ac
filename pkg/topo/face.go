package topo

import (
	"slices"

	"github.com/samber/lo"
)

// OuterLoop returns the outer boundary loop of f.
func (b *Body) OuterLoop(f FaceID) (LoopID, error) {
	r, err := b.lookupFace("OuterLoop", f)
	if err != nil {
		return LoopID{}, err
	}
	return r.outer, nil
}

// Rings returns the inner loops of f in creation order.
func (b *Body) Rings(f FaceID) ([]LoopID, error) {
	r, err := b.lookupFace("Rings", f)
	if err != nil {
		return nil, err
	}
	return slices.Clone(r.rings), nil
}

// FaceLoops returns every loop of f, outer loop first.
func (b *Body) FaceLoops(f FaceID) ([]LoopID, error) {
	r, err := b.lookupFace("FaceLoops", f)
	if err != nil {
		return nil, err
	}
	return b.faceLoops(r), nil
}

func (b *Body) faceLoops(r *face) []LoopID {
	out := make([]LoopID, 0, 1+len(r.rings))
	if !r.outer.IsZero() {
		out = append(out, r.outer)
	}
	return append(out, r.rings...)
}

// Surface returns the opaque surface value attached to f.
func (b *Body) Surface(f FaceID) (any, error) {
	r, err := b.lookupFace("Surface", f)
	if err != nil {
		return nil, err
	}
	return r.surface, nil
}

// SetSurface attaches an opaque surface value to f. It is geometry, not
// topology, so it may be changed freely.
func (b *Body) SetSurface(f FaceID, s any) error {
	r, err := b.lookupFace("SetSurface", f)
	if err != nil {
		return err
	}
	r.surface = s
	return nil
}

// FindHalfEdge scans the loops of f, outer loop first, for a half-edge
// starting at from. When to is given, the half-edge must also end at to,
// i.e. its next must start at to. Not finding one is a precondition failure.
func (b *Body) FindHalfEdge(f FaceID, from VertexID, to ...VertexID) (HalfEdgeID, error) {
	const op = "FindHalfEdge"
	r, err := b.lookupFace(op, f)
	if err != nil {
		return HalfEdgeID{}, err
	}
	if len(to) > 1 {
		return HalfEdgeID{}, precondition(op, r.name, "at most one destination vertex, got %d", len(to))
	}
	match := func(h HalfEdgeID) bool {
		he := b.he(h)
		if he.origin != from {
			return false
		}
		return len(to) == 0 || b.he(he.next).origin == to[0]
	}
	if h, ok := b.scanFace(r, match); ok {
		return h, nil
	}
	if len(to) == 0 {
		return HalfEdgeID{}, precondition(op, r.name, "no half-edge starts at %s", b.vertexLabel(from))
	}
	return HalfEdgeID{}, precondition(op, r.name, "no half-edge runs from %s to %s",
		b.vertexLabel(from), b.vertexLabel(to[0]))
}

// scanFace returns the first half-edge of f's loops satisfying match.
func (b *Body) scanFace(r *face, match func(HalfEdgeID) bool) (HalfEdgeID, bool) {
	for _, l := range b.faceLoops(r) {
		lr := b.lp(l)
		if lr == nil {
			continue
		}
		for _, h := range b.Walk(lr.halfEdge) {
			if match(h) {
				return h, true
			}
		}
	}
	return HalfEdgeID{}, false
}

func (b *Body) removeRing(f FaceID, l LoopID) {
	r := b.fc(f)
	r.rings = lo.Without(r.rings, l)
}

func (b *Body) vertexLabel(v VertexID) string {
	if n := b.VertexName(v); n != "" {
		return n
	}
	return v.String()
}
