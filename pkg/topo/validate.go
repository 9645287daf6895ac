package topo

import "fmt"

// Validation codes.
const (
	CodeDangling       = "dangling-handle"
	CodeNextPrev       = "next-prev"
	CodeLoopClosure    = "loop-closure"
	CodeLoopMembership = "loop-membership"
	CodeOrphan         = "orphan-half-edge"
	CodeMate           = "mate"
	CodeSolitary       = "solitary"
	CodeIncidence      = "incidence"
	CodeFaceLoop       = "face-loop"
)

// ValidationError describes one broken invariant.
type ValidationError struct {
	Code    string
	Entity  string // name of the entity the finding is about
	Message string
}

func (e ValidationError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Entity, e.Message)
}

// Validate audits every structural invariant of the body and returns the
// findings. An empty slice means the body is consistent. It never mutates
// the body.
func (b *Body) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, b.validateHalfEdges()...)
	errs = append(errs, b.validateLoops()...)
	errs = append(errs, b.validateEdges()...)
	errs = append(errs, b.validateVertices()...)
	errs = append(errs, b.validateFaces()...)
	return errs
}

func (b *Body) validateHalfEdges() []ValidationError {
	var errs []ValidationError
	add := func(code, entity, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Entity: entity, Message: fmt.Sprintf(format, args...)})
	}

	for _, h := range b.HalfEdges() {
		r := b.he(h)
		if b.vtx(r.origin) == nil {
			add(CodeDangling, r.name, "origin %s is not live", r.origin)
		}
		if b.lp(r.loop) == nil {
			add(CodeDangling, r.name, "loop %s is not live", r.loop)
		}
		next, prev := b.he(r.next), b.he(r.prev)
		if next == nil || prev == nil {
			add(CodeDangling, r.name, "next or prev is not live")
			continue
		}
		if next.prev != h {
			add(CodeNextPrev, r.name, "next(%s).prev is %s", next.name, b.HalfEdgeName(next.prev))
		}
		if prev.next != h {
			add(CodeNextPrev, r.name, "prev(%s).next is %s", prev.name, b.HalfEdgeName(prev.next))
		}
		if next.loop != r.loop {
			add(CodeLoopMembership, r.name, "next %s is on loop %s, not %s",
				next.name, b.LoopName(next.loop), b.LoopName(r.loop))
		}
		if r.edge.IsZero() {
			if r.next != h {
				add(CodeSolitary, r.name, "solitary half-edge is not alone in its loop")
			}
			continue
		}
		e := b.edg(r.edge)
		if e == nil {
			add(CodeDangling, r.name, "edge %s is not live", r.edge)
			continue
		}
		if e.plus != h && e.minus != h {
			add(CodeMate, r.name, "edge %s does not reference it", e.name)
		}
	}
	return errs
}

func (b *Body) validateLoops() []ValidationError {
	var errs []ValidationError
	add := func(code, entity, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Entity: entity, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[HalfEdgeID]LoopID, b.halfEdges.len())
	for _, l := range b.Loops() {
		r := b.lp(l)
		fr := b.fc(r.face)
		if fr == nil {
			add(CodeDangling, r.name, "face %s is not live", r.face)
		} else if fr.outer != l && !containsLoop(fr.rings, l) {
			add(CodeFaceLoop, r.name, "face %s does not list it", fr.name)
		}
		if b.he(r.halfEdge) == nil {
			add(CodeDangling, r.name, "representative %s is not live", r.halfEdge)
			continue
		}

		closed := false
		cur := r.halfEdge
		for i := 0; i < b.halfEdges.len(); i++ {
			c := b.he(cur)
			if c == nil {
				break
			}
			if c.loop != l {
				add(CodeLoopMembership, r.name, "member %s records loop %s", c.name, b.LoopName(c.loop))
			}
			if other, dup := seen[cur]; dup {
				add(CodeLoopMembership, r.name, "member %s also reached from loop %s", c.name, b.LoopName(other))
			}
			seen[cur] = l
			cur = c.next
			if cur == r.halfEdge {
				closed = true
				break
			}
		}
		if !closed {
			add(CodeLoopClosure, r.name, "walk from %s does not return", b.HalfEdgeName(r.halfEdge))
		}
	}

	for _, h := range b.HalfEdges() {
		if _, ok := seen[h]; !ok {
			add(CodeOrphan, b.HalfEdgeName(h), "not reachable from any loop")
		}
	}
	return errs
}

func (b *Body) validateEdges() []ValidationError {
	var errs []ValidationError
	add := func(code, entity, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Entity: entity, Message: fmt.Sprintf(format, args...)})
	}

	for _, e := range b.Edges() {
		r := b.edg(e)
		p, m := b.he(r.plus), b.he(r.minus)
		if p == nil || m == nil {
			add(CodeDangling, r.name, "a use is not live")
			continue
		}
		if r.plus == r.minus {
			add(CodeMate, r.name, "positive and negative use are the same half-edge")
			continue
		}
		if p.edge != e || m.edge != e {
			add(CodeMate, r.name, "a use does not point back at the edge")
		}
		if pn := b.he(p.next); pn == nil || pn.origin != m.origin {
			add(CodeMate, r.name, "positive use does not end where the negative use starts")
		}
		if mn := b.he(m.next); mn == nil || mn.origin != p.origin {
			add(CodeMate, r.name, "negative use does not end where the positive use starts")
		}
	}
	return errs
}

func (b *Body) validateVertices() []ValidationError {
	var errs []ValidationError
	for _, v := range b.Vertices() {
		r := b.vtx(v)
		h := b.he(r.halfEdge)
		switch {
		case h == nil:
			errs = append(errs, ValidationError{Code: CodeIncidence, Entity: r.name,
				Message: fmt.Sprintf("incident half-edge %s is not live", r.halfEdge)})
		case h.origin != v:
			errs = append(errs, ValidationError{Code: CodeIncidence, Entity: r.name,
				Message: fmt.Sprintf("incident half-edge %s starts at %s", h.name, b.VertexName(h.origin))})
		}
	}
	return errs
}

func (b *Body) validateFaces() []ValidationError {
	var errs []ValidationError
	add := func(entity, format string, args ...any) {
		errs = append(errs, ValidationError{Code: CodeFaceLoop, Entity: entity, Message: fmt.Sprintf(format, args...)})
	}

	for _, f := range b.Faces() {
		r := b.fc(f)
		if ol := b.lp(r.outer); ol == nil {
			add(r.name, "outer loop %s is not live", r.outer)
		} else if ol.face != f {
			add(r.name, "outer loop %s belongs to face %s", ol.name, b.FaceName(ol.face))
		}
		seen := make(map[LoopID]bool, len(r.rings))
		for _, l := range r.rings {
			lr := b.lp(l)
			switch {
			case lr == nil:
				add(r.name, "ring %s is not live", l)
			case l == r.outer:
				add(r.name, "outer loop %s is also listed as a ring", lr.name)
			case seen[l]:
				add(r.name, "ring %s is listed twice", lr.name)
			case lr.face != f:
				add(r.name, "ring %s belongs to face %s", lr.name, b.FaceName(lr.face))
			}
			seen[l] = true
		}
	}
	return errs
}

func containsLoop(ls []LoopID, l LoopID) bool {
	for _, x := range ls {
		if x == l {
			return true
		}
	}
	return false
}
