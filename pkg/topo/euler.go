package topo

import (
	"go.uber.org/zap"
)

// Every operator checks all of its preconditions before it touches a single
// cross-reference, so a returned error always leaves the body as it was.

// MVFSResult holds the entities created by MVFS.
type MVFSResult struct {
	Body   *Body
	Vertex VertexID
	Face   FaceID
	Loop   LoopID
}

// MEVResult holds the entities created by MEV.
type MEVResult struct {
	Vertex VertexID
	Edge   EdgeID
}

// MEFResult holds the entities created by MEF.
type MEFResult struct {
	Edge EdgeID
	Face FaceID
	Loop LoopID
}

// ---------------------------------------------------------------------------
// MVFS / KVFS
// ---------------------------------------------------------------------------

// MVFS creates a body holding one vertex at p, one face with one loop, and one
// solitary half-edge that links to itself. It is the only way to obtain a
// Body. A nil allocator is replaced by a fresh one.
func MVFS(ids *IDAllocator, p Point) MVFSResult {
	if ids == nil {
		ids = NewIDAllocator()
	}
	b := newBody(ids)

	v := b.newVertex(p)
	f := b.newFace()
	l := b.newLoop(f)
	h := b.newHalfEdge(v, l)

	b.link(h, h)
	b.vtx(v).halfEdge = h
	b.lp(l).halfEdge = h
	b.fc(f).outer = l

	Logger().Debug("MVFS",
		zap.String("body", b.name),
		zap.String("vertex", b.vtx(v).name),
		zap.String("face", b.fc(f).name))

	return MVFSResult{Body: b, Vertex: v, Face: f, Loop: l}
}

// KVFS empties a body that has been reduced to the state MVFS left it in:
// one vertex, one face, one loop, one solitary half-edge and no edges.
func (b *Body) KVFS() error {
	const op = "KVFS"
	if b.NumVertices() != 1 || b.NumFaces() != 1 || b.NumLoops() != 1 ||
		b.NumHalfEdges() != 1 || b.NumEdges() != 0 {
		return precondition(op, b.name,
			"body is not reduced to a single vertex (V=%d E=%d F=%d L=%d HE=%d)",
			b.NumVertices(), b.NumEdges(), b.NumFaces(), b.NumLoops(), b.NumHalfEdges())
	}
	b.unlink()
	Logger().Debug("KVFS", zap.String("body", b.name))
	return nil
}

// ---------------------------------------------------------------------------
// MEV / KEV
// ---------------------------------------------------------------------------

// MEV adds a vertex at p and an edge joining it to v, which must have a
// half-edge on face f.
//
// If v's half-edge is solitary it becomes the positive use (v to new) and a
// single new half-edge (new to v) follows it as the negative use. Otherwise
// two half-edges are inserted after the predecessor of v's half-edge: the
// negative use from v, then the positive use from the new vertex.
func (b *Body) MEV(f FaceID, v VertexID, p Point) (MEVResult, error) {
	const op = "MEV"
	if _, err := b.lookupFace(op, f); err != nil {
		return MEVResult{}, err
	}
	if _, err := b.lookupVertex(op, v); err != nil {
		return MEVResult{}, err
	}
	h, err := b.FindHalfEdge(f, v)
	if err != nil {
		return MEVResult{}, &OpError{Op: op, Kind: ErrPreconditionFailed, Entity: b.vertexLabel(v),
			Msg: "vertex is not on face " + b.FaceName(f), Err: err}
	}

	hr := b.he(h)
	l := hr.loop
	nv := b.newVertex(p)
	ne := b.newEdge()
	er := b.edg(ne)

	if hr.edge.IsZero() {
		nh := b.newHalfEdge(nv, l)
		b.insertAfter(nh, h)
		hr.edge = ne
		b.he(nh).edge = ne
		er.plus, er.minus = h, nh
		b.vtx(nv).halfEdge = nh
	} else {
		prev := hr.prev
		neg := b.newHalfEdge(v, l)
		pos := b.newHalfEdge(nv, l)
		b.insertAfter(neg, prev)
		b.insertAfter(pos, neg)
		b.he(neg).edge = ne
		b.he(pos).edge = ne
		er.plus, er.minus = pos, neg
		b.vtx(nv).halfEdge = pos
	}

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("from", b.vertexLabel(v)),
		zap.String("vertex", b.vtx(nv).name),
		zap.String("edge", er.name))

	return MEVResult{Vertex: nv, Edge: ne}, nil
}

// KEV removes edge e together with its endpoint v. v must have no other
// edge, so the two uses of e are adjacent in their loop. When they are the
// whole loop, the use arriving at v is kept as the loop's solitary
// half-edge; otherwise both uses are spliced out.
func (b *Body) KEV(e EdgeID, v VertexID) error {
	const op = "KEV"
	er, err := b.lookupEdge(op, e)
	if err != nil {
		return err
	}
	vr, err := b.lookupVertex(op, v)
	if err != nil {
		return err
	}

	plus, minus := er.plus, er.minus
	var in, out HalfEdgeID
	switch v {
	case b.he(plus).origin:
		out, in = plus, minus
	case b.he(minus).origin:
		out, in = minus, plus
	default:
		return precondition(op, er.name, "vertex %s is not an endpoint", vr.name)
	}
	if b.he(plus).origin == b.he(minus).origin {
		return precondition(op, er.name, "edge is a self-loop at %s", vr.name)
	}
	if b.he(in).next != out {
		return precondition(op, er.name, "vertex %s has other incident edges", vr.name)
	}

	ir, ur := b.he(in), b.he(out)
	kept := ir.origin
	lr := b.lp(ir.loop)

	if ur.next == in {
		// The edge is the whole loop: fall back to a lone vertex.
		ir.edge = EdgeID{}
		b.link(in, in)
		b.vtx(kept).halfEdge = in
		lr.halfEdge = in
	} else {
		after := ur.next
		b.remove(in)
		b.remove(out)
		if kr := b.vtx(kept); kr.halfEdge == in {
			kr.halfEdge = after
		}
		if lr.halfEdge == in || lr.halfEdge == out {
			lr.halfEdge = after
		}
		b.halfEdges.release(in.handle)
	}

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("edge", er.name),
		zap.String("vertex", vr.name))

	b.halfEdges.release(out.handle)
	b.edges.release(e.handle)
	b.vertices.release(v.handle)
	return nil
}

// ---------------------------------------------------------------------------
// MEF / KEF
// ---------------------------------------------------------------------------

// MEF joins v1 and v2, which must lie on a common loop of f, with a new edge
// and splits that loop in two. The positive use runs v1 to v2 and bounds the
// new loop of a new face; the negative use runs v2 to v1 and stays in the
// old loop.
//
// When a vertex occurs more than once on the loop the first occurrence from
// the loop's representative is used; MEFAt addresses the exact corners.
func (b *Body) MEF(f FaceID, v1, v2 VertexID) (MEFResult, error) {
	const op = "MEF"
	fr, err := b.lookupFace(op, f)
	if err != nil {
		return MEFResult{}, err
	}
	if _, err := b.lookupVertex(op, v1); err != nil {
		return MEFResult{}, err
	}
	if _, err := b.lookupVertex(op, v2); err != nil {
		return MEFResult{}, err
	}
	if v1 == v2 {
		return MEFResult{}, precondition(op, fr.name, "both ends are %s", b.vertexLabel(v1))
	}
	for _, l := range b.faceLoops(fr) {
		h1, ok1 := b.findInLoop(l, v1)
		h2, ok2 := b.findInLoop(l, v2)
		if ok1 && ok2 {
			return b.mef(op, h1, h2), nil
		}
	}
	return MEFResult{}, precondition(op, fr.name, "vertices %s and %s do not share a loop",
		b.vertexLabel(v1), b.vertexLabel(v2))
}

// MEFAt is MEF addressed by corners: h1 and h2 are the half-edges leaving v1
// and v2 between which the new edge is threaded. They must share a loop.
func (b *Body) MEFAt(h1, h2 HalfEdgeID) (MEFResult, error) {
	const op = "MEFAt"
	r1, err := b.lookupHalfEdge(op, h1)
	if err != nil {
		return MEFResult{}, err
	}
	r2, err := b.lookupHalfEdge(op, h2)
	if err != nil {
		return MEFResult{}, err
	}
	if r1.loop != r2.loop {
		return MEFResult{}, precondition(op, r1.name, "not on the same loop as %s", r2.name)
	}
	if r1.origin == r2.origin {
		return MEFResult{}, precondition(op, r1.name, "both ends are %s", b.vertexLabel(r1.origin))
	}
	return b.mef("MEF", h1, h2), nil
}

func (b *Body) mef(op string, h1, h2 HalfEdgeID) MEFResult {
	r1, r2 := b.he(h1), b.he(h2)
	old := r1.loop
	p1, p2 := r1.prev, r2.prev
	v1, v2 := r1.origin, r2.origin

	nf := b.newFace()
	nl := b.newLoop(nf)
	b.fc(nf).outer = nl
	ne := b.newEdge()
	pos := b.newHalfEdge(v1, nl)
	neg := b.newHalfEdge(v2, old)

	// new loop: pos, h2 ... p1
	b.link(p1, pos)
	b.link(pos, h2)
	// old loop: neg, h1 ... p2
	b.link(p2, neg)
	b.link(neg, h1)

	b.relabel(pos, nl)
	b.lp(nl).halfEdge = pos
	b.lp(old).halfEdge = neg

	er := b.edg(ne)
	er.plus, er.minus = pos, neg
	b.he(pos).edge = ne
	b.he(neg).edge = ne

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("edge", er.name),
		zap.String("face", b.fc(nf).name),
		zap.String("from", b.vertexLabel(v1)),
		zap.String("to", b.vertexLabel(v2)))

	return MEFResult{Edge: ne, Face: nf, Loop: nl}
}

// KEF removes edge e and face f, merging the loop of f that e bounds into the
// loop on the other side. e must separate two different faces, one of which
// is f, and must lie on f's outer loop. Rings of f move to the surviving face.
func (b *Body) KEF(e EdgeID, f FaceID) error {
	const op = "KEF"
	er, err := b.lookupEdge(op, e)
	if err != nil {
		return err
	}
	fr, err := b.lookupFace(op, f)
	if err != nil {
		return err
	}

	pr, mr := b.he(er.plus), b.he(er.minus)
	if pr.origin == mr.origin {
		return precondition(op, er.name, "edge is a self-loop")
	}
	if pr.loop == mr.loop {
		return precondition(op, er.name, "both uses lie on loop %s; use KEMR", b.LoopName(pr.loop))
	}

	var x, y HalfEdgeID // x on the loop being removed, y on the survivor
	switch f {
	case b.lp(pr.loop).face:
		x, y = er.plus, er.minus
	case b.lp(mr.loop).face:
		x, y = er.minus, er.plus
	default:
		return precondition(op, er.name, "face %s is not adjacent", fr.name)
	}
	gone, kept := b.he(x).loop, b.he(y).loop
	keptFace := b.lp(kept).face
	if keptFace == f {
		return precondition(op, er.name, "both uses lie on face %s", fr.name)
	}
	if fr.outer != gone {
		return precondition(op, er.name, "edge lies on a ring of face %s", fr.name)
	}

	xr, yr := b.he(x), b.he(y)
	xn, xp := xr.next, xr.prev
	yn, yp := yr.next, yr.prev

	b.relabel(x, kept)
	b.link(xp, yn)
	b.link(yp, xn)

	if vr := b.vtx(xr.origin); vr.halfEdge == x {
		vr.halfEdge = yn
	}
	if vr := b.vtx(yr.origin); vr.halfEdge == y {
		vr.halfEdge = xn
	}
	if kr := b.lp(kept); kr.halfEdge == y {
		kr.halfEdge = yn
	}

	kf := b.fc(keptFace)
	for _, ring := range fr.rings {
		b.lp(ring).face = keptFace
		kf.rings = append(kf.rings, ring)
	}

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("edge", er.name),
		zap.String("face", fr.name),
		zap.String("into", kf.name))

	b.halfEdges.release(x.handle)
	b.halfEdges.release(y.handle)
	b.edges.release(e.handle)
	b.loops.release(gone.handle)
	b.faces.release(f.handle)
	return nil
}

// ---------------------------------------------------------------------------
// KEMR / MEKR
// ---------------------------------------------------------------------------

// KEMR removes the edge from v1 to v2 whose two uses both lie on one loop of
// f, splitting that loop. The part beyond v2 becomes a new ring of f; the
// part through v1 stays in the original loop. A part that would be empty is
// kept as a solitary half-edge on its now isolated vertex.
func (b *Body) KEMR(f FaceID, v1, v2 VertexID) (LoopID, error) {
	const op = "KEMR"
	fr, err := b.lookupFace(op, f)
	if err != nil {
		return LoopID{}, err
	}
	if _, err := b.lookupVertex(op, v1); err != nil {
		return LoopID{}, err
	}
	if _, err := b.lookupVertex(op, v2); err != nil {
		return LoopID{}, err
	}
	if v1 == v2 {
		return LoopID{}, precondition(op, fr.name, "both ends are %s", b.vertexLabel(v1))
	}

	h1, ok := b.scanFace(fr, func(h HalfEdgeID) bool {
		r := b.he(h)
		if r.origin != v1 || r.edge.IsZero() || b.he(r.next).origin != v2 {
			return false
		}
		return b.he(b.mate(h)).loop == r.loop
	})
	if !ok {
		return LoopID{}, precondition(op, fr.name, "no edge from %s to %s with both uses on one loop",
			b.vertexLabel(v1), b.vertexLabel(v2))
	}

	h2 := b.mate(h1)
	r1, r2 := b.he(h1), b.he(h2)
	e := r1.edge
	l := r1.loop
	lr := b.lp(l)

	// X is the run after h1 (around v2), Y the run after h2 (around v1).
	xFirst, xLast, xEmpty := r1.next, r2.prev, r1.next == h2
	yFirst, yLast, yEmpty := r2.next, r1.prev, r2.next == h1

	ring := b.newLoop(f)
	fr.rings = append(fr.rings, ring)
	rr := b.lp(ring)

	if xEmpty {
		r2.edge = EdgeID{}
		b.link(h2, h2)
		r2.loop = ring
		rr.halfEdge = h2
		b.vtx(v2).halfEdge = h2
	} else {
		b.link(xLast, xFirst)
		b.relabel(xFirst, ring)
		rr.halfEdge = xFirst
		if vr := b.vtx(v2); vr.halfEdge == h2 {
			vr.halfEdge = xFirst
		}
	}

	if yEmpty {
		r1.edge = EdgeID{}
		b.link(h1, h1)
		lr.halfEdge = h1
		b.vtx(v1).halfEdge = h1
	} else {
		b.link(yLast, yFirst)
		// The old representative may have moved to the ring with X.
		lr.halfEdge = yFirst
		if vr := b.vtx(v1); vr.halfEdge == h1 {
			vr.halfEdge = yFirst
		}
	}

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("edge", b.EdgeName(e)),
		zap.String("face", fr.name),
		zap.String("ring", rr.name))

	if !xEmpty {
		b.halfEdges.release(h2.handle)
	}
	if !yEmpty {
		b.halfEdges.release(h1.handle)
	}
	b.edges.release(e.handle)
	return ring, nil
}

// MEKR joins v1, on any loop of f other than ring, to v2, on ring, with a new
// edge and absorbs the ring into v1's loop. v1's loop may be the outer loop
// or another ring; in the latter case the two rings merge. ring must be an
// inner loop, of f or of any other face; it is released. Solitary half-edges
// on either side become the uses of the new edge. The positive use runs v1 to
// v2.
func (b *Body) MEKR(f FaceID, v1, v2 VertexID, ring LoopID) (EdgeID, error) {
	const op = "MEKR"
	fr, err := b.lookupFace(op, f)
	if err != nil {
		return EdgeID{}, err
	}
	rr, err := b.lookupLoop(op, ring)
	if err != nil {
		return EdgeID{}, err
	}
	if _, err := b.lookupVertex(op, v1); err != nil {
		return EdgeID{}, err
	}
	if _, err := b.lookupVertex(op, v2); err != nil {
		return EdgeID{}, err
	}
	ringFace := rr.face
	rf := b.fc(ringFace)
	if rf == nil || rf.outer == ring {
		return EdgeID{}, precondition(op, rr.name, "loop is not a ring")
	}

	var h1 HalfEdgeID
	found := false
	for _, l := range b.faceLoops(fr) {
		if l == ring {
			continue
		}
		if h, ok := b.findInLoop(l, v1); ok {
			h1, found = h, true
			break
		}
	}
	if !found {
		return EdgeID{}, precondition(op, fr.name, "vertex %s is not on a loop other than %s",
			b.vertexLabel(v1), rr.name)
	}
	h2, ok := b.findInLoop(ring, v2)
	if !ok {
		return EdgeID{}, precondition(op, rr.name, "vertex %s is not on the ring", b.vertexLabel(v2))
	}

	r1, r2 := b.he(h1), b.he(h2)
	target := r1.loop
	var s1, s2 []HalfEdgeID
	if !r1.edge.IsZero() {
		s1 = b.cycle(h1)
	}
	if !r2.edge.IsZero() {
		s2 = b.cycle(h2)
	}

	ne := b.newEdge()
	pos, neg := h1, h2
	if len(s1) > 0 {
		pos = b.newHalfEdge(v1, target)
	}
	if len(s2) > 0 {
		neg = b.newHalfEdge(v2, target)
	}

	// pos, ring run from h2, neg, then the original run from h1.
	seq := make([]HalfEdgeID, 0, len(s1)+len(s2)+2)
	seq = append(seq, pos)
	seq = append(seq, s2...)
	seq = append(seq, neg)
	seq = append(seq, s1...)
	for i, h := range seq {
		b.link(h, seq[(i+1)%len(seq)])
		b.he(h).loop = target
	}

	er := b.edg(ne)
	er.plus, er.minus = pos, neg
	b.he(pos).edge = ne
	b.he(neg).edge = ne

	b.removeRing(ringFace, ring)

	Logger().Debug(op,
		zap.String("body", b.name),
		zap.String("edge", er.name),
		zap.String("face", fr.name),
		zap.String("ring", rr.name))

	b.loops.release(ring.handle)
	return ne, nil
}
