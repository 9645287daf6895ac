package topo

import (
	"slices"

	"github.com/samber/lo"
)

// PolygonResult holds the entities created by Polygon.
type PolygonResult struct {
	Body     *Body
	Vertices []VertexID // in the order of the input points
	Edges    []EdgeID   // Edges[i] joins Vertices[i] and Vertices[i+1], wrapping
	Face     FaceID     // the face MVFS created; holds the negative uses
	Closing  MEFResult  // the MEF that closed the ring; its Face holds the positive uses
}

// Polygon builds a closed polygon from pts with MVFS, a chain of MEVs and a
// closing MEF. The result is a lamina: n vertices, n edges, two faces.
func Polygon(ids *IDAllocator, pts []Point) (PolygonResult, error) {
	const op = "Polygon"
	if len(pts) < 3 {
		return PolygonResult{}, precondition(op, "", "need at least 3 points, got %d", len(pts))
	}
	if err := CheckDimensions(pts...); err != nil {
		return PolygonResult{}, err
	}

	m := MVFS(ids, pts[0])
	b, f := m.Body, m.Face
	res := PolygonResult{
		Body:     b,
		Vertices: make([]VertexID, 0, len(pts)),
		Edges:    make([]EdgeID, 0, len(pts)),
		Face:     f,
	}
	res.Vertices = append(res.Vertices, m.Vertex)

	for _, p := range pts[1:] {
		r, err := b.MEV(f, res.Vertices[len(res.Vertices)-1], p)
		if err != nil {
			return PolygonResult{}, err
		}
		res.Vertices = append(res.Vertices, r.Vertex)
		res.Edges = append(res.Edges, r.Edge)
	}

	closing, err := b.MEF(f, res.Vertices[len(res.Vertices)-1], res.Vertices[0])
	if err != nil {
		return PolygonResult{}, err
	}
	res.Closing = closing
	res.Edges = append(res.Edges, closing.Edge)
	return res, nil
}

// FindVertexAt returns the first live vertex, in storage order, whose
// coordinate equals p exactly.
func (b *Body) FindVertexAt(p Point) (VertexID, bool) {
	return lo.Find(b.Vertices(), func(v VertexID) bool {
		return slices.Equal(b.vtx(v).coord, p)
	})
}
