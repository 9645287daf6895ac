package tessellate_test

import (
	"errors"
	"testing"

	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/kernel/sdfx"
	"github.com/chazu/brep/pkg/tessellate"
	"github.com/chazu/brep/pkg/topo"
)

// buildPrism sweeps the polygon pts up to z=h: a base face, a top face and
// one quad per side.
func buildPrism(t *testing.T, pts []topo.Point, h float64) *topo.Body {
	t.Helper()
	r := topo.MVFS(topo.NewIDAllocator(), pts[0])
	b := r.Body
	bottom := []topo.VertexID{r.Vertex}
	for i := 1; i < len(pts); i++ {
		res, err := b.MEV(r.Face, bottom[i-1], pts[i])
		if err != nil {
			t.Fatalf("MEV base %d: %v", i, err)
		}
		bottom = append(bottom, res.Vertex)
	}
	if _, err := b.MEF(r.Face, bottom[0], bottom[len(bottom)-1]); err != nil {
		t.Fatalf("closing MEF: %v", err)
	}

	top := make([]topo.VertexID, len(bottom))
	for i, v := range bottom {
		p := topo.Point{pts[i][0], pts[i][1], h}
		res, err := b.MEV(r.Face, v, p)
		if err != nil {
			t.Fatalf("MEV side %d: %v", i, err)
		}
		top[i] = res.Vertex
	}
	face := r.Face
	for i := range top {
		res, err := b.MEF(face, top[i], top[(i+1)%len(top)])
		if err != nil {
			t.Fatalf("MEF side %d: %v", i, err)
		}
		face = res.Face
	}
	if errs := b.Validate(); len(errs) > 0 {
		t.Fatalf("prism invalid: %v", errs)
	}
	return b
}

func square() []topo.Point {
	return []topo.Point{{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0}}
}

func TestTessellateNil(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil)
	if err != nil || meshes != nil {
		t.Errorf("Tessellate(nil) = %v, %v", meshes, err)
	}
}

func TestTessellateSingleVertex(t *testing.T) {
	r := topo.MVFS(nil, topo.Point{0, 0, 0})
	meshes, err := tessellate.Tessellate(r.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 0 {
		t.Errorf("got %d meshes for a lone vertex, want 0", len(meshes))
	}
}

func TestTessellateCube(t *testing.T) {
	b := buildPrism(t, square(), 10)
	meshes, err := tessellate.Tessellate(b)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(meshes) != 6 {
		t.Fatalf("got %d meshes, want 6", len(meshes))
	}
	// A box should produce exactly 12 triangles (2 per face, 6 faces).
	if got := kernel.TotalTriangles(meshes); got != 12 {
		t.Errorf("triangles = %d, want 12", got)
	}
	names := map[string]bool{}
	for _, m := range meshes {
		if m.FaceName == "" {
			t.Error("mesh without face name")
		}
		names[m.FaceName] = true
		if len(m.Vertices) != len(m.Normals) {
			t.Errorf("%s: vertices %d != normals %d", m.FaceName, len(m.Vertices), len(m.Normals))
		}
	}
	if len(names) != 6 {
		t.Errorf("face names not unique: %v", names)
	}

	min, max := sdfx.New().Bounds(meshes)
	if min != [3]float64{0, 0, 0} || max != [3]float64{10, 10, 10} {
		t.Errorf("bounds = %v..%v, want [0 0 0]..[10 10 10]", min, max)
	}
}

func TestTessellateTriangularPrism(t *testing.T) {
	b := buildPrism(t, []topo.Point{{0, 0, 0}, {4, 0, 0}, {0, 3, 0}}, 2)
	meshes, err := tessellate.Tessellate(b)
	if err != nil {
		t.Fatal(err)
	}
	// Two triangles plus three quads: sum of (sides - 2).
	if got := kernel.TotalTriangles(meshes); got != 1+1+3*2 {
		t.Errorf("triangles = %d, want 8", got)
	}
}

func TestTessellatePadsPlanarPoints(t *testing.T) {
	r := topo.MVFS(nil, topo.Point{0, 0})
	b := r.Body
	v1, _ := b.MEV(r.Face, r.Vertex, topo.Point{1, 0})
	v2, _ := b.MEV(r.Face, v1.Vertex, topo.Point{0, 1})
	if _, err := b.MEF(r.Face, r.Vertex, v2.Vertex); err != nil {
		t.Fatal(err)
	}
	meshes, err := tessellate.Tessellate(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(meshes))
	}
	for _, m := range meshes {
		for i := 2; i < len(m.Vertices); i += 3 {
			if m.Vertices[i] != 0 {
				t.Errorf("padded z = %v, want 0", m.Vertices[i])
			}
		}
	}
}

func TestTessellateRejectsHighDimension(t *testing.T) {
	r := topo.MVFS(nil, topo.Point{0, 0, 0, 0})
	b := r.Body
	v1, _ := b.MEV(r.Face, r.Vertex, topo.Point{1, 0, 0, 0})
	if _, err := b.MEV(r.Face, v1.Vertex, topo.Point{0, 1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	_, err := tessellate.Tessellate(b)
	if !errors.Is(err, topo.ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestTessellateDoesNotMutate(t *testing.T) {
	b := buildPrism(t, square(), 1)
	before := [5]int{b.NumVertices(), b.NumEdges(), b.NumHalfEdges(), b.NumLoops(), b.NumFaces()}
	if _, err := tessellate.Tessellate(b); err != nil {
		t.Fatal(err)
	}
	after := [5]int{b.NumVertices(), b.NumEdges(), b.NumHalfEdges(), b.NumLoops(), b.NumFaces()}
	if before != after {
		t.Errorf("counts changed: %v -> %v", before, after)
	}
	if errs := b.Validate(); len(errs) > 0 {
		t.Errorf("body invalid after tessellation: %v", errs)
	}
}
