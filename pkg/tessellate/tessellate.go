// Package tessellate turns the faces of a body into triangle meshes. One mesh
// is produced per face whose outer loop has at least three uses.
package tessellate

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/kernel/sdfx"
	"github.com/chazu/brep/pkg/topo"
)

// minArea is the smallest doubled triangle area kept by the fan. Slivers
// below it come from dangling edges walked twice by the loop.
const minArea = 1e-12

// Tessellate fan-triangulates the outer loop of every face, assuming faces
// are planar and convex. Coordinates with fewer than three components are
// padded with zeros. Rings are ignored. The tessellator is read-only and
// never mutates the body.
func Tessellate(b *topo.Body) ([]*kernel.Mesh, error) {
	if b == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, f := range b.Faces() {
		mesh, err := tessellateFace(b, f)
		if err != nil {
			return nil, fmt.Errorf("tessellate: face %s: %w", b.FaceName(f), err)
		}
		if mesh != nil {
			meshes = append(meshes, mesh)
		}
	}
	return meshes, nil
}

func tessellateFace(b *topo.Body, f topo.FaceID) (*kernel.Mesh, error) {
	outer, err := b.OuterLoop(f)
	if err != nil {
		return nil, err
	}
	vs, err := b.LoopVertices(outer)
	if err != nil {
		return nil, err
	}
	if len(vs) < 3 {
		return nil, nil
	}

	pts := make([]v3.Vec, len(vs))
	for i, v := range vs {
		p, err := b.Coordinate(v)
		if err != nil {
			return nil, err
		}
		if pts[i], err = toVec(p); err != nil {
			return nil, fmt.Errorf("vertex %s: %w", b.VertexName(v), err)
		}
	}

	tris := fan(pts)
	if len(tris) == 0 {
		return nil, nil
	}
	return sdfx.FromTriangles(b.FaceName(f), tris), nil
}

// fan triangulates a polygon from its first corner, dropping zero-area
// triangles.
func fan(pts []v3.Vec) []*sdf.Triangle3 {
	var out []*sdf.Triangle3
	for i := 1; i+1 < len(pts); i++ {
		t := &sdf.Triangle3{pts[0], pts[i], pts[i+1]}
		if t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length() < minArea {
			continue
		}
		out = append(out, t)
	}
	return out
}

func toVec(p topo.Point) (v3.Vec, error) {
	if p.Dim() > 3 {
		return v3.Vec{}, fmt.Errorf("%w: %d-dimensional point", topo.ErrShapeMismatch, p.Dim())
	}
	var c [3]float64
	copy(c[:], p)
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}
