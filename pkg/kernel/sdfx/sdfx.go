// Package sdfx implements kernel.MeshWriter on top of the
// github.com/deadsy/sdfx CAD library and converts between its triangle
// type and kernel.Mesh.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/brep/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.MeshWriter = (*STLWriter)(nil)

// ErrNoTriangles is returned when asked to write an empty set of meshes.
var ErrNoTriangles = errors.New("sdfx: no triangles to write")

// STLWriter writes meshes as binary STL.
type STLWriter struct{}

// New returns a new STLWriter.
func New() *STLWriter {
	return &STLWriter{}
}

// WriteMeshes merges all meshes into one STL file.
func (w *STLWriter) WriteMeshes(path string, meshes []*kernel.Mesh) error {
	tris := Triangles(meshes)
	if len(tris) == 0 {
		return ErrNoTriangles
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: write %s: %w", path, err)
	}
	return nil
}

// Bounds returns the bounding box of every vertex in meshes.
func (w *STLWriter) Bounds(meshes []*kernel.Mesh) (min, max [3]float64) {
	var bb sdf.Box3
	seen := false
	for _, m := range meshes {
		if m == nil {
			continue
		}
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			v := v3.Vec{X: float64(m.Vertices[i]), Y: float64(m.Vertices[i+1]), Z: float64(m.Vertices[i+2])}
			p := sdf.Box3{Min: v, Max: v}
			if !seen {
				bb, seen = p, true
				continue
			}
			bb = bb.Extend(p)
		}
	}
	if !seen {
		return min, max
	}
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Triangles expands indexed meshes into sdfx triangles.
func Triangles(meshes []*kernel.Mesh) []*sdf.Triangle3 {
	var out []*sdf.Triangle3
	for _, m := range meshes {
		if m == nil {
			continue
		}
		for i := 0; i < m.TriangleCount(); i++ {
			c := m.Triangle(i)
			out = append(out, &sdf.Triangle3{toVec(c[0]), toVec(c[1]), toVec(c[2])})
		}
	}
	return out
}

// FromTriangles flattens triangles into an unindexed mesh with one face
// normal per corner.
func FromTriangles(name string, triangles []*sdf.Triangle3) *kernel.Mesh {
	numVerts := len(triangles) * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
		FaceName: name,
	}
}

func toVec(p [3]float32) v3.Vec {
	return v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
