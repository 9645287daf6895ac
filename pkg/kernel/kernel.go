// Package kernel defines the mesh types produced from a body and the
// interface used to persist them. Implementations (sdfx) own the file
// format; the rest of the system only sees Mesh values.
package kernel

// MeshWriter persists tessellated faces.
type MeshWriter interface {
	// WriteMeshes writes all meshes into a single file at path.
	WriteMeshes(path string, meshes []*Mesh) error

	// Bounds returns the axis-aligned bounding box of all mesh vertices.
	// Empty input yields two zero vectors.
	Bounds(meshes []*Mesh) (min, max [3]float64)
}

// TotalTriangles sums TriangleCount over meshes, skipping nil entries.
func TotalTriangles(meshes []*Mesh) int {
	n := 0
	for _, m := range meshes {
		if m != nil {
			n += m.TriangleCount()
		}
	}
	return n
}
