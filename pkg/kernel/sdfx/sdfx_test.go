package sdfx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/brep/pkg/kernel"
)

// unitSquare returns two triangles covering [0,1]x[0,1] at z=0.
func unitSquare() []*sdf.Triangle3 {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 1, Y: 1, Z: 0}
	d := v3.Vec{X: 0, Y: 1, Z: 0}
	return []*sdf.Triangle3{{a, b, c}, {a, c, d}}
}

func TestFromTriangles(t *testing.T) {
	mesh := FromTriangles("F2", unitSquare())
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.FaceName != "F2" {
		t.Errorf("FaceName = %q, want F2", mesh.FaceName)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("triangle count = %d, want 2", mesh.TriangleCount())
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	// Counter-clockwise in the xy plane: normals point up.
	for i := 0; i < len(mesh.Normals); i += 3 {
		if math.Abs(float64(mesh.Normals[i+2])-1) > 1e-6 {
			t.Errorf("normal %d = %v, want +z", i/3, mesh.Normals[i:i+3])
		}
	}
}

func TestTrianglesRoundTrip(t *testing.T) {
	mesh := FromTriangles("F1", unitSquare())
	tris := Triangles([]*kernel.Mesh{mesh, nil})
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	want := unitSquare()
	for i := range tris {
		if *tris[i] != *want[i] {
			t.Errorf("triangle %d = %v, want %v", i, *tris[i], *want[i])
		}
	}
}

func TestBounds(t *testing.T) {
	w := New()
	lifted := FromTriangles("top", []*sdf.Triangle3{{
		{X: -2, Y: 0, Z: 5}, {X: 0, Y: 3, Z: 5}, {X: 0, Y: 0, Z: 5},
	}})
	min, max := w.Bounds([]*kernel.Mesh{FromTriangles("base", unitSquare()), lifted})

	expectMin := [3]float64{-2, 0, 0}
	expectMax := [3]float64{1, 3, 5}
	const tol = 1e-6
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}

	zmin, zmax := w.Bounds(nil)
	if zmin != [3]float64{} || zmax != [3]float64{} {
		t.Errorf("empty bounds = %v %v, want zeros", zmin, zmax)
	}
}

func TestWriteMeshes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.stl")
	w := New()
	if err := w.WriteMeshes(path, []*kernel.Mesh{FromTriangles("F1", unitSquare())}); err != nil {
		t.Fatalf("WriteMeshes: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header, uint32 count, 50 bytes per triangle.
	if want := int64(84 + 50*2); info.Size() != want {
		t.Errorf("file size = %d, want %d", info.Size(), want)
	}
}

func TestWriteMeshesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	err := New().WriteMeshes(path, []*kernel.Mesh{{}})
	if !errors.Is(err, ErrNoTriangles) {
		t.Errorf("err = %v, want ErrNoTriangles", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be created for empty input")
	}
}
