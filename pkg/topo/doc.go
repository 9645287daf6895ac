// Package topo is a boundary-representation topology kernel.
//
// A Body owns vertices, edges, half-edges (directed edge uses), loops and
// faces. Entities are addressed by generational handles into Body-owned
// arenas; the records themselves are never exposed. The only way to change a
// body's connectivity is through the eight Euler operators, which come in
// four inverse pairs:
//
//	MVFS / KVFS   make (kill) vertex, face, solid
//	MEV  / KEV    make (kill) edge and vertex
//	MEF  / KEF    make (kill) edge and face
//	KEMR / MEKR   kill (make) edge, make (kill) ring
//
// Geometry is opaque: a vertex stores the Point it was created with and hands
// it back unchanged, and a face carries an arbitrary surface value. The
// kernel performs no geometric tests.
//
// A Body is not safe for concurrent use.
package topo
