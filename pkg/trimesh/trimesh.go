// Package trimesh defines the plain face-list triangle mesh that the
// half-edge builder consumes and produces, together with the edge key
// used to detect shared edges.
package trimesh

import "fmt"

// Face is one triangle given as three vertex indices in counter-clockwise
// order.
type Face [3]int

// Rotate returns the face with its corners shifted left by k positions.
// The cyclic orientation is preserved.
func (f Face) Rotate(k int) Face {
	k = ((k % 3) + 3) % 3
	return Face{f[k], f[(k+1)%3], f[(k+2)%3]}
}

// Canonical returns the rotation of f that starts at its smallest index.
func (f Face) Canonical() Face {
	k := 0
	if f[1] < f[k] {
		k = 1
	}
	if f[2] < f[k] {
		k = 2
	}
	return f.Rotate(k)
}

// SameCycle reports whether f and o list the same vertices in the same
// cyclic order.
func (f Face) SameCycle(o Face) bool {
	return f.Canonical() == o.Canonical()
}

// Mesh is a triangle mesh: a vertex table and a list of faces indexing
// into it. Positions are carried opaquely.
type Mesh[P any] struct {
	Positions []P
	Faces     []Face
}

// New returns a mesh over the given positions and faces. The slices are
// not copied.
func New[P any](positions []P, faces []Face) *Mesh[P] {
	return &Mesh[P]{Positions: positions, Faces: faces}
}

// VertexCount returns the number of vertices.
func (m *Mesh[P]) VertexCount() int {
	return len(m.Positions)
}

// FaceCount returns the number of triangles.
func (m *Mesh[P]) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no faces.
func (m *Mesh[P]) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Validate checks that every face index lies in [0, VertexCount). It
// returns the first offending index as an *InvalidIndexError.
func (m *Mesh[P]) Validate() error {
	n := len(m.Positions)
	for i, f := range m.Faces {
		for c, v := range f {
			if v < 0 || v >= n {
				return &InvalidIndexError{Face: i, Corner: c, Index: v, VertexCount: n}
			}
		}
	}
	return nil
}

// FromFlat builds a mesh from a flat index buffer holding three indices
// per triangle, the layout used by kernel.Mesh.
func FromFlat[P any](positions []P, indices []uint32) (*Mesh[P], error) {
	if len(indices)%3 != 0 {
		return nil, &UnsupportedFaceArityError{Face: len(indices) / 3, Arity: len(indices) % 3}
	}
	faces := make([]Face, len(indices)/3)
	for i := range faces {
		faces[i] = Face{int(indices[3*i]), int(indices[3*i+1]), int(indices[3*i+2])}
	}
	m := New(positions, faces)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromPolygons builds a mesh from polygon index lists. Every polygon must
// be a triangle.
func FromPolygons[P any](positions []P, polys [][]int) (*Mesh[P], error) {
	faces := make([]Face, 0, len(polys))
	for i, p := range polys {
		if len(p) != 3 {
			return nil, &UnsupportedFaceArityError{Face: i, Arity: len(p)}
		}
		faces = append(faces, Face{p[0], p[1], p[2]})
	}
	m := New(positions, faces)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// InvalidIndexError reports a face corner that references a vertex
// outside the vertex table.
type InvalidIndexError struct {
	Face        int
	Corner      int
	Index       int
	VertexCount int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("trimesh: face %d corner %d: vertex index %d out of range [0, %d)",
		e.Face, e.Corner, e.Index, e.VertexCount)
}

// UnsupportedFaceArityError reports a polygon that is not a triangle.
type UnsupportedFaceArityError struct {
	Face  int
	Arity int
}

func (e *UnsupportedFaceArityError) Error() string {
	return fmt.Sprintf("trimesh: face %d has %d corners, only triangles are supported", e.Face, e.Arity)
}
