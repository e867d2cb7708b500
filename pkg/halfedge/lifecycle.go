package halfedge

import "github.com/chazu/bem/pkg/trimesh"

// ToTriangleMesh extracts a face list, one triangle per face starting at
// the face's representative half-edge. Corners may come out rotated
// relative to the input of Build but keep their orientation. Edge ids and
// twin links are not carried over. Positions are copied.
func (m *Mesh[P]) ToTriangleMesh() *trimesh.Mesh[P] {
	faces := make([]trimesh.Face, len(m.faces))
	for i := range m.faces {
		faces[i] = m.FaceVertices(i)
	}
	return trimesh.New(append([]P(nil), m.positions...), faces)
}

// Release drops every record the mesh owns and empties its tables. The
// records are counted by walking each face's three-cycle, never through
// the vertex or edge tables, which only alias face-owned records. It
// returns the number of records released; releasing again returns 0.
func (m *Mesh[P]) Release() int {
	released := 0
	for _, a := range m.faces {
		b := m.records[a].Next
		c := m.records[b].Next
		for _, h := range [3]ID{a, b, c} {
			m.records[h] = HalfEdge{Next: None, Twin: None}
		}
		released += 3
	}
	m.positions = nil
	m.records = nil
	m.verts = nil
	m.edges = nil
	m.faces = nil
	return released
}
