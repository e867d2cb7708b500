package halfedge

import (
	"github.com/chazu/bem/pkg/trimesh"
	"github.com/samber/lo"
)

// FaceHalfEdges returns the three half-edges of face f in cycle order,
// starting at the face representative.
func (m *Mesh[P]) FaceHalfEdges(f int) [3]ID {
	a := m.faces[f]
	b := m.records[a].Next
	return [3]ID{a, b, m.records[b].Next}
}

// FaceVertices returns the corners of face f in counter-clockwise order.
func (m *Mesh[P]) FaceVertices(f int) trimesh.Face {
	hs := m.FaceHalfEdges(f)
	return trimesh.Face{m.records[hs[0]].Origin, m.records[hs[1]].Origin, m.records[hs[2]].Origin}
}

// EdgeVertices returns the endpoints of edge e as seen from its
// representative half-edge.
func (m *Mesh[P]) EdgeVertices(e int) (a, b int) {
	h := m.edges[e]
	return m.Origin(h), m.Dest(h)
}

// EdgeFaces returns the faces on either side of edge e. For a boundary
// edge both results are the single owning face and interior is false.
func (m *Mesh[P]) EdgeFaces(e int) (f0, f1 int, interior bool) {
	h := m.edges[e]
	t := m.records[h].Twin
	return m.records[h].Face, m.records[t].Face, t != h
}

// VertexRing returns the half-edges leaving v in counter-clockwise order.
// For a vertex on the boundary the fan is listed from one boundary edge to
// the other. Only the fan containing the vertex representative is
// visited. A vertex used by no face has an empty ring.
func (m *Mesh[P]) VertexRing(v int) []ID {
	start := m.verts[v]
	if start == None {
		return nil
	}
	limit := len(m.records)

	ring := []ID{start}
	h := start
	for len(ring) <= limit {
		p := m.Prev(h)
		if m.IsBoundary(p) {
			break
		}
		h = m.records[p].Twin
		if h == start {
			return ring
		}
		ring = append(ring, h)
	}

	// Open fan: collect the clockwise side of start, then put it in front.
	var back []ID
	h = start
	for !m.IsBoundary(h) && len(back) <= limit {
		h = m.records[m.records[h].Twin].Next
		back = append(back, h)
	}
	return append(lo.Reverse(back), ring...)
}

// VertexNeighbors returns the vertices sharing an edge with v, in the
// same order as VertexRing.
func (m *Mesh[P]) VertexNeighbors(v int) []int {
	ring := m.VertexRing(v)
	if len(ring) == 0 {
		return nil
	}
	out := lo.Map(ring, func(h ID, _ int) int { return m.Dest(h) })
	if last := m.Prev(ring[len(ring)-1]); m.IsBoundary(last) {
		out = append(out, m.Origin(last))
	}
	return out
}

// IsBoundaryVertex reports whether v touches a boundary edge.
func (m *Mesh[P]) IsBoundaryVertex(v int) bool {
	ring := m.VertexRing(v)
	if len(ring) == 0 {
		return false
	}
	return m.IsBoundary(ring[0]) || m.IsBoundary(m.Prev(ring[len(ring)-1]))
}

// BoundaryEdges returns the ids of all edges used by a single face.
func (m *Mesh[P]) BoundaryEdges() []int {
	var out []int
	for e, h := range m.edges {
		if m.records[h].Twin == h {
			out = append(out, e)
		}
	}
	return out
}

// Stats summarises the size and topology of a mesh.
type Stats struct {
	Vertices      int `json:"vertices"`
	Faces         int `json:"faces"`
	Edges         int `json:"edges"`
	HalfEdges     int `json:"halfEdges"`
	BoundaryEdges int `json:"boundaryEdges"`
	InteriorEdges int `json:"interiorEdges"`
	// Euler characteristic V - E + F over vertices used by some face.
	Euler int `json:"euler"`
}

// Stats computes the mesh statistics.
func (m *Mesh[P]) Stats() Stats {
	boundary := lo.CountBy(m.edges, func(h ID) bool { return m.records[h].Twin == h })
	used := lo.CountBy(m.verts, func(h ID) bool { return h != None })
	return Stats{
		Vertices:      len(m.verts),
		Faces:         len(m.faces),
		Edges:         len(m.edges),
		HalfEdges:     len(m.records),
		BoundaryEdges: boundary,
		InteriorEdges: len(m.edges) - boundary,
		Euler:         used - len(m.edges) + len(m.faces),
	}
}
