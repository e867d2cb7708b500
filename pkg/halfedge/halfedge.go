package halfedge

import "fmt"

// ID addresses a half-edge record inside one mesh's arena.
type ID int

// None marks a missing half-edge, e.g. the representative of a vertex no
// face uses.
const None ID = -1

// HalfEdge is one directed edge of one triangle.
type HalfEdge struct {
	Origin int // vertex the half-edge starts from
	Face   int // triangle that owns it
	Edge   int // undirected edge id, shared with the twin
	Next   ID  // next half-edge counter-clockwise around Face
	Twin   ID  // opposite half-edge, or the record itself on the boundary
}

func (h HalfEdge) String() string {
	return fmt.Sprintf("(o: %d, f: %d, e: %d, n: %d, t: %d)", h.Origin, h.Face, h.Edge, h.Next, h.Twin)
}

// Mesh is a half-edge mesh over vertex positions of type P. The positions
// are carried through untouched.
type Mesh[P any] struct {
	positions []P
	records   []HalfEdge

	// One representative half-edge per vertex, edge and face.
	verts []ID
	edges []ID
	faces []ID
}

// Positions returns the vertex positions. The slice belongs to the mesh.
func (m *Mesh[P]) Positions() []P {
	return m.positions
}

// VertexCount returns the number of vertex slots.
func (m *Mesh[P]) VertexCount() int {
	return len(m.verts)
}

// EdgeCount returns the number of distinct undirected edges.
func (m *Mesh[P]) EdgeCount() int {
	return len(m.edges)
}

// FaceCount returns the number of triangles.
func (m *Mesh[P]) FaceCount() int {
	return len(m.faces)
}

// HalfEdgeCount returns the number of records the mesh owns.
func (m *Mesh[P]) HalfEdgeCount() int {
	return len(m.records)
}

// Record returns the record for id. The pointer aliases the mesh's arena
// and is invalidated by Release.
func (m *Mesh[P]) Record(id ID) *HalfEdge {
	return &m.records[id]
}

// Next returns the half-edge following h around its face.
func (m *Mesh[P]) Next(h ID) ID {
	return m.records[h].Next
}

// Prev returns the half-edge preceding h around its face.
func (m *Mesh[P]) Prev(h ID) ID {
	return m.records[m.records[h].Next].Next
}

// Twin returns the opposite half-edge of h, or h itself on the boundary.
func (m *Mesh[P]) Twin(h ID) ID {
	return m.records[h].Twin
}

// Origin returns the vertex h starts from.
func (m *Mesh[P]) Origin(h ID) int {
	return m.records[h].Origin
}

// Dest returns the vertex h points to.
func (m *Mesh[P]) Dest(h ID) int {
	return m.records[m.records[h].Next].Origin
}

// FaceOf returns the triangle owning h.
func (m *Mesh[P]) FaceOf(h ID) int {
	return m.records[h].Face
}

// EdgeOf returns the undirected edge id of h.
func (m *Mesh[P]) EdgeOf(h ID) int {
	return m.records[h].Edge
}

// IsBoundary reports whether h lies on an edge used by a single face.
func (m *Mesh[P]) IsBoundary(h ID) bool {
	return m.records[h].Twin == h
}

// VertexHalfEdge returns some half-edge leaving vertex v, or None if no
// face uses v. Which one is unspecified.
func (m *Mesh[P]) VertexHalfEdge(v int) ID {
	return m.verts[v]
}

// EdgeHalfEdge returns one of the half-edges of edge e.
func (m *Mesh[P]) EdgeHalfEdge(e int) ID {
	return m.edges[e]
}

// FaceHalfEdge returns one of the half-edges of face f.
func (m *Mesh[P]) FaceHalfEdge(f int) ID {
	return m.faces[f]
}

// alloc appends a record and returns its id.
func (m *Mesh[P]) alloc(h HalfEdge) ID {
	m.records = append(m.records, h)
	return ID(len(m.records) - 1)
}

// newTables sizes the representative tables, filling them with None.
func newTables(nv, ne, nf int) (verts, edges, faces []ID) {
	verts = make([]ID, nv)
	edges = make([]ID, ne)
	faces = make([]ID, nf)
	for _, t := range [][]ID{verts, edges, faces} {
		for i := range t {
			t[i] = None
		}
	}
	return verts, edges, faces
}
