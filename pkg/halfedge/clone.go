package halfedge

// Clone returns an independent mesh with the same connectivity. The
// records are rebuilt rather than copied: the first pass walks the source
// edges and allocates one record per boundary edge and a twinned pair per
// interior edge, the second pass walks the source faces and links the new
// records of each face into a cycle. Record IDs in the clone generally
// differ from the source; vertex, edge and face indices do not.
func (m *Mesh[P]) Clone() *Mesh[P] {
	c := &Mesh[P]{
		positions: append([]P(nil), m.positions...),
		records:   make([]HalfEdge, 0, len(m.records)),
	}
	c.verts, c.edges, c.faces = newTables(len(m.verts), len(m.edges), len(m.faces))

	for _, src := range m.edges {
		s := m.records[src]
		if s.Twin == src {
			a := c.alloc(HalfEdge{Origin: s.Origin, Face: s.Face, Edge: s.Edge, Next: None})
			c.records[a].Twin = a
			c.install(a)
			continue
		}
		t := m.records[s.Twin]
		a := c.alloc(HalfEdge{Origin: s.Origin, Face: s.Face, Edge: s.Edge, Next: None})
		b := c.alloc(HalfEdge{Origin: t.Origin, Face: t.Face, Edge: t.Edge, Next: None, Twin: a})
		c.records[a].Twin = b
		c.install(a)
		c.install(b)
	}

	for f, src := range m.faces {
		s1 := m.records[src].Next
		s2 := m.records[s1].Next
		a := c.faceSide(m.records[src].Edge, f)
		b := c.faceSide(m.records[s1].Edge, f)
		d := c.faceSide(m.records[s2].Edge, f)
		c.records[a].Next = b
		c.records[b].Next = d
		c.records[d].Next = a
	}

	return c
}

// install makes h the representative of its vertex, edge and face.
func (m *Mesh[P]) install(h ID) {
	r := m.records[h]
	m.verts[r.Origin] = h
	m.edges[r.Edge] = h
	m.faces[r.Face] = h
}

// faceSide returns the half-edge of edge e that belongs to face f.
func (m *Mesh[P]) faceSide(e, f int) ID {
	h := m.edges[e]
	if m.records[h].Face != f {
		h = m.records[h].Twin
	}
	return h
}
