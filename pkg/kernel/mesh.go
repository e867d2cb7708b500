package kernel

// Mesh is a triangle soup as produced by a Kernel. All arrays are flat:
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per vertex,
// indices has 3 uint32s per triangle. Kernels are free to emit unshared
// vertices, so two triangles touching in space need not share an index;
// trimesh.Weld turns a soup into an indexed mesh.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the coordinates of vertex i.
func (m *Mesh) Vertex(i int) (x, y, z float32) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}
