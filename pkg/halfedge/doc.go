// Package halfedge builds a half-edge connectivity structure from a
// triangle face list and converts it back.
//
// Every triangle contributes three directed half-edges linked into a cycle
// by Next. Each half-edge also knows its Twin, the half-edge running the
// opposite way along the same undirected edge in the neighbouring face, or
// itself when the edge lies on the mesh boundary. With that, the ring of a
// vertex, the boundary of a face and the two faces of an edge are all
// reachable in constant time per step.
//
// # Ownership Model
//
// A Mesh owns an arena of HalfEdge records addressed by ID. Next and Twin
// are IDs into the same arena, never into another mesh. Clone rebuilds the
// graph into a fresh arena, so two meshes never share a record.
//
// # Thread Safety
//
// A Mesh is not safe for concurrent use. Build, Clone and ToTriangleMesh are
// synchronous and never block.
//
// # Lifecycle
//
//  1. Create with Build (from a trimesh.Mesh) or Clone (from another Mesh)
//  2. Query with the traversal methods
//  3. Optionally extract a face list with ToTriangleMesh
//  4. Call Release to drop the records
package halfedge
