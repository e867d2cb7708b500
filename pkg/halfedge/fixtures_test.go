package halfedge

import (
	"testing"

	"github.com/chazu/bem/pkg/trimesh"
)

// ---------------------------------------------------------------------------
// Test meshes
// ---------------------------------------------------------------------------

type xy [2]float64

// square is the unit square split along the 0-2 diagonal.
func square() *trimesh.Mesh[xy] {
	return trimesh.New(
		[]xy{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]trimesh.Face{{0, 1, 2}, {0, 2, 3}},
	)
}

func triangle() *trimesh.Mesh[xy] {
	return trimesh.New([]xy{{0, 0}, {1, 0}, {0, 1}}, []trimesh.Face{{0, 1, 2}})
}

// tetrahedron is closed and consistently oriented.
func tetrahedron() *trimesh.Mesh[xy] {
	return trimesh.New(
		make([]xy, 4),
		[]trimesh.Face{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	)
}

// octahedron is closed with every vertex of degree four.
func octahedron() *trimesh.Mesh[xy] {
	return trimesh.New(
		make([]xy, 6),
		[]trimesh.Face{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
	)
}

// fan is an open fan of four triangles around vertex 0.
func fan() *trimesh.Mesh[xy] {
	return trimesh.New(
		make([]xy, 6),
		[]trimesh.Face{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}},
	)
}

// grid is an n x n patch of quads, each split into two triangles.
func grid(n int) *trimesh.Mesh[xy] {
	idx := func(i, j int) int { return j*(n+1) + i }
	var pos []xy
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			pos = append(pos, xy{float64(i), float64(j)})
		}
	}
	var faces []trimesh.Face
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			faces = append(faces, trimesh.Face{a, b, c}, trimesh.Face{a, c, d})
		}
	}
	return trimesh.New(pos, faces)
}

// corpusCase is a manifold input with its expected edge counts.
type corpusCase struct {
	name     string
	mesh     *trimesh.Mesh[xy]
	edges    int
	boundary int
}

func corpus() []corpusCase {
	return []corpusCase{
		{"triangle", triangle(), 3, 3},
		{"square", square(), 5, 4},
		{"tetrahedron", tetrahedron(), 6, 0},
		{"octahedron", octahedron(), 12, 0},
		{"fan", fan(), 9, 6},
		{"grid3", grid(3), 33, 12},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustBuild(t *testing.T, tm *trimesh.Mesh[xy]) *Mesh[xy] {
	t.Helper()
	m, err := Build(tm)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

// requireSound fails the test on any error-severity finding.
func requireSound(t *testing.T, m *Mesh[xy]) {
	t.Helper()
	for _, e := range m.Validate() {
		if e.Severity == SeverityError {
			t.Errorf("invariant broken: %v", e)
		}
	}
}

// snapshot copies every record out of the arena.
func snapshot(m *Mesh[xy]) []HalfEdge {
	out := make([]HalfEdge, m.HalfEdgeCount())
	for i := range out {
		out[i] = *m.Record(ID(i))
	}
	return out
}

func sameRecords(a, b []HalfEdge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
