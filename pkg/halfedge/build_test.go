package halfedge

import (
	"errors"
	"testing"

	"github.com/chazu/bem/pkg/trimesh"
)

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestBuildSquare(t *testing.T) {
	m := mustBuild(t, square())
	requireSound(t, m)

	if m.VertexCount() != 4 || m.FaceCount() != 2 || m.HalfEdgeCount() != 6 {
		t.Fatalf("counts = (%d, %d, %d), want (4, 2, 6)", m.VertexCount(), m.FaceCount(), m.HalfEdgeCount())
	}
	if m.EdgeCount() != 5 {
		t.Fatalf("EdgeCount() = %d, want 5", m.EdgeCount())
	}

	interior := 0
	for e := 0; e < m.EdgeCount(); e++ {
		a, b := m.EdgeVertices(e)
		f0, f1, in := m.EdgeFaces(e)
		isDiagonal := trimesh.Key(a, b) == trimesh.Key(0, 2)
		if in != isDiagonal {
			t.Errorf("edge %d-%d interior = %v, want %v", a, b, in, isDiagonal)
		}
		if in {
			interior++
			if f0 == f1 {
				t.Errorf("interior edge %d-%d has the same face on both sides", a, b)
			}
			h := m.EdgeHalfEdge(e)
			if m.Origin(m.Twin(h)) != m.Dest(h) {
				t.Errorf("diagonal twins are not opposite")
			}
		}
	}
	if interior != 1 {
		t.Errorf("interior edges = %d, want 1", interior)
	}
	if got := len(m.BoundaryEdges()); got != 4 {
		t.Errorf("boundary edges = %d, want 4", got)
	}
}

func TestBuildSingleTriangleIsAllBoundary(t *testing.T) {
	m := mustBuild(t, triangle())
	requireSound(t, m)
	for h := ID(0); h < ID(m.HalfEdgeCount()); h++ {
		if m.Twin(h) != h {
			t.Errorf("half-edge %d twin = %d, want itself", h, m.Twin(h))
		}
	}
}

func TestBuildTwoTrianglesSharingOneEdge(t *testing.T) {
	tm := trimesh.New(make([]xy, 4), []trimesh.Face{{0, 1, 2}, {2, 1, 3}})
	m := mustBuild(t, tm)
	requireSound(t, m)

	st := m.Stats()
	if st.InteriorEdges != 1 || st.BoundaryEdges != 4 {
		t.Fatalf("stats = %+v, want 1 interior and 4 boundary", st)
	}
	for _, h := range m.FaceHalfEdges(0) {
		if m.Origin(h) == 1 && m.Dest(h) == 2 {
			tw := m.Twin(h)
			if m.FaceOf(tw) != 1 || m.Origin(tw) != 2 || m.Dest(tw) != 1 {
				t.Errorf("twin of 1->2 is %v, want 2->1 in face 1", *m.Record(tw))
			}
			return
		}
	}
	t.Fatal("face 0 has no 1->2 half-edge")
}

func TestBuildEmpty(t *testing.T) {
	m := mustBuild(t, trimesh.New[xy](nil, nil))
	if m.VertexCount() != 0 || m.EdgeCount() != 0 || m.FaceCount() != 0 {
		t.Errorf("empty mesh has counts (%d, %d, %d)", m.VertexCount(), m.EdgeCount(), m.FaceCount())
	}
	if errs := m.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v", errs)
	}
}

func TestBuildCopiesPositions(t *testing.T) {
	tm := square()
	m := mustBuild(t, tm)
	tm.Positions[0] = xy{42, 42}
	if m.Positions()[0] != (xy{0, 0}) {
		t.Errorf("mesh position changed with input: %v", m.Positions()[0])
	}
}

func TestBuildIsolatedVertex(t *testing.T) {
	tm := trimesh.New(make([]xy, 4), []trimesh.Face{{0, 1, 2}})
	m := mustBuild(t, tm)
	requireSound(t, m)
	if m.VertexHalfEdge(3) != None {
		t.Errorf("unused vertex representative = %d, want None", m.VertexHalfEdge(3))
	}
	if ring := m.VertexRing(3); ring != nil {
		t.Errorf("unused vertex ring = %v, want nil", ring)
	}
	if st := m.Stats(); st.Euler != 1 {
		t.Errorf("Euler = %d, want 1 (isolated vertex not counted)", st.Euler)
	}
}

// ---------------------------------------------------------------------------
// Rejected input
// ---------------------------------------------------------------------------

func TestBuildRejectsOutOfRangeIndex(t *testing.T) {
	tm := trimesh.New(make([]xy, 3), []trimesh.Face{{0, 1, 2}, {0, 2, 5}})
	_, err := Build(tm)
	var idx *trimesh.InvalidIndexError
	if !errors.As(err, &idx) {
		t.Fatalf("Build() error = %v, want *trimesh.InvalidIndexError", err)
	}
	if idx.Face != 1 || idx.Index != 5 {
		t.Errorf("unexpected error fields: %+v", idx)
	}
}

func TestBuildRejectsNonManifoldEdge(t *testing.T) {
	tm := trimesh.New(make([]xy, 5), []trimesh.Face{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
	_, err := Build(tm)
	if !errors.Is(err, ErrNonManifold) {
		t.Fatalf("Build() error = %v, want ErrNonManifold", err)
	}
	var nm *NonManifoldEdgeError
	if !errors.As(err, &nm) {
		t.Fatalf("Build() error = %v, want *NonManifoldEdgeError", err)
	}
	if nm.A != 0 || nm.B != 1 {
		t.Errorf("edge = %d-%d, want 0-1", nm.A, nm.B)
	}
	if len(nm.Faces) != 3 || nm.Faces[0] != 0 || nm.Faces[1] != 1 || nm.Faces[2] != 2 {
		t.Errorf("faces = %v, want [0 1 2]", nm.Faces)
	}
}

func TestBuildPairsInconsistentOrientation(t *testing.T) {
	// Both faces run 0->1, so the shared edge is paired but flagged.
	tm := trimesh.New(make([]xy, 4), []trimesh.Face{{0, 1, 2}, {0, 1, 3}})
	m := mustBuild(t, tm)

	errs := m.Validate()
	if HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(errs) == 0 {
		t.Fatal("expected orientation warnings")
	}
	for _, e := range errs {
		if e.Severity != SeverityWarning {
			t.Errorf("finding %v is not a warning", e)
		}
	}
	if m.Stats().InteriorEdges != 1 {
		t.Errorf("interior edges = %d, want 1", m.Stats().InteriorEdges)
	}
}

// ---------------------------------------------------------------------------
// Properties over the corpus
// ---------------------------------------------------------------------------

func TestCorpusInvariants(t *testing.T) {
	for _, c := range corpus() {
		t.Run(c.name, func(t *testing.T) {
			m := mustBuild(t, c.mesh)
			if errs := m.Validate(); len(errs) != 0 {
				t.Fatalf("Validate() = %v", errs)
			}

			for h := ID(0); h < ID(m.HalfEdgeCount()); h++ {
				if m.Twin(m.Twin(h)) != h {
					t.Errorf("twin(twin(%d)) != %d", h, h)
				}
				if m.Next(m.Next(m.Next(h))) != h {
					t.Errorf("next^3(%d) != %d", h, h)
				}
			}

			st := m.Stats()
			if st.Edges != c.edges || st.BoundaryEdges != c.boundary {
				t.Errorf("edges/boundary = %d/%d, want %d/%d", st.Edges, st.BoundaryEdges, c.edges, c.boundary)
			}
			if want := (3*m.FaceCount() + st.BoundaryEdges) / 2; st.Edges != want {
				t.Errorf("edges = %d, want (3F+B)/2 = %d", st.Edges, want)
			}
		})
	}
}

func TestVertexRepresentativeIsIncident(t *testing.T) {
	for _, c := range corpus() {
		t.Run(c.name, func(t *testing.T) {
			m := mustBuild(t, c.mesh)
			for v := 0; v < m.VertexCount(); v++ {
				h := m.VertexHalfEdge(v)
				if h == None {
					t.Errorf("vertex %d has no representative", v)
					continue
				}
				if m.Origin(h) != v {
					t.Errorf("vertex %d representative starts at %d", v, m.Origin(h))
				}
			}
			for f := 0; f < m.FaceCount(); f++ {
				if m.FaceOf(m.FaceHalfEdge(f)) != f {
					t.Errorf("face %d representative belongs to %d", f, m.FaceOf(m.FaceHalfEdge(f)))
				}
			}
		})
	}
}

func TestEdgeIdsGroupExactlyTwins(t *testing.T) {
	m := mustBuild(t, grid(4))
	members := make(map[int][]ID)
	for h := ID(0); h < ID(m.HalfEdgeCount()); h++ {
		members[m.EdgeOf(h)] = append(members[m.EdgeOf(h)], h)
	}
	if len(members) != m.EdgeCount() {
		t.Fatalf("distinct edge ids = %d, want %d", len(members), m.EdgeCount())
	}
	for e, hs := range members {
		switch len(hs) {
		case 1:
			if m.Twin(hs[0]) != hs[0] {
				t.Errorf("edge %d: lone half-edge is not its own twin", e)
			}
		case 2:
			if m.Twin(hs[0]) != hs[1] || m.Twin(hs[1]) != hs[0] {
				t.Errorf("edge %d: half-edges %v are not twins", e, hs)
			}
		default:
			t.Errorf("edge %d has %d half-edges", e, len(hs))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range corpus() {
		t.Run(c.name, func(t *testing.T) {
			out := mustBuild(t, c.mesh).ToTriangleMesh()
			if out.FaceCount() != c.mesh.FaceCount() {
				t.Fatalf("faces = %d, want %d", out.FaceCount(), c.mesh.FaceCount())
			}
			for i, f := range c.mesh.Faces {
				if !out.Faces[i].SameCycle(f) {
					t.Errorf("face %d = %v, want a rotation of %v", i, out.Faces[i], f)
				}
			}
			if len(out.Positions) != len(c.mesh.Positions) {
				t.Errorf("positions = %d, want %d", len(out.Positions), len(c.mesh.Positions))
			}
			for i := range out.Positions {
				if out.Positions[i] != c.mesh.Positions[i] {
					t.Errorf("position %d = %v, want %v", i, out.Positions[i], c.mesh.Positions[i])
				}
			}
		})
	}
}
