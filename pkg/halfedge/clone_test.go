package halfedge

import "testing"

// ---------------------------------------------------------------------------
// Copy
// ---------------------------------------------------------------------------

func TestCloneMatchesSource(t *testing.T) {
	for _, c := range corpus() {
		t.Run(c.name, func(t *testing.T) {
			src := mustBuild(t, c.mesh)
			cp := src.Clone()

			if errs := cp.Validate(); len(errs) != 0 {
				t.Fatalf("clone Validate() = %v", errs)
			}
			if cp.Stats() != src.Stats() {
				t.Errorf("clone stats = %+v, want %+v", cp.Stats(), src.Stats())
			}
			for f := 0; f < src.FaceCount(); f++ {
				if !cp.FaceVertices(f).SameCycle(src.FaceVertices(f)) {
					t.Errorf("face %d = %v, want a rotation of %v", f, cp.FaceVertices(f), src.FaceVertices(f))
				}
			}
			for e := 0; e < src.EdgeCount(); e++ {
				_, _, srcIn := src.EdgeFaces(e)
				_, _, cpIn := cp.EdgeFaces(e)
				if srcIn != cpIn {
					t.Errorf("edge %d interior = %v in clone, %v in source", e, cpIn, srcIn)
				}
			}
			for h := ID(0); h < ID(cp.HalfEdgeCount()); h++ {
				if cp.Twin(cp.Twin(h)) != h {
					t.Errorf("clone twin(twin(%d)) != %d", h, h)
				}
			}
		})
	}
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	src := mustBuild(t, grid(2))
	cp := src.Clone()
	want := snapshot(cp)
	wantStats := cp.Stats()

	// Scribble over the source records and positions.
	for h := ID(0); h < ID(src.HalfEdgeCount()); h++ {
		r := src.Record(h)
		r.Origin, r.Twin, r.Next = 0, 0, 0
	}
	src.Positions()[0] = xy{-1, -1}

	if !sameRecords(snapshot(cp), want) {
		t.Fatal("clone records changed after mutating the source")
	}
	if cp.Positions()[0] != (xy{0, 0}) {
		t.Errorf("clone position changed: %v", cp.Positions()[0])
	}

	src.Release()
	requireSound(t, cp)
	if cp.Stats() != wantStats {
		t.Errorf("clone stats after source release = %+v, want %+v", cp.Stats(), wantStats)
	}
}

func TestSourceIsIndependentOfClone(t *testing.T) {
	src := mustBuild(t, octahedron())
	want := snapshot(src)

	cp := src.Clone()
	for h := ID(0); h < ID(cp.HalfEdgeCount()); h++ {
		cp.Record(h).Face = 7
	}
	cp.Release()

	if !sameRecords(snapshot(src), want) {
		t.Fatal("source records changed after mutating the clone")
	}
	requireSound(t, src)
}

func TestCloneOfClone(t *testing.T) {
	src := mustBuild(t, fan())
	cp := src.Clone().Clone()
	requireSound(t, cp)
	out := cp.ToTriangleMesh()
	for i, f := range fan().Faces {
		if !out.Faces[i].SameCycle(f) {
			t.Errorf("face %d = %v, want a rotation of %v", i, out.Faces[i], f)
		}
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestReleaseCountsThreePerFace(t *testing.T) {
	for _, c := range corpus() {
		t.Run(c.name, func(t *testing.T) {
			m := mustBuild(t, c.mesh)
			if got, want := m.Release(), 3*c.mesh.FaceCount(); got != want {
				t.Errorf("Release() = %d, want %d", got, want)
			}
			if got := m.Release(); got != 0 {
				t.Errorf("second Release() = %d, want 0", got)
			}
			if m.VertexCount() != 0 || m.EdgeCount() != 0 || m.FaceCount() != 0 || m.HalfEdgeCount() != 0 {
				t.Errorf("released mesh still reports (%d, %d, %d, %d)",
					m.VertexCount(), m.EdgeCount(), m.FaceCount(), m.HalfEdgeCount())
			}
		})
	}
}

func TestReleaseClonedMesh(t *testing.T) {
	cp := mustBuild(t, square()).Clone()
	if got := cp.Release(); got != 6 {
		t.Errorf("Release() on clone = %d, want 6", got)
	}
}
