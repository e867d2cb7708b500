package halfedge

import (
	"fmt"
	"sort"

	"github.com/chazu/bem/pkg/trimesh"
)

// keyedHalfEdge pairs a half-edge with the canonical key of its edge.
type keyedHalfEdge struct {
	key trimesh.EdgeKey
	he  ID
}

// Build constructs the half-edge mesh of tm. Face indices must lie in
// range and every undirected edge may be shared by at most two faces;
// violations are reported as *trimesh.InvalidIndexError and
// *NonManifoldEdgeError. Faces are assumed to have three distinct
// vertices. Positions are copied.
func Build[P any](tm *trimesh.Mesh[P]) (*Mesh[P], error) {
	if err := tm.Validate(); err != nil {
		return nil, fmt.Errorf("halfedge: build: %w", err)
	}

	nf := len(tm.Faces)
	m := &Mesh[P]{
		positions: append([]P(nil), tm.Positions...),
		records:   make([]HalfEdge, 0, 3*nf),
	}
	m.verts, _, m.faces = newTables(len(tm.Positions), 0, nf)

	keys := make([]keyedHalfEdge, 0, 3*nf)
	for i, f := range tm.Faces {
		a := ID(3 * i)
		b, c := a+1, a+2

		m.alloc(HalfEdge{Origin: f[0], Face: i, Next: b})
		m.alloc(HalfEdge{Origin: f[1], Face: i, Next: c})
		m.alloc(HalfEdge{Origin: f[2], Face: i, Next: a})

		m.faces[i] = a
		// Later faces overwrite earlier ones; any incident half-edge will do.
		m.verts[f[0]] = a
		m.verts[f[1]] = b
		m.verts[f[2]] = c

		keys = append(keys,
			keyedHalfEdge{trimesh.Key(f[0], f[1]), a},
			keyedHalfEdge{trimesh.Key(f[1], f[2]), b},
			keyedHalfEdge{trimesh.Key(f[2], f[0]), c},
		)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].key.Less(keys[j].key)
	})

	m.edges = make([]ID, 0, (3*nf+1)/2)
	for i := 0; i < len(keys); {
		j := i + 1
		for j < len(keys) && keys[j].key == keys[i].key {
			j++
		}
		edge := len(m.edges)
		switch j - i {
		case 1:
			h := keys[i].he
			m.records[h].Twin = h
			m.records[h].Edge = edge
		case 2:
			a, b := keys[i].he, keys[i+1].he
			m.records[a].Twin = b
			m.records[b].Twin = a
			m.records[a].Edge = edge
			m.records[b].Edge = edge
		default:
			return nil, nonManifold(m, keys[i:j])
		}
		m.edges = append(m.edges, keys[i].he)
		i = j
	}

	return m, nil
}

// nonManifold describes a run of more than two half-edges on one edge.
func nonManifold[P any](m *Mesh[P], run []keyedHalfEdge) error {
	faces := make([]int, len(run))
	for i, k := range run {
		faces[i] = m.records[k.he].Face
	}
	sort.Ints(faces)
	return &NonManifoldEdgeError{A: run[0].key.Lo, B: run[0].key.Hi, Faces: faces}
}
