// Package tessellate turns every part of a scene into a half-edge mesh.
// Solid parts are meshed by the geometry kernel and welded into an
// indexed triangle mesh first; explicit mesh parts go straight to the
// builder. One Result is produced per part, in scene order.
package tessellate

import (
	"fmt"

	"github.com/chazu/bem/pkg/halfedge"
	"github.com/chazu/bem/pkg/kernel"
	"github.com/chazu/bem/pkg/scene"
	"github.com/chazu/bem/pkg/trimesh"
	"github.com/samber/lo"
)

// DefaultWeldTolerance merges kernel soup vertices closer than this.
const DefaultWeldTolerance = 1e-6

// Options controls the pipeline.
type Options struct {
	// WeldTolerance is the distance below which soup vertices are merged.
	// Zero merges only exactly equal positions.
	WeldTolerance float64

	// Check runs halfedge.Validate on every built mesh and fails the part
	// if any error-severity finding comes back.
	Check bool
}

// DefaultOptions returns the options used by the CLI when no config
// overrides them.
func DefaultOptions() Options {
	return Options{WeldTolerance: DefaultWeldTolerance, Check: true}
}

// Result is the half-edge mesh built for one part.
type Result struct {
	Name  string
	Kind  scene.PartKind
	Mesh  *halfedge.Mesh[trimesh.Vec3]
	Stats halfedge.Stats
}

// Tessellate builds a half-edge mesh for every part of s. It never
// mutates the scene. The first failing part aborts the run; its error is
// wrapped with the part name.
func Tessellate(s *scene.Scene, k kernel.Kernel, opts Options) ([]*Result, error) {
	if s == nil {
		return nil, nil
	}
	if errs := scene.Validate(s); scene.HasErrors(errs) {
		first, _ := lo.Find(errs, func(e scene.ValidationError) bool { return e.Severity == scene.SeverityError })
		return nil, fmt.Errorf("tessellate: invalid scene: %w", first)
	}

	results := make([]*Result, 0, s.PartCount())
	for _, p := range s.Parts {
		r, err := Part(p, k, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Part builds the half-edge mesh for a single part.
func Part(p *scene.Part, k kernel.Kernel, opts Options) (*Result, error) {
	tm, err := triangles(p, k, opts)
	if err != nil {
		return nil, fmt.Errorf("tessellate: part %q: %w", p.Name, err)
	}

	m, err := halfedge.Build(tm)
	if err != nil {
		return nil, fmt.Errorf("tessellate: part %q: %w", p.Name, err)
	}
	if opts.Check {
		if errs := m.Validate(); halfedge.HasErrors(errs) {
			first, _ := lo.Find(errs, func(e halfedge.ValidationError) bool { return e.Severity == halfedge.SeverityError })
			return nil, fmt.Errorf("tessellate: part %q: built mesh is inconsistent: %w", p.Name, first)
		}
	}

	return &Result{Name: p.Name, Kind: p.Kind, Mesh: m, Stats: m.Stats()}, nil
}

// triangles produces the indexed triangle mesh for p.
func triangles(p *scene.Part, k kernel.Kernel, opts Options) (*trimesh.Mesh[trimesh.Vec3], error) {
	switch p.Kind {
	case scene.PartMesh:
		if p.Mesh == nil {
			return nil, fmt.Errorf("mesh part has no mesh")
		}
		return p.Mesh, nil
	case scene.PartSolid:
		if k == nil {
			return nil, fmt.Errorf("solid part needs a geometry kernel")
		}
		soup, err := k.ToMesh(p.Solid)
		if err != nil {
			return nil, fmt.Errorf("ToMesh failed: %w", err)
		}
		return trimesh.Weld(soup, opts.WeldTolerance)
	default:
		return nil, fmt.Errorf("unknown part kind %v", p.Kind)
	}
}

// Names returns the part names of results, in order.
func Names(results []*Result) []string {
	return lo.Map(results, func(r *Result, _ int) string { return r.Name })
}

// Totals sums the element counts of all results. Euler is summed too, so
// for disjoint closed parts it is twice the number of sphere-like parts.
func Totals(results []*Result) halfedge.Stats {
	return lo.Reduce(results, func(acc halfedge.Stats, r *Result, _ int) halfedge.Stats {
		acc.Vertices += r.Stats.Vertices
		acc.Faces += r.Stats.Faces
		acc.Edges += r.Stats.Edges
		acc.HalfEdges += r.Stats.HalfEdges
		acc.BoundaryEdges += r.Stats.BoundaryEdges
		acc.InteriorEdges += r.Stats.InteriorEdges
		acc.Euler += r.Stats.Euler
		return acc
	}, halfedge.Stats{})
}

// Export flattens a result into the kernel's soup layout with vertex
// normals, for renderers and JSON output.
func Export(r *Result) *kernel.Mesh {
	return trimesh.ToKernel(r.Mesh.ToTriangleMesh(), r.Name)
}
