package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/bem/pkg/kernel"
	"github.com/chazu/bem/pkg/scene"
	"github.com/chazu/bem/pkg/trimesh"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a point or offset.
type sexpVec3 struct {
	vec trimesh.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpTri wraps one triangle of vertex indices.
type sexpTri struct {
	face trimesh.Face
}

func (t *sexpTri) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tri %d %d %d)", t.face[0], t.face[1], t.face[2])
}
func (t *sexpTri) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps an unnamed kernel solid so it can flow between the
// primitive, boolean and transform builtins.
type sexpSolid struct {
	solid kernel.Solid
	desc  string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return "(" + s.desc + ")"
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpPartRef names a part already added to the scene.
type sexpPartRef struct {
	name string
	kind scene.PartKind
}

func (r *sexpPartRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(part %q)", r.name)
}
func (r *sexpPartRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// requireKW fetches a mandatory keyword argument.
func (a kwArgs) requireKW(fn, name string) (zygo.Sexp, error) {
	v, ok := a.kw[name]
	if !ok {
		return nil, fmt.Errorf("%s: missing :%s", fn, name)
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 accepts a (vec3 ...) value or a three-number list/array.
func toVec3(s zygo.Sexp) (trimesh.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 3 {
		return trimesh.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
	}
	var xyz [3]float64
	for i, it := range items {
		if xyz[i], err = toFloat64(it); err != nil {
			return trimesh.Vec3{}, err
		}
	}
	return trimesh.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// toPolygon accepts a (tri ...) value or a list/array of vertex indices.
// Arity is checked later by trimesh.FromPolygons.
func toPolygon(s zygo.Sexp) ([]int, error) {
	if t, ok := s.(*sexpTri); ok {
		return t.face[:], nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected tri or index list, got %T (%s)", s, s.SexpString(nil))
	}
	poly := make([]int, len(items))
	for i, it := range items {
		if poly[i], err = toInt(it); err != nil {
			return nil, err
		}
	}
	return poly, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtins carries the state shared by every builtin of one evaluation.
type builtins struct {
	scene  *scene.Scene
	kernel kernel.Kernel
}

// toSolid accepts an unnamed solid or a reference to a solid part.
func (b *builtins) toSolid(s zygo.Sexp) (kernel.Solid, error) {
	switch v := s.(type) {
	case *sexpSolid:
		return v.solid, nil
	case *sexpPartRef:
		p := b.scene.Lookup(v.name)
		if p == nil || p.Kind != scene.PartSolid {
			return nil, fmt.Errorf("part %q is not a solid", v.name)
		}
		return p.Solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

func (b *builtins) needKernel(fn string) error {
	if b.kernel == nil {
		return fmt.Errorf("%s: no geometry kernel configured", fn)
	}
	return nil
}

// fold applies op left to right over two or more solid arguments.
func (b *builtins) fold(fn string, args []zygo.Sexp, op func(a, b kernel.Solid) kernel.Solid) (zygo.Sexp, error) {
	if err := b.needKernel(fn); err != nil {
		return zygo.SexpNull, err
	}
	if len(args) < 2 {
		return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", fn, len(args))
	}
	acc, err := b.toSolid(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: operand 1: %w", fn, err)
	}
	for i, a := range args[1:] {
		s, err := b.toSolid(a)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: operand %d: %w", fn, i+2, err)
		}
		acc = op(acc, s)
	}
	return &sexpSolid{solid: acc, desc: fn}, nil
}

// registerBuiltins installs the mesh-script builtins into a zygomys
// environment. Parts are added to s as the script runs.
//
// Source code must be preprocessed with preprocessSource() so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene, k kernel.Kernel) {
	b := &builtins{scene: s, kernel: k}

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: trimesh.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (tri 0 1 2)
	// -----------------------------------------------------------------------
	env.AddFunction("tri", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("tri requires exactly 3 indices, got %d", len(args))
		}
		var f trimesh.Face
		for i := range f {
			v, err := toInt(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tri: corner %d: %w", i, err)
			}
			if v < 0 {
				return zygo.SexpNull, fmt.Errorf("tri: corner %d: negative index %d", i, v)
			}
			f[i] = v
		}
		return &sexpTri{face: f}, nil
	})

	// -----------------------------------------------------------------------
	// (mesh "name" :vertices [(vec3 ...) ...] :faces [(tri ...) ...])
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a name argument")
		}
		partName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: name: %w", err)
		}

		vs, err := pa.requireKW("mesh", "vertices")
		if err != nil {
			return zygo.SexpNull, err
		}
		vItems, err := sexpListToSlice(vs)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: vertices: %w", err)
		}
		positions := make([]trimesh.Vec3, len(vItems))
		for i, it := range vItems {
			if positions[i], err = toVec3(it); err != nil {
				return zygo.SexpNull, fmt.Errorf("mesh: vertex %d: %w", i, err)
			}
		}

		fs, err := pa.requireKW("mesh", "faces")
		if err != nil {
			return zygo.SexpNull, err
		}
		fItems, err := sexpListToSlice(fs)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: faces: %w", err)
		}
		polys := make([][]int, len(fItems))
		for i, it := range fItems {
			if polys[i], err = toPolygon(it); err != nil {
				return zygo.SexpNull, fmt.Errorf("mesh: face %d: %w", i, err)
			}
		}

		m, err := trimesh.FromPolygons(positions, polys)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh %q: %w", partName, err)
		}
		if err := b.scene.AddMesh(partName, m); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPartRef{name: partName, kind: scene.PartMesh}, nil
	})

	// -----------------------------------------------------------------------
	// (box :size (vec3 10 20 30))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.needKernel("box"); err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args)
		v, err := pa.requireKW("box", "size")
		if err != nil {
			return zygo.SexpNull, err
		}
		size, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
		}
		solid, err := b.kernel.Box(size.X, size.Y, size.Z)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpSolid{solid: solid, desc: fmt.Sprintf("box %gx%gx%g", size.X, size.Y, size.Z)}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.needKernel("sphere"); err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args)
		v, err := pa.requireKW("sphere", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		solid, err := b.kernel.Sphere(r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpSolid{solid: solid, desc: fmt.Sprintf("sphere r=%g", r)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 10 :radius 2)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.needKernel("cylinder"); err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args)
		hv, err := pa.requireKW("cylinder", "height")
		if err != nil {
			return zygo.SexpNull, err
		}
		rv, err := pa.requireKW("cylinder", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		h, err := toFloat64(hv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(rv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		solid, err := b.kernel.Cylinder(h, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpSolid{solid: solid, desc: fmt.Sprintf("cylinder h=%g r=%g", h, r)}, nil
	})

	// -----------------------------------------------------------------------
	// (translate (box ...) (vec3 0 0 5))
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.needKernel("translate"); err != nil {
			return zygo.SexpNull, err
		}
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a solid and an offset, got %d arguments", len(args))
		}
		solid, err := b.toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		off, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		return &sexpSolid{solid: b.kernel.Translate(solid, off.X, off.Y, off.Z), desc: "translate"}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...), (difference a b ...), (intersection a b ...)
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.fold("union", args, func(x, y kernel.Solid) kernel.Solid { return b.kernel.Union(x, y) })
	})
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.fold("difference", args, func(x, y kernel.Solid) kernel.Solid { return b.kernel.Difference(x, y) })
	})
	env.AddFunction("intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.fold("intersection", args, func(x, y kernel.Solid) kernel.Solid { return b.kernel.Intersection(x, y) })
	})

	// -----------------------------------------------------------------------
	// (solid "name" (union ...))
	// -----------------------------------------------------------------------
	env.AddFunction("solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("solid requires a name and a body expression")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: name: %w", err)
		}
		body, err := b.toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: body: %w", err)
		}
		if err := b.scene.AddSolid(partName, body); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPartRef{name: partName, kind: scene.PartSolid}, nil
	})

	// -----------------------------------------------------------------------
	// (part "name")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		p := b.scene.Lookup(partName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}
		return &sexpPartRef{name: partName, kind: p.Kind}, nil
	})
}
