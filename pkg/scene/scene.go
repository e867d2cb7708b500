// Package scene holds the named parts produced by evaluating a mesh
// script. A part is either an explicit triangle mesh or a kernel solid
// still waiting to be meshed. Each evaluation produces a new Scene.
package scene

import (
	"fmt"

	"github.com/chazu/bem/pkg/kernel"
	"github.com/chazu/bem/pkg/trimesh"
)

// PartKind distinguishes how a part's geometry is given.
type PartKind int

const (
	PartMesh  PartKind = iota // explicit vertices and faces
	PartSolid                 // kernel solid, meshed by tessellate
)

func (k PartKind) String() string {
	switch k {
	case PartMesh:
		return "mesh"
	case PartSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Part is one named piece of geometry.
type Part struct {
	Name  string                      `json:"name"`
	Kind  PartKind                    `json:"kind"`
	Mesh  *trimesh.Mesh[trimesh.Vec3] `json:"-"` // set for PartMesh
	Solid kernel.Solid                `json:"-"` // set for PartSolid
}

// Scene is an ordered set of uniquely named parts.
type Scene struct {
	Parts     []*Part        `json:"parts"`
	NameIndex map[string]int `json:"name_index"`
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{NameIndex: make(map[string]int)}
}

// Add appends a part. Names must be unique.
func (s *Scene) Add(p *Part) error {
	if _, ok := s.NameIndex[p.Name]; ok {
		return fmt.Errorf("scene: duplicate part name %q", p.Name)
	}
	s.NameIndex[p.Name] = len(s.Parts)
	s.Parts = append(s.Parts, p)
	return nil
}

// AddMesh is shorthand for adding an explicit mesh part.
func (s *Scene) AddMesh(name string, m *trimesh.Mesh[trimesh.Vec3]) error {
	return s.Add(&Part{Name: name, Kind: PartMesh, Mesh: m})
}

// AddSolid is shorthand for adding a kernel solid part.
func (s *Scene) AddSolid(name string, solid kernel.Solid) error {
	return s.Add(&Part{Name: name, Kind: PartSolid, Solid: solid})
}

// Lookup returns the part with the given name, or nil.
func (s *Scene) Lookup(name string) *Part {
	i, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Parts[i]
}

// MustLookup returns the part with the given name, or panics.
func (s *Scene) MustLookup(name string) *Part {
	p := s.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("scene: no part named %q", name))
	}
	return p
}

// PartCount returns the number of parts.
func (s *Scene) PartCount() int {
	return len(s.Parts)
}
