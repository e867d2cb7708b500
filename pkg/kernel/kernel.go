// Package kernel defines the abstract geometry kernel interface used to
// produce input meshes for the half-edge builder. Implementations (sdfx)
// provide solid modeling and boolean operations behind this interface, and
// hand their results back as triangle soups.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
