// Package kernel defines the abstract geometry kernel used to measure CSG
// trees. Scripts are rendered by external CAD tooling; the kernel only
// answers geometric questions about what a script will describe, such as
// bounding boxes and whether a point of a cut outline is solid.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Outline is a flat 2D shape in the xy plane.
type Outline interface {
	// Bounds returns the axis-aligned bounding rectangle.
	Bounds() (min, max [2]float64)
	// Inside reports whether (x, y) lies in material.
	Inside(x, y float64) bool
}

// Kernel is the abstract geometry kernel interface. Primitives are centred
// on the origin.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Cylinder(height, r1, r2 float64) (Solid, error)

	// Boolean operations
	Union(solids ...Solid) Solid
	Difference(base Solid, cuts ...Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, angle float64, axis [3]float64) Solid // degrees, right hand rule

	// Flatten returns the silhouette of s on the xy plane.
	Flatten(s Solid) Outline
}
