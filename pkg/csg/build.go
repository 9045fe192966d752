package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cube returns a box of the given size centred on the origin.
func Cube(size r3.Vec) Primitive {
	return Primitive{Shape: ShapeCube, Size: size}
}

// Cylinder returns a z-axis cylinder of height h centred on the origin.
// r1 and r2 are the bottom and top radii.
func Cylinder(h, r1, r2 float64) Primitive {
	return Primitive{Shape: ShapeCylinder, Height: h, R1: r1, R2: r2}
}

// Translate moves n by v.
func Translate(n Node, v r3.Vec) Transformed {
	return Transformed{Child: n, Transform: Transform{Translation: &v}}
}

// Rotate turns n by angle degrees about axis.
func Rotate(n Node, angle float64, axis r3.Vec) Transformed {
	return Transformed{Child: n, Transform: Transform{Rotation: &AxisAngle{Angle: angle, Axis: axis}}}
}

// Place rotates n by angle degrees about axis and then moves it to at.
func Place(n Node, angle float64, axis, at r3.Vec) Transformed {
	return Transformed{Child: n, Transform: Transform{
		Translation: &at,
		Rotation:    &AxisAngle{Angle: angle, Axis: axis},
	}}
}

// Color tags n with c.
func Color(n Node, c RGBA) Colored {
	return Colored{Child: n, RGBA: c}
}

// Union joins nodes. A single node is returned unchanged and an empty call
// returns nil, so callers never emit a union without children.
func Union(nodes ...Node) Node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	return Boolean{Op: OpUnion, Children: cloneNodes(nodes)}
}

// Difference subtracts cuts from base. With no cuts the base itself is
// returned rather than a difference holding a single child.
func Difference(base Node, cuts ...Node) Node {
	if len(cuts) == 0 {
		return base
	}
	children := make([]Node, 0, len(cuts)+1)
	children = append(children, base)
	children = append(children, cuts...)
	return Boolean{Op: OpDifference, Children: children}
}

// Project returns the xy silhouette of n.
func Project(n Node) Projected {
	return Projected{Child: n}
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func rotate(p r3.Vec, aa AxisAngle) r3.Vec {
	if aa.Angle == 0 || r3.Norm(aa.Axis) == 0 {
		return p
	}
	rot := r3.NewRotation(aa.Angle*math.Pi/180, r3.Unit(aa.Axis))
	return rot.Rotate(p)
}
