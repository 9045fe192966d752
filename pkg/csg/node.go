package csg

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind enumerates the node variants of a CSG tree.
type Kind int

const (
	KindPrimitive  Kind = iota // cube or cylinder
	KindTransform              // translate and/or rotate
	KindColor                  // cosmetic colour tag
	KindUnion                  // boolean union
	KindDifference             // boolean difference
	KindProjection             // 3D to 2D silhouette
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindTransform:
		return "transform"
	case KindColor:
		return "color"
	case KindUnion:
		return "union"
	case KindDifference:
		return "difference"
	case KindProjection:
		return "projection"
	default:
		return "unknown"
	}
}

// Node is a node of a CSG tree.
type Node interface {
	Kind() Kind
	node() // marker method restricting implementations to this package
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// Shape distinguishes primitive solids.
type Shape int

const (
	ShapeCube     Shape = iota // axis-aligned box centred on the origin
	ShapeCylinder              // z-axis cylinder (or cone) centred on the origin
)

func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "cube"
	case ShapeCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// Primitive is a leaf solid. Size is used by cubes; Height, R1 and R2 by
// cylinders, where R1 is the radius at the bottom and R2 at the top.
type Primitive struct {
	Shape  Shape
	Size   r3.Vec
	Height float64
	R1, R2 float64
}

func (Primitive) Kind() Kind { return KindPrimitive }
func (Primitive) node()      {}

func (p Primitive) String() string {
	if p.Shape == ShapeCylinder {
		return fmt.Sprintf("cylinder(h=%g, r1=%g, r2=%g)", p.Height, p.R1, p.R2)
	}
	return fmt.Sprintf("cube(%g x %g x %g)", p.Size.X, p.Size.Y, p.Size.Z)
}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// AxisAngle is a rotation of Angle degrees about Axis (right hand rule).
type AxisAngle struct {
	Angle float64
	Axis  r3.Vec
}

// Transform is a rigid motion. When both fields are set the rotation is
// applied first and the translation second.
type Transform struct {
	Translation *r3.Vec
	Rotation    *AxisAngle
}

// Apply maps p through t.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	if t.Rotation != nil {
		p = rotate(p, *t.Rotation)
	}
	if t.Translation != nil {
		p = r3.Add(p, *t.Translation)
	}
	return p
}

// Transformed places Child with Transform.
type Transformed struct {
	Child     Node
	Transform Transform
}

func (Transformed) Kind() Kind { return KindTransform }
func (Transformed) node()      {}

// ---------------------------------------------------------------------------
// Colour
// ---------------------------------------------------------------------------

// RGBA is a colour with components in [0, 1].
type RGBA [4]float64

var (
	Black = RGBA{0, 0, 0, 1}
	Red   = RGBA{1, 0, 0, 1}
)

// Colored tags Child with a colour. It has no geometric effect.
type Colored struct {
	Child Node
	RGBA  RGBA
}

func (Colored) Kind() Kind { return KindColor }
func (Colored) node()      {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// Op is a boolean operator.
type Op int

const (
	OpUnion Op = iota
	OpDifference
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// Boolean combines Children with Op. For a difference the first child is
// the base and every later child is subtracted from it.
type Boolean struct {
	Op       Op
	Children []Node
}

func (b Boolean) Kind() Kind {
	if b.Op == OpDifference {
		return KindDifference
	}
	return KindUnion
}
func (Boolean) node() {}

// ---------------------------------------------------------------------------
// Projection
// ---------------------------------------------------------------------------

// Projected is the silhouette of Child on the xy plane.
type Projected struct {
	Child Node
}

func (Projected) Kind() Kind { return KindProjection }
func (Projected) node()      {}
