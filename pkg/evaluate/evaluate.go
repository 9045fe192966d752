// Package evaluate walks a CSG tree and rebuilds it in a geometry kernel so
// that documents can be measured before they are handed to external CAD
// tooling. The evaluator is read-only and never mutates the tree.
package evaluate

import (
	"fmt"

	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/kernel"
)

// Solid builds n in k. Colour tags are ignored and a projection evaluates
// to the solid it projects; use Flatten for the outline.
func Solid(n csg.Node, k kernel.Kernel) (kernel.Solid, error) {
	switch v := n.(type) {
	case csg.Primitive:
		return handlePrimitive(k, v)
	case csg.Transformed:
		return handleTransform(k, v)
	case csg.Colored:
		return Solid(v.Child, k)
	case csg.Projected:
		return Solid(v.Child, k)
	case csg.Boolean:
		return handleBoolean(k, v)
	case nil:
		return nil, fmt.Errorf("evaluate: nil node")
	default:
		return nil, fmt.Errorf("evaluate: unknown node %T", n)
	}
}

// Flatten builds n in k and returns its silhouette on the xy plane.
func Flatten(n csg.Node, k kernel.Kernel) (kernel.Outline, error) {
	s, err := Solid(n, k)
	if err != nil {
		return nil, err
	}
	return k.Flatten(s), nil
}

func handlePrimitive(k kernel.Kernel, p csg.Primitive) (kernel.Solid, error) {
	switch p.Shape {
	case csg.ShapeCube:
		return k.Box(p.Size.X, p.Size.Y, p.Size.Z)
	case csg.ShapeCylinder:
		return k.Cylinder(p.Height, p.R1, p.R2)
	default:
		return nil, fmt.Errorf("evaluate: unsupported primitive %v", p.Shape)
	}
}

// handleTransform applies the rotation first, then the translation.
func handleTransform(k kernel.Kernel, t csg.Transformed) (kernel.Solid, error) {
	s, err := Solid(t.Child, k)
	if err != nil {
		return nil, err
	}
	if r := t.Transform.Rotation; r != nil && r.Angle != 0 {
		s = k.Rotate(s, r.Angle, [3]float64{r.Axis.X, r.Axis.Y, r.Axis.Z})
	}
	if v := t.Transform.Translation; v != nil {
		s = k.Translate(s, v.X, v.Y, v.Z)
	}
	return s, nil
}

func handleBoolean(k kernel.Kernel, b csg.Boolean) (kernel.Solid, error) {
	if len(b.Children) == 0 {
		return nil, fmt.Errorf("evaluate: %s without children", b.Op)
	}
	solids := make([]kernel.Solid, 0, len(b.Children))
	for i, c := range b.Children {
		s, err := Solid(c, k)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", b.Op, i, err)
		}
		solids = append(solids, s)
	}
	if b.Op == csg.OpDifference {
		return k.Difference(solids[0], solids[1:]...), nil
	}
	return k.Union(solids...), nil
}
