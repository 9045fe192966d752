package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds returns the axis-aligned bounding box of n. The box of a
// difference is the box of its base; the box of a projection is flat at
// z = 0. ok is false for a nil node or an empty union.
func Bounds(n Node) (box r3.Box, ok bool) {
	switch v := n.(type) {
	case Primitive:
		return primitiveBounds(v), true
	case Transformed:
		b, ok := Bounds(v.Child)
		if !ok {
			return r3.Box{}, false
		}
		return transformBox(b, v.Transform), true
	case Colored:
		return Bounds(v.Child)
	case Projected:
		b, ok := Bounds(v.Child)
		if !ok {
			return r3.Box{}, false
		}
		b.Min.Z, b.Max.Z = 0, 0
		return b, true
	case Boolean:
		if len(v.Children) == 0 {
			return r3.Box{}, false
		}
		if v.Op == OpDifference {
			return Bounds(v.Children[0])
		}
		for _, c := range v.Children {
			cb, cok := Bounds(c)
			if !cok {
				continue
			}
			if !ok {
				box, ok = cb, true
				continue
			}
			box = unionBox(box, cb)
		}
		return box, ok
	default:
		return r3.Box{}, false
	}
}

// Size returns the extent of b along each axis.
func Size(b r3.Box) r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Contains reports whether inner lies within outer, allowing tol of slack.
func Contains(outer, inner r3.Box, tol float64) bool {
	return axesInside(outer, inner, tol) == 3
}

func primitiveBounds(p Primitive) r3.Box {
	var half r3.Vec
	switch p.Shape {
	case ShapeCylinder:
		r := math.Max(p.R1, p.R2)
		half = r3.Vec{X: r, Y: r, Z: p.Height / 2}
	default:
		half = r3.Scale(0.5, p.Size)
	}
	return r3.Box{Min: r3.Scale(-1, half), Max: half}
}

func transformBox(b r3.Box, t Transform) r3.Box {
	var out r3.Box
	for i := 0; i < 8; i++ {
		corner := r3.Vec{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		p := t.Apply(corner)
		if i == 0 {
			out = r3.Box{Min: p, Max: p}
			continue
		}
		out = unionBox(out, r3.Box{Min: p, Max: p})
	}
	return out
}

func unionBox(a, b r3.Box) r3.Box {
	return r3.Box{
		Min: r3.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: r3.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}
