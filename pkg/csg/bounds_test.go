package csg

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func boxEq(a, b r3.Box) bool {
	return approx(a.Min.X, b.Min.X) && approx(a.Min.Y, b.Min.Y) && approx(a.Min.Z, b.Min.Z) &&
		approx(a.Max.X, b.Max.X) && approx(a.Max.Y, b.Max.Y) && approx(a.Max.Z, b.Max.Z)
}

func TestBounds(t *testing.T) {
	cube := Cube(r3.Vec{X: 100, Y: 50, Z: 10})
	cyl := Cylinder(20, 3, 5)

	tests := []struct {
		name string
		node Node
		want r3.Box
	}{
		{"cube", cube, r3.Box{Min: r3.Vec{X: -50, Y: -25, Z: -5}, Max: r3.Vec{X: 50, Y: 25, Z: 5}}},
		{"cone uses larger radius", cyl, r3.Box{Min: r3.Vec{X: -5, Y: -5, Z: -10}, Max: r3.Vec{X: 5, Y: 5, Z: 10}}},
		{"translated", Translate(cube, r3.Vec{X: 50, Y: 25, Z: 5}),
			r3.Box{Max: r3.Vec{X: 100, Y: 50, Z: 10}}},
		{"rotated about x", Rotate(cube, 90, r3.Vec{X: 1}),
			r3.Box{Min: r3.Vec{X: -50, Y: -5, Z: -25}, Max: r3.Vec{X: 50, Y: 5, Z: 25}}},
		{"color is transparent", Color(cube, Red), r3.Box{Min: r3.Vec{X: -50, Y: -25, Z: -5}, Max: r3.Vec{X: 50, Y: 25, Z: 5}}},
		{"difference keeps base", Difference(cube, Translate(cyl, r3.Vec{X: 200})),
			r3.Box{Min: r3.Vec{X: -50, Y: -25, Z: -5}, Max: r3.Vec{X: 50, Y: 25, Z: 5}}},
		{"union spans children", Union(cube, Translate(cyl, r3.Vec{X: 100})),
			r3.Box{Min: r3.Vec{X: -50, Y: -25, Z: -10}, Max: r3.Vec{X: 105, Y: 25, Z: 10}}},
		{"projection is flat", Project(cube), r3.Box{Min: r3.Vec{X: -50, Y: -25}, Max: r3.Vec{X: 50, Y: 25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Bounds(tt.node)
			if !ok {
				t.Fatal("Bounds returned !ok")
			}
			if !boxEq(got, tt.want) {
				t.Errorf("Bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundsEmpty(t *testing.T) {
	if _, ok := Bounds(nil); ok {
		t.Error("Bounds(nil) should not be ok")
	}
	if _, ok := Bounds(Boolean{Op: OpUnion}); ok {
		t.Error("Bounds of an empty union should not be ok")
	}
}

func TestSizeAndContains(t *testing.T) {
	outer, _ := Bounds(Cube(r3.Vec{X: 10, Y: 10, Z: 10}))
	inner, _ := Bounds(Cube(r3.Vec{X: 2, Y: 2, Z: 2}))
	if s := Size(outer); !approx(s.X, 10) || !approx(s.Y, 10) || !approx(s.Z, 10) {
		t.Errorf("Size = %v", s)
	}
	if !Contains(outer, inner, 0) {
		t.Error("outer should contain inner")
	}
	if Contains(inner, outer, 0) {
		t.Error("inner should not contain outer")
	}
}
