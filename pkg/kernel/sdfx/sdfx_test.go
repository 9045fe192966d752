package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/kernel"
)

func mustBox(t *testing.T, k *SdfxKernel, x, y, z float64) kernel.Solid {
	t.Helper()
	s, err := k.Box(x, y, z)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	return s
}

func mustCylinder(t *testing.T, k *SdfxKernel, h, r1, r2 float64) kernel.Solid {
	t.Helper()
	s, err := k.Cylinder(h, r1, r2)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	return s
}

func checkBounds(t *testing.T, s kernel.Solid, expectMin, expectMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := mustBox(t, k, 100, 50, 25)
	checkBounds(t, box, [3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5}, 0.01)
}

func TestCylinderBoundingBox(t *testing.T) {
	k := New()
	cyl := mustCylinder(t, k, 50, 10, 10)
	checkBounds(t, cyl, [3]float64{-10, -10, -25}, [3]float64{10, 10, 25}, 0.01)
}

func TestCone(t *testing.T) {
	k := New()
	cone := mustCylinder(t, k, 20, 5, 2)
	min, max := cone.BoundingBox()
	if max[2]-min[2] < 19.9 {
		t.Errorf("cone height = %f, expected ~20", max[2]-min[2])
	}
}

func TestInvalidPrimitive(t *testing.T) {
	k := New()
	if _, err := k.Box(-1, 1, 1); err == nil {
		t.Error("expected an error for a negative box size")
	}
	if _, err := k.Cylinder(10, -1, -1); err == nil {
		t.Error("expected an error for a negative radius")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := mustBox(t, k, 10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	// A centred box(10,10,10) moved by (100,200,300) spans (95,195,295)-(105,205,305).
	checkBounds(t, translated, [3]float64{95, 195, 295}, [3]float64{105, 205, 305}, 0.5)
}

func TestRotate(t *testing.T) {
	k := New()
	box := mustBox(t, k, 100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 90, [3]float64{0, 0, 1})
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestDifferenceOutline(t *testing.T) {
	k := New()
	plate := mustBox(t, k, 100, 100, 5)
	hole := k.Translate(mustCylinder(t, k, 7.5, 5, 5), 20, 0, 0)
	o := k.Flatten(k.Difference(plate, hole))

	if o.Inside(20, 0) {
		t.Error("hole centre should be empty")
	}
	if !o.Inside(-20, 0) {
		t.Error("plate material should be solid")
	}
	if o.Inside(60, 0) {
		t.Error("points beyond the plate should be outside")
	}
	min, max := o.Bounds()
	if math.Abs(min[0]+50) > 0.01 || math.Abs(max[1]-50) > 0.01 {
		t.Errorf("outline bounds = %v..%v", min, max)
	}
}

func TestDifferenceWithoutCuts(t *testing.T) {
	k := New()
	plate := mustBox(t, k, 10, 10, 1)
	if k.Difference(plate) != plate {
		t.Error("Difference with no cuts should return the base")
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := mustBox(t, k, 50, 50, 50)
	box2 := k.Translate(mustBox(t, k, 50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	checkBounds(t, u, [3]float64{-25, -25, -25}, [3]float64{55, 25, 25}, 0.01)

	if k.Union(box1) != box1 {
		t.Error("Union of one solid should return it")
	}
}

func TestFlattenSilhouette(t *testing.T) {
	k := New()
	// A plate standing on edge: rotated 90 degrees about x its large face
	// lies in the xz plane, so the silhouette along z is a thin strip.
	plate := k.Rotate(mustBox(t, k, 40, 60, 4), 90, [3]float64{1, 0, 0})
	o := k.Flatten(plate)
	if !o.Inside(0, 0) {
		t.Error("strip centre should be solid")
	}
	if o.Inside(0, 10) {
		t.Error("point beyond the strip thickness should be empty")
	}
}
