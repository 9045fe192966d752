package kernel

import "testing"

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubOutline is the bounding rectangle of a stubSolid.
type stubOutline struct {
	minBB, maxBB [2]float64
}

func (o *stubOutline) Bounds() (min, max [2]float64) { return o.minBB, o.maxBB }

func (o *stubOutline) Inside(x, y float64) bool {
	return x >= o.minBB[0] && x <= o.maxBB[0] && y >= o.minBB[1] && y <= o.maxBB[1]
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. Booleans and transforms return their first input.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) (Solid, error) {
	return &stubSolid{
		minBB: [3]float64{-x / 2, -y / 2, -z / 2},
		maxBB: [3]float64{x / 2, y / 2, z / 2},
	}, nil
}

func (k *stubKernel) Cylinder(height, r1, r2 float64) (Solid, error) {
	r := max(r1, r2)
	return &stubSolid{
		minBB: [3]float64{-r, -r, -height / 2},
		maxBB: [3]float64{r, r, height / 2},
	}, nil
}

func (k *stubKernel) Union(solids ...Solid) Solid         { return solids[0] }
func (k *stubKernel) Difference(a Solid, _ ...Solid) Solid { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid    { return s }
func (k *stubKernel) Rotate(s Solid, _ float64, _ [3]float64) Solid { return s }

func (k *stubKernel) Flatten(s Solid) Outline {
	min, max := s.BoundingBox()
	return &stubOutline{minBB: [2]float64{min[0], min[1]}, maxBB: [2]float64{max[0], max[1]}}
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Outline = (*stubOutline)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, err := k.Box(10, 20, 30)
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	min, max := s.BoundingBox()
	if min != [3]float64{-5, -10, -15} {
		t.Errorf("Box min = %v, want [-5 -10 -15]", min)
	}
	if max != [3]float64{5, 10, 15} {
		t.Errorf("Box max = %v, want [5 10 15]", max)
	}
}

func TestStubKernelFlatten(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, _ := k.Cylinder(4, 2, 3)
	o := k.Flatten(s)
	min, max := o.Bounds()
	if min != [2]float64{-3, -3} || max != [2]float64{3, 3} {
		t.Errorf("Flatten bounds = %v..%v", min, max)
	}
	if !o.Inside(0, 0) || o.Inside(10, 0) {
		t.Error("Inside disagrees with bounds")
	}
}
