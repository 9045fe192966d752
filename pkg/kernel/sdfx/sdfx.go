// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel  = (*SdfxKernel)(nil)
	_ kernel.Solid   = (*sdfxSolid)(nil)
	_ kernel.Outline = (*sdfxOutline)(nil)
)

// silhouetteSamples is the number of z levels probed by Outline.Inside.
const silhouetteSamples = 9

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxOutline is the silhouette of an SDF3 seen along z. A point is inside
// when any of the sampled z levels through the solid's bounding box hits
// material.
type sdfxOutline struct {
	s      sdf.SDF3
	bb     sdf.Box3
	levels []float64
}

// Bounds returns the bounding rectangle in the xy plane.
func (o *sdfxOutline) Bounds() (min, max [2]float64) {
	return [2]float64{o.bb.Min.X, o.bb.Min.Y}, [2]float64{o.bb.Max.X, o.bb.Max.Y}
}

// Inside reports whether (x, y) lies in material.
func (o *sdfxOutline) Inside(x, y float64) bool {
	if x < o.bb.Min.X || x > o.bb.Max.X || y < o.bb.Min.Y || y > o.bb.Max.Y {
		return false
	}
	for _, z := range o.levels {
		if o.s.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
			return true
		}
	}
	return false
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions centred on the origin.
func (k *SdfxKernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("sdfx: box size %gx%gx%g must be positive", x, y, z)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Box3D: %w", err)
	}
	return wrap(s), nil
}

// Cylinder creates a z-axis cylinder centred on the origin. Unequal radii
// produce a truncated cone.
func (k *SdfxKernel) Cylinder(height, r1, r2 float64) (kernel.Solid, error) {
	if height <= 0 || r1 < 0 || r2 < 0 || (r1 == 0 && r2 == 0) {
		return nil, fmt.Errorf("sdfx: cylinder h=%g r1=%g r2=%g is degenerate", height, r1, r2)
	}
	if r1 == r2 {
		s, err := sdf.Cylinder3D(height, r1, 0)
		if err != nil {
			return nil, fmt.Errorf("sdfx.Cylinder3D: %w", err)
		}
		return wrap(s), nil
	}
	s, err := sdf.Cone3D(height, r1, r2, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Cone3D: %w", err)
	}
	return wrap(s), nil
}

// Union returns the union of the solids.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	if len(solids) == 1 {
		return solids[0]
	}
	s := make([]sdf.SDF3, len(solids))
	for i := range solids {
		s[i] = unwrap(solids[i])
	}
	return wrap(sdf.Union3D(s...))
}

// Difference returns base with every cut removed.
func (k *SdfxKernel) Difference(base kernel.Solid, cuts ...kernel.Solid) kernel.Solid {
	if len(cuts) == 0 {
		return base
	}
	return wrap(sdf.Difference3D(unwrap(base), unwrap(k.Union(cuts...))))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by angle degrees about axis.
func (k *SdfxKernel) Rotate(s kernel.Solid, angle float64, axis [3]float64) kernel.Solid {
	a := v3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}
	m := sdf.Rotate3d(a.Normalize(), angle*math.Pi/180.0)
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Flatten returns the silhouette of s along z.
func (k *SdfxKernel) Flatten(s kernel.Solid) kernel.Outline {
	s3 := unwrap(s)
	bb := s3.BoundingBox()
	levels := make([]float64, silhouetteSamples)
	dz := (bb.Max.Z - bb.Min.Z) / silhouetteSamples
	for i := range levels {
		levels[i] = bb.Min.Z + (float64(i)+0.5)*dz
	}
	return &sdfxOutline{s: s3, bb: bb, levels: levels}
}
