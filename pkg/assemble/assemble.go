// Package assemble turns base dimensions and hole layouts into CSG parts
// and positions auxiliary solids for assembly views.
package assemble

import (
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultOvershoot scales a through cutter's height relative to the
// thickness it cuts, so its end faces never coincide with the part faces.
const DefaultOvershoot = 1.5

// Plate is a rectangular blank centred on the origin.
type Plate struct {
	Length    float64 // along x
	Width     float64 // along y
	Thickness float64 // along z
}

// Solid returns the plate blank.
func (p Plate) Solid() csg.Primitive {
	return csg.Cube(r3.Vec{X: p.Length, Y: p.Width, Z: p.Thickness})
}

// Disk is a round blank centred on the origin.
type Disk struct {
	Diameter  float64
	Thickness float64
}

// Solid returns the disk blank.
func (d Disk) Solid() csg.Primitive {
	r := d.Diameter / 2
	return csg.Cylinder(d.Thickness, r, r)
}

// Cutter returns a through cylinder for h, depth tall, centred at (X, Y, 0).
func Cutter(h layout.HoleSpec, depth float64) csg.Transformed {
	r := h.Diameter / 2
	return csg.Translate(csg.Cylinder(depth, r, r), r3.Vec{X: h.X, Y: h.Y})
}

// Drill subtracts one through cutter per hole from base. thickness is the
// depth of material being drilled; cutters are DefaultOvershoot times as
// tall. With no holes base is returned unchanged.
func Drill(base csg.Node, thickness float64, holes []layout.HoleSpec) csg.Node {
	depth := DefaultOvershoot * thickness
	cuts := make([]csg.Node, 0, len(holes))
	for _, h := range holes {
		cuts = append(cuts, Cutter(h, depth))
	}
	return csg.Difference(base, cuts...)
}

// PlateWithHoles returns p with every hole cut through it.
func PlateWithHoles(p Plate, holes []layout.HoleSpec) csg.Node {
	return Drill(p.Solid(), p.Thickness, holes)
}

// DiskWithHoles returns d with every hole cut through it.
func DiskWithHoles(d Disk, holes []layout.HoleSpec) csg.Node {
	return Drill(d.Solid(), d.Thickness, holes)
}
