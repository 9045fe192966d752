package design

import (
	"fmt"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
)

// TSlotMount is a two-layer acrylic mount for a linear motor. Both plates
// share a grid of 1/4-20 mounting holes; two M6 bolts on the centre line
// reach the motor flange's t-slot. Plate 0 carries the M6 through holes,
// plate 1 the larger washer clearance holes, and the plates are solvent
// welded together after cutting.
type TSlotMount struct {
	Plate assemble.Plate

	// MountGrid is the 1/4-20 pattern shared by both plates.
	MountGrid layout.Grid

	// BoltGrid places the two M6 bolts; its Diameter is ignored in favour
	// of ThroughDiameter and WasherDiameter.
	BoltGrid        layout.Grid
	ThroughDiameter float64
	WasherDiameter  float64

	// AssemblyPitch is the z distance between the plates in the
	// assembly view, as a multiple of the plate thickness.
	AssemblyPitch float64

	ReferenceMargin float64
	Fn              int
}

// DefaultTSlotMount returns the production mount: a 3" x 6" x 1/4" plate.
func DefaultTSlotMount() TSlotMount {
	thickness := layout.Inch / 4
	rows := layout.Range(-3, 3)
	return TSlotMount{
		Plate: assemble.Plate{Length: 3 * layout.Inch, Width: 6 * layout.Inch, Thickness: thickness},
		MountGrid: layout.Grid{
			Columns:  layout.Range(-1, 2),
			Rows:     rows,
			XStep:    layout.Inch,
			YStep:    layout.Inch,
			YOffset:  0.5 * layout.Inch,
			Diameter: 0.257 * layout.Inch,
			// The centre column skips the interior rows rows[2:len-1]
			// (-1, 0 and 1), leaving room for the M6 bolts.
			Exclude: layout.ExcludeRowsInColumn(0, rows[2:len(rows)-1]...),
		},
		BoltGrid: layout.Grid{
			Columns: []int{0},
			Rows:    []int{-1, 1},
			YStep:   16.0,
			YOffset: 0.5 * layout.Inch,
		},
		ThroughDiameter: 6.2,
		WasherDiameter:  12.5,
		AssemblyPitch:   1.2,
		ReferenceMargin: 2 * thickness,
		Fn:              100,
	}
}

func (TSlotMount) Name() string { return "tslot-mount" }

// Validate checks that every dimension is usable.
func (m TSlotMount) Validate() error {
	if err := positive(
		field{"plate length", m.Plate.Length},
		field{"plate width", m.Plate.Width},
		field{"plate thickness", m.Plate.Thickness},
		field{"mount hole diameter", m.MountGrid.Diameter},
		field{"through hole diameter", m.ThroughDiameter},
		field{"washer hole diameter", m.WasherDiameter},
		field{"assembly pitch", m.AssemblyPitch},
		field{"reference margin", m.ReferenceMargin},
	); err != nil {
		return err
	}
	if m.Fn < 3 {
		return fmt.Errorf("facet resolution %d, must be at least 3", m.Fn)
	}
	return nil
}

// HoleSets returns the hole layouts of plate 0 and plate 1. They share the
// mounting group and differ only in the diameter of the bolt group.
func (m TSlotMount) HoleSets() (plate0, plate1 layout.Set) {
	mount := m.MountGrid.Group(layout.RoleMounting)

	through := m.BoltGrid
	through.Diameter = m.ThroughDiameter
	washer := m.BoltGrid
	washer.Diameter = m.WasherDiameter

	plate0 = layout.NewSet(mount, through.Group(layout.RoleThrough))
	plate1 = layout.NewSet(mount, washer.Group(layout.RoleWasher))
	return plate0, plate1
}

// Build returns plate_assem.scad, plate_0.scad and plate_1.scad.
func (m TSlotMount) Build() ([]Output, error) {
	set0, set1 := m.HoleSets()
	plate0 := csg.Part{Name: "plate_0", Solid: assemble.PlateWithHoles(m.Plate, set0.Holes())}
	plate1 := csg.Part{Name: "plate_1", Solid: assemble.PlateWithHoles(m.Plate, set1.Holes())}

	assem := csg.NewDocument("plate_assem.scad", m.Fn)
	stacked := assemble.Stack(m.AssemblyPitch*m.Plate.Thickness, plate0.Solid, plate1.Solid)
	assem.Add(
		csg.Part{Name: plate0.Name, Solid: stacked[0]},
		csg.Part{Name: plate1.Name, Solid: stacked[1]},
	)

	sheet := project.Sheet{Fn: m.Fn, Extent: m.Plate.Length, Margin: m.ReferenceMargin}
	return []Output{
		{File: "plate_assem.scad", Doc: assem},
		{File: "plate_0.scad", Doc: sheet.Document("plate_0.scad", plate0)},
		{File: "plate_1.scad", Doc: sheet.Document("plate_1.scad", plate1)},
	}, nil
}
