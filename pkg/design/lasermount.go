package design

import (
	"fmt"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
	"gonum.org/v1/gonum/spatial/r3"
)

// LaserMount is an adapter plate that hangs a laser displacement sensor
// from the clamp of a linear motor rail. Only the adapter is cut; the
// clamp, rail and sensor body appear in the assembly view for reference.
//
// The local origin is the centre of the clamp. The adapter hangs on the
// clamp's -y face and the sensor on the adapter's far side.
type LaserMount struct {
	Clamp r3.Vec // x, y, z
	Laser r3.Vec // width, thickness, height

	RailLength float64
	RailRadius float64
	// RailShift and RailDrop place the rail relative to the clamp's
	// +z face and centre line.
	RailShift float64
	RailDrop  float64

	AdapterThickness float64
	// AdapterLength is a fraction of the rail length.
	AdapterLength float64

	// Screws fix the adapter to the clamp, ScrewInset from its top and
	// bottom edges.
	ScrewDepth     float64
	ScrewRadius    float64
	ScrewInset     float64
	ScrewOvershoot float64

	// Each mounting column holds a pair of sensor holes at (+MountX,
	// +MountZ) and (-MountX, -MountZ); columns repeat MountStep apart.
	MountDepth     float64
	MountRadius    float64
	MountX         float64
	MountZ         float64
	MountColumns   int
	MountStep      float64
	MountOvershoot float64

	ReferenceMargin float64
	Fn              int
}

// DefaultLaserMount returns the adapter for a 50 mm wide sensor on a
// 6.25" rail.
func DefaultLaserMount() LaserMount {
	return LaserMount{
		Clamp:            r3.Vec{X: 50, Y: 30, Z: 55},
		Laser:            r3.Vec{X: 50, Y: 20, Z: 65},
		RailLength:       6.25 * layout.Inch,
		RailRadius:       11.5,
		RailShift:        28.8,
		RailDrop:         18.5,
		AdapterThickness: 0.25 * layout.Inch,
		AdapterLength:    0.6,
		ScrewDepth:       0.25 * layout.Inch,
		ScrewRadius:      2.1,
		ScrewInset:       7.5,
		ScrewOvershoot:   1.2,
		MountDepth:       0.25 * layout.Inch,
		MountRadius:      1.65,
		MountX:           20.0,
		MountZ:           28.7,
		MountColumns:     4,
		MountStep:        10,
		MountOvershoot:   1.5,
		ReferenceMargin:  10,
		Fn:               50,
	}
}

func (LaserMount) Name() string { return "laser-mount" }

// Validate checks that every dimension is usable.
func (m LaserMount) Validate() error {
	if err := positive(
		field{"clamp x", m.Clamp.X}, field{"clamp y", m.Clamp.Y}, field{"clamp z", m.Clamp.Z},
		field{"laser width", m.Laser.X}, field{"laser thickness", m.Laser.Y}, field{"laser height", m.Laser.Z},
		field{"rail length", m.RailLength},
		field{"rail radius", m.RailRadius},
		field{"adapter thickness", m.AdapterThickness},
		field{"adapter length", m.AdapterLength},
		field{"screw depth", m.ScrewDepth},
		field{"screw radius", m.ScrewRadius},
		field{"screw overshoot", m.ScrewOvershoot},
		field{"mount depth", m.MountDepth},
		field{"mount radius", m.MountRadius},
		field{"mount overshoot", m.MountOvershoot},
		field{"reference margin", m.ReferenceMargin},
	); err != nil {
		return err
	}
	if m.MountColumns < 0 {
		return fmt.Errorf("mount columns is %d, must not be negative", m.MountColumns)
	}
	if m.Fn < 3 {
		return fmt.Errorf("facet resolution %d, must be at least 3", m.Fn)
	}
	return nil
}

// lift raises the adapter and sensor so their centres line up with the
// sensor's mid height.
func (m LaserMount) lift() float64 {
	return 0.5 * (m.Laser.Z - m.Clamp.Z)
}

// adapterOffset places the adapter flush against the clamp's -y face.
func (m LaserMount) adapterOffset() assemble.Offset {
	return assemble.Offset{Name: "adapter", At: r3.Vec{
		Y: -(0.5*m.Clamp.Y + 0.5*m.AdapterThickness),
		Z: m.lift(),
	}}
}

// MountColumnCentres returns the x positions of the mounting hole columns,
// centred on the adapter.
func (m LaserMount) MountColumnCentres() []layout.HoleSpec {
	return layout.Generate(layout.Grid{
		Columns:  layout.Range(0, m.MountColumns),
		Rows:     []int{0},
		XStep:    m.MountStep,
		XOffset:  -0.5 * float64(m.MountColumns) * m.MountStep,
		Diameter: 2 * m.MountRadius,
	})
}

func (m LaserMount) clamp() csg.Node {
	return csg.Color(csg.Cube(m.Clamp), csg.Black)
}

func (m LaserMount) rail() csg.Node {
	rail := csg.Rotate(csg.Cylinder(m.RailLength, m.RailRadius, m.RailRadius), 90, project.AxisY)
	return csg.Translate(rail, r3.Vec{
		X: 0.5*m.RailLength - 0.5*m.Clamp.X - m.RailShift,
		Z: 0.5*m.Clamp.Z - m.RailRadius - m.RailDrop,
	})
}

func (m LaserMount) laser() csg.Node {
	at := r3.Vec{
		Y: -(0.5*m.Clamp.Y + 0.5*m.AdapterThickness + m.Laser.Y),
		Z: m.lift(),
	}
	return csg.Translate(csg.Color(csg.Cube(m.Laser), csg.Red), at)
}

// screwHoles returns the two holes fixing the adapter to the clamp.
func (m LaserMount) screwHoles() []csg.Node {
	cyl := csg.Cylinder(m.ScrewOvershoot*m.ScrewDepth, m.ScrewRadius, m.ScrewRadius)
	screw := csg.Color(csg.Rotate(cyl, 90, project.AxisX), csg.Black)
	y := -(0.5*m.Clamp.Y + 0.5*m.ScrewDepth)
	z := 0.5*m.Clamp.Z - m.ScrewInset
	return []csg.Node{
		csg.Translate(screw, r3.Vec{Y: y, Z: z}),
		csg.Translate(screw, r3.Vec{Y: y, Z: -z}),
	}
}

// mountHoles returns the sensor mounting holes, one pair per column.
func (m LaserMount) mountHoles() []csg.Node {
	cyl := csg.Cylinder(m.MountOvershoot*m.MountDepth, m.MountRadius, m.MountRadius)
	hole := csg.Rotate(csg.Color(cyl, csg.Red), 90, project.AxisX)
	y := -(0.5*m.Clamp.Y + m.AdapterThickness + 0.5*m.MountDepth)
	pair := csg.Translate(csg.Union(
		csg.Translate(hole, r3.Vec{X: m.MountX, Y: y, Z: m.MountZ + m.lift()}),
		csg.Translate(hole, r3.Vec{X: -m.MountX, Y: y, Z: -m.MountZ + m.lift()}),
	), r3.Vec{Y: m.AdapterThickness})
	return assemble.AtHoles(pair, m.MountColumnCentres())
}

// Adapter returns the drilled adapter in assembly position.
func (m LaserMount) Adapter() csg.Node {
	blank := csg.Cube(r3.Vec{X: m.AdapterLength * m.RailLength, Y: m.AdapterThickness, Z: m.Laser.Z})
	cuts := append(m.screwHoles(), m.mountHoles()...)
	return csg.Difference(m.adapterOffset().Apply(blank), cuts...)
}

// Build returns laser_mount_assembly.scad and laser_mount_projection.scad.
func (m LaserMount) Build() ([]Output, error) {
	adapter := m.Adapter()

	assem := csg.NewDocument("laser_mount_assembly.scad", m.Fn)
	assem.Add(
		csg.Part{Name: "clamp", Solid: m.clamp()},
		csg.Part{Name: "rail", Solid: m.rail()},
		csg.Part{Name: "adapter", Solid: adapter},
		csg.Part{Name: "laser", Solid: m.laser()},
	)

	// Move the adapter back to the origin and lay its face in the xy plane.
	home := r3.Scale(-1, m.adapterOffset().At)
	flat := project.Orient(csg.Translate(adapter, home), 90, project.AxisX)
	sheet := project.Sheet{Fn: m.Fn, Extent: m.AdapterLength * m.RailLength, Margin: m.ReferenceMargin}

	return []Output{
		{File: "laser_mount_assembly.scad", Doc: assem},
		{File: "laser_mount_projection.scad", Doc: sheet.Document("laser_mount_projection.scad", csg.Part{Name: "adapter", Solid: flat})},
	}, nil
}
