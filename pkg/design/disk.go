package design

import (
	"fmt"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
)

// DiskMaker is a thin disk with a centre hole.
type DiskMaker struct {
	Disk assemble.Disk

	// Holes lays out the holes; the default is a single M5 close-fit hole
	// at the centre.
	Holes layout.Grid

	ReferenceMargin float64
	Fn              int
}

// DefaultDiskMaker returns a 100 mm disk cut from 1/16" stock.
func DefaultDiskMaker() DiskMaker {
	return DiskMaker{
		Disk: assemble.Disk{Diameter: 100.0, Thickness: layout.Inch / 16},
		Holes: layout.Grid{
			Columns:  []int{0},
			Rows:     []int{0},
			Diameter: 5.00, // M5 close fit, adjusted for the laser kerf
		},
		ReferenceMargin: 10,
		Fn:              150,
	}
}

func (DiskMaker) Name() string { return "disk" }

// Validate checks that every dimension is usable.
func (d DiskMaker) Validate() error {
	if err := positive(
		field{"disk diameter", d.Disk.Diameter},
		field{"disk thickness", d.Disk.Thickness},
		field{"reference margin", d.ReferenceMargin},
	); err != nil {
		return err
	}
	if d.Holes.Count() > 0 && !(d.Holes.Diameter > 0) {
		return fmt.Errorf("hole diameter is %g, must be positive", d.Holes.Diameter)
	}
	if d.Fn < 3 {
		return fmt.Errorf("facet resolution %d, must be at least 3", d.Fn)
	}
	return nil
}

// Build returns disk.scad: the projected disk and its reference.
func (d DiskMaker) Build() ([]Output, error) {
	disk := csg.Part{Name: "disk", Solid: assemble.DiskWithHoles(d.Disk, layout.Generate(d.Holes))}
	sheet := project.Sheet{Fn: d.Fn, Extent: d.Disk.Diameter, Margin: d.ReferenceMargin}
	return []Output{
		{File: "disk.scad", Doc: sheet.Document("disk.scad", disk)},
	}, nil
}
