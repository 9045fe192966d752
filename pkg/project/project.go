// Package project flattens assembled parts into cuttable outlines and adds
// the calibration reference square that is measured after cutting to check
// the scale of the exported drawing.
package project

import (
	"fmt"

	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReferenceSize is the edge length of the calibration reference. It does
// not depend on any part parameter.
const ReferenceSize = layout.Inch

// ReferenceName is the part name given to the calibration reference.
const ReferenceName = "reference"

var (
	AxisX = r3.Vec{X: 1}
	AxisY = r3.Vec{Y: 1}
	AxisZ = r3.Vec{Z: 1}
)

// Reference returns the reference cube centred on the origin.
func Reference() csg.Primitive {
	return csg.Cube(r3.Vec{X: ReferenceSize, Y: ReferenceSize, Z: ReferenceSize})
}

// ReferenceOffset is the x distance from a part's centre to the reference
// centre: half the reference, half the part's extent along x and a margin.
// For any margin > 0 the two outlines are disjoint.
func ReferenceOffset(partExtent, margin float64) float64 {
	return 0.5*ReferenceSize + 0.5*partExtent + margin
}

// Orient rotates n so the face to be cut lies in the xy plane.
func Orient(n csg.Node, angle float64, axis r3.Vec) csg.Transformed {
	return csg.Rotate(n, angle, axis)
}

// Sheet describes one cutting document: a part outline next to its
// reference square.
type Sheet struct {
	Fn     int     // facet resolution of the document
	Extent float64 // part extent along x, centred on the origin
	Margin float64 // clear gap between part and reference
}

// ReferencePart returns the projected reference placed for s.
func (s Sheet) ReferencePart() csg.Part {
	at := r3.Vec{X: ReferenceOffset(s.Extent, s.Margin)}
	return csg.Part{Name: ReferenceName, Solid: csg.Project(csg.Translate(Reference(), at))}
}

// Document returns a new document holding the projection of part followed
// by the reference. part must already be oriented for cutting.
func (s Sheet) Document(name string, part csg.Part) *csg.Document {
	d := csg.NewDocument(name, s.Fn)
	if !part.Projected() {
		part = part.Project()
	}
	d.Add(part, s.ReferencePart())
	return d
}

// ReferenceAfter returns the reference placed to the right of every part in
// parts. The clearance is measured from the parts' bounding boxes, so the
// parts need not be centred on the origin.
func ReferenceAfter(parts []csg.Part, margin float64) (csg.Part, error) {
	if !(margin > 0) {
		return csg.Part{}, fmt.Errorf("project: reference margin is %g, must be positive", margin)
	}
	var reach float64
	measured := false
	for _, p := range parts {
		b, ok := csg.Bounds(p.Solid)
		if !ok {
			continue
		}
		if !measured || b.Max.X > reach {
			reach, measured = b.Max.X, true
		}
	}
	if !measured {
		return csg.Part{}, fmt.Errorf("project: no part to place the reference after")
	}
	// A part centred on the origin reaches half its extent.
	return Sheet{Extent: 2 * reach, Margin: margin}.ReferencePart(), nil
}

// CheckSheet checks the layout of a document holding a reference: exactly
// one reference, preceded by at least one part, last in the document, and
// every part flat. Documents without a reference pass unchanged.
func CheckSheet(d *csg.Document) error {
	at := -1
	for i, p := range d.Parts {
		if p.Name != ReferenceName {
			continue
		}
		if at >= 0 {
			return fmt.Errorf("project: %s: more than one reference", d.Name)
		}
		at = i
	}
	switch {
	case at < 0:
		return nil
	case at == 0:
		return fmt.Errorf("project: %s: reference comes before any part", d.Name)
	case at != len(d.Parts)-1:
		return fmt.Errorf("project: %s: part %q follows the reference", d.Name, d.Parts[at+1].Name)
	}
	for _, p := range d.Parts {
		if !p.Projected() {
			return fmt.Errorf("project: %s: part %q is not projected", d.Name, p.Name)
		}
	}
	return nil
}
