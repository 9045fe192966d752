package preview

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
)

// templateUnits is the number of SVG user units per millimetre.
const templateUnits = 100

// templateMargin is the blank border around a template, in mm.
const templateMargin = 5

// Template writes a 1:1 SVG drilling template of the plate: its outline,
// every hole and a reference square of project.ReferenceSize to the right.
// Printed at 100% the holes can be checked against a cut part.
func Template(w io.Writer, p assemble.Plate, set layout.Set) error {
	if !(p.Length > 0 && p.Width > 0) {
		return fmt.Errorf("preview: plate %gx%g has no area", p.Length, p.Width)
	}

	refGap := float64(templateMargin)
	width := int(math.Ceil(p.Length + refGap + project.ReferenceSize + 2*templateMargin))
	height := int(math.Ceil(math.Max(p.Width, project.ReferenceSize) + 2*templateMargin))

	// Plate centre in user units; y grows downwards in SVG.
	cx := templateMargin + p.Length/2
	cy := float64(height) / 2
	u := func(mm float64) int { return int(math.Round(mm * templateUnits)) }

	canvas := svg.New(w)
	canvas.StartviewUnit(width, height, "mm", 0, 0, width*templateUnits, height*templateUnits)
	canvas.Gstyle(fmt.Sprintf("fill:none;stroke:black;stroke-width:%d", u(0.1)))
	canvas.Rect(u(cx-p.Length/2), u(cy-p.Width/2), u(p.Length), u(p.Width))
	for _, h := range set.Holes() {
		canvas.Circle(u(cx+h.X), u(cy-h.Y), u(h.Diameter/2))
	}
	refX := templateMargin + p.Length + refGap
	canvas.Rect(u(refX), u(cy-project.ReferenceSize/2), u(project.ReferenceSize), u(project.ReferenceSize))
	canvas.Gend()
	canvas.End()
	return nil
}
