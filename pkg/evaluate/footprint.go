package evaluate

import (
	"fmt"

	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/kernel"
)

// Footprint is the measured outline of one projected part.
type Footprint struct {
	Name    string
	Min     [2]float64
	Max     [2]float64
	Outline kernel.Outline
}

// Size returns the width and height of the bounding rectangle.
func (f Footprint) Size() (w, h float64) {
	return f.Max[0] - f.Min[0], f.Max[1] - f.Min[1]
}

// Footprints measures every projected part of d in order. Parts that are
// not projections (assembly views) are skipped.
func Footprints(d *csg.Document, k kernel.Kernel) ([]Footprint, error) {
	var out []Footprint
	for _, p := range d.Parts {
		if !p.Projected() {
			continue
		}
		o, err := Flatten(p.Solid, k)
		if err != nil {
			return nil, fmt.Errorf("evaluate: part %q: %w", p.Name, err)
		}
		min, max := o.Bounds()
		out = append(out, Footprint{Name: p.Name, Min: min, Max: max, Outline: o})
	}
	return out, nil
}

// Overlaps reports whether the bounding rectangles of a and b intersect.
// Touching edges count as overlapping.
func Overlaps(a, b Footprint) bool {
	return a.Min[0] <= b.Max[0] && b.Min[0] <= a.Max[0] &&
		a.Min[1] <= b.Max[1] && b.Min[1] <= a.Max[1]
}

// CheckClear returns an error naming the first pair of footprints in d
// whose bounding rectangles intersect.
func CheckClear(d *csg.Document, k kernel.Kernel) error {
	fps, err := Footprints(d, k)
	if err != nil {
		return err
	}
	for i := range fps {
		for j := i + 1; j < len(fps); j++ {
			if Overlaps(fps[i], fps[j]) {
				return fmt.Errorf("evaluate: %s: %q overlaps %q", d.Name, fps[i].Name, fps[j].Name)
			}
		}
	}
	return nil
}
