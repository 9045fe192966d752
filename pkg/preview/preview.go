// Package preview draws hole layouts as 2D charts so a pattern can be
// checked before any script is generated.
package preview

import (
	"fmt"
	"image/color"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/layout"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the edge length of a saved preview.
const Size = 12 * vg.Centimeter

// Layout returns a chart of the plate outline with one scatter series per
// hole group. Glyph radii follow the hole diameters.
func Layout(title string, p assemble.Plate, set layout.Set) (*plot.Plot, error) {
	if !(p.Length > 0 && p.Width > 0) {
		return nil, fmt.Errorf("preview: plate %gx%g has no area", p.Length, p.Width)
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "x (mm)"
	pl.Y.Label.Text = "y (mm)"
	pl.Add(plotter.NewGrid())

	outline, err := plotter.NewPolygon(plateOutline(p))
	if err != nil {
		return nil, fmt.Errorf("preview: outline: %w", err)
	}
	outline.Color = color.Gray{Y: 230}
	pl.Add(outline)

	for i, g := range set.Groups() {
		if len(g.Holes) == 0 {
			continue
		}
		s, err := plotter.NewScatter(holePoints(g.Holes))
		if err != nil {
			return nil, fmt.Errorf("preview: %s holes: %w", g.Role, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Length(g.Holes[0].Diameter/2) * vg.Millimeter
		pl.Add(s)
		pl.Legend.Add(fmt.Sprintf("%s ø%g (%d)", g.Role, g.Holes[0].Diameter, len(g.Holes)), s)
	}

	// Same range on both axes so the plate is not distorted.
	half := 0.5*max(p.Length, p.Width) + 5
	pl.X.Min, pl.X.Max = -half, half
	pl.Y.Min, pl.Y.Max = -half, half
	return pl, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Size, Size, path); err != nil {
		return fmt.Errorf("preview: save %s: %w", path, err)
	}
	return nil
}

func plateOutline(p assemble.Plate) plotter.XYs {
	x, y := p.Length/2, p.Width/2
	return plotter.XYs{{X: -x, Y: -y}, {X: x, Y: -y}, {X: x, Y: y}, {X: -x, Y: y}}
}

func holePoints(holes []layout.HoleSpec) plotter.XYs {
	xys := make(plotter.XYs, len(holes))
	for i, h := range holes {
		xys[i] = plotter.XY{X: h.X, Y: h.Y}
	}
	return xys
}
