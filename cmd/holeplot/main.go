// Command holeplot renders the hole layouts of the t-slot mount plates into
// the working directory: a PNG chart and a 1:1 SVG drilling template per
// plate.
package main

import (
	"os"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/design"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/preview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	m := design.DefaultTSlotMount()
	if err := m.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid mount")
	}
	set0, set1 := m.HoleSets()

	charts := []struct {
		file, template, title string
		set                   layout.Set
	}{
		{"plate_0_holes.png", "plate_0_template.svg", "plate 0: M6 through", set0},
		{"plate_1_holes.png", "plate_1_template.svg", "plate 1: M6 washer", set1},
	}
	for _, c := range charts {
		p, err := preview.Layout(c.title, m.Plate, c.set)
		if err != nil {
			log.Fatal().Err(err).Str("file", c.file).Msg("layout failed")
		}
		if err := preview.Save(p, c.file); err != nil {
			log.Fatal().Err(err).Msg("save failed")
		}
		log.Info().Str("file", c.file).Int("holes", c.set.Len()).Msg("wrote preview")

		if err := writeTemplate(c.template, m.Plate, c.set); err != nil {
			log.Fatal().Err(err).Msg("template failed")
		}
		log.Info().Str("file", c.template).Msg("wrote template")
	}
}

func writeTemplate(path string, p assemble.Plate, set layout.Set) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.Template(f, p, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
