// Command diskmaker writes OpenSCAD scripts for a thin disk with a centre hole
// into the working directory.
package main

import (
	"os"

	"github.com/chazu/kerf/pkg/design"
	"github.com/chazu/kerf/pkg/kernel/sdfx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := design.Run(design.DefaultDiskMaker(), ".", sdfx.New(), log.Logger); err != nil {
		log.Fatal().Err(err).Msg("diskmaker failed")
	}
}
