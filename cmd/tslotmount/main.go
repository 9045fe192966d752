// Command tslotmount writes OpenSCAD scripts for two-layer t-slot motor mount plates
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

	if err := design.Run(design.DefaultTSlotMount(), ".", sdfx.New(), log.Logger); err != nil {
		log.Fatal().Err(err).Msg("tslotmount failed")
	}
}
