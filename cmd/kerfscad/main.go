// Command kerfscad evaluates part scripts and writes one OpenSCAD file per
// script into the working directory.
//
// Usage:
//
//	kerfscad part.kerf [more.kerf ...]
package main

import (
	"os"

	"github.com/chazu/kerf/pkg/design"
	"github.com/chazu/kerf/pkg/engine"
	"github.com/chazu/kerf/pkg/kernel/sdfx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: kerfscad part.kerf [more.kerf ...]")
	}

	eng := engine.NewEngine()
	k := sdfx.New()
	for _, path := range os.Args[1:] {
		src, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Msg("read script")
		}
		s := design.Script{Path: path, Source: string(src), Engine: eng}
		if err := design.Run(s, ".", k, log.Logger); err != nil {
			log.Fatal().Err(err).Str("script", path).Msg("kerfscad failed")
		}
	}
}
