// Package design holds the parametric part generators. Each generator is a
// plain configuration struct whose Build method turns numbers into CSG
// documents without touching the filesystem; Run validates, measures and
// writes them.
package design

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/evaluate"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/chazu/kerf/pkg/project"
	"github.com/chazu/kerf/pkg/scad"
	"github.com/rs/zerolog"
)

// Output is one script file produced by a generator.
type Output struct {
	File string
	Doc  *csg.Document
}

// Generator builds the output documents of one part family.
type Generator interface {
	Name() string
	Validate() error
	Build() ([]Output, error)
}

// Run validates g's parameters, builds its documents, checks that no
// projected part overlaps its calibration reference and writes every
// document into dir. Any failure aborts the run.
func Run(g Generator, dir string, k kernel.Kernel, logger zerolog.Logger) error {
	logger = logger.With().Str("generator", g.Name()).Logger()
	if err := g.Validate(); err != nil {
		return fmt.Errorf("design: %s: %w", g.Name(), err)
	}
	outs, err := g.Build()
	if err != nil {
		return fmt.Errorf("design: %s: %w", g.Name(), err)
	}
	if err := Verify(outs, k); err != nil {
		return fmt.Errorf("design: %s: %w", g.Name(), err)
	}
	return Write(dir, outs, logger)
}

// Verify checks the part-then-reference layout of every projection
// document, then measures it with k and fails if two of its outlines
// intersect.
func Verify(outs []Output, k kernel.Kernel) error {
	for _, o := range outs {
		if err := project.CheckSheet(o.Doc); err != nil {
			return err
		}
		if err := evaluate.CheckClear(o.Doc, k); err != nil {
			return err
		}
	}
	return nil
}

// Write checks and serialises each output into dir. Validation warnings
// are logged; validation errors abort before anything is written.
func Write(dir string, outs []Output, logger zerolog.Logger) error {
	var errs []error
	for _, o := range outs {
		r := csg.Validate(o.Doc)
		for _, w := range r.Warnings {
			logger.Warn().Str("file", o.File).Str("path", w.Path).Msg(w.Message)
		}
		for _, e := range r.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", o.File, e))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("design: invalid documents: %w", errors.Join(errs...))
	}

	for _, o := range outs {
		path := filepath.Join(dir, o.File)
		if err := scad.WriteFile(path, o.Doc); err != nil {
			return fmt.Errorf("design: %w", err)
		}
		logger.Info().
			Str("file", path).
			Int("parts", len(o.Doc.Parts)).
			Int("fn", o.Doc.Fn).
			Msg("wrote script")
	}
	return nil
}

// positive returns an error naming the first value that is not a positive
// number. NaN fails.
func positive(fields ...field) error {
	for _, f := range fields {
		if !(f.v > 0) {
			return fmt.Errorf("%s is %g, must be positive", f.name, f.v)
		}
	}
	return nil
}

type field struct {
	name string
	v    float64
}
