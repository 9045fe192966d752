package design

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chazu/kerf/pkg/engine"
	"github.com/chazu/kerf/pkg/project"
)

// Script is a part described in the engine's Lisp dialect instead of a Go
// config. Its single output is named after the source file.
type Script struct {
	Path   string // source file, used for naming
	Source string
	Engine *engine.Engine
}

// Name returns the source file's base name without its extension.
func (s Script) Name() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Validate checks that the script can be evaluated.
func (s Script) Validate() error {
	if s.Engine == nil {
		return errors.New("script has no engine")
	}
	if strings.TrimSpace(s.Source) == "" {
		return fmt.Errorf("script %s is empty", s.Path)
	}
	return nil
}

// Build evaluates the script into <name>.scad. A script that adds a
// reference must project every part it defines.
func (s Script) Build() ([]Output, error) {
	file := s.Name() + ".scad"
	d, evalErrs, err := s.Engine.Evaluate(file, s.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = e
		}
		return nil, fmt.Errorf("%s: %w", s.Path, errors.Join(errs...))
	}
	if len(d.Parts) == 0 {
		return nil, fmt.Errorf("%s: script defines no parts", s.Path)
	}
	if err := project.CheckSheet(d); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return []Output{{File: file, Doc: d}}, nil
}
