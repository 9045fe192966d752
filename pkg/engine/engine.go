// Package engine evaluates part scripts. A script is zygomys Lisp extended
// with CSG, hole-layout and sheet builtins; evaluating it yields a
// csg.Document ready for the emitter.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chazu/kerf/pkg/csg"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a parse or runtime error in a script.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scripts. The zero value is ready to use. Each call to
// Evaluate runs synchronously in a fresh sandbox, so no state leaks from
// one script into the next.
type Engine struct{}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and returns the document it builds, named name.
//
// Return semantics:
//   - On success: returns document + nil errors + nil error
//   - On parse/eval failure: returns nil document + eval errors + nil error
//   - On a panic inside the interpreter: returns nil + nil + error
func (e *Engine) Evaluate(name, source string) (d *csg.Document, evalErrs []EvalError, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, evalErrs, err = nil, nil, fmt.Errorf("engine: panic evaluating %s: %v", name, r)
		}
	}()
	return e.evaluate(name, source)
}

func (e *Engine) evaluate(name, source string) (*csg.Document, []EvalError, error) {
	d := csg.NewDocument(name, csg.DefaultFn)
	if strings.TrimSpace(source) == "" {
		return d, nil, nil
	}

	// The sandbox has no filesystem or syscall access.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, d)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return d, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalErrors, keeping the
// line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
