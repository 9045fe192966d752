package csg

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ValidationSeverity indicates whether a finding blocks emission or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks emission
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Path locates the
// node, e.g. "plate_0/difference[3]/transform".
type ValidationError struct {
	Path     string
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Path, e.Message)
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// containTol absorbs rounding in rotated bounding boxes.
const containTol = 1e-6

// Validate checks every part of d. It is read-only.
//
// Errors: names spanning several lines, missing solids, non-positive or
// NaN primitive dimensions, booleans without children, colour components
// outside [0, 1], a facet count below 3.
//
// Warnings: a difference cut reaching outside its base, and curved
// geometry emitted with fewer than SmoothFacets facets. A through cut
// overshoots the base along its own axis, so a cut is reported only when
// it leaves the base along two or more axes.
func Validate(d *Document) ValidationResult {
	var r ValidationResult
	if d.Fn < 3 {
		r.Errors = append(r.Errors, ValidationError{
			Path:     d.Name,
			Message:  fmt.Sprintf("facet resolution %d, must be at least 3", d.Fn),
			Severity: SeverityError,
		})
	}
	checkName(&r, "document", d.Name)
	curved := false
	for _, p := range d.Parts {
		checkName(&r, "part", p.Name)
		if p.Solid == nil {
			r.Errors = append(r.Errors, ValidationError{
				Path:     p.Name,
				Message:  "part has no solid",
				Severity: SeverityError,
			})
			continue
		}
		validateNode(&r, p.Name, p.Solid)
		curved = curved || HasCurves(p.Solid)
	}
	if curved && d.Fn >= 3 && d.Fn < SmoothFacets {
		r.Warnings = append(r.Warnings, ValidationError{
			Path:     d.Name,
			Message:  fmt.Sprintf("facet resolution %d is below %d; round holes will cut polygonal", d.Fn, SmoothFacets),
			Severity: SeverityWarning,
		})
	}
	return r
}

// checkName rejects names that would break out of a script comment line.
func checkName(r *ValidationResult, what, name string) {
	if strings.ContainsAny(name, "\r\n") {
		r.Errors = append(r.Errors, ValidationError{
			Path:     strconv.Quote(name),
			Message:  what + " name contains a line break",
			Severity: SeverityError,
		})
	}
}

func validateNode(r *ValidationResult, path string, n Node) {
	switch v := n.(type) {
	case Primitive:
		validatePrimitive(r, path+"/"+v.Shape.String(), v)
	case Transformed:
		if v.Transform.Rotation != nil && r3.Norm(v.Transform.Rotation.Axis) == 0 && v.Transform.Rotation.Angle != 0 {
			r.Errors = append(r.Errors, ValidationError{
				Path:     path + "/transform",
				Message:  "rotation axis is the zero vector",
				Severity: SeverityError,
			})
		}
		validateChild(r, path+"/transform", v.Child)
	case Colored:
		for i, c := range v.RGBA {
			if !(c >= 0 && c <= 1) {
				r.Errors = append(r.Errors, ValidationError{
					Path:     path + "/color",
					Message:  fmt.Sprintf("colour component %d is %.4f, must be in [0, 1]", i, c),
					Severity: SeverityError,
				})
			}
		}
		validateChild(r, path+"/color", v.Child)
	case Projected:
		validateChild(r, path+"/projection", v.Child)
	case Boolean:
		p := path + "/" + v.Op.String()
		if len(v.Children) == 0 {
			r.Errors = append(r.Errors, ValidationError{
				Path:     p,
				Message:  "boolean operation has no children",
				Severity: SeverityError,
			})
			return
		}
		for i, c := range v.Children {
			validateChild(r, fmt.Sprintf("%s[%d]", p, i), c)
		}
		if v.Op == OpDifference {
			validateCuts(r, p, v.Children)
		}
	}
}

func validateChild(r *ValidationResult, path string, n Node) {
	if n == nil {
		r.Errors = append(r.Errors, ValidationError{
			Path:     path,
			Message:  "missing child",
			Severity: SeverityError,
		})
		return
	}
	validateNode(r, path, n)
}

func validatePrimitive(r *ValidationResult, path string, p Primitive) {
	check := func(name string, v float64) {
		if !(v > 0) {
			r.Errors = append(r.Errors, ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("%s is %.4f, must be positive", name, v),
				Severity: SeverityError,
			})
		}
	}
	switch p.Shape {
	case ShapeCylinder:
		check("height", p.Height)
		if !(p.R1 >= 0 && p.R2 >= 0) || (p.R1 == 0 && p.R2 == 0) {
			r.Errors = append(r.Errors, ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("radii %.4f/%.4f are invalid", p.R1, p.R2),
				Severity: SeverityError,
			})
		}
	default:
		check("size X", p.Size.X)
		check("size Y", p.Size.Y)
		check("size Z", p.Size.Z)
	}
}

func validateCuts(r *ValidationResult, path string, children []Node) {
	base, ok := Bounds(children[0])
	if !ok {
		return
	}
	for i, c := range children[1:] {
		cb, ok := Bounds(c)
		if !ok {
			continue
		}
		if axesInside(base, cb, containTol) < 2 {
			r.Warnings = append(r.Warnings, ValidationError{
				Path:     fmt.Sprintf("%s[%d]", path, i+1),
				Message:  "cut extends outside the base outline",
				Severity: SeverityWarning,
			})
		}
	}
}

// axesInside counts the axes along which inner stays within outer.
func axesInside(outer, inner r3.Box, tol float64) int {
	n := 0
	if inner.Min.X >= outer.Min.X-tol && inner.Max.X <= outer.Max.X+tol {
		n++
	}
	if inner.Min.Y >= outer.Min.Y-tol && inner.Max.Y <= outer.Max.Y+tol {
		n++
	}
	if inner.Min.Z >= outer.Min.Z-tol && inner.Max.Z <= outer.Max.Z+tol {
		n++
	}
	return n
}
