// Package scad serialises CSG documents as OpenSCAD scripts. The output is
// a pure function of the document: identical documents produce identical
// bytes.
package scad

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/kerf/pkg/csg"
	"gonum.org/v1/gonum/spatial/r3"
)

const indentUnit = "  "

// Write serialises d to w: a facet resolution line followed by every part
// in insertion order, each preceded by a comment carrying its name.
func Write(w io.Writer, d *csg.Document) error {
	if err := checkNames(d); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	e := &emitter{w: bw}

	e.line(0, "// "+d.Name)
	e.line(0, "$fn = "+strconv.Itoa(d.Fn)+";")
	for _, p := range d.Parts {
		e.line(0, "")
		e.line(0, "// "+p.Name)
		if err := e.node(0, p.Solid); err != nil {
			return fmt.Errorf("scad: part %q: %w", p.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("scad: write %s: %w", d.Name, err)
	}
	return nil
}

// Marshal returns the script for d.
func Marshal(d *csg.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serialises d and writes it to path, replacing any existing file.
func WriteFile(path string, d *csg.Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scad: %w", err)
	}
	return nil
}

// checkNames rejects names that cannot sit on a single comment line.
func checkNames(d *csg.Document) error {
	if strings.ContainsAny(d.Name, "\r\n") {
		return fmt.Errorf("scad: document name %q spans several lines", d.Name)
	}
	for _, p := range d.Parts {
		if strings.ContainsAny(p.Name, "\r\n") {
			return fmt.Errorf("scad: part name %q spans several lines", p.Name)
		}
	}
	return nil
}

type emitter struct {
	w *bufio.Writer
}

func (e *emitter) line(depth int, s string) {
	if s != "" {
		e.w.WriteString(strings.Repeat(indentUnit, depth))
	}
	e.w.WriteString(s)
	e.w.WriteByte('\n')
}

func (e *emitter) block(depth int, head string, children ...csg.Node) error {
	e.line(depth, head+" {")
	for _, c := range children {
		if err := e.node(depth+1, c); err != nil {
			return err
		}
	}
	e.line(depth, "}")
	return nil
}

func (e *emitter) node(depth int, n csg.Node) error {
	switch v := n.(type) {
	case csg.Primitive:
		e.line(depth, primitive(v))
		return nil
	case csg.Transformed:
		return e.transform(depth, v)
	case csg.Colored:
		return e.block(depth, "color(c = "+vector(v.RGBA[:]...)+")", v.Child)
	case csg.Projected:
		return e.block(depth, "projection(cut = false)", v.Child)
	case csg.Boolean:
		if len(v.Children) == 0 {
			return fmt.Errorf("%s without children", v.Op)
		}
		if v.Op == csg.OpDifference && len(v.Children) == 1 {
			return e.node(depth, v.Children[0])
		}
		return e.block(depth, v.Op.String()+"()", v.Children...)
	case nil:
		return fmt.Errorf("nil node")
	default:
		return fmt.Errorf("unsupported node %T", n)
	}
}

// transform writes translate { rotate { child } } so that the rotation is
// applied first.
func (e *emitter) transform(depth int, t csg.Transformed) error {
	tr := t.Transform
	switch {
	case tr.Translation != nil && tr.Rotation != nil:
		e.line(depth, translate(*tr.Translation)+" {")
		if err := e.block(depth+1, rotate(*tr.Rotation), t.Child); err != nil {
			return err
		}
		e.line(depth, "}")
		return nil
	case tr.Translation != nil:
		return e.block(depth, translate(*tr.Translation), t.Child)
	case tr.Rotation != nil:
		return e.block(depth, rotate(*tr.Rotation), t.Child)
	default:
		return e.node(depth, t.Child)
	}
}

func primitive(p csg.Primitive) string {
	if p.Shape == csg.ShapeCylinder {
		return fmt.Sprintf("cylinder(h = %s, r1 = %s, r2 = %s, center = true);",
			number(p.Height), number(p.R1), number(p.R2))
	}
	return "cube(size = " + vec3(p.Size) + ", center = true);"
}

func translate(v r3.Vec) string {
	return "translate(v = " + vec3(v) + ")"
}

func rotate(aa csg.AxisAngle) string {
	return "rotate(a = " + number(aa.Angle) + ", v = " + vec3(aa.Axis) + ")"
}

func vec3(v r3.Vec) string {
	return vector(v.X, v.Y, v.Z)
}

func vector(xs ...float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = number(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// number formats f as the shortest decimal that round-trips. Negative zero
// prints as 0.
func number(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
