package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNode wraps a csg.Node.
type sexpNode struct {
	n csg.Node
}

func (s *sexpNode) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.n.Kind())
}
func (s *sexpNode) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps an r3.Vec.
type sexpVec3 struct {
	vec r3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpInts is an integer range produced by irange.
type sexpInts struct {
	vals []int
}

func (s *sexpInts) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(ints %v)", s.vals)
}
func (s *sexpInts) Type() *zygo.RegisteredType { return nil }

// sexpHoles wraps a hole layout.
type sexpHoles struct {
	holes []layout.HoleSpec
}

func (h *sexpHoles) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(holes %d)", len(h.holes))
}
func (h *sexpHoles) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float reads keyword k into dst if present.
func (a kwArgs) float(k string, dst *float64) error {
	v, ok := a.kw[k]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toInts accepts an irange result or a list or array of integers.
func toInts(s zygo.Sexp) ([]int, error) {
	if r, ok := s.(*sexpInts); ok {
		return append([]int(nil), r.vals...), nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toAxis accepts :x, :y, :z or a vec3.
func toAxis(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	name, err := toKeywordString(s)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("expected axis keyword (:x, :y, :z) or vec3: %w", err)
	}
	switch name {
	case "x":
		return project.AxisX, nil
	case "y":
		return project.AxisY, nil
	case "z":
		return project.AxisZ, nil
	}
	return r3.Vec{}, fmt.Errorf("invalid axis %q, expected x, y, or z", name)
}

// toColor accepts :black or :red.
func toColor(s zygo.Sexp) (csg.RGBA, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return csg.RGBA{}, err
	}
	switch name {
	case "black":
		return csg.Black, nil
	case "red":
		return csg.Red, nil
	}
	return csg.RGBA{}, fmt.Errorf("unknown colour %q", name)
}

// toNode extracts a csg.Node from a sexpNode.
func toNode(s zygo.Sexp) (csg.Node, error) {
	if n, ok := s.(*sexpNode); ok {
		return n.n, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toNodes extracts every argument as a node.
func toNodes(args []zygo.Sexp) ([]csg.Node, error) {
	out := make([]csg.Node, 0, len(args))
	for i, a := range args {
		n, err := toNode(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// toVec3 extracts an r3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toXYZ reads three numbers into a vector.
func toXYZ(args []zygo.Sexp) (r3.Vec, error) {
	var xyz [3]float64
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%c: %w", "xyz"[i], err)
		}
		xyz[i] = f
	}
	return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// toHoles extracts a hole layout from a sexpHoles.
func toHoles(s zygo.Sexp) ([]layout.HoleSpec, error) {
	if h, ok := s.(*sexpHoles); ok {
		return h.holes, nil
	}
	return nil, fmt.Errorf("expected holes, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func node(n csg.Node) zygo.Sexp {
	return &sexpNode{n: n}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the part DSL into env. Parts declared with
// defpart and reference are appended to d in evaluation order.
//
// Source code must be preprocessed with preprocessSource() so that
// :keyword tokens reach the builtins as recognisable strings.
func registerBuiltins(env *zygo.Zlisp, d *csg.Document) {

	// (facets 100) sets the document's $fn.
	env.AddFunction("facets", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("facets requires exactly 1 argument, got %d", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("facets: %w", err)
		}
		d.Fn = n
		return args[0], nil
	})

	// (inch 0.25)
	env.AddFunction("inch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("inch requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inch: %w", err)
		}
		return &zygo.SexpFloat{Val: f * layout.Inch}, nil
	})

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		v, err := toXYZ(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec3{vec: v}, nil
	})

	// (irange -3 3) is -3 .. 2
	env.AddFunction("irange", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("irange requires exactly 2 arguments, got %d", len(args))
		}
		lo, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("irange: lo: %w", err)
		}
		hi, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("irange: hi: %w", err)
		}
		return &sexpInts{vals: layout.Range(lo, hi)}, nil
	})

	// (cube 10 20 3) or (cube (vec3 10 20 3))
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 1:
			v, err := toVec3(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: %w", err)
			}
			return node(csg.Cube(v)), nil
		case 3:
			v, err := toXYZ(args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: %w", err)
			}
			return node(csg.Cube(v)), nil
		}
		return zygo.SexpNull, fmt.Errorf("cube requires a vec3 or 3 sizes, got %d arguments", len(args))
	})

	// (cylinder :h 10 :r 2) or (cylinder :h 10 :r1 2 :r2 1)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var h, r, r1, r2 float64
		for k, dst := range map[string]*float64{"h": &h, "r": &r, "r1": &r1, "r2": &r2} {
			if err := pa.float(k, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
			}
		}
		if _, ok := pa.kw["r"]; ok {
			r1, r2 = r, r
		}
		return node(csg.Cylinder(h, r1, r2)), nil
	})

	// (translate solid (vec3 0 0 5))
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a solid and a vec3")
		}
		n, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		return node(csg.Translate(n, v)), nil
	})

	// (rotate solid 90 :x)
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a solid, an angle and an axis")
		}
		n, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		angle, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		axis, err := toAxis(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		return node(csg.Rotate(n, angle, axis)), nil
	})

	// (color solid :red) or (color solid 1 0 0 1)
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 && len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("color requires a solid and a colour name or 4 components")
		}
		n, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		if len(args) == 2 {
			c, err := toColor(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: %w", err)
			}
			return node(csg.Color(n, c)), nil
		}
		var c csg.RGBA
		for i, a := range args[1:] {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: component %d: %w", i, err)
			}
			c[i] = f
		}
		return node(csg.Color(n, c)), nil
	})

	// (union a b ...)
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nodes, err := toNodes(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("union: %w", err)
		}
		if len(nodes) == 0 {
			return zygo.SexpNull, fmt.Errorf("union requires at least one solid")
		}
		return node(csg.Union(nodes...)), nil
	})

	// (difference base cut ...)
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nodes, err := toNodes(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		if len(nodes) == 0 {
			return zygo.SexpNull, fmt.Errorf("difference requires a base solid")
		}
		return node(csg.Difference(nodes[0], nodes[1:]...)), nil
	})

	// (grid :columns (irange -1 2) :rows (irange -3 3) :x-step 25.4
	//       :y-step 25.4 :y-offset 12.7 :diameter 6.5
	//       :skip-column 0 :skip-rows [-1 0 1])
	env.AddFunction("grid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var g layout.Grid
		for k, dst := range map[string]*[]int{"columns": &g.Columns, "rows": &g.Rows} {
			v, ok := pa.kw[k]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("grid: missing :%s", k)
			}
			ints, err := toInts(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("grid: %s: %w", k, err)
			}
			*dst = ints
		}
		for k, dst := range map[string]*float64{
			"x-step": &g.XStep, "y-step": &g.YStep,
			"x-offset": &g.XOffset, "y-offset": &g.YOffset,
			"diameter": &g.Diameter,
		} {
			if err := pa.float(k, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("grid: %w", err)
			}
		}
		if v, ok := pa.kw["skip-rows"]; ok {
			rows, err := toInts(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("grid: skip-rows: %w", err)
			}
			col := 0
			if c, ok := pa.kw["skip-column"]; ok {
				if col, err = toInt(c); err != nil {
					return zygo.SexpNull, fmt.Errorf("grid: skip-column: %w", err)
				}
			}
			g.Exclude = layout.ExcludeRowsInColumn(col, rows...)
		}
		return &sexpHoles{holes: layout.Generate(g)}, nil
	})

	// (holes grid-a grid-b ...) concatenates layouts in order.
	env.AddFunction("holes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var all []layout.HoleSpec
		for i, a := range args {
			h, err := toHoles(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("holes: argument %d: %w", i+1, err)
			}
			all = append(all, h...)
		}
		return &sexpHoles{holes: all}, nil
	})

	// (plate :length 76.2 :width 152.4 :thickness 6.35 :holes h)
	env.AddFunction("plate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var p assemble.Plate
		for k, dst := range map[string]*float64{"length": &p.Length, "width": &p.Width, "thickness": &p.Thickness} {
			if err := pa.float(k, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("plate: %w", err)
			}
		}
		holes, err := optionalHoles(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plate: %w", err)
		}
		return node(assemble.PlateWithHoles(p, holes)), nil
	})

	// (disk :diameter 100 :thickness 1.5875 :holes h)
	env.AddFunction("disk", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var dk assemble.Disk
		for k, dst := range map[string]*float64{"diameter": &dk.Diameter, "thickness": &dk.Thickness} {
			if err := pa.float(k, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("disk: %w", err)
			}
		}
		holes, err := optionalHoles(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("disk: %w", err)
		}
		return node(assemble.DiskWithHoles(dk, holes)), nil
	})

	// (at-holes solid h) unions one copy of solid per hole.
	env.AddFunction("at_holes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("at-holes requires a solid and holes")
		}
		n, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at-holes: %w", err)
		}
		holes, err := toHoles(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at-holes: %w", err)
		}
		if len(holes) == 0 {
			return zygo.SexpNull, fmt.Errorf("at-holes: no holes")
		}
		return node(csg.Union(assemble.AtHoles(n, holes)...)), nil
	})

	// (project solid)
	env.AddFunction("project", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("project requires exactly 1 solid")
		}
		n, err := toNode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("project: %w", err)
		}
		return node(csg.Project(n)), nil
	})

	// (defpart "name" solid)
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and a solid")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}
		if strings.ContainsAny(partName, "\r\n") {
			return zygo.SexpNull, fmt.Errorf("defpart: name %q spans several lines", partName)
		}
		if d.Lookup(partName) != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: duplicate part %q", partName)
		}
		if d.Lookup(project.ReferenceName) != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: %q follows the reference", partName)
		}
		n, err := toNode(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: %w", err)
		}
		d.Add(csg.Part{Name: partName, Solid: n})
		return args[1], nil
	})

	// (reference :margin 10) adds the calibration square to the right of
	// every part defined so far. It must come after the last defpart.
	env.AddFunction("reference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if _, ok := pa.kw["extent"]; ok {
			return zygo.SexpNull, fmt.Errorf("reference: :extent is measured from the parts, remove it")
		}
		if _, ok := pa.kw["margin"]; !ok {
			return zygo.SexpNull, fmt.Errorf("reference: missing :margin")
		}
		var margin float64
		if err := pa.float("margin", &margin); err != nil {
			return zygo.SexpNull, fmt.Errorf("reference: %w", err)
		}
		if d.Lookup(project.ReferenceName) != nil {
			return zygo.SexpNull, fmt.Errorf("reference: already added")
		}
		if len(d.Parts) == 0 {
			return zygo.SexpNull, fmt.Errorf("reference: no part defined yet")
		}
		ref, err := project.ReferenceAfter(d.Parts, margin)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reference: %w", err)
		}
		d.Add(ref)
		return node(ref.Solid), nil
	})
}

func optionalHoles(pa kwArgs) ([]layout.HoleSpec, error) {
	v, ok := pa.kw["holes"]
	if !ok {
		return nil, nil
	}
	h, err := toHoles(v)
	if err != nil {
		return nil, fmt.Errorf("holes: %w", err)
	}
	return h, nil
}
