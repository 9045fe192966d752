package engine

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"github.com/chazu/kerf/pkg/project"
	"github.com/chazu/kerf/pkg/scad"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cylinder :h 3)`,
			expect: `(cylinder "__kw_h" 3)`,
		},
		{
			name:   "multiple keywords",
			input:  `(plate :length 400 :width 200)`,
			expect: `(plate "__kw_length" 400 "__kw_width" 200)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(at-holes s h)`,
			expect: `(at_holes s h)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(irange -3 3)`,
			expect: `(irange -3 3)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:skip-rows`,
			expect: `"__kw_skip-rows"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// evalDoc evaluates source and fails the test on any error.
func evalDoc(t *testing.T, source string) *csg.Document {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate("test.scad", source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("expected non-nil document")
	}
	return d
}

// evalFails evaluates source and expects an eval error.
func evalFails(t *testing.T, source string) {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate("test.scad", source)
	if err != nil {
		t.Fatalf("expected eval error, got fatal: %v", err)
	}
	if d != nil || len(evalErrs) == 0 {
		t.Fatalf("expected eval error for %q", source)
	}
}

// ---------------------------------------------------------------------------
// Primitives and transforms
// ---------------------------------------------------------------------------

func TestCube(t *testing.T) {
	d := evalDoc(t, `(defpart "box" (cube 10 20 3))`)
	if len(d.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(d.Parts))
	}
	p, ok := d.Parts[0].Solid.(csg.Primitive)
	if !ok {
		t.Fatalf("expected Primitive, got %T", d.Parts[0].Solid)
	}
	if p.Shape != csg.ShapeCube || p.Size.X != 10 || p.Size.Y != 20 || p.Size.Z != 3 {
		t.Errorf("got %v", p)
	}
}

func TestCubeFromVec3(t *testing.T) {
	d := evalDoc(t, `(defpart "box" (cube (vec3 1 2 3)))`)
	p := d.Parts[0].Solid.(csg.Primitive)
	if p.Size.Z != 3 {
		t.Errorf("size = %v", p.Size)
	}
}

func TestCylinder(t *testing.T) {
	tests := []struct {
		name   string
		source string
		r1, r2 float64
	}{
		{"single radius", `(defpart "c" (cylinder :h 4 :r 2))`, 2, 2},
		{"cone", `(defpart "c" (cylinder :h 4 :r1 2 :r2 1))`, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := evalDoc(t, tt.source)
			p := d.Parts[0].Solid.(csg.Primitive)
			if p.Shape != csg.ShapeCylinder || p.Height != 4 || p.R1 != tt.r1 || p.R2 != tt.r2 {
				t.Errorf("got %v", p)
			}
		})
	}
}

func TestInch(t *testing.T) {
	d := evalDoc(t, `(defpart "box" (cube (inch 1) (inch 2) (inch 0.25)))`)
	p := d.Parts[0].Solid.(csg.Primitive)
	if math.Abs(p.Size.Y-2*layout.Inch) > 1e-9 || math.Abs(p.Size.Z-layout.Inch/4) > 1e-9 {
		t.Errorf("size = %v", p.Size)
	}
}

func TestVariableReference(t *testing.T) {
	d := evalDoc(t, `
(def th 6)
(defpart "side" (cube 40 20 th))
`)
	p := d.Parts[0].Solid.(csg.Primitive)
	if p.Size.Z != 6 {
		t.Errorf("expected thickness=6 (from variable), got %g", p.Size.Z)
	}
}

func TestTranslateRotateColor(t *testing.T) {
	d := evalDoc(t, `
(defpart "screw"
  (translate (color (rotate (cylinder :h 5 :r 1) 90 :x) :black)
             (vec3 0 -5 20)))
`)
	tr, ok := d.Parts[0].Solid.(csg.Transformed)
	if !ok || tr.Transform.Translation == nil || tr.Transform.Translation.Z != 20 {
		t.Fatalf("expected translation, got %#v", d.Parts[0].Solid)
	}
	c, ok := tr.Child.(csg.Colored)
	if !ok || c.RGBA != csg.Black {
		t.Fatalf("expected black colour, got %#v", tr.Child)
	}
	rot, ok := c.Child.(csg.Transformed)
	if !ok || rot.Transform.Rotation == nil {
		t.Fatalf("expected rotation, got %#v", c.Child)
	}
	if rot.Transform.Rotation.Angle != 90 || rot.Transform.Rotation.Axis != project.AxisX {
		t.Errorf("rotation = %v", *rot.Transform.Rotation)
	}
}

func TestColorComponents(t *testing.T) {
	d := evalDoc(t, `(defpart "c" (color (cube 1 1 1) 0.5 0 1 1))`)
	c := d.Parts[0].Solid.(csg.Colored)
	if c.RGBA != (csg.RGBA{0.5, 0, 1, 1}) {
		t.Errorf("rgba = %v", c.RGBA)
	}
}

func TestBooleans(t *testing.T) {
	d := evalDoc(t, `
(defpart "u" (union (cube 1 1 1) (cube 2 2 2)))
(defpart "d" (difference (cube 10 10 1) (cylinder :h 2 :r 1) (cylinder :h 2 :r 2)))
(defpart "bare" (difference (cube 3 3 3)))
`)
	if got := d.Lookup("u").Solid.Kind(); got != csg.KindUnion {
		t.Errorf("u kind = %s", got)
	}
	diff, ok := d.Lookup("d").Solid.(csg.Boolean)
	if !ok || diff.Op != csg.OpDifference || len(diff.Children) != 3 {
		t.Errorf("d = %#v", d.Lookup("d").Solid)
	}
	if got := d.Lookup("bare").Solid.Kind(); got != csg.KindPrimitive {
		t.Errorf("difference without cuts should return the base, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// Hole layouts
// ---------------------------------------------------------------------------

func TestGridMatchesLayout(t *testing.T) {
	d := evalDoc(t, `
(def mount (grid :columns (irange -1 2) :rows (irange -3 3)
                 :x-step (inch 1) :y-step (inch 1) :y-offset (inch 0.5)
                 :diameter (inch 0.257)
                 :skip-column 0 :skip-rows (list -1 0 1)))
(defpart "plate" (plate :length (inch 3) :width (inch 6) :thickness (inch 0.25) :holes mount))
`)
	rows := layout.Range(-3, 3)
	want := layout.Generate(layout.Grid{
		Columns:  layout.Range(-1, 2),
		Rows:     rows,
		XStep:    layout.Inch,
		YStep:    layout.Inch,
		YOffset:  0.5 * layout.Inch,
		Diameter: 0.257 * layout.Inch,
		Exclude:  layout.ExcludeRowsInColumn(0, -1, 0, 1),
	})

	b, ok := d.Parts[0].Solid.(csg.Boolean)
	if !ok {
		t.Fatalf("expected drilled plate, got %T", d.Parts[0].Solid)
	}
	if got := len(b.Children) - 1; got != len(want) || got != 15 {
		t.Fatalf("cuts = %d, want %d", got, len(want))
	}
	for i, h := range want {
		cut := b.Children[i+1].(csg.Transformed)
		at := cut.Transform.Translation
		if math.Abs(at.X-h.X) > 1e-9 || math.Abs(at.Y-h.Y) > 1e-9 {
			t.Errorf("cut %d at (%g, %g), want (%g, %g)", i, at.X, at.Y, h.X, h.Y)
		}
	}
}

func TestHolesConcatenates(t *testing.T) {
	d := evalDoc(t, `
(def a (grid :columns (list 0) :rows (list -1 1) :y-step 16 :diameter 6.2))
(def b (grid :columns (list -1 1) :rows (list 0) :x-step 20 :diameter 3))
(defpart "disk" (disk :diameter 100 :thickness 2 :holes (holes a b)))
`)
	if got := csg.Count(d.Parts[0].Solid, csg.KindPrimitive); got != 5 {
		t.Errorf("primitives = %d, want disk plus 4 cutters", got)
	}
}

func TestAtHoles(t *testing.T) {
	d := evalDoc(t, `
(def cols (grid :columns (irange 0 4) :rows (list 0) :x-step 10 :x-offset -20))
(defpart "pairs" (at-holes (cylinder :h 2 :r 1) cols))
`)
	u, ok := d.Parts[0].Solid.(csg.Boolean)
	if !ok || len(u.Children) != 4 {
		t.Fatalf("expected union of 4, got %#v", d.Parts[0].Solid)
	}
	first := u.Children[0].(csg.Transformed).Transform.Translation
	if first.X != -20 {
		t.Errorf("first copy at x=%g, want -20", first.X)
	}
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func TestSheetScript(t *testing.T) {
	d := evalDoc(t, `
;; 100 mm disk with an M5 hole
(facets 150)
(def hole (grid :columns (list 0) :rows (list 0) :diameter 5))
(defpart "disk" (project (disk :diameter 100 :thickness (inch 0.0625) :holes hole)))
(reference :margin 10)
`)
	if d.Fn != 150 {
		t.Errorf("Fn = %d, want 150", d.Fn)
	}
	if len(d.Parts) != 2 || d.Parts[1].Name != project.ReferenceName {
		t.Fatalf("parts = %v", d.Parts)
	}
	if !d.Parts[0].Projected() || !d.Parts[1].Projected() {
		t.Error("expected both parts projected")
	}
	box, ok := csg.Bounds(d.Parts[1].Solid)
	if !ok {
		t.Fatal("reference has no bounds")
	}
	if math.Abs(box.Min.X-60) > 1e-9 {
		t.Errorf("reference starts at x=%g, want 60", box.Min.X)
	}
	if r := csg.Validate(d); !r.OK() {
		t.Errorf("validation errors: %v", r.Errors)
	}
	if _, err := scad.Marshal(d); err != nil {
		t.Errorf("Marshal: %v", err)
	}
}

func TestReferenceClearsWidestPart(t *testing.T) {
	d := evalDoc(t, `
(defpart "a" (project (cube 100 100 1)))
(defpart "b" (project (translate (cube 10 10 1) (vec3 70 0 0))))
(reference :margin 1)
`)
	if len(d.Parts) != 3 || d.Parts[2].Name != project.ReferenceName {
		t.Fatalf("parts = %v", d.Parts)
	}
	box, _ := csg.Bounds(d.Parts[2].Solid)
	if math.Abs(box.Min.X-76) > 1e-9 {
		t.Errorf("reference starts at x=%g, want 76", box.Min.X)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"duplicate part", `(defpart "a" (cube 1 1 1)) (defpart "a" (cube 1 1 1))`},
		{"defpart non-solid", `(defpart "a" 5)`},
		{"vec3 arity", `(vec3 1 2)`},
		{"bad axis", `(rotate (cube 1 1 1) 90 :w)`},
		{"bad colour", `(color (cube 1 1 1) :mauve)`},
		{"empty union", `(union)`},
		{"empty difference", `(difference)`},
		{"grid without rows", `(grid :columns (list 0))`},
		{"non-integer range", `(irange 0 1.5)`},
		{"reference without margin", `(defpart "a" (project (cube 1 1 1))) (reference)`},
		{"reference with extent", `(defpart "a" (project (cube 1 1 1))) (reference :extent 10 :margin 1)`},
		{"reference before part", `(reference :margin 5) (defpart "a" (project (cube 10 10 1)))`},
		{"part after reference", `(defpart "a" (project (cube 1 1 1))) (reference :margin 1) (defpart "b" (project (cube 1 1 1)))`},
		{"two references", `(defpart "a" (project (cube 1 1 1))) (reference :margin 1) (reference :margin 1)`},
		{"multi-line part name", `(defpart "a\nb" (cube 1 1 1))`},
		{"at-holes without holes", `(at-holes (cube 1 1 1) 3)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalFails(t, tt.source)
		})
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	d := evalDoc(t, `(defpart "box" (cube (* 2 5) (+ 1 1) (- 4 1)))`)
	p := d.Parts[0].Solid.(csg.Primitive)
	if p.Size.X != 10 || p.Size.Y != 2 || p.Size.Z != 3 {
		t.Errorf("size = %v", p.Size)
	}
}
