package csg

// Part is one separately fabricated piece.
type Part struct {
	Name  string
	Solid Node
}

// Project returns the cuttable outline of p under the same name.
func (p Part) Project() Part {
	return Part{Name: p.Name, Solid: Project(p.Solid)}
}

// Projected reports whether p is already a flat outline.
func (p Part) Projected() bool {
	return IsFlat(p.Solid)
}

// IsFlat reports whether n is a projection, possibly wrapped in colour tags
// or transforms.
func IsFlat(n Node) bool {
	for {
		switch v := n.(type) {
		case Projected:
			return true
		case Colored:
			n = v.Child
		case Transformed:
			n = v.Child
		default:
			return false
		}
	}
}

// DefaultFn is the facet count used when a document does not set one.
const DefaultFn = 100

// SmoothFacets is the lowest facet count that still cuts visibly round holes.
const SmoothFacets = 30

// Document is the content of one output script: a facet resolution and
// the top-level parts in emission order.
type Document struct {
	Name  string
	Fn    int
	Parts []Part
}

// NewDocument creates an empty document.
func NewDocument(name string, fn int) *Document {
	if fn == 0 {
		fn = DefaultFn
	}
	return &Document{Name: name, Fn: fn}
}

// Add appends parts in order.
func (d *Document) Add(parts ...Part) {
	d.Parts = append(d.Parts, parts...)
}

// Lookup returns the part with the given name, or nil.
func (d *Document) Lookup(name string) *Part {
	for i := range d.Parts {
		if d.Parts[i].Name == name {
			return &d.Parts[i]
		}
	}
	return nil
}
