package assemble

import (
	"github.com/chazu/kerf/pkg/csg"
	"github.com/chazu/kerf/pkg/layout"
	"gonum.org/v1/gonum/spatial/r3"
)

// AtHoles returns one copy of n per hole, translated to the hole's (X, Y).
// The hole diameter is ignored; it is the caller's feature that is placed.
func AtHoles(n csg.Node, holes []layout.HoleSpec) []csg.Node {
	out := make([]csg.Node, 0, len(holes))
	for _, h := range holes {
		out = append(out, csg.Translate(n, r3.Vec{X: h.X, Y: h.Y}))
	}
	return out
}

// Stack lays nodes out along z for an exploded assembly view. Node i is
// moved by (i - (len-1)/2) * pitch, so the stack is centred on z = 0:
// two plates of thickness t with pitch 1.2t sit at -0.6t and +0.6t.
func Stack(pitch float64, nodes ...csg.Node) []csg.Node {
	out := make([]csg.Node, len(nodes))
	mid := float64(len(nodes)-1) / 2
	for i, n := range nodes {
		out[i] = csg.Translate(n, r3.Vec{Z: (float64(i) - mid) * pitch})
	}
	return out
}

// Offset is a named placement relative to a shared local origin.
type Offset struct {
	Name string
	At   r3.Vec
}

// Apply translates n to o.At.
func (o Offset) Apply(n csg.Node) csg.Transformed {
	return csg.Translate(n, o.At)
}
