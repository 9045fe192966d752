package layout

// Exclusion reports whether the grid position (col, row) must be skipped.
type Exclusion func(col, row int) bool

// ExcludeRowsInColumn skips the listed rows in a single column. The t-slot
// mount uses it to keep the centred column of the mounting grid clear of
// the through-bolt holes.
func ExcludeRowsInColumn(col int, rows ...int) Exclusion {
	skip := make(map[int]bool, len(rows))
	for _, r := range rows {
		skip[r] = true
	}
	return func(c, r int) bool {
		return c == col && skip[r]
	}
}

// Range returns the integers lo, lo+1, ..., hi-1. It is empty when hi <= lo.
func Range(lo, hi int) []int {
	if hi <= lo {
		return []int{}
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// Grid describes a rectangular hole pattern in grid index space.
//
// The hole at column i and row j sits at
//
//	x = i*XStep + XOffset
//	y = j*YStep + YOffset
//
// A zero XStep collapses every column onto x = XOffset, which is how a
// single column of holes (or a lone centre hole) is described.
type Grid struct {
	Columns  []int
	Rows     []int
	XStep    float64
	YStep    float64
	XOffset  float64
	YOffset  float64
	Diameter float64
	Exclude  Exclusion // nil keeps every position
}

func (g Grid) excluded(col, row int) bool {
	return g.Exclude != nil && g.Exclude(col, row)
}

// Generate returns the holes of g in column-major order: all rows of the
// first column, then all rows of the next. The result is never nil.
func Generate(g Grid) []HoleSpec {
	holes := make([]HoleSpec, 0, len(g.Columns)*len(g.Rows))
	for _, i := range g.Columns {
		for _, j := range g.Rows {
			if g.excluded(i, j) {
				continue
			}
			holes = append(holes, HoleSpec{
				X:        float64(i)*g.XStep + g.XOffset,
				Y:        float64(j)*g.YStep + g.YOffset,
				Diameter: g.Diameter,
			})
		}
	}
	return holes
}

// Count returns the number of holes Generate would produce.
func (g Grid) Count() int {
	n := 0
	for _, i := range g.Columns {
		for _, j := range g.Rows {
			if !g.excluded(i, j) {
				n++
			}
		}
	}
	return n
}

// Group generates g and tags the result with role r.
func (g Grid) Group(r Role) Group {
	return Group{Role: r, Holes: Generate(g)}
}
