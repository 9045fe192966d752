// Package layout computes through-hole positions for laser-cut parts.
// Holes are produced from integer grids and kept in named groups so that
// sibling parts can share one pattern and differ in a single group.
package layout

import "fmt"

// Inch is the number of millimetres in one inch.
const Inch = 25.4

// HoleSpec is a through hole at (X, Y) relative to the part origin.
type HoleSpec struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

func (h HoleSpec) String() string {
	return fmt.Sprintf("(%g, %g) ø%g", h.X, h.Y, h.Diameter)
}

// Role identifies what a hole group is for.
type Role int

const (
	RoleMounting Role = iota // bolt pattern used to mount the part
	RoleThrough              // clearance for a through bolt
	RoleWasher               // counterbore-style clearance for a washer
	RoleFixing               // screw holes fixing a bought-in component
)

func (r Role) String() string {
	switch r {
	case RoleMounting:
		return "mounting"
	case RoleThrough:
		return "through"
	case RoleWasher:
		return "washer"
	case RoleFixing:
		return "fixing"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Group is a set of holes sharing one role.
type Group struct {
	Role  Role
	Holes []HoleSpec
}

// Set is an ordered collection of hole groups belonging to one part.
// At most one group per role is kept.
type Set struct {
	groups []Group
}

// NewSet returns a set holding the given groups in order. A later group
// replaces an earlier one with the same role.
func NewSet(groups ...Group) Set {
	var s Set
	for _, g := range groups {
		s = s.With(g)
	}
	return s
}

// With returns a copy of s where the group with g's role is replaced by g.
// If no such group exists g is appended. s is not modified.
func (s Set) With(g Group) Set {
	out := Set{groups: make([]Group, 0, len(s.groups)+1)}
	replaced := false
	for _, cur := range s.groups {
		if cur.Role == g.Role {
			out.groups = append(out.groups, copyGroup(g))
			replaced = true
			continue
		}
		out.groups = append(out.groups, cur)
	}
	if !replaced {
		out.groups = append(out.groups, copyGroup(g))
	}
	return out
}

// Without returns a copy of s without the group of role r. A group added
// afterwards with With takes the removed group's place at the end.
func (s Set) Without(r Role) Set {
	out := Set{groups: make([]Group, 0, len(s.groups))}
	for _, g := range s.groups {
		if g.Role != r {
			out.groups = append(out.groups, g)
		}
	}
	return out
}

// Group returns the group with the given role.
func (s Set) Group(r Role) (Group, bool) {
	for _, g := range s.groups {
		if g.Role == r {
			return g, true
		}
	}
	return Group{}, false
}

// Groups returns the groups in insertion order.
func (s Set) Groups() []Group {
	out := make([]Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// Holes concatenates all groups in insertion order.
func (s Set) Holes() []HoleSpec {
	holes := make([]HoleSpec, 0, s.Len())
	for _, g := range s.groups {
		holes = append(holes, g.Holes...)
	}
	return holes
}

// Len returns the total number of holes.
func (s Set) Len() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Holes)
	}
	return n
}

func copyGroup(g Group) Group {
	holes := make([]HoleSpec, len(g.Holes))
	copy(holes, g.Holes)
	return Group{Role: g.Role, Holes: holes}
}
