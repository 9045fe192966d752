package csg

// Children returns the direct children of n.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Transformed:
		return []Node{v.Child}
	case Colored:
		return []Node{v.Child}
	case Projected:
		return []Node{v.Child}
	case Boolean:
		return v.Children
	default:
		return nil
	}
}

// Walk visits n and its descendants in pre-order. When fn returns false
// the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Count returns the number of nodes of kind k in the tree rooted at n.
func Count(n Node, k Kind) int {
	count := 0
	Walk(n, func(c Node) bool {
		if c.Kind() == k {
			count++
		}
		return true
	})
	return count
}

// HasCurves reports whether the tree contains a cylinder.
func HasCurves(n Node) bool {
	found := false
	Walk(n, func(c Node) bool {
		if p, ok := c.(Primitive); ok && p.Shape == ShapeCylinder {
			found = true
		}
		return !found
	})
	return found
}
