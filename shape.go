package bptree

// Shape is a detached snapshot of a tree's node structure, used by renderers.
//
// For a leaf, Keys holds the stored keys and Children is empty. For a branch,
// Keys holds the routing keys and Children holds len(Keys)+1 sub-shapes, the
// head child first.
type Shape[K any] struct {
	Leaf     bool
	Keys     []K
	Children []*Shape[K]
}

// Shape returns a snapshot of the tree structure, or nil for an empty tree.
// The snapshot shares no memory with the tree.
func (t *Tree[K, V]) Shape() *Shape[K] {
	if t.IsEmpty() {
		return nil
	}
	return shapeOf[K, V](t.root)
}

func shapeOf[K, V any](n treeNode[K, V]) *Shape[K] {
	switch node := n.(type) {
	case *leafNode[K, V]:
		s := &Shape[K]{Leaf: true, Keys: make([]K, len(node.items))}
		for i, e := range node.items {
			s.Keys[i] = e.key
		}
		return s
	case *branchNode[K, V]:
		s := &Shape[K]{
			Keys:     make([]K, len(node.body)),
			Children: make([]*Shape[K], 0, len(node.body)+1),
		}
		s.Children = append(s.Children, shapeOf[K, V](node.head))
		for i, r := range node.body {
			s.Keys[i] = r.key
			s.Children = append(s.Children, shapeOf[K, V](r.child))
		}
		return s
	}
	panic("unknown tree node type")
}

// Levels returns the nodes of a shape grouped by depth, root level first,
// each level ordered left to right.
func (s *Shape[K]) Levels() [][]*Shape[K] {
	if s == nil {
		return nil
	}
	var levels [][]*Shape[K]
	level := []*Shape[K]{s}
	for len(level) > 0 {
		levels = append(levels, level)
		var next []*Shape[K]
		for _, n := range level {
			next = append(next, n.Children...)
		}
		level = next
	}
	return levels
}

// Height returns the number of levels of a shape.
func (s *Shape[K]) Height() int {
	h := 0
	for n := s; n != nil; h++ {
		if len(n.Children) == 0 {
			return h + 1
		}
		n = n.Children[0]
	}
	return h
}
