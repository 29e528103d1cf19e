package bptree

import "fmt"

// Check validates the structural invariants of the tree:
//
//   - all leaves are at depth Height(),
//   - keys are strictly increasing within nodes and along the leaf chain,
//   - every key reachable from a branch child lies within the bounds given
//     by the routing keys around it,
//   - no node holds more entries than the node capacity,
//   - every node is reachable from exactly one parent slot,
//   - the leaf chain covers exactly Len() entries.
//
// Violations are reported as errors wrapping ErrCorrupted. Check is meant for
// tests and debugging; it visits every node.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		if t.height != 0 || t.count != 0 {
			return fmt.Errorf("%w: empty tree must have height=0 and len=0", ErrCorrupted)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrCorrupted)
	}
	c := checker[K, V]{
		tree: t,
		seen: make(map[treeNode[K, V]]bool),
	}
	if err := c.checkNode(t.root, 1, bounds[K]{}); err != nil {
		return err
	}
	return c.checkLeafChain()
}

// bounds is a half-open key interval [lo, hi); missing bounds are unbounded.
type bounds[K any] struct {
	lo, hi       K
	hasLo, hasHi bool
}

type checker[K, V any] struct {
	tree   *Tree[K, V]
	seen   map[treeNode[K, V]]bool
	leaves []*leafNode[K, V]
}

func (c *checker[K, V]) within(key K, b bounds[K]) bool {
	cmp := c.tree.cfg.Compare
	if b.hasLo && cmp(key, b.lo) < 0 {
		return false
	}
	if b.hasHi && cmp(key, b.hi) >= 0 {
		return false
	}
	return true
}

func (c *checker[K, V]) checkNode(n treeNode[K, V], depth int, b bounds[K]) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at depth %d", ErrCorrupted, depth)
	}
	if c.seen[n] {
		return fmt.Errorf("%w: node reachable from more than one parent slot", ErrCorrupted)
	}
	c.seen[n] = true
	capacity := c.tree.cfg.Capacity
	cmp := c.tree.cfg.Compare
	switch node := n.(type) {
	case *leafNode[K, V]:
		if depth != c.tree.height {
			return fmt.Errorf("%w: leaf at depth %d, height is %d", ErrCorrupted, depth, c.tree.height)
		}
		if len(node.items) == 0 {
			return fmt.Errorf("%w: empty leaf", ErrCorrupted)
		}
		if len(node.items) > capacity {
			return fmt.Errorf("%w: leaf holds %d items, capacity is %d", ErrCorrupted, len(node.items), capacity)
		}
		for i, e := range node.items {
			if i > 0 && cmp(node.items[i-1].key, e.key) >= 0 {
				return fmt.Errorf("%w: leaf keys not strictly increasing at %v", ErrCorrupted, e.key)
			}
			if !c.within(e.key, b) {
				return fmt.Errorf("%w: leaf key %v out of routing bounds", ErrCorrupted, e.key)
			}
		}
		c.leaves = append(c.leaves, node)
		return nil
	case *branchNode[K, V]:
		if depth >= c.tree.height {
			return fmt.Errorf("%w: branch at leaf level %d", ErrCorrupted, depth)
		}
		if len(node.body) == 0 {
			return fmt.Errorf("%w: branch without routing keys", ErrCorrupted)
		}
		if len(node.body) > capacity {
			return fmt.Errorf("%w: branch holds %d keys, capacity is %d", ErrCorrupted, len(node.body), capacity)
		}
		for i, r := range node.body {
			if i > 0 && cmp(node.body[i-1].key, r.key) >= 0 {
				return fmt.Errorf("%w: routing keys not strictly increasing at %v", ErrCorrupted, r.key)
			}
			if !c.within(r.key, b) {
				return fmt.Errorf("%w: routing key %v out of bounds", ErrCorrupted, r.key)
			}
		}
		headBounds := b
		headBounds.hi, headBounds.hasHi = node.body[0].key, true
		if err := c.checkNode(node.head, depth+1, headBounds); err != nil {
			return err
		}
		for i, r := range node.body {
			childBounds := b
			childBounds.lo, childBounds.hasLo = r.key, true
			if i+1 < len(node.body) {
				childBounds.hi, childBounds.hasHi = node.body[i+1].key, true
			}
			if err := c.checkNode(r.child, depth+1, childBounds); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown node type %T", ErrCorrupted, n)
}

// checkLeafChain verifies that sibling links connect the leaves in the order
// of an in-order walk, and that the chain holds exactly Len() entries.
func (c *checker[K, V]) checkLeafChain() error {
	total := 0
	for i, leaf := range c.leaves {
		var want *leafNode[K, V]
		if i+1 < len(c.leaves) {
			want = c.leaves[i+1]
		}
		if leaf.next != want {
			return fmt.Errorf("%w: broken leaf sibling link after leaf %d", ErrCorrupted, i)
		}
		total += len(leaf.items)
	}
	if total != c.tree.count {
		return fmt.Errorf("%w: leaf chain holds %d entries, tree reports %d", ErrCorrupted, total, c.tree.count)
	}
	return nil
}
