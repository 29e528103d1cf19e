package bptree

// Insert stores value under key. If key is already present, its value is
// replaced and the previous value is returned together with true.
// Otherwise Insert returns the zero value of V and false.
//
// Insert invalidates all live iterators of the tree.
func (t *Tree[K, V]) Insert(key K, value V) (V, bool) {
	var zero V
	t.gen++
	path := t.accessPath(key)
	if len(path) == 0 {
		leaf := newLeaf[K, V](t.cfg.Capacity)
		leaf.items = append(leaf.items, entry[K, V]{key: key, value: value})
		t.root = leaf
		t.height = 1
		t.count = 1
		tracer().Debugf("bptree: allocated leaf root")
		return zero, false
	}
	step := path[len(path)-1]
	leaf, ok := step.node.(*leafNode[K, V])
	assert(ok, "access path does not end in a leaf")
	result := leaf.insertOrSplit(t.cfg.Capacity, step.at, key, value)
	switch result.kind {
	case overwritten:
		return result.old, true
	case inserted:
		t.count++
		return zero, false
	}
	t.count++
	t.propagateSplit(path[:len(path)-1], result.sep, result.sibling)
	return zero, false
}

// propagateSplit inserts a (separator, node) pair resulting from a split into
// the ancestors recorded on the access path, nearest ancestor first. It stops
// as soon as an ancestor absorbs the pair. If the root splits as well, a new
// root branch is allocated and the tree grows by one level.
func (t *Tree[K, V]) propagateSplit(ancestors []pathStep[K, V], sep K, node treeNode[K, V]) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		branch, ok := ancestors[i].node.(*branchNode[K, V])
		assert(ok, "access path has non-branch ancestor")
		upSep, upNode, split := branch.insertOrSplit(t.cfg.Capacity, ancestors[i].at, sep, node)
		if !split {
			return
		}
		tracer().Debugf("bptree: branch split at depth %d, promoting %v", i+1, upSep)
		sep, node = upSep, upNode
	}
	t.root = newBranch[K, V](t.cfg.Capacity, t.root, sep, node)
	t.height++
	tracer().Debugf("bptree: root split, height is now %d", t.height)
}
