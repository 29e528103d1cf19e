package bptree

// Get returns the value stored for key. The second return value is false if
// key is not present; this is a normal outcome, not an error.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	var zero V
	if t == nil {
		return zero, false
	}
	path := t.accessPath(key)
	if len(path) == 0 {
		return zero, false
	}
	step := path[len(path)-1]
	if !step.at.found {
		return zero, false
	}
	return step.node.(*leafNode[K, V]).items[step.at.index].value, true
}

// Has reports whether key is present.
func (t *Tree[K, V]) Has(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Min returns the smallest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	if t.IsEmpty() {
		return
	}
	e := t.firstLeaf().items[0]
	return e.key, e.value, true
}

// Max returns the largest key and its value. ok is false for an empty tree.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	if t.IsEmpty() {
		return
	}
	leaf := t.lastLeaf()
	e := leaf.items[len(leaf.items)-1]
	return e.key, e.value, true
}
