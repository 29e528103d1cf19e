package bptree

// pathStep records a node visited while resolving a key, together with the
// result of the local search in that node.
type pathStep[K, V any] struct {
	node treeNode[K, V]
	at   searchResult
}

// accessPath walks from the root down to the leaf responsible for key.
//
// It returns the root-to-leaf sequence of visited nodes and local search
// results; the last step is always the leaf. Insert uses the branch steps to
// patch ancestors on splits, Get only looks at the leaf step. An empty tree
// yields an empty path.
func (t *Tree[K, V]) accessPath(key K) []pathStep[K, V] {
	if t.root == nil {
		return nil
	}
	path := make([]pathStep[K, V], 0, t.height)
	n := t.root
	for depth := 1; ; depth++ {
		switch node := n.(type) {
		case *branchNode[K, V]:
			assert(depth < t.height, "access path found branch at leaf level")
			at := node.childIndex(key, t.cfg.Compare)
			path = append(path, pathStep[K, V]{node: node, at: at})
			n = node.child(at)
		case *leafNode[K, V]:
			assert(depth == t.height, "access path found leaf above leaf level")
			at := node.keyIndex(key, t.cfg.Compare)
			return append(path, pathStep[K, V]{node: node, at: at})
		default:
			panic("unknown tree node type")
		}
	}
}
