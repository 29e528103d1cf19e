package bptree

import "slices"

// treeNode is either a *leafNode or a *branchNode.
type treeNode[K, V any] interface {
	isLeaf() bool
}

// searchResult is the outcome of a local binary search within a node.
//
// For leaves, index is the position of the key if found, otherwise the
// position where the key would have to be inserted. For branches, index is the
// child index to descend into: 0 denotes the head child, i > 0 denotes the
// child of routing entry i-1.
type searchResult struct {
	index int
	found bool
}

type entry[K, V any] struct {
	key   K
	value V
}

// leafNode holds key/value pairs in strictly increasing key order.
type leafNode[K, V any] struct {
	items []entry[K, V]
	// next links to the right sibling leaf. It is not an ownership edge:
	// every leaf is owned by its parent branch (or by the tree, if it is the root).
	next *leafNode[K, V]
}

type route[K, V any] struct {
	key   K
	child treeNode[K, V]
}

// branchNode holds routing keys. Keys reachable from head are less than
// body[0].key, keys reachable from body[i].child are >= body[i].key and
// less than body[i+1].key.
type branchNode[K, V any] struct {
	head treeNode[K, V]
	body []route[K, V]
}

func (l *leafNode[K, V]) isLeaf() bool   { return true }
func (b *branchNode[K, V]) isLeaf() bool { return false }

// insertKind tells a caller how a leaf absorbed an insert.
type insertKind uint8

const (
	inserted insertKind = iota
	overwritten
	splitted
)

func (k insertKind) String() string {
	switch k {
	case inserted:
		return "inserted"
	case overwritten:
		return "overwritten"
	case splitted:
		return "split"
	}
	return "unknown"
}

// --- Leaves ----------------------------------------------------------------

func newLeaf[K, V any](capacity int) *leafNode[K, V] {
	return &leafNode[K, V]{
		items: make([]entry[K, V], 0, capacity),
	}
}

func (l *leafNode[K, V]) keyIndex(key K, compare func(K, K) int) searchResult {
	i, found := slices.BinarySearchFunc(l.items, key, func(e entry[K, V], k K) int {
		return compare(e.key, k)
	})
	return searchResult{index: i, found: found}
}

// leafInsertResult reports the effect of leafNode.insertOrSplit.
// old is set for overwrites, sep and sibling are set for splits.
type leafInsertResult[K, V any] struct {
	kind    insertKind
	old     V
	sep     K
	sibling *leafNode[K, V]
}

// insertOrSplit inserts or overwrites a key/value pair at the position found
// by a prior keyIndex call.
//
// A full leaf splits in two. The split point is the middle of the capacity;
// an insert position beyond it goes to the new upper leaf, otherwise to the
// retained lower leaf. The new leaf is linked in as the right sibling, and
// its minimum key is returned as separator for the parent.
func (l *leafNode[K, V]) insertOrSplit(capacity int, at searchResult, key K, value V) leafInsertResult[K, V] {
	e := entry[K, V]{key: key, value: value}
	if at.found {
		old := l.items[at.index].value
		l.items[at.index] = e
		return leafInsertResult[K, V]{kind: overwritten, old: old}
	}
	if len(l.items) < capacity {
		l.items = slices.Insert(l.items, at.index, e)
		return leafInsertResult[K, V]{kind: inserted}
	}
	assert(len(l.items) == capacity, "leaf exceeds node capacity")
	mid := (capacity - 1) / 2
	upper := mid
	if at.index > mid {
		upper++
	}
	sibling := newLeaf[K, V](capacity)
	sibling.items = append(sibling.items, l.items[upper:]...)
	clear(l.items[upper:])
	l.items = l.items[:upper]
	if at.index > mid {
		sibling.items = slices.Insert(sibling.items, at.index-upper, e)
	} else {
		l.items = slices.Insert(l.items, at.index, e)
	}
	sibling.next = l.next
	l.next = sibling
	return leafInsertResult[K, V]{
		kind:    splitted,
		sep:     sibling.items[0].key,
		sibling: sibling,
	}
}

// --- Branches --------------------------------------------------------------

// newBranch creates a branch routing keys < key to head and all others to tail.
func newBranch[K, V any](capacity int, head treeNode[K, V], key K, tail treeNode[K, V]) *branchNode[K, V] {
	b := &branchNode[K, V]{
		head: head,
		body: make([]route[K, V], 0, capacity),
	}
	b.body = append(b.body, route[K, V]{key: key, child: tail})
	return b
}

// childIndex maps key to the child to descend into.
//
// Routing keys are lower bounds of their children, so a hit at body[i]
// selects child i+1 (body[i].child), and a miss with insertion point i
// selects child i (the head if i == 0, body[i-1].child otherwise).
// Given head=c0, body=[(5,c1), (10,c2)]:
//
//	key  2 → {0, miss} → c0
//	key  5 → {1, hit}  → c1
//	key  7 → {1, miss} → c1
//	key 10 → {2, hit}  → c2
//	key 12 → {2, miss} → c2
func (b *branchNode[K, V]) childIndex(key K, compare func(K, K) int) searchResult {
	i, found := slices.BinarySearchFunc(b.body, key, func(r route[K, V], k K) int {
		return compare(r.key, k)
	})
	if found {
		return searchResult{index: i + 1, found: true}
	}
	return searchResult{index: i}
}

func (b *branchNode[K, V]) child(at searchResult) treeNode[K, V] {
	if at.index == 0 {
		return b.head
	}
	return b.body[at.index-1].child
}

// insertOrSplit inserts a (separator, child) pair produced by a split of the
// child at position at. The new child becomes the right neighbour of that
// child, i.e. it lands at body position at.index.
//
// A full branch splits in two. Different from leaves, the entry at the split
// boundary is not copied: it is removed, its key is promoted to the parent as
// separator and its child becomes the head of the new branch. The split point
// sits one slot higher than for leaves to leave room for the promoted entry.
func (b *branchNode[K, V]) insertOrSplit(capacity int, at searchResult, key K, child treeNode[K, V]) (K, *branchNode[K, V], bool) {
	var zero K
	r := route[K, V]{key: key, child: child}
	if len(b.body) < capacity {
		b.body = slices.Insert(b.body, at.index, r)
		return zero, nil, false
	}
	assert(len(b.body) == capacity, "branch exceeds node capacity")
	mid := (capacity-1)/2 + 1
	upper := mid
	if at.index > mid {
		upper++
	}
	sibling := &branchNode[K, V]{
		body: make([]route[K, V], 0, capacity),
	}
	sibling.body = append(sibling.body, b.body[upper:]...)
	clear(b.body[upper:])
	b.body = b.body[:upper]
	if at.index > mid {
		sibling.body = slices.Insert(sibling.body, at.index-upper, r)
	} else {
		b.body = slices.Insert(b.body, at.index, r)
	}
	last := len(b.body) - 1
	promoted := b.body[last]
	b.body[last] = route[K, V]{}
	b.body = b.body[:last]
	sibling.head = promoted.child
	return promoted.key, sibling, true
}
