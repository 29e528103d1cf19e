package bptree

import "iter"

// Iterator walks the entries of a tree in ascending key order.
//
// Iterators follow the leaf chain and never revisit parents. They are not
// restartable; create a new one to scan again. An iterator is invalidated by
// any mutation of its tree: Next then returns false and Err returns
// ErrTreeModified.
//
//	it := tree.Iterator()
//	for it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type Iterator[K, V any] struct {
	tree *Tree[K, V]
	gen  uint64
	leaf *leafNode[K, V]
	pos  int // position of the next item within leaf
	cur  entry[K, V]
	err  error
}

// Iterator returns an iterator positioned before the smallest key.
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	if t == nil {
		return &Iterator[K, V]{}
	}
	return &Iterator[K, V]{
		tree: t,
		gen:  t.gen,
		leaf: t.firstLeaf(),
	}
}

// IteratorFrom returns an iterator positioned before the smallest key
// greater than or equal to key.
func (t *Tree[K, V]) IteratorFrom(key K) *Iterator[K, V] {
	if t == nil {
		return &Iterator[K, V]{}
	}
	it := &Iterator[K, V]{tree: t, gen: t.gen}
	path := t.accessPath(key)
	if len(path) == 0 {
		return it
	}
	step := path[len(path)-1]
	it.leaf = step.node.(*leafNode[K, V])
	it.pos = step.at.index
	return it
}

// Next advances the iterator and reports whether an entry is available.
func (it *Iterator[K, V]) Next() bool {
	if it.tree == nil || it.err != nil {
		return false
	}
	if it.tree.gen != it.gen {
		it.err = ErrTreeModified
		it.leaf = nil
		return false
	}
	if it.leaf == nil {
		return false
	}
	for it.pos >= len(it.leaf.items) {
		it.leaf, it.pos = it.leaf.next, 0
		if it.leaf == nil {
			return false
		}
	}
	it.cur = it.leaf.items[it.pos]
	it.pos++
	return true
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	return it.cur.key
}

// Value returns the value of the current entry.
func (it *Iterator[K, V]) Value() V {
	return it.cur.value
}

// Err returns ErrTreeModified if iteration has been stopped by a mutation of
// the tree, nil otherwise.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// All returns an iterator over all key/value pairs in ascending key order.
// It panics with ErrTreeModified if the tree is mutated during iteration.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		drain(t.Iterator(), yield)
	}
}

// Ascend returns an iterator over all key/value pairs with keys >= from,
// in ascending key order.
// It panics with ErrTreeModified if the tree is mutated during iteration.
func (t *Tree[K, V]) Ascend(from K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		drain(t.IteratorFrom(from), yield)
	}
}

// Keys returns an iterator over all keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		drain(t.Iterator(), func(k K, _ V) bool {
			return yield(k)
		})
	}
}

func drain[K, V any](it *Iterator[K, V], yield func(K, V) bool) {
	for it.Next() {
		if !yield(it.cur.key, it.cur.value) {
			return
		}
	}
	if it.err != nil {
		panic(it.err)
	}
}
