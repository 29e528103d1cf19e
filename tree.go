package bptree

/*
BSD 3-Clause License

Copyright (c) 2026, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"cmp"
	"fmt"
)

// Tree is an in-memory B+ tree mapping keys of type K to values of type V.
//
// The zero value is not usable; create trees with New or NewWithConfig.
// A Tree must not be copied after first use.
type Tree[K, V any] struct {
	cfg    Config[K]
	root   treeNode[K, V]
	height int    // 0 means empty tree, 1 means leaf root
	count  int    // number of distinct keys
	gen    uint64 // modification generation, checked by iterators
}

// New creates an empty tree for naturally ordered keys, with every node
// holding at most capacity entries. capacity must be at least MinCapacity.
func New[K cmp.Ordered, V any](capacity int) (*Tree[K, V], error) {
	return NewWithConfig[K, V](OrderedConfig[K](capacity))
}

// NewWithConfig creates an empty tree with validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[K, V]{cfg: cfg}, nil
}

// Config returns a copy of the tree configuration.
func (t *Tree[K, V]) Config() Config[K] {
	return t.cfg
}

// Capacity returns the node capacity the tree has been created with.
func (t *Tree[K, V]) Capacity() int {
	if t == nil {
		return 0
	}
	return t.cfg.Capacity
}

// Height returns the number of node levels from root to leaf, where 0 means
// empty and 1 means a leaf root.
func (t *Tree[K, V]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Len returns the number of distinct keys stored in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty reports whether the tree has no items.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root == nil
}

func (t *Tree[K, V]) String() string {
	if t == nil {
		return "bptree(nil)"
	}
	return fmt.Sprintf("bptree(capacity=%d, height=%d, len=%d)", t.cfg.Capacity, t.height, t.count)
}

// firstLeaf descends through head children to the leaf holding the minimum key.
func (t *Tree[K, V]) firstLeaf() *leafNode[K, V] {
	n := t.root
	for n != nil {
		switch node := n.(type) {
		case *leafNode[K, V]:
			return node
		case *branchNode[K, V]:
			n = node.head
		default:
			panic("unknown tree node type")
		}
	}
	return nil
}

// lastLeaf descends through the last children to the leaf holding the maximum key.
func (t *Tree[K, V]) lastLeaf() *leafNode[K, V] {
	n := t.root
	for n != nil {
		switch node := n.(type) {
		case *leafNode[K, V]:
			return node
		case *branchNode[K, V]:
			n = node.body[len(node.body)-1].child
		default:
			panic("unknown tree node type")
		}
	}
	return nil
}
