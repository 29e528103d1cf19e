/*
Package bptree implements an in-memory ordered key-value index as a B+ tree.

A B+ tree is a balanced search tree with a fixed fanout. All key/value pairs
live in the leaves, in sorted order, and every leaf is linked to its right
sibling. Internal nodes (branches) hold routing keys only. This makes the
tree a good indexing core for a key-value store: point lookups touch one
node per level, and ordered scans walk the leaf chain without ever climbing
back up through the parents.

	tree, err := bptree.New[uint64, string](64)
	if err != nil {
	    ...
	}
	tree.Insert(42, "answer")
	v, ok := tree.Get(42)
	for k, v := range tree.All() {
	    ...
	}

Node capacity is fixed when a tree is created and is the same for every
node. A leaf holds at most capacity entries, a branch holds at most capacity
routing keys (and one more child than routing keys). Nodes split when an
insert would exceed capacity, and splits propagate upwards; the tree grows
in height only when the root itself splits.

Trees are volatile and not safe for concurrent use. Clients must serialize
writers and must not read while a write is in progress. Mutating a tree
while iterating over it is detected: pull iterators stop and report
ErrTreeModified, range-over-func iterators panic.

Deleting keys is not supported; Delete reports ErrUnsupported.

# BSD License

Copyright (c) 2026, Norbert Pillmayer

Please refer to the License file for details.
*/
package bptree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}

// assert panics with msg if condition does not hold. It guards internal
// invariants; a failing assertion is a bug in this package, not an input error.
func assert(condition bool, msg string) {
	if !condition {
		tracer().Errorf("bptree: %s", msg)
		panic(msg)
	}
}
