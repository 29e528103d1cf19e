package bptree

import (
	"cmp"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func fullLeaf(capacity int) *leafNode[int, int] {
	leaf := newLeaf[int, int](capacity)
	for i := range capacity {
		leaf.items = append(leaf.items, entry[int, int]{key: i * 10, value: i})
	}
	return leaf
}

func leafKeys(leaf *leafNode[int, int]) []int {
	keys := make([]int, len(leaf.items))
	for i, e := range leaf.items {
		keys[i] = e.key
	}
	return keys
}

func insertIntoLeaf(leaf *leafNode[int, int], capacity, key int) leafInsertResult[int, int] {
	return leaf.insertOrSplit(capacity, leaf.keyIndex(key, cmp.Compare[int]), key, -key)
}

func TestLeafKeyIndex(t *testing.T) {
	leaf := fullLeaf(4) // 0 10 20 30
	for _, tc := range []struct {
		key   int
		index int
		found bool
	}{
		{-1, 0, false}, {0, 0, true}, {5, 1, false}, {20, 2, true}, {31, 4, false},
	} {
		at := leaf.keyIndex(tc.key, cmp.Compare[int])
		if at.index != tc.index || at.found != tc.found {
			t.Errorf("keyIndex(%d) = %+v, expected {%d %v}", tc.key, at, tc.index, tc.found)
		}
	}
}

func TestLeafOverwrite(t *testing.T) {
	leaf := fullLeaf(8)
	result := insertIntoLeaf(leaf, 8, 30)
	if result.kind != overwritten || result.old != 3 {
		t.Fatalf("expected overwrite of value 3, got %s/%d", result.kind, result.old)
	}
	if len(leaf.items) != 8 || leaf.items[3].value != -30 {
		t.Errorf("overwrite changed leaf layout: %v", leaf.items)
	}
}

func TestLeafInsertWithSpareCapacity(t *testing.T) {
	leaf := fullLeaf(3)
	leaf.items = leaf.items[:2] // 0 10
	result := insertIntoLeaf(leaf, 3, 5)
	if result.kind != inserted {
		t.Fatalf("expected plain insert, got %s", result.kind)
	}
	if !slices.Equal(leafKeys(leaf), []int{0, 5, 10}) {
		t.Errorf("unexpected keys %v", leafKeys(leaf))
	}
}

func TestLeafSplitPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree")
	defer teardown()
	//
	for _, tc := range []struct {
		capacity    int
		key         int
		lower       []int
		upper       []int
		sep         int
		description string
	}{
		{8, 5, []int{0, 5, 10, 20}, []int{30, 40, 50, 60, 70}, 30, "even, insert into lower half"},
		{8, 25, []int{0, 10, 20, 25}, []int{30, 40, 50, 60, 70}, 30, "even, insert at midpoint"},
		{8, 35, []int{0, 10, 20, 30}, []int{35, 40, 50, 60, 70}, 35, "even, insert at start of upper half"},
		{8, 75, []int{0, 10, 20, 30}, []int{40, 50, 60, 70, 75}, 40, "even, append"},
		{7, 5, []int{0, 5, 10, 20}, []int{30, 40, 50, 60}, 30, "odd, insert into lower half"},
		{7, 65, []int{0, 10, 20, 30}, []int{40, 50, 60, 65}, 40, "odd, append"},
		{2, -1, []int{-1}, []int{0, 10}, 0, "minimal, prepend"},
		{2, 15, []int{0}, []int{10, 15}, 10, "minimal, append"},
	} {
		leaf := fullLeaf(tc.capacity)
		tail := newLeaf[int, int](tc.capacity)
		leaf.next = tail
		result := insertIntoLeaf(leaf, tc.capacity, tc.key)
		if result.kind != splitted {
			t.Fatalf("%s: expected split, got %s", tc.description, result.kind)
		}
		if !slices.Equal(leafKeys(leaf), tc.lower) {
			t.Errorf("%s: lower half is %v, expected %v", tc.description, leafKeys(leaf), tc.lower)
		}
		if !slices.Equal(leafKeys(result.sibling), tc.upper) {
			t.Errorf("%s: upper half is %v, expected %v", tc.description, leafKeys(result.sibling), tc.upper)
		}
		if result.sep != tc.sep {
			t.Errorf("%s: separator is %d, expected %d", tc.description, result.sep, tc.sep)
		}
		if leaf.next != result.sibling || result.sibling.next != tail {
			t.Errorf("%s: sibling links not relinked", tc.description)
		}
		if cap(result.sibling.items) != tc.capacity {
			t.Errorf("%s: new leaf has capacity %d", tc.description, cap(result.sibling.items))
		}
	}
}

func TestBranchChildIndex(t *testing.T) {
	c0, c1, c2 := newLeaf[int, int](4), newLeaf[int, int](4), newLeaf[int, int](4)
	branch := newBranch[int, int](4, c0, 5, c1)
	branch.body = append(branch.body, route[int, int]{key: 10, child: c2})
	for _, tc := range []struct {
		key   int
		at    searchResult
		child treeNode[int, int]
	}{
		{2, searchResult{0, false}, c0},
		{5, searchResult{1, true}, c1},
		{7, searchResult{1, false}, c1},
		{10, searchResult{2, true}, c2},
		{12, searchResult{2, false}, c2},
	} {
		at := branch.childIndex(tc.key, cmp.Compare[int])
		if at != tc.at {
			t.Errorf("childIndex(%d) = %+v, expected %+v", tc.key, at, tc.at)
		}
		if branch.child(at) != tc.child {
			t.Errorf("child for key %d routed to wrong node", tc.key)
		}
	}
}

// fullBranch creates a branch with routing keys 10, 20, 30, 40 and returns its
// children, head first.
func fullBranch() (*branchNode[int, int], []treeNode[int, int]) {
	children := make([]treeNode[int, int], 5)
	for i := range children {
		children[i] = newLeaf[int, int](4)
	}
	branch := newBranch[int, int](4, children[0], 10, children[1])
	for i := 2; i < 5; i++ {
		branch.body = append(branch.body, route[int, int]{key: i * 10, child: children[i]})
	}
	return branch, children
}

func routingKeys(b *branchNode[int, int]) []int {
	keys := make([]int, len(b.body))
	for i, r := range b.body {
		keys[i] = r.key
	}
	return keys
}

func TestBranchSplitPromotesKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree")
	defer teardown()
	//
	for _, tc := range []struct {
		key     int
		lower   []int
		upper   []int
		sep     int
		newHead int // index into children, -1 for the inserted node
	}{
		{5, []int{5, 10}, []int{30, 40}, 20, 2},
		{25, []int{10, 20}, []int{30, 40}, 25, -1},
		{35, []int{10, 20}, []int{35, 40}, 30, 3},
		{45, []int{10, 20}, []int{40, 45}, 30, 3},
	} {
		branch, children := fullBranch()
		node := newLeaf[int, int](4)
		at := branch.childIndex(tc.key, cmp.Compare[int])
		sep, sibling, split := branch.insertOrSplit(4, at, tc.key, node)
		if !split {
			t.Fatalf("key %d: expected branch to split", tc.key)
		}
		if sep != tc.sep {
			t.Errorf("key %d: promoted %d, expected %d", tc.key, sep, tc.sep)
		}
		if !slices.Equal(routingKeys(branch), tc.lower) || !slices.Equal(routingKeys(sibling), tc.upper) {
			t.Errorf("key %d: split into %v / %v, expected %v / %v", tc.key,
				routingKeys(branch), routingKeys(sibling), tc.lower, tc.upper)
		}
		var head treeNode[int, int] = node
		if tc.newHead >= 0 {
			head = children[tc.newHead]
		}
		if sibling.head != head {
			t.Errorf("key %d: promoted child is not head of new branch", tc.key)
		}
		if branch.head != children[0] {
			t.Errorf("key %d: head of retained branch changed", tc.key)
		}
	}
}

func TestBranchInsertWithSpareCapacity(t *testing.T) {
	c0, c1, n := newLeaf[int, int](4), newLeaf[int, int](4), newLeaf[int, int](4)
	branch := newBranch[int, int](4, c0, 10, c1)
	at := branch.childIndex(3, cmp.Compare[int])
	if _, _, split := branch.insertOrSplit(4, at, 3, n); split {
		t.Fatalf("expected no split")
	}
	if !slices.Equal(routingKeys(branch), []int{3, 10}) || branch.body[0].child != n {
		t.Errorf("unexpected branch body %v", routingKeys(branch))
	}
}
