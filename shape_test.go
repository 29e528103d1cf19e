package bptree

import (
	"slices"
	"strings"
	"testing"
)

func TestShapeOfSplitLeaf(t *testing.T) {
	tree := newTestTree(t, 8)
	insertSequential(tree, 9)
	shape := tree.Shape()
	if shape == nil || shape.Leaf {
		t.Fatalf("expected branch root, got %+v", shape)
	}
	if !slices.Equal(shape.Keys, []uint64{4}) {
		t.Errorf("expected root keys [4], got %v", shape.Keys)
	}
	if len(shape.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(shape.Children))
	}
	if !slices.Equal(shape.Children[0].Keys, []uint64{0, 1, 2, 3}) {
		t.Errorf("unexpected lower leaf %v", shape.Children[0].Keys)
	}
	if !slices.Equal(shape.Children[1].Keys, []uint64{4, 5, 6, 7, 8}) {
		t.Errorf("unexpected upper leaf %v", shape.Children[1].Keys)
	}
	if shape.Height() != tree.Height() {
		t.Errorf("shape height %d differs from tree height %d", shape.Height(), tree.Height())
	}
	levels := shape.Levels()
	if len(levels) != 2 || len(levels[1]) != 2 || !levels[1][0].Leaf {
		t.Errorf("unexpected levels %v", levels)
	}
}

func TestShapeIsDetached(t *testing.T) {
	tree := newTestTree(t, 4)
	insertSequential(tree, 3)
	shape := tree.Shape()
	shape.Keys[0] = 99
	if k, _, _ := tree.Min(); k != 0 {
		t.Errorf("modifying a shape changed the tree")
	}
	if newTestTree(t, 4).Shape() != nil {
		t.Errorf("expected nil shape for empty tree")
	}
}

func TestDot(t *testing.T) {
	tree := newTestTree(t, 4)
	insertSequential(tree, 20)
	var b strings.Builder
	if err := Dot(tree, &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "digraph bptree {") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("unexpected DOT frame:\n%s", out)
	}
	leaves := 0
	for l := tree.firstLeaf(); l != nil; l = l.next {
		leaves++
	}
	if n := strings.Count(out, "style=dashed"); n != leaves-1 {
		t.Errorf("expected %d sibling edges, found %d", leaves-1, n)
	}
}

func TestShapeAfterRootBranchSplit(t *testing.T) {
	tree := newTestTree(t, 2)
	insertSequential(tree, 12)
	if tree.Height() < 3 {
		t.Fatalf("expected branch splits to grow tree to height >= 3, is %d", tree.Height())
	}
	shape := tree.Shape()
	if shape.Height() != tree.Height() {
		t.Errorf("shape height %d differs from tree height %d", shape.Height(), tree.Height())
	}
	levels := shape.Levels()
	var keys []uint64
	for _, leaf := range levels[len(levels)-1] {
		keys = append(keys, leaf.Keys...)
	}
	if !slices.Equal(keys, slices.Collect(tree.Keys())) {
		t.Errorf("leaf level of shape %v differs from tree keys", keys)
	}
}
