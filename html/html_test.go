package html

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/bptree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func stringTree(t *testing.T, n int) *bptree.Tree[string, int] {
	t.Helper()
	tree, err := bptree.New[string, int](4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range n {
		tree.Insert("k"+strconv.Itoa(100+i), i)
	}
	return tree
}

func TestRenderSmallTree(t *testing.T) {
	shape := &bptree.Shape[string]{
		Keys: []string{"c"},
		Children: []*bptree.Shape[string]{
			{Leaf: true, Keys: []string{"a", "b"}},
			{Leaf: true, Keys: []string{"c", "<d>"}},
		},
	}
	var b strings.Builder
	if err := Render(&b, shape); err != nil {
		t.Fatal(err)
	}
	want := `<div class="bptree"><ul><li class="branch"><span class="key">c</span><ul>` +
		`<li class="leaf"><span class="key">a</span><span class="key">b</span></li>` +
		`<li class="leaf"><span class="key">c</span><span class="key">&lt;d&gt;</span></li>` +
		`</ul></li></ul></div>`
	if b.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, b.String())
	}
}

func TestRenderAndReadBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree")
	defer teardown()
	//
	tree := stringTree(t, 50)
	var b strings.Builder
	if err := Render(&b, tree.Shape()); err != nil {
		t.Fatal(err)
	}
	shape, err := ShapeFromHTML(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if shape.Height() != tree.Height() {
		t.Errorf("expected height %d, got %d", tree.Height(), shape.Height())
	}
	levels := shape.Levels()
	var keys []string
	for _, leaf := range levels[len(levels)-1] {
		if !leaf.Leaf {
			t.Fatalf("expected leaf at lowest level")
		}
		keys = append(keys, leaf.Keys...)
	}
	i := 0
	for k := range tree.Keys() {
		if i >= len(keys) || keys[i] != k {
			t.Fatalf("leaf keys read back differ at position %d", i)
		}
		i++
	}
	if i != len(keys) {
		t.Errorf("expected %d keys, read back %d", i, len(keys))
	}
}

func TestEmptyTree(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, nil); err != nil {
		t.Fatal(err)
	}
	if b.String() != `<div class="bptree"></div>` {
		t.Errorf("unexpected output %q", b.String())
	}
	shape, err := ShapeFromHTML(strings.NewReader(b.String()))
	if err != nil || shape != nil {
		t.Errorf("expected nil shape without error, got %v, %v", shape, err)
	}
}

func TestShapeFromHTMLWithoutTree(t *testing.T) {
	_, err := ShapeFromHTML(strings.NewReader("<p>no tree here</p>"))
	if !errors.Is(err, ErrNoTree) {
		t.Errorf("expected ErrNoTree, got %v", err)
	}
}
