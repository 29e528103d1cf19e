package bptree

import (
	"fmt"
	"io"
	"strings"
)

type nodeids[K, V any] struct {
	idTable map[treeNode[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[treeNode[K, V]]int),
		max:     1,
	}
}

func (ids *nodeids[K, V]) alloc(node treeNode[K, V]) int {
	if id := ids.idTable[node]; id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Leaf sibling links are drawn as dashed edges.
func Dot[K, V any](tree *Tree[K, V], w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph bptree {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	if !tree.IsEmpty() {
		ids := newtable[K, V]()
		var nodelist, edgelist strings.Builder
		var leaves []*leafNode[K, V]
		var walk func(n treeNode[K, V])
		walk = func(n treeNode[K, V]) {
			id := ids.alloc(n)
			switch node := n.(type) {
			case *leafNode[K, V]:
				keys := make([]string, len(node.items))
				for i, e := range node.items {
					keys[i] = fmt.Sprint(e.key)
				}
				fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", id, dotEscape(strings.Join(keys, " | ")), nodeDotStyles(true))
				leaves = append(leaves, node)
			case *branchNode[K, V]:
				keys := make([]string, len(node.body))
				for i, r := range node.body {
					keys[i] = fmt.Sprint(r.key)
				}
				fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", id, dotEscape(strings.Join(keys, " | ")), nodeDotStyles(false))
				fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", id, ids.alloc(node.head))
				walk(node.head)
				for _, r := range node.body {
					fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", id, ids.alloc(r.child))
					walk(r.child)
				}
			}
		}
		walk(tree.root)
		for _, leaf := range leaves {
			if leaf.next != nil {
				fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\" [style=dashed,constraint=false];\n",
					ids.alloc(leaf), ids.alloc(leaf.next))
			}
		}
		b.WriteString(nodelist.String())
		b.WriteString(edgelist.String())
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		tracer().Errorf("bptree DOT: %s", err.Error())
	}
	return err
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func nodeDotStyles(isleaf bool) string {
	if isleaf {
		return ",shape=box,style=filled,fillcolor=\"#CCDDFF\""
	}
	return ",shape=box,style=\"rounded,filled\",fillcolor=\"#a3d7e4\""
}
