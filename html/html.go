/*
Package html renders the structure of B+ trees as HTML.

A tree is rendered as nested lists inside a <div class="bptree">. Every node
is a list item of class "branch" or "leaf", holding one <span class="key">
per key, followed by a list of its children:

	<div class="bptree"><ul>
	  <li class="branch"><span class="key">c</span><ul>
	    <li class="leaf"><span class="key">a</span><span class="key">b</span></li>
	    <li class="leaf"><span class="key">c</span><span class="key">d</span></li>
	  </ul></li>
	</ul></div>

(line breaks and indentation added for readability).
*/
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/bptree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names used for rendering.
const (
	TreeClass   = "bptree"
	BranchClass = "branch"
	LeafClass   = "leaf"
	KeyClass    = "key"
)

// ErrNoTree is returned by ShapeFromHTML if the input holds no rendered tree.
var ErrNoTree = errors.New("html: no bptree element found")

// Render writes the HTML representation of shape to w.
func Render(w io.Writer, shape *bptree.Shape[string]) error {
	return html.Render(w, Node(shape))
}

// Node creates an HTML element tree for shape. A nil shape results in an
// empty <div>.
func Node(shape *bptree.Shape[string]) *html.Node {
	div := element(atom.Div, TreeClass)
	if shape != nil {
		ul := element(atom.Ul, "")
		ul.AppendChild(listItem(shape))
		div.AppendChild(ul)
	}
	return div
}

func listItem(s *bptree.Shape[string]) *html.Node {
	class := BranchClass
	if s.Leaf {
		class = LeafClass
	}
	li := element(atom.Li, class)
	for _, k := range s.Keys {
		span := element(atom.Span, KeyClass)
		span.AppendChild(&html.Node{Type: html.TextNode, Data: k})
		li.AppendChild(span)
	}
	if len(s.Children) > 0 {
		ul := element(atom.Ul, "")
		for _, c := range s.Children {
			ul.AppendChild(listItem(c))
		}
		li.AppendChild(ul)
	}
	return li
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

// ShapeFromHTML reads back a tree structure rendered by Render. It returns a
// nil shape for a rendered empty tree.
func ShapeFromHTML(input io.Reader) (*bptree.Shape[string], error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if div := find(n, TreeClass); div != nil {
			for c := div.FirstChild; c != nil; c = c.NextSibling {
				if c.DataAtom == atom.Ul {
					if li := firstElement(c, atom.Li); li != nil {
						return shapeFromItem(li), nil
					}
				}
			}
			return nil, nil
		}
	}
	return nil, ErrNoTree
}

func shapeFromItem(li *html.Node) *bptree.Shape[string] {
	s := &bptree.Shape[string]{Leaf: hasClass(li, LeafClass), Keys: []string{}}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.DataAtom == atom.Span && hasClass(c, KeyClass):
			s.Keys = append(s.Keys, innerText(c))
		case c.DataAtom == atom.Ul:
			for item := c.FirstChild; item != nil; item = item.NextSibling {
				if item.DataAtom == atom.Li {
					s.Children = append(s.Children, shapeFromItem(item))
				}
			}
		}
	}
	return s
}

func find(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, class); found != nil {
			return found
		}
	}
	return nil
}

func firstElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == a {
			return c
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val == class
		}
	}
	return false
}

func innerText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
