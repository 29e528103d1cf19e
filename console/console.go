package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/bptree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// DefaultWidth is the line width used if the output is not a terminal.
const DefaultWidth = 80

var setupGraphemes sync.Once

// Printer outputs tree shapes to a console.
type Printer struct {
	width   int
	context *uax11.Context
	leaf    *color.Color // nil for uncolored output
	branch  *color.Color
}

// Option configures a Printer.
type Option func(*Printer)

// WithWidth sets the line width in fixed-width positions ('en's).
func WithWidth(w int) Option {
	return func(p *Printer) {
		if w > 0 {
			p.width = w
		}
	}
}

// WithContext sets the UAX#11 context for measuring key widths.
func WithContext(ctx *uax11.Context) Option {
	return func(p *Printer) {
		if ctx != nil {
			p.context = ctx
		}
	}
}

// WithColors sets the colors for leaves and for branches. Either may be nil
// to print the respective nodes without color.
func WithColors(leaf, branch *color.Color) Option {
	return func(p *Printer) {
		p.leaf, p.branch = leaf, branch
	}
}

// New creates a printer. Without options, the line width is taken from the
// terminal and the width context from the user environment.
func New(opts ...Option) *Printer {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	p := &Printer{
		leaf:   color.New(color.FgBlue),
		branch: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.width == 0 {
		p.width = WidthFromTerminal()
	}
	if p.context == nil {
		p.context = uax11.ContextFromEnvironment()
	}
	return p
}

// Print outputs shape level by level. A nil shape prints as an empty tree.
func (p *Printer) Print(w io.Writer, shape *bptree.Shape[string]) error {
	if shape == nil {
		_, err := io.WriteString(w, "(empty)\n")
		return err
	}
	out := &errWriter{w: w}
	for i, level := range shape.Levels() {
		prefix := fmt.Sprintf("L%d ", i+1)
		indent := strings.Repeat(" ", len(prefix))
		out.write(prefix, nil)
		col := len(prefix)
		for j, node := range level {
			text, c := p.nodeText(node)
			tw := p.displayWidth(text)
			if j > 0 {
				if col+1+tw > p.width {
					out.write("\n"+indent, nil)
					col = len(indent)
				} else {
					out.write(" ", nil)
					col++
				}
			}
			out.write(text, c)
			col += tw
		}
		out.write("\n", nil)
	}
	if out.err != nil {
		T().Errorf("console output: %v", out.err)
	}
	return out.err
}

func (p *Printer) nodeText(node *bptree.Shape[string]) (string, *color.Color) {
	keys := strings.Join(node.Keys, " ")
	if node.Leaf {
		return "[" + keys + "]", p.leaf
	}
	return "(" + keys + ")", p.branch
}

// displayWidth returns the number of fixed-width positions s occupies.
func (p *Printer) displayWidth(s string) int {
	return uax11.StringWidth(grapheme.StringFromString(s), p.context)
}

// errWriter remembers the first write error and skips all output after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(s string, c *color.Color) {
	if ew.err != nil {
		return
	}
	if c != nil {
		_, ew.err = c.Fprint(ew.w, s)
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// StringShape converts the keys of a shape to strings, using fmt.Sprint.
func StringShape[K any](s *bptree.Shape[K]) *bptree.Shape[string] {
	if s == nil {
		return nil
	}
	t := &bptree.Shape[string]{Leaf: s.Leaf, Keys: make([]string, len(s.Keys))}
	for i, k := range s.Keys {
		t.Keys[i] = fmt.Sprint(k)
	}
	for _, c := range s.Children {
		t.Children = append(t.Children, StringShape(c))
	}
	return t
}

// --- Terminal --------------------------------------------------------------

// WidthFromTerminal checks wether stdin is a terminal, and if so it reads the
// terminal's width. It returns DefaultWidth otherwise.
func WidthFromTerminal() int {
	width := DefaultWidth
	if term.IsTerminal(0) {
		if w, _, err := term.GetSize(0); err == nil {
			if w > 30 {
				width = w - 2
			} else if w > 10 {
				width = w
			} else {
				width = 10
			}
		}
	}
	T().P("format", "console").Infof("setting line length to %d en", width)
	return width
}
