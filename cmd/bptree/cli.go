package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/bptree"
	"github.com/npillmayer/bptree/console"
	"github.com/npillmayer/bptree/html"
	"github.com/npillmayer/bptree/loader"
)

// Cli is a read-eval-print loop over a tree of string keys and values.
type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *bptree.Tree[string, string]
	printer *console.Printer
	loader  *loader.Loader
	errc    *color.Color
	prompt  bool
}

// NewCli creates a shell reading commands from s and writing to out.
// If prompt is set, a prompt is printed before every command.
func NewCli(s *bufio.Scanner, out io.Writer, t *bptree.Tree[string, string], colored, prompt bool) *Cli {
	c := &Cli{
		scanner: s,
		out:     out,
		tree:    t,
		loader:  loader.New(),
		errc:    color.New(color.FgRed),
		prompt:  prompt,
	}
	if colored {
		c.printer = console.New()
	} else {
		c.printer = console.New(console.WithColors(nil, nil))
		c.errc = nil
	}
	return c
}

// Start runs the loop until input is exhausted or EXIT is entered.
func (c *Cli) Start() {
	defer c.loader.Close()
	if c.prompt {
		c.printHelp()
	}
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.out, `
B+ Tree CLI

Available Commands:
  SET <key> <val>  Insert a key-value pair into the tree
  GET <key>        Retrieve the value for key from the tree
  DEL <key>        Remove a key-value pair from the tree
  SCAN [<from>]    List entries in key order, optionally starting at from
  LOAD <file>      Load key-value lines from a text file
  SHOW             Print the levels of the tree
  DOT              Print the tree in Graphviz DOT format
  HTML             Print the tree as HTML
  STATS            Print capacity, height and size of the tree
  CHECK            Validate the tree structure
  HELP             Print this message
  EXIT             Terminate this session
`)
}

func (c *Cli) printPrompt() {
	if c.prompt {
		fmt.Fprint(c.out, "> ")
	}
}

func (c *Cli) printError(err error) {
	if c.errc != nil {
		c.errc.Fprintln(c.out, "Error:", err)
		return
	}
	fmt.Fprintln(c.out, "Error:", err)
}

// processInput executes a single command line. It returns false if the
// session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "scan":
		c.processScanCommand(fields[1:])
	case "load":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "Usage: LOAD <file>")
			break
		}
		c.load(context.Background(), fields[1])
	case "show":
		if err := c.printer.Print(c.out, c.tree.Shape()); err != nil {
			c.printError(err)
		}
	case "dot":
		if err := bptree.Dot(c.tree, c.out); err != nil {
			c.printError(err)
		}
	case "html":
		if err := html.Render(c.out, c.tree.Shape()); err != nil {
			c.printError(err)
		}
		fmt.Fprintln(c.out)
	case "stats":
		fmt.Fprintln(c.out, c.tree)
	case "check":
		if err := c.tree.Check(); err != nil {
			c.printError(err)
			break
		}
		fmt.Fprintln(c.out, "OK")
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	value := strings.Join(args[1:], " ")
	if old, replaced := c.tree.Insert(args[0], value); replaced {
		fmt.Fprintf(c.out, "Replaced %q.\n", old)
		return
	}
	fmt.Fprintln(c.out, "Inserted.")
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	val, ok := c.tree.Get(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	if _, err := c.tree.Delete(args[0]); err != nil {
		if errors.Is(err, bptree.ErrUnsupported) {
			fmt.Fprintln(c.out, "Deletion is not supported.")
			return
		}
		c.printError(err)
	}
}

func (c *Cli) processScanCommand(args []string) {
	if len(args) > 1 {
		fmt.Fprintln(c.out, "Usage: SCAN [<from>]")
		return
	}
	it := c.tree.Iterator()
	if len(args) == 1 {
		it = c.tree.IteratorFrom(args[0])
	}
	n := 0
	for it.Next() {
		fmt.Fprintf(c.out, "%s = %s\n", it.Key(), it.Value())
		n++
	}
	if err := it.Err(); err != nil {
		c.printError(err)
	}
	fmt.Fprintf(c.out, "(%d entries)\n", n)
}

// load reads a file into the tree, printing intermediate progress reports.
func (c *Cli) load(ctx context.Context, name string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop, finished := make(chan struct{}), make(chan struct{})
	if sub, ok := c.loader.Subscribe(ctx); ok {
		go func() {
			defer close(finished)
			for {
				select {
				case msg, ok := <-sub:
					if !ok {
						return
					}
					if p := msg.(loader.Progress); !p.Done {
						fmt.Fprintf(c.out, "... %d lines\n", p.Lines)
					}
				case <-stop:
					return
				}
			}
		}()
	} else {
		close(finished)
	}
	p, err := c.loader.LoadFile(ctx, name, c.tree)
	close(stop)
	<-finished
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Loaded %d lines: %d inserted, %d replaced, %d skipped.\n",
		p.Lines, p.Inserted, p.Replaced, p.Skipped)
}
