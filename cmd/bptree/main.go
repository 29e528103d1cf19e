/*
Command bptree is an interactive shell for experimenting with in-memory B+ trees.

Usage:

	bptree [-capacity n] [-load file] [-seed n] [-trace level] [-color=false]

Commands are read line by line from stdin; type HELP for a list.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/bptree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/term"
)

var (
	capacity   *int
	loadFile   *string
	seedNum    *int
	traceLevel *string
	useColor   *bool
)

func main() {
	setupFlags()
	setupTracing(*traceLevel)

	tree, err := bptree.New[string, string](*capacity)
	if err != nil {
		log.Fatal(err)
	}
	if *seedNum > 0 {
		seedTree(tree, *seedNum)
	}
	c := NewCli(bufio.NewScanner(os.Stdin), os.Stdout, tree, *useColor, term.IsTerminal(0))
	if *loadFile != "" {
		c.load(context.Background(), *loadFile)
	}
	c.Start()
}

func setupFlags() {
	capacity = flag.Int("capacity", bptree.DefaultCapacity, "Maximum number of entries per tree node.")
	loadFile = flag.String("load", "", "Load key/value lines from a text file upon startup.")
	seedNum = flag.Int("seed", 0, "Seed the tree with records created with go-faker.")
	traceLevel = flag.String("trace", "Error", "Trace level (Error, Info or Debug).")
	useColor = flag.Bool("color", true, "Use colors for output.")
	flag.Usage = func() {
		fmt.Println("\nB+ tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}

func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer := tracing.Select("bptree")
	tracer.SetTraceLevel(tracing.TraceLevelFromString(level))
	gtrace.CoreTracer = tracer
}

func seedTree(tree *bptree.Tree[string, string], n int) {
	for range n {
		tree.Insert(faker.Word()+faker.Word(), faker.Word())
	}
}
