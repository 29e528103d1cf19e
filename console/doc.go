/*
Package console prints the level structure of B+ trees on terminals with
fixed-width fonts.

Every level of a tree is printed as one logical line, with branches in
parentheses and leaves in brackets:

	L1 (c e)
	L2 [a b] [c d] [e f g]

Lines longer than the terminal are wrapped at node boundaries. Key widths are
measured in display cells (UAX#11), so trees with East Asian keys wrap at the
correct column.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package console

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
