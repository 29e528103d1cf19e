/*
Package loader bulk-loads text files of key/value lines into a B+ tree.

Every line of input holds a key, a separator and a value:

	apple  a round fruit
	banana a long fruit
	# comment lines and blank lines are skipped

Lines are scanned on a separate goroutine, while inserts are performed on the
goroutine calling Load, as trees are not safe for concurrent mutation.
Clients may subscribe to progress reports, which are broadcast while loading.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package loader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}
