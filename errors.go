package bptree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("bptree: invalid configuration")
	// ErrUnsupported marks operations the tree does not implement.
	// It wraps errors.ErrUnsupported.
	ErrUnsupported = fmt.Errorf("bptree: %w", errors.ErrUnsupported)
	// ErrTreeModified signals that a tree has been mutated while an iterator
	// over it was live.
	ErrTreeModified = errors.New("bptree: tree modified during iteration")
	// ErrCorrupted signals a violated structural invariant, reported by Check.
	ErrCorrupted = errors.New("bptree: tree invariant violated")
)
