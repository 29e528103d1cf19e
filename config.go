package bptree

import (
	"cmp"
	"fmt"
)

const (
	// MinCapacity is the smallest node capacity able to hold a split.
	MinCapacity = 2
	// DefaultCapacity is a node capacity which performs well for small keys.
	DefaultCapacity = 64
)

// Config configures a B+ tree.
type Config[K any] struct {
	// Capacity is the maximum number of entries of a leaf and the maximum
	// number of routing keys of a branch. It is fixed for the lifetime of a tree.
	Capacity int
	// Compare orders keys. It returns a negative number if a < b, zero if
	// a == b and a positive number if a > b.
	Compare func(a, b K) int
}

// OrderedConfig returns a configuration for naturally ordered keys.
func OrderedConfig[K cmp.Ordered](capacity int) Config[K] {
	return Config[K]{
		Capacity: capacity,
		Compare:  cmp.Compare[K],
	}
}

func (cfg Config[K]) validate() error {
	if cfg.Capacity < MinCapacity {
		return fmt.Errorf("%w: capacity %d, must be >= %d", ErrInvalidConfig, cfg.Capacity, MinCapacity)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}
