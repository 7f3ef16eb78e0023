package btree

import (
	"cmp"
	"fmt"
)

const (
	// Base is the lower occupancy bound for non-root nodes.
	Base = 6
	// MaxChildren is the max fanout of internal nodes.
	MaxChildren = 2 * Base
	// MaxLeafItems is the max number of items held by a leaf.
	MaxLeafItems = 2 * Base
)

// Item ties a leaf item to its ordering key and its summary type at compile
// time. Keys must be unique within a tree.
type Item[K cmp.Ordered, S any] interface {
	Key() K
	Summary() S
}

// SummaryMonoid defines how summaries are aggregated up the tree.
//
// Summaries are always combined in key order, left before right. For
// summaries s, t, u, Add should be associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero should be the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Add need not be commutative.
type SummaryMonoid[S any] interface {
	Zero() S
	Add(left, right S) S
}

// Config configures a key-ordered B+ sum-tree.
type Config[S any] struct {
	// Monoid aggregates summaries up the tree.
	Monoid SummaryMonoid[S]
}

func (cfg Config[S]) validate() error {
	if cfg.Monoid == nil {
		return fmt.Errorf("%w: monoid is required", ErrInvalidConfig)
	}
	return nil
}
