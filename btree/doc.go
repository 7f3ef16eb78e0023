/*
Package btree provides a persistent, key-ordered B+ sum-tree.

The tree stores items ordered by a key and aggregates item summaries up the
tree through a client-supplied monoid. It is the ordered-set backend for
package neighbors, but is kept free of any knowledge about nearest-neighbor
distances: all domain semantics flow in through the summary type.

Properties:
  - items are unique by key and kept in strictly ascending key order,
  - every node caches its item count and key bounds, giving logarithmic
    predecessor/successor search and order statistics (`At`, `Rank`),
  - every node caches the monoid sum of its items (`Summary`),
  - updates are persistent: `Insert` path-copies the spine it touches and
    returns a new tree, older tree values stay valid and unchanged.

Removal is not supported. The package is used for insert-only sessions.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package btree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
