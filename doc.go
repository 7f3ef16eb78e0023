/*
Package neighbors maintains the sum of nearest-neighbor distances over a
growing set of integer positions.

Every member p of a set contributes its distance to the closest other
member,

	min(p - predecessor(p), successor(p) - p)

using only the sides that exist. A set with a single member has a total of 0.
Set keeps this total current after every insertion, touching only the
members whose nearest neighbor can change: the predecessor and successor of
the new position, and the new position itself. Each insertion therefore
costs time proportional to the height of the underlying B+ tree, not to the
size of the set.

The positions are stored in a persistent B+ sum-tree (package btree). Tree
nodes additionally aggregate a Gaps summary, from which the same total can
be derived independently; Set.Check uses this to verify the incrementally
maintained total.

Sets are insert-only. Removal is not supported.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package neighbors

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// SetError is an error type for the neighbors module.
type SetError string

func (e SetError) Error() string {
	return string(e)
}

// ErrAggregateDrift signals that the running total of a set no longer
// matches the nearest-neighbor distances of its members.
const ErrAggregateDrift = SetError("running total drifted from member distances")

// ErrPositionOutOfRange is flagged for positions beyond ±MaxPosition.
const ErrPositionOutOfRange = SetError("position out of range")

// ErrIndexOutOfBounds is flagged whenever a member index is not smaller than
// the size of the set.
const ErrIndexOutOfBounds = SetError("index out of bounds")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
