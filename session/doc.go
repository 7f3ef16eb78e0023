/*
Package session runs the line-oriented nearest-neighbor protocol.

A session reads a count n followed by n integer positions, all separated by
white space. Each position is inserted into a neighbors.Set, and the running
sum of nearest-neighbor distances is written on a line of its own after every
insertion. By default the set is seeded with a permanent sentinel member at
position 0, so the first real position already yields a finite total.

Malformed input ends a session with ErrMalformedInput. Totals of the valid
positions preceding the offending token have been written at that point.
Repeated positions are not errors; they repeat the previous total.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package session

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
