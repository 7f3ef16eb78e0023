package neighbors

// Position is a member of a Set. It is the leaf item of the underlying tree.
type Position int64

// Key returns the position itself; positions are ordered by value.
func (p Position) Key() int64 { return int64(p) }

// Summary returns the gap summary of a single-member segment.
func (p Position) Summary() Gaps {
	return Gaps{Count: 1, Lo: int64(p), Hi: int64(p)}
}

// Gaps summarizes a run of consecutive members (a segment) of a set.
//
// Members strictly inside a segment have both of their neighbors inside it,
// so their nearest-neighbor distances are final and summed up in Interior.
// The outermost members Lo and Hi may still find a closer neighbor outside
// the segment; Head and Tail hold their distances to the nearest neighbor
// inside. For single-member segments Head, Tail and Interior are 0.
type Gaps struct {
	Count    int
	Lo, Hi   int64
	Head     int64 // distance from Lo to its successor within the segment
	Tail     int64 // distance from Hi to its predecessor within the segment
	Interior int64
}

// Total is the sum of nearest-neighbor distances of the segment's members,
// treating the segment as a set of its own.
func (g Gaps) Total() int64 {
	if g.Count < 2 {
		return 0
	}
	return g.Interior + g.Head + g.Tail
}

// GapMonoid aggregates Gaps of adjacent segments.
type GapMonoid struct{}

// Zero returns the summary of an empty segment.
func (GapMonoid) Zero() Gaps { return Gaps{} }

// Add joins two segments, where every member of left is smaller than every
// member of right. The innermost members of both segments meet across the
// gap between left.Hi and right.Lo.
func (GapMonoid) Add(left, right Gaps) Gaps {
	switch {
	case left.Count == 0:
		return right
	case right.Count == 0:
		return left
	}
	gap := right.Lo - left.Hi
	joined := Gaps{
		Count:    left.Count + right.Count,
		Lo:       left.Lo,
		Hi:       right.Hi,
		Interior: left.Interior + right.Interior,
	}
	if left.Count == 1 {
		joined.Head = gap
	} else {
		joined.Head = left.Head
		joined.Interior += min(left.Tail, gap)
	}
	if right.Count == 1 {
		joined.Tail = gap
	} else {
		joined.Tail = right.Tail
		joined.Interior += min(gap, right.Head)
	}
	return joined
}
