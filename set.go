package neighbors

import (
	"fmt"
	"io"

	"github.com/npillmayer/neighbors/btree"
)

type positionTree = btree.Tree[Position, int64, Gaps]

// MaxPosition bounds the magnitude of positions. Every single distance then
// stays below 2^41, so the int64 running total has room for millions of
// members.
const MaxPosition = 1_000_000_000_000

func inRange(x int64) bool {
	return x <= MaxPosition && x >= -MaxPosition
}

// Set is an ordered set of unique integer positions together with the
// running sum of its members' nearest-neighbor distances.
//
// The running total is owned by the set and changes only through Insert.
// A Set is not safe for concurrent use: Insert is a multi-step update and
// must not interleave with other operations on the same set.
type Set struct {
	tree  *positionTree
	total int64
}

// Option configures a new Set.
type Option func(*setOptions)

type setOptions struct {
	seeded   bool
	sentinel int64
}

// WithSentinel seeds a set with a permanent member at position v before any
// other insertion. v must be within ±MaxPosition.
func WithSentinel(v int64) Option {
	return func(o *setOptions) {
		o.seeded = true
		o.sentinel = v
	}
}

// New creates a set, empty unless seeded by WithSentinel.
func New(opts ...Option) (*Set, error) {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}
	tree, err := btree.New[Position, int64, Gaps](btree.Config[Gaps]{
		Monoid: GapMonoid{},
	})
	if err != nil {
		return nil, err
	}
	s := &Set{tree: tree}
	if o.seeded {
		if _, _, err := s.Insert(o.sentinel); err != nil {
			return nil, err
		}
		T().Debugf("neighbors: seeded set with sentinel %d", o.sentinel)
	}
	return s, nil
}

// Insert adds position x and returns the updated running total.
//
// Only the predecessor and successor of x and x itself can change their
// nearest neighbor. Their old distances are taken from the set before the
// insertion, their new ones from the set after it, and the difference is
// applied to the total in a single step. If x is already a member, Insert
// is a no-op and reports the unchanged total with added=false.
//
// Positions beyond ±MaxPosition are rejected with ErrPositionOutOfRange and
// leave the set unchanged.
func (s *Set) Insert(x int64) (total int64, added bool, err error) {
	if !inRange(x) {
		return s.total, false, fmt.Errorf("%w: %d exceeds ±%d", ErrPositionOutOfRange, x, int64(MaxPosition))
	}
	if s.tree.Contains(x) {
		T().Debugf("neighbors: %d already present, total stays %d", x, s.total)
		return s.total, false, nil
	}
	left, hasLeft := s.tree.Predecessor(x)
	right, hasRight := s.tree.Successor(x)
	var before int64
	if hasLeft {
		before += distanceIn(s.tree, left.Key())
	}
	if hasRight {
		before += distanceIn(s.tree, right.Key())
	}
	tree, added, err := s.tree.Insert(Position(x))
	if err != nil {
		T().Errorf("neighbors: insert of %d failed: %v", x, err)
		return s.total, false, err
	}
	assert(added, "position not a member but rejected by tree")
	var after int64
	if hasLeft {
		after += distanceIn(tree, left.Key())
	}
	if hasRight {
		after += distanceIn(tree, right.Key())
	}
	after += distanceIn(tree, x)
	s.tree = tree
	s.total += after - before
	T().Debugf("neighbors: inserted %d, total is now %d", x, s.total)
	return s.total, true, nil
}

// distanceIn is the nearest-neighbor distance of member p within tree, or 0
// if p has no neighbor at all.
func distanceIn(tree *positionTree, p int64) int64 {
	left, hasLeft := tree.Predecessor(p)
	right, hasRight := tree.Successor(p)
	switch {
	case hasLeft && hasRight:
		return min(p-left.Key(), right.Key()-p)
	case hasLeft:
		return p - left.Key()
	case hasRight:
		return right.Key() - p
	}
	return 0
}

// Total returns the sum of nearest-neighbor distances over all members.
func (s *Set) Total() int64 {
	return s.total
}

// Len returns the number of members.
func (s *Set) Len() int {
	return s.tree.Len()
}

// Height returns the height of the underlying tree.
func (s *Set) Height() int {
	return s.tree.Height()
}

// Contains reports whether x is a member.
func (s *Set) Contains(x int64) bool {
	return s.tree.Contains(x)
}

// Distance returns the nearest-neighbor distance of member x.
// ok is false if x is not a member.
func (s *Set) Distance(x int64) (d int64, ok bool) {
	if !s.tree.Contains(x) {
		return 0, false
	}
	return distanceIn(s.tree, x), true
}

// Predecessor returns the greatest member strictly less than x.
func (s *Set) Predecessor(x int64) (int64, bool) {
	p, ok := s.tree.Predecessor(x)
	return p.Key(), ok
}

// Successor returns the smallest member strictly greater than x.
func (s *Set) Successor(x int64) (int64, bool) {
	p, ok := s.tree.Successor(x)
	return p.Key(), ok
}

// Min returns the smallest member.
func (s *Set) Min() (int64, bool) {
	p, ok := s.tree.Min()
	return p.Key(), ok
}

// Max returns the largest member.
func (s *Set) Max() (int64, bool) {
	p, ok := s.tree.Max()
	return p.Key(), ok
}

// At returns the member at index i in ascending order.
func (s *Set) At(i int) (int64, error) {
	p, err := s.tree.At(i)
	if err != nil {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfBounds, i, s.Len())
	}
	return p.Key(), nil
}

// Rank returns the number of members strictly less than x.
func (s *Set) Rank(x int64) int {
	return s.tree.Rank(x)
}

// ForEach calls fn for every member in ascending order until fn returns false.
func (s *Set) ForEach(fn func(x int64) bool) {
	s.tree.ForEachItem(func(p Position) bool {
		return fn(p.Key())
	})
}

// Members returns all members in ascending order.
func (s *Set) Members() []int64 {
	members := make([]int64, 0, s.Len())
	s.ForEach(func(x int64) bool {
		members = append(members, x)
		return true
	})
	return members
}

// Snapshot returns an independent copy of the set in constant time.
// The tree is persistent, so both sets share storage until either grows.
func (s *Set) Snapshot() *Set {
	return &Set{tree: s.tree, total: s.total}
}

// Check verifies the structure of the underlying tree and compares the
// running total to the total derived from the tree's gap summary.
func (s *Set) Check() error {
	if err := s.tree.Check(); err != nil {
		return err
	}
	if want := s.tree.Summary().Total(); want != s.total {
		return fmt.Errorf("%w: running total is %d, members sum up to %d", ErrAggregateDrift, s.total, want)
	}
	return nil
}

// Dot outputs the internal tree structure of a set in Graphviz DOT format
// (for debugging purposes).
func (s *Set) Dot(w io.Writer) error {
	return s.tree.ToDot(w, func(g Gaps) string {
		return fmt.Sprintf("Σ=%d", g.Total())
	})
}
