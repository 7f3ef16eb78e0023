package btree

import "cmp"

type treeNode[I Item[K, S], K cmp.Ordered, S any] interface {
	isLeaf() bool
	Summary() S
	// Size is the number of items in the subtree.
	Size() int
	// bounds are the smallest and largest key in the subtree.
	bounds() (lo, hi K)
}

// leafNode holds items in ascending key order. Leaves are never empty once
// linked into a tree.
type leafNode[I Item[K, S], K cmp.Ordered, S any] struct {
	summary S
	items   []I
}

func (l *leafNode[I, K, S]) isLeaf() bool { return true }
func (l *leafNode[I, K, S]) Summary() S   { return l.summary }
func (l *leafNode[I, K, S]) Size() int    { return len(l.items) }

func (l *leafNode[I, K, S]) bounds() (K, K) {
	assert(len(l.items) > 0, "bounds called on empty leaf")
	return l.items[0].Key(), l.items[len(l.items)-1].Key()
}

// innerNode caches size and key bounds of its subtree next to the summary.
type innerNode[I Item[K, S], K cmp.Ordered, S any] struct {
	summary  S
	size     int
	lo, hi   K
	children []treeNode[I, K, S]
}

func (n *innerNode[I, K, S]) isLeaf() bool   { return false }
func (n *innerNode[I, K, S]) Summary() S     { return n.summary }
func (n *innerNode[I, K, S]) Size() int      { return n.size }
func (n *innerNode[I, K, S]) bounds() (K, K) { return n.lo, n.hi }
