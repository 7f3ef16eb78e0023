package btree

import (
	"fmt"
	"slices"
)

func (t *Tree[I, K, S]) cloneLeaf(leaf *leafNode[I, K, S]) *leafNode[I, K, S] {
	if leaf == nil {
		return nil
	}
	return &leafNode[I, K, S]{
		summary: leaf.summary,
		items:   append(make([]I, 0, MaxLeafItems+1), leaf.items...),
	}
}

func (t *Tree[I, K, S]) cloneInner(inner *innerNode[I, K, S]) *innerNode[I, K, S] {
	if inner == nil {
		return nil
	}
	return &innerNode[I, K, S]{
		summary:  inner.summary,
		size:     inner.size,
		lo:       inner.lo,
		hi:       inner.hi,
		children: append(make([]treeNode[I, K, S], 0, MaxChildren+1), inner.children...),
	}
}

func (t *Tree[I, K, S]) recomputeLeafSummary(leaf *leafNode[I, K, S]) {
	assert(leaf != nil, "recomputeLeafSummary called with nil leaf")
	leaf.summary = t.cfg.Monoid.Zero()
	for _, item := range leaf.items {
		leaf.summary = t.cfg.Monoid.Add(leaf.summary, item.Summary())
	}
}

// recomputeInnerSummary refreshes every cached aggregate of an internal node:
// summary, item count and key bounds.
func (t *Tree[I, K, S]) recomputeInnerSummary(inner *innerNode[I, K, S]) {
	assert(inner != nil, "recomputeInnerSummary called with nil inner node")
	assert(len(inner.children) > 0, "recomputeInnerSummary called with empty children")
	inner.summary = t.cfg.Monoid.Zero()
	inner.size = 0
	for _, child := range inner.children {
		inner.summary = t.cfg.Monoid.Add(inner.summary, child.Summary())
		inner.size += child.Size()
	}
	inner.lo, _ = inner.children[0].bounds()
	_, inner.hi = inner.children[len(inner.children)-1].bounds()
}

func (t *Tree[I, K, S]) insertChildAt(inner *innerNode[I, K, S], idx int, child treeNode[I, K, S]) {
	assert(inner != nil, "insertChildAt called with nil inner node")
	assert(idx >= 0 && idx <= len(inner.children), "insertChildAt index out of range")
	inner.children = slices.Insert(inner.children, idx, child)
	t.recomputeInnerSummary(inner)
}

func (t *Tree[I, K, S]) leafOverflow(leaf *leafNode[I, K, S]) bool {
	return leaf != nil && len(leaf.items) > MaxLeafItems
}

func (t *Tree[I, K, S]) innerOverflow(inner *innerNode[I, K, S]) bool {
	return inner != nil && len(inner.children) > MaxChildren
}

// insertIntoLeafLocal inserts an item at a local leaf offset.
//
// It returns the updated (left) leaf and optionally a promoted right sibling if
// a split occurred. The input leaf is not modified.
func (t *Tree[I, K, S]) insertIntoLeafLocal(leaf *leafNode[I, K, S], index int, item I) (*leafNode[I, K, S], *leafNode[I, K, S], error) {
	if leaf == nil {
		return nil, nil, fmt.Errorf("%w: nil leaf", ErrInvalidConfig)
	}
	if index < 0 || index > len(leaf.items) {
		return nil, nil, ErrIndexOutOfBounds
	}
	cloned := t.cloneLeaf(leaf)
	cloned.items = slices.Insert(cloned.items, index, item)
	t.recomputeLeafSummary(cloned)
	if !t.leafOverflow(cloned) {
		return cloned, nil, nil
	}
	return t.splitLeaf(cloned)
}

// splitLeaf splits an overflowing leaf into two siblings.
func (t *Tree[I, K, S]) splitLeaf(leaf *leafNode[I, K, S]) (*leafNode[I, K, S], *leafNode[I, K, S], error) {
	if leaf == nil {
		return nil, nil, fmt.Errorf("%w: nil leaf", ErrInvalidConfig)
	}
	n := len(leaf.items)
	if n <= MaxLeafItems {
		return t.cloneLeaf(leaf), nil, nil
	}
	mid := n / 2
	left := t.makeLeaf(leaf.items[:mid])
	right := t.makeLeaf(leaf.items[mid:])
	if len(left.items) < Base || len(right.items) < Base {
		return nil, nil, fmt.Errorf("%w: split violates leaf occupancy bounds", ErrInvariant)
	}
	tracer().Debugf("btree: split leaf of %d items into %d + %d", n, len(left.items), len(right.items))
	return left, right, nil
}

// splitInner splits one overflowing internal node into two siblings.
//
// Insertion promotes at most one sibling per level, so an overflowing node
// carries exactly MaxChildren+1 children.
func (t *Tree[I, K, S]) splitInner(inner *innerNode[I, K, S]) (*innerNode[I, K, S], *innerNode[I, K, S], error) {
	assert(inner != nil, "splitInner called with nil inner node")
	n := len(inner.children)
	if n <= MaxChildren {
		return t.cloneInner(inner), nil, nil
	}
	assert(n <= 2*MaxChildren, "splitInner requires more than one promoted sibling")
	mid := n / 2
	left := t.makeInternal(inner.children[:mid]...)
	right := t.makeInternal(inner.children[mid:]...)
	if len(left.children) < Base || len(right.children) < Base {
		return nil, nil, fmt.Errorf("%w: split violates internal occupancy bounds", ErrInvariant)
	}
	return left, right, nil
}
