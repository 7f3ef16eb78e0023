package btree

import "cmp"

// ForEachItem walks leaf items in key order.
//
// Iteration stops early if callback returns false.
func (t *Tree[I, K, S]) ForEachItem(fn func(item I) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.forEachItemNode(t.root, fn)
}

func (t *Tree[I, K, S]) forEachItemNode(n treeNode[I, K, S], fn func(item I) bool) bool {
	assert(n != nil, "forEachItemNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, K, S])
		for _, item := range leaf.items {
			if !fn(item) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[I, K, S])
	for _, child := range inner.children {
		if !t.forEachItemNode(child, fn) {
			return false
		}
	}
	return true
}

// Ascend walks items with a key greater than or equal to from, in key order.
//
// Subtrees lying entirely below from are skipped without being visited.
// Iteration stops early if callback returns false.
func (t *Tree[I, K, S]) Ascend(from K, fn func(item I) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.ascendNode(t.root, from, fn)
}

func (t *Tree[I, K, S]) ascendNode(n treeNode[I, K, S], from K, fn func(item I) bool) bool {
	if _, hi := n.bounds(); cmp.Less(hi, from) {
		return true
	}
	if n.isLeaf() {
		leaf := n.(*leafNode[I, K, S])
		start, _ := searchLeaf(leaf, from)
		for _, item := range leaf.items[start:] {
			if !fn(item) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[I, K, S])
	for _, child := range inner.children {
		if !t.ascendNode(child, from, fn) {
			return false
		}
	}
	return true
}
