package btree

import "cmp"

// Predecessor returns the item with the greatest key strictly less than key.
//
// The query key itself is never returned, whether or not it is stored.
func (t *Tree[I, K, S]) Predecessor(key K) (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	return t.predecessorNode(t.root, key)
}

// predecessorNode descends into the rightmost child whose smallest key is
// below key. All children right of it start at or above key, and the child
// holds at least its own smallest key as a candidate.
func (t *Tree[I, K, S]) predecessorNode(n treeNode[I, K, S], key K) (I, bool) {
	var zero I
	assert(n != nil, "predecessorNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, K, S])
		index, _ := searchLeaf(leaf, key)
		if index == 0 {
			return zero, false
		}
		return leaf.items[index-1], true
	}
	inner := n.(*innerNode[I, K, S])
	for i := len(inner.children) - 1; i >= 0; i-- {
		if lo, _ := inner.children[i].bounds(); cmp.Less(lo, key) {
			return t.predecessorNode(inner.children[i], key)
		}
	}
	return zero, false
}

// Successor returns the item with the smallest key strictly greater than key.
//
// The query key itself is never returned, whether or not it is stored.
func (t *Tree[I, K, S]) Successor(key K) (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	return t.successorNode(t.root, key)
}

// successorNode mirrors predecessorNode: it descends into the leftmost child
// whose largest key is above key.
func (t *Tree[I, K, S]) successorNode(n treeNode[I, K, S], key K) (I, bool) {
	var zero I
	assert(n != nil, "successorNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, K, S])
		index, found := searchLeaf(leaf, key)
		if found {
			index++
		}
		if index >= len(leaf.items) {
			return zero, false
		}
		return leaf.items[index], true
	}
	inner := n.(*innerNode[I, K, S])
	for _, child := range inner.children {
		if _, hi := child.bounds(); cmp.Less(key, hi) {
			return t.successorNode(child, key)
		}
	}
	return zero, false
}
