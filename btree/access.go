package btree

import "cmp"

// At returns the item at index in key order.
func (t *Tree[I, K, S]) At(index int) (I, error) {
	var zero I
	if t == nil || t.root == nil {
		return zero, ErrIndexOutOfBounds
	}
	if index < 0 || index >= t.Len() {
		return zero, ErrIndexOutOfBounds
	}
	return t.atNode(t.root, t.height, index)
}

func (t *Tree[I, K, S]) atNode(n treeNode[I, K, S], height int, index int) (I, error) {
	var zero I
	assert(n != nil, "atNode called with nil node")
	assert(height > 0, "atNode called with non-positive height")
	if height == 1 {
		leaf := n.(*leafNode[I, K, S])
		if index < 0 || index >= len(leaf.items) {
			return zero, ErrIndexOutOfBounds
		}
		return leaf.items[index], nil
	}
	inner := n.(*innerNode[I, K, S])
	remaining := index
	for _, child := range inner.children {
		childItems := child.Size()
		if remaining < childItems {
			return t.atNode(child, height-1, remaining)
		}
		remaining -= childItems
	}
	assert(false, "atNode index routing exceeded subtree size")
	return zero, ErrIndexOutOfBounds
}

// Rank returns the number of items with a key strictly less than key.
func (t *Tree[I, K, S]) Rank(key K) int {
	if t == nil || t.root == nil {
		return 0
	}
	rank := 0
	n := t.root
	for !n.isLeaf() {
		inner := n.(*innerNode[I, K, S])
		if cmp.Compare(key, inner.hi) > 0 {
			return rank + inner.size
		}
		for _, child := range inner.children {
			if _, hi := child.bounds(); cmp.Compare(key, hi) <= 0 {
				n = child
				break
			}
			rank += child.Size()
		}
	}
	index, _ := searchLeaf(n.(*leafNode[I, K, S]), key)
	return rank + index
}

// Find returns the item stored under key.
func (t *Tree[I, K, S]) Find(key K) (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	n := t.root
	for !n.isLeaf() {
		inner := n.(*innerNode[I, K, S])
		n = inner.children[t.locateChildForInsert(inner, key)]
	}
	leaf := n.(*leafNode[I, K, S])
	if index, found := searchLeaf(leaf, key); found {
		return leaf.items[index], true
	}
	return zero, false
}

// Contains reports whether an item with key is stored in the tree.
func (t *Tree[I, K, S]) Contains(key K) bool {
	_, found := t.Find(key)
	return found
}

// Min returns the item with the smallest key.
func (t *Tree[I, K, S]) Min() (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	n := t.root
	for !n.isLeaf() {
		n = n.(*innerNode[I, K, S]).children[0]
	}
	return n.(*leafNode[I, K, S]).items[0], true
}

// Max returns the item with the largest key.
func (t *Tree[I, K, S]) Max() (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	n := t.root
	for !n.isLeaf() {
		inner := n.(*innerNode[I, K, S])
		n = inner.children[len(inner.children)-1]
	}
	leaf := n.(*leafNode[I, K, S])
	return leaf.items[len(leaf.items)-1], true
}
