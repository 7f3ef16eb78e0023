package btree

// makeLeaf materializes a new leaf over a private copy of items and computes
// its summary.
func (t *Tree[I, K, S]) makeLeaf(items []I) *leafNode[I, K, S] {
	assert(len(items) <= MaxLeafItems+1, "makeLeaf exceeds leaf capacity")
	leaf := &leafNode[I, K, S]{
		items: append(make([]I, 0, MaxLeafItems+1), items...),
	}
	t.recomputeLeafSummary(leaf)
	return leaf
}

// makeInternal materializes a new internal node and computes its summary,
// size and key bounds from child nodes.
func (t *Tree[I, K, S]) makeInternal(children ...treeNode[I, K, S]) *innerNode[I, K, S] {
	assert(len(children) > 0, "makeInternal called without children")
	assert(len(children) <= MaxChildren+1, "makeInternal exceeds node capacity")
	inner := &innerNode[I, K, S]{
		children: append(make([]treeNode[I, K, S], 0, MaxChildren+1), children...),
	}
	t.recomputeInnerSummary(inner)
	return inner
}
