package btree

import (
	"cmp"
	"fmt"
	"slices"
)

// Tree is a persistent, key-ordered B+ sum-tree.
//
// I is the leaf item type, K its ordering key and S the summary type
// aggregated through the tree. The item type is tied to key and summary types
// via Item[K, S].
//
// A Tree value is immutable once published: Insert returns a new tree and
// shares all untouched nodes with the receiver.
type Tree[I Item[K, S], K cmp.Ordered, S any] struct {
	cfg    Config[S]
	root   treeNode[I, K, S]
	height int // 0 means empty tree
}

// New creates an empty tree with validated configuration.
func New[I Item[K, S], K cmp.Ordered, S any](cfg Config[S]) (*Tree[I, K, S], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[I, K, S]{cfg: cfg}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[I, K, S]) Config() Config[S] {
	return t.cfg
}

// Clone returns a shallow clone of the tree root container.
//
// Node contents are shared; mutating operations use path-copy semantics.
func (t *Tree[I, K, S]) Clone() *Tree[I, K, S] {
	if t == nil {
		return nil
	}
	cloned := *t
	return &cloned
}

// IsEmpty reports whether the tree has no items.
func (t *Tree[I, K, S]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Len returns the number of items in the tree.
func (t *Tree[I, K, S]) Len() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.root.Size()
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree[I, K, S]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Summary returns the root summary, or Zero() for an empty tree.
func (t *Tree[I, K, S]) Summary() S {
	if t == nil || t.cfg.Monoid == nil {
		var zero S
		return zero
	}
	if t.root == nil {
		return t.cfg.Monoid.Zero()
	}
	return t.root.Summary()
}

// Insert adds item and returns the resulting tree.
//
// If an item with the same key is already present, Insert returns the
// receiver itself and added=false. The receiver is never modified.
func (t *Tree[I, K, S]) Insert(item I) (tree *Tree[I, K, S], added bool, err error) {
	if t == nil {
		return nil, false, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		cloned := t.Clone()
		cloned.root = t.makeLeaf([]I{item})
		cloned.height = 1
		return cloned, true, nil
	}
	updated, promoted, added := t.insertRecursive(t.root, t.height, item)
	if !added {
		return t, false, nil
	}
	cloned := t.Clone()
	if promoted != nil {
		cloned.root = t.makeInternal(updated, promoted)
		cloned.height = t.height + 1
		tracer().Debugf("btree: root split, height is now %d", cloned.height)
		return cloned, true, nil
	}
	cloned.root = updated
	return cloned, true, nil
}

// insertRecursive inserts one item into subtree n and propagates split results.
//
// The returned promoted sibling is non-nil only when the updated subtree split.
// If the key is already present, n is returned untouched with added=false and
// nothing on the path is copied.
func (t *Tree[I, K, S]) insertRecursive(n treeNode[I, K, S], height int, item I) (
	updated treeNode[I, K, S], promoted treeNode[I, K, S], added bool,
) {
	assert(n != nil, "insertRecursive called with nil node")
	assert(height > 0, "insertRecursive called with invalid height")
	if height == 1 {
		leaf, ok := n.(*leafNode[I, K, S])
		assert(ok, "insertRecursive expected leaf at height 1")
		index, found := searchLeaf(leaf, item.Key())
		if found {
			return n, nil, false
		}
		left, right, err := t.insertIntoLeafLocal(leaf, index, item)
		if err != nil {
			assert(false, err.Error())
		}
		if right == nil {
			return left, nil, true
		}
		return left, right, true
	}

	inner, ok := n.(*innerNode[I, K, S])
	assert(ok, "insertRecursive expected internal node")
	slot := t.locateChildForInsert(inner, item.Key())
	updatedChild, promotedChild, added := t.insertRecursive(inner.children[slot], height-1, item)
	if !added {
		return n, nil, false
	}
	cloned := t.cloneInner(inner)
	cloned.children[slot] = updatedChild
	if promotedChild != nil {
		t.insertChildAt(cloned, slot+1, promotedChild)
	} else {
		t.recomputeInnerSummary(cloned)
	}
	if !t.innerOverflow(cloned) {
		return cloned, nil, true
	}
	left, right, err := t.splitInner(cloned)
	if err != nil {
		assert(false, err.Error())
	}
	return left, right, true
}

// locateChildForInsert selects the child slot responsible for key.
//
// It picks the first child whose largest key is not smaller than key, so keys
// falling into a gap between two children land in the right one; keys beyond
// the last child land in the last child.
func (t *Tree[I, K, S]) locateChildForInsert(inner *innerNode[I, K, S], key K) int {
	assert(inner != nil, "locateChildForInsert called with nil inner node")
	assert(len(inner.children) > 0, "locateChildForInsert called with empty children")
	for i, child := range inner.children {
		if _, hi := child.bounds(); cmp.Compare(key, hi) <= 0 {
			return i
		}
	}
	return len(inner.children) - 1
}

// searchLeaf returns the position of key within a leaf, or the position where
// it would have to be inserted.
func searchLeaf[I Item[K, S], K cmp.Ordered, S any](leaf *leafNode[I, K, S], key K) (int, bool) {
	return slices.BinarySearchFunc(leaf.items, key, func(item I, k K) int {
		return cmp.Compare(item.Key(), k)
	})
}
