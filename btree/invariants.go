package btree

import (
	"cmp"
	"fmt"
)

// Check validates structural tree invariants.
//
// It verifies uniform leaf depth, node occupancy, strict key order within and
// across nodes, and the cached size and key bounds of internal nodes. Summaries
// are opaque to the tree and are left to clients to verify.
func (t *Tree[I, K, S]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		if t.height != 0 {
			return fmt.Errorf("%w: empty tree must have height=0", ErrInvariant)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvariant)
	}
	_, height, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariant, height, t.height)
	}
	return nil
}

func (t *Tree[I, K, S]) checkNode(n treeNode[I, K, S], isRoot bool) (items int, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrInvariant)
	}
	if n.isLeaf() {
		leaf := n.(*leafNode[I, K, S])
		if err := t.checkLeaf(leaf, isRoot); err != nil {
			return 0, 0, err
		}
		return len(leaf.items), 1, nil
	}
	inner := n.(*innerNode[I, K, S])
	if len(inner.children) == 0 {
		return 0, 0, fmt.Errorf("%w: internal node has no children", ErrInvariant)
	}
	if len(inner.children) > MaxChildren {
		return 0, 0, fmt.Errorf("%w: child count %d exceeds degree %d",
			ErrInvariant, len(inner.children), MaxChildren)
	}
	if isRoot && len(inner.children) < 2 {
		return 0, 0, fmt.Errorf("%w: internal root must have at least 2 children", ErrInvariant)
	}
	if !isRoot && len(inner.children) < Base {
		return 0, 0, fmt.Errorf("%w: child count %d below minimum %d",
			ErrInvariant, len(inner.children), Base)
	}
	var totalItems int
	var childHeight int
	for i, child := range inner.children {
		if child == nil {
			return 0, 0, fmt.Errorf("%w: nil child at index %d", ErrInvariant, i)
		}
		cItems, cHeight, cErr := t.checkNode(child, false)
		if cErr != nil {
			return 0, 0, cErr
		}
		totalItems += cItems
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariant)
		} else {
			_, prevHi := inner.children[i-1].bounds()
			if lo, _ := child.bounds(); cmp.Compare(prevHi, lo) >= 0 {
				return 0, 0, fmt.Errorf("%w: children %d and %d overlap (%v >= %v)",
					ErrInvariant, i-1, i, prevHi, lo)
			}
		}
	}
	if totalItems != inner.size {
		return 0, 0, fmt.Errorf("%w: cached size mismatch (%d != %d)", ErrInvariant, inner.size, totalItems)
	}
	lo, _ := inner.children[0].bounds()
	_, hi := inner.children[len(inner.children)-1].bounds()
	if cmp.Compare(lo, inner.lo) != 0 || cmp.Compare(hi, inner.hi) != 0 {
		return 0, 0, fmt.Errorf("%w: cached bounds [%v,%v] differ from [%v,%v]",
			ErrInvariant, inner.lo, inner.hi, lo, hi)
	}
	return totalItems, childHeight + 1, nil
}

func (t *Tree[I, K, S]) checkLeaf(leaf *leafNode[I, K, S], isRoot bool) error {
	if leaf == nil {
		return fmt.Errorf("%w: nil leaf node", ErrInvariant)
	}
	if len(leaf.items) == 0 {
		return fmt.Errorf("%w: empty leaf", ErrInvariant)
	}
	if len(leaf.items) > MaxLeafItems {
		return fmt.Errorf("%w: leaf holds %d items, max is %d", ErrInvariant, len(leaf.items), MaxLeafItems)
	}
	if !isRoot && len(leaf.items) < Base {
		return fmt.Errorf("%w: leaf holds %d items, min is %d", ErrInvariant, len(leaf.items), Base)
	}
	for i := 1; i < len(leaf.items); i++ {
		if cmp.Compare(leaf.items[i-1].Key(), leaf.items[i].Key()) >= 0 {
			return fmt.Errorf("%w: leaf keys out of order at %d", ErrInvariant, i)
		}
	}
	return nil
}
