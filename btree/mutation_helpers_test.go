package btree

import (
	"errors"
	"testing"
)

// key is a minimal tree item: an int ordered by itself.
type key int

func (k key) Key() int { return int(k) }

func (k key) Summary() keySummary {
	return keySummary{Count: 1, Sum: int(k), First: int(k), Last: int(k)}
}

// keySummary tracks First/Last so tests notice if summaries are combined out
// of key order.
type keySummary struct {
	Count       int
	Sum         int
	First, Last int
}

type keyMonoid struct{}

func (keyMonoid) Zero() keySummary { return keySummary{} }

func (keyMonoid) Add(left, right keySummary) keySummary {
	switch {
	case left.Count == 0:
		return right
	case right.Count == 0:
		return left
	}
	return keySummary{
		Count: left.Count + right.Count,
		Sum:   left.Sum + right.Sum,
		First: left.First,
		Last:  right.Last,
	}
}

type keyTree = Tree[key, int, keySummary]

func makeKeyTree(t testing.TB) *keyTree {
	t.Helper()
	tree, err := New[key, int, keySummary](Config[keySummary]{
		Monoid: keyMonoid{},
	})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	return tree
}

func keys(ks ...int) []key {
	out := make([]key, 0, len(ks))
	for _, k := range ks {
		out = append(out, key(k))
	}
	return out
}

func TestCloneLeafCreatesIndependentSlice(t *testing.T) {
	tree := makeKeyTree(t)
	leaf := tree.makeLeaf(keys(1, 2, 3))
	cloned := tree.cloneLeaf(leaf)
	if cloned == leaf {
		t.Fatalf("cloneLeaf returned same pointer")
	}
	cloned.items[1] = key(7)
	tree.recomputeLeafSummary(cloned)
	if leaf.items[1] != 2 {
		t.Fatalf("original leaf changed after clone mutation")
	}
	if leaf.summary.Sum != 6 || cloned.summary.Sum != 11 {
		t.Fatalf("unexpected summaries: original=%+v clone=%+v", leaf.summary, cloned.summary)
	}
}

func TestRecomputeInnerSummary(t *testing.T) {
	tree := makeKeyTree(t)
	l1 := tree.makeLeaf(keys(1, 2))
	l2 := tree.makeLeaf(keys(5))
	inner := tree.makeInternal(l1, l2)
	if inner.summary.Sum != 8 || inner.size != 3 || inner.lo != 1 || inner.hi != 5 {
		t.Fatalf("unexpected initial inner node: %+v size=%d [%d,%d]", inner.summary, inner.size, inner.lo, inner.hi)
	}
	l2.items = append(l2.items, key(9))
	tree.recomputeLeafSummary(l2)
	tree.recomputeInnerSummary(inner)
	if inner.summary.Sum != 17 || inner.size != 4 || inner.hi != 9 {
		t.Fatalf("unexpected recomputed inner node: %+v size=%d [%d,%d]", inner.summary, inner.size, inner.lo, inner.hi)
	}
	if inner.summary.First != 1 || inner.summary.Last != 9 {
		t.Fatalf("summary combined out of order: %+v", inner.summary)
	}
}

func TestInsertIntoLeafLocalSplitsOnOverflow(t *testing.T) {
	tree := makeKeyTree(t)
	items := make([]key, 0, MaxLeafItems)
	for i := range MaxLeafItems {
		items = append(items, key(2*i))
	}
	leaf := tree.makeLeaf(items)
	left, right, err := tree.insertIntoLeafLocal(leaf, 3, key(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if right == nil {
		t.Fatalf("expected split of overflowing leaf")
	}
	if len(left.items)+len(right.items) != MaxLeafItems+1 {
		t.Fatalf("split lost items: %d + %d", len(left.items), len(right.items))
	}
	if len(left.items) < Base || len(right.items) < Base {
		t.Fatalf("split violates occupancy: %d + %d", len(left.items), len(right.items))
	}
	if len(leaf.items) != MaxLeafItems {
		t.Fatalf("input leaf was modified")
	}
	if left.items[3] != 5 {
		t.Fatalf("item inserted at wrong position: %v", left.items)
	}
}

func TestInsertIntoLeafLocalRejectsBadIndex(t *testing.T) {
	tree := makeKeyTree(t)
	leaf := tree.makeLeaf(keys(1, 2))
	if _, _, err := tree.insertIntoLeafLocal(leaf, 3, key(3)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestSplitInnerKeepsOrderAndOccupancy(t *testing.T) {
	tree := makeKeyTree(t)
	children := make([]treeNode[key, int, keySummary], 0, MaxChildren+1)
	for i := range MaxChildren + 1 {
		children = append(children, tree.makeLeaf(keys(10*i, 10*i+1)))
	}
	inner := tree.makeInternal(children...)
	left, right, err := tree.splitInner(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if right == nil {
		t.Fatalf("expected split of overflowing internal node")
	}
	if left.hi >= right.lo {
		t.Fatalf("split siblings overlap: left.hi=%d right.lo=%d", left.hi, right.lo)
	}
	if left.size+right.size != inner.size {
		t.Fatalf("split lost items: %d + %d != %d", left.size, right.size, inner.size)
	}
}
