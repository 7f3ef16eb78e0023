package btree

import (
	"slices"
	"testing"
)

func TestForEachItemStopsEarly(t *testing.T) {
	tree := makeKeyTree(t)
	for i := range 100 {
		tree = insertAll(t, tree, i)
	}
	var seen []int
	tree.ForEachItem(func(item key) bool {
		seen = append(seen, int(item))
		return len(seen) < 5
	})
	if !slices.Equal(seen, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("unexpected early-stop iteration: %v", seen)
	}
}

func TestAscendStartsAtKey(t *testing.T) {
	tree := makeKeyTree(t)
	for i := range 200 {
		tree = insertAll(t, tree, 2*i)
	}
	var seen []int
	tree.Ascend(301, func(item key) bool {
		seen = append(seen, int(item))
		return len(seen) < 3
	})
	if !slices.Equal(seen, []int{302, 304, 306}) {
		t.Fatalf("unexpected ascend result: %v", seen)
	}
	seen = seen[:0]
	tree.Ascend(396, func(item key) bool {
		seen = append(seen, int(item))
		return true
	})
	if !slices.Equal(seen, []int{396, 398}) {
		t.Fatalf("unexpected ascend tail: %v", seen)
	}
}
