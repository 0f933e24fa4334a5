// Package checker decides whether a sequence of sibling items is in order.
package checker

import (
	"sort"

	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
)

// ViolationKind classifies a detected disorder.
type ViolationKind int

const (
	// KeyOrder means an item's key is lower than its predecessor's.
	KeyOrder ViolationKind = iota
	// GroupOrder means an item belongs to an earlier group than its predecessor.
	GroupOrder
	// PinnedNotLast means a pinned item (a rest element) is followed by another item.
	PinnedNotLast
)

// Violation records one disorder between two adjacent items.
type Violation struct {
	Kind ViolationKind
	// Index is the offending item.
	Index int
	// Reference is the item it was compared against.
	Reference int
}

// State is the outcome of checking one reorder domain.
type State struct {
	Violations []Violation
	// FirstUnsorted is the index of the first offending item, or -1.
	FirstUnsorted int
	// Fixable is true when the domain is out of order and safe to rewrite.
	Fixable bool
}

// Sorted reports whether no violation was found.
func (s State) Sorted() bool {
	return len(s.Violations) == 0
}

// Check scans adjacent pairs of items. safe tells whether the domain can be
// rewritten at all; violations are reported either way.
func Check(items []interfaces.SortableItem, safe bool) State {
	state := State{FirstUnsorted: -1}

	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]

		var v *Violation
		switch {
		case prev.IsPinned():
			v = &Violation{Kind: PinnedNotLast, Index: i - 1, Reference: i}
		case cur.GetGroup() < prev.GetGroup():
			v = &Violation{Kind: GroupOrder, Index: i, Reference: i - 1}
		case cur.GetGroup() == prev.GetGroup() && cur.GetSortKey().Less(prev.GetSortKey()):
			v = &Violation{Kind: KeyOrder, Index: i, Reference: i - 1}
		}

		if v == nil {
			continue
		}
		if state.FirstUnsorted < 0 {
			state.FirstUnsorted = v.Index
		}
		state.Violations = append(state.Violations, *v)
	}

	state.Fixable = safe && !state.Sorted()
	return state
}

// TargetOrder returns the permutation that sorts items by group, then key.
// Equal items keep their relative order.
func TargetOrder(items []interfaces.SortableItem) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		x, y := items[order[a]], items[order[b]]
		if x.GetGroup() != y.GetGroup() {
			return x.GetGroup() < y.GetGroup()
		}
		return x.GetSortKey().Less(y.GetSortKey())
	})
	return order
}

// IsIdentity reports whether order leaves every item in place.
func IsIdentity(order []int) bool {
	for i, idx := range order {
		if i != idx {
			return false
		}
	}
	return true
}
