package objects

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// ObjectSorter handles sorting of object literal properties
type ObjectSorter struct {
	node *sitter.Node
}

// NewObjectSorter creates a new object sorter
func NewObjectSorter(objectNode *sitter.Node) *ObjectSorter {
	return &ObjectSorter{node: objectNode}
}

// Extract returns every entry of the object in source order
func (o *ObjectSorter) Extract(src *syntax.Source) []*Property {
	var properties []*Property
	for i := 0; i < int(o.node.ChildCount()); i++ {
		if prop, ok := NewProperty(o.node.Child(i), src); ok {
			properties = append(properties, prop)
		}
	}
	return properties
}

// Runs splits the entries into maximal runs not interrupted by a spread
// element. Each run is sorted on its own; runs shorter than two are dropped.
func (o *ObjectSorter) Runs(src *syntax.Source) [][]interfaces.SortableItem {
	var runs [][]interfaces.SortableItem
	var current []interfaces.SortableItem

	flush := func() {
		if len(current) >= 2 {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, prop := range o.Extract(src) {
		if prop.Spread {
			flush()
			continue
		}
		current = append(current, prop)
	}
	flush()

	return runs
}

// GetNode returns the underlying AST node
func (o *ObjectSorter) GetNode() *sitter.Node {
	return o.node
}
