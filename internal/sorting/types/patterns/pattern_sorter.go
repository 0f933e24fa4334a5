package patterns

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// PatternSorter handles sorting of destructuring pattern properties
type PatternSorter struct {
	node *sitter.Node
}

// NewPatternSorter creates a new pattern sorter
func NewPatternSorter(patternNode *sitter.Node) *PatternSorter {
	return &PatternSorter{node: patternNode}
}

// Extract returns every entry of the pattern in source order
func (p *PatternSorter) Extract(src *syntax.Source) []*Property {
	var properties []*Property
	for i := 0; i < int(p.node.ChildCount()); i++ {
		if prop, ok := NewProperty(p.node.Child(i), src); ok {
			properties = append(properties, prop)
		}
	}
	return properties
}

// Domain returns the entries that take part in sorting. A rest element that
// is already last stays out of the domain; one found anywhere else joins it
// and is pinned last.
func (p *PatternSorter) Domain(src *syntax.Source) []interfaces.SortableItem {
	properties := p.Extract(src)

	restIndex := -1
	for i, prop := range properties {
		if prop.Rest {
			restIndex = i
			break
		}
	}
	if restIndex >= 0 && restIndex == len(properties)-1 {
		properties = properties[:restIndex]
	}

	items := make([]interfaces.SortableItem, len(properties))
	for i, prop := range properties {
		items[i] = prop
	}
	return items
}

// GetNode returns the underlying AST node
func (p *PatternSorter) GetNode() *sitter.Node {
	return p.node
}
