package objects

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Property represents an object literal entry that can be sorted
type Property struct {
	Node   *sitter.Node
	Key    string
	Spread bool // Spread elements are reorder barriers
}

// NewProperty creates a Property from an object child. It returns false for
// punctuation and comments.
func NewProperty(node *sitter.Node, src *syntax.Source) (*Property, bool) {
	prop := &Property{Node: node}

	switch syntax.KindOf(node) {
	case syntax.KindPair:
		prop.Key = common.ExtractKeyFromNode(node.ChildByFieldName("key"), src)
	case syntax.KindShorthandProperty:
		prop.Key = src.Text(node)
	case syntax.KindMethodDefinition:
		prop.Key = common.ExtractKeyFromNode(node.ChildByFieldName("name"), src)
	case syntax.KindSpreadElement:
		prop.Spread = true
	default:
		return nil, false
	}

	return prop, true
}

// GetNode returns the underlying AST node
func (p *Property) GetNode() *sitter.Node {
	return p.Node
}

// GetGroup returns 0; object keys are not grouped
func (p *Property) GetGroup() int {
	return 0
}

// GetSortKey returns the property key
func (p *Property) GetSortKey() common.SortKey {
	return common.StringKey(p.Key)
}

// IsPinned returns false; spread elements never enter a domain
func (p *Property) IsPinned() bool {
	return false
}
