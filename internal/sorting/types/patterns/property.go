package patterns

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Property represents an entry of an object destructuring pattern
type Property struct {
	Node *sitter.Node
	Key  string
	Rest bool
}

// NewProperty creates a Property from an object_pattern child. It returns
// false for punctuation and comments.
func NewProperty(node *sitter.Node, src *syntax.Source) (*Property, bool) {
	prop := &Property{Node: node}

	switch syntax.KindOf(node) {
	case syntax.KindPairPattern:
		prop.Key = common.ExtractKeyFromNode(node.ChildByFieldName("key"), src)
	case syntax.KindShorthandPropertyPattern:
		prop.Key = src.Text(node)
	case syntax.KindObjectAssignmentPattern:
		prop.Key = common.ExtractKeyFromNode(node.ChildByFieldName("left"), src)
	case syntax.KindRestPattern:
		prop.Rest = true
		prop.Key = src.Text(common.FirstNamedChild(node))
	default:
		return nil, false
	}

	return prop, true
}

// GetNode returns the underlying AST node
func (p *Property) GetNode() *sitter.Node {
	return p.Node
}

// GetGroup returns 0; pattern keys are not grouped
func (p *Property) GetGroup() int {
	return 0
}

// GetSortKey returns the property key; rest elements always sort last
func (p *Property) GetSortKey() common.SortKey {
	if p.Rest {
		return common.LastKey()
	}
	return common.StringKey(p.Key)
}

// IsPinned reports whether this is a rest element
func (p *Property) IsPinned() bool {
	return p.Rest
}
