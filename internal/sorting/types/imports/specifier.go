package imports

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// SpecifierKind distinguishes the three ways a declaration binds names.
type SpecifierKind int

const (
	DefaultSpecifier SpecifierKind = iota
	NamespaceSpecifier
	NamedSpecifier
)

// Specifier is one bound name of an import declaration
type Specifier struct {
	Node     *sitter.Node
	Kind     SpecifierKind
	Imported string // Name exported by the module ("" for default and namespace)
	Local    string // Name bound in this file
}

// Key returns the sort key: the local name for default and namespace
// specifiers, the imported name for named specifiers.
func (s *Specifier) Key() common.SortKey {
	if s.Kind == NamedSpecifier {
		return common.StringKey(s.Imported)
	}
	return common.StringKey(s.Local)
}

// GetNode returns the underlying AST node
func (s *Specifier) GetNode() *sitter.Node {
	return s.Node
}

// GetGroup returns 0; specifiers are not grouped
func (s *Specifier) GetGroup() int {
	return 0
}

// GetSortKey returns the key compared against sibling specifiers
func (s *Specifier) GetSortKey() common.SortKey {
	return s.Key()
}

// IsPinned returns false; no specifier is pinned
func (s *Specifier) IsPinned() bool {
	return false
}

// newNamedSpecifier reads an import_specifier node
func newNamedSpecifier(node *sitter.Node, src *syntax.Source) *Specifier {
	spec := &Specifier{Node: node, Kind: NamedSpecifier}

	if name := node.ChildByFieldName("name"); name != nil {
		if syntax.KindOf(name) == syntax.KindString {
			spec.Imported = src.StringValue(name)
		} else {
			spec.Imported = src.Text(name)
		}
	}
	spec.Local = spec.Imported
	if alias := node.ChildByFieldName("alias"); alias != nil {
		spec.Local = src.Text(alias)
	}

	return spec
}
