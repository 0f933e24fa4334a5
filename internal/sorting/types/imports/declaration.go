package imports

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Declaration represents an import statement that can be sorted
type Declaration struct {
	Node         *sitter.Node
	Source       string
	Default      *Specifier
	Namespace    *Specifier
	Named        []*Specifier
	NamedImports *sitter.Node // The `{ ... }` node, nil without named specifiers
	Group        Group

	key common.SortKey
}

// NewDeclaration reads an import_statement node. It returns false for
// statements without a module source, such as TypeScript's
// `import x = require("y")`.
func NewDeclaration(node *sitter.Node, src *syntax.Source) (*Declaration, bool) {
	if syntax.KindOf(node) != syntax.KindImportStatement {
		return nil, false
	}

	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return nil, false
	}

	decl := &Declaration{
		Node:   node,
		Source: src.StringValue(sourceNode),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if syntax.KindOf(child) == syntax.KindImportClause {
			decl.readClause(child, src)
		}
	}

	return decl, true
}

func (d *Declaration) readClause(clause *sitter.Node, src *syntax.Source) {
	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)

		switch syntax.KindOf(child) {
		case syntax.KindIdentifier:
			d.Default = &Specifier{Node: child, Kind: DefaultSpecifier, Local: src.Text(child)}

		case syntax.KindNamespaceImport:
			local := ""
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if id := child.NamedChild(j); syntax.KindOf(id) == syntax.KindIdentifier {
					local = src.Text(id)
				}
			}
			d.Namespace = &Specifier{Node: child, Kind: NamespaceSpecifier, Local: local}

		case syntax.KindNamedImports:
			d.NamedImports = child
			for j := 0; j < int(child.ChildCount()); j++ {
				if spec := child.Child(j); syntax.KindOf(spec) == syntax.KindImportSpecifier {
					d.Named = append(d.Named, newNamedSpecifier(spec, src))
				}
			}
		}
	}
}

// IsSideEffect reports whether the declaration binds no names.
func (d *Declaration) IsSideEffect() bool {
	return d.Default == nil && d.Namespace == nil && len(d.Named) == 0
}

// Specifiers returns every specifier in source order.
func (d *Declaration) Specifiers() []*Specifier {
	var specs []*Specifier
	if d.Default != nil {
		specs = append(specs, d.Default)
	}
	if d.Namespace != nil {
		specs = append(specs, d.Namespace)
	}
	return append(specs, d.Named...)
}

// SourceKey returns the key of the module path.
func (d *Declaration) SourceKey() common.SortKey {
	return common.StringKey(d.Source)
}

// BindingKey returns the lowest named specifier key, falling back to the
// default or namespace specifier, and to the module path for side effect
// imports.
func (d *Declaration) BindingKey() common.SortKey {
	switch {
	case len(d.Named) > 0:
		keys := make([]common.SortKey, 0, len(d.Named))
		for _, spec := range d.Named {
			keys = append(keys, spec.Key())
		}
		return common.MinKey(keys)
	case d.Default != nil:
		return d.Default.Key()
	case d.Namespace != nil:
		return d.Namespace.Key()
	}
	return d.SourceKey()
}

// Prepare classifies the declaration and computes its key.
func (d *Declaration) Prepare(strategy interfaces.SortStrategy, resolver interfaces.Resolver) {
	d.Group = Classify(d, resolver)
	d.key = strategy.ExtractKey(d)
}

// NamedItems returns the named specifiers as sortable items.
func (d *Declaration) NamedItems() []interfaces.SortableItem {
	items := make([]interfaces.SortableItem, len(d.Named))
	for i, spec := range d.Named {
		items[i] = spec
	}
	return items
}

// GetNode returns the underlying AST node
func (d *Declaration) GetNode() *sitter.Node {
	return d.Node
}

// GetGroup returns the group ordinal
func (d *Declaration) GetGroup() int {
	return int(d.Group)
}

// GetSortKey returns the key computed by Prepare
func (d *Declaration) GetSortKey() common.SortKey {
	return d.key
}

// IsPinned returns false; declarations are never pinned
func (d *Declaration) IsPinned() bool {
	return false
}
