package interfaces

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"

	sitter "github.com/smacker/go-tree-sitter"
)

// SortableItem represents a node whose position is checked against its siblings
type SortableItem interface {
	// GetNode returns the underlying AST node
	GetNode() *sitter.Node

	// GetGroup returns the priority group; lower groups sort first
	GetGroup() int

	// GetSortKey returns the key compared within a group
	GetSortKey() common.SortKey

	// IsPinned reports whether the item must be the last of its domain
	IsPinned() bool
}

// SortStrategy derives the key of an import declaration
type SortStrategy interface {
	// ExtractKey returns the sort key for a declaration
	ExtractKey(decl Declaration) common.SortKey

	// GetName returns the strategy name for debugging
	GetName() string
}

// Declaration is the view of an import declaration a strategy needs
type Declaration interface {
	// SourceKey returns the key of the module path
	SourceKey() common.SortKey

	// BindingKey returns the key of the names the declaration binds
	BindingKey() common.SortKey
}

// Resolver answers whether a module specifier resolves to an installed package
type Resolver interface {
	Resolves(specifier string) bool
}
