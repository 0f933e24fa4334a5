package imports

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// List holds the top-level import declarations of a module.
type List struct {
	Declarations []*Declaration
	// Interleaved is set when another statement sits between two declarations.
	Interleaved bool
}

// CollectList reads the import declarations that are direct children of program.
func CollectList(program *sitter.Node, src *syntax.Source) List {
	var list List
	sawOther := false

	for i := 0; i < int(program.ChildCount()); i++ {
		child := program.Child(i)

		switch syntax.KindOf(child) {
		case syntax.KindComment:
			continue

		case syntax.KindImportStatement:
			if decl, ok := NewDeclaration(child, src); ok {
				if sawOther {
					list.Interleaved = true
				}
				list.Declarations = append(list.Declarations, decl)
				continue
			}
		}

		if len(list.Declarations) > 0 {
			sawOther = true
		}
	}

	return list
}

// Items returns the declarations as sortable items.
func (l List) Items() []interfaces.SortableItem {
	items := make([]interfaces.SortableItem, len(l.Declarations))
	for i, decl := range l.Declarations {
		items[i] = decl
	}
	return items
}
