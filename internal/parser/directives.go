package parser

import (
	"bytes"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// FindDirectives collects the inline configuration comments placed at the
// top level of a file, merged in source order.
func FindDirectives(root *sitter.Node, content []byte) config.Directive {
	var merged config.Directive

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if syntax.KindOf(child) != syntax.KindComment {
			continue
		}

		text := content[child.StartByte():child.EndByte()]
		if !bytes.Contains(text, []byte(config.DirectivePrefix)) {
			continue
		}

		d := config.ParseDirective(text)
		merged.Disable = merged.Disable || d.Disable
		merged.DisabledRules = append(merged.DisabledRules, d.DisabledRules...)
		if d.DeclarationSort != "" {
			merged.DeclarationSort = d.DeclarationSort
		}
	}

	return merged
}
