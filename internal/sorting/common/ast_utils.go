package common

import (
	"strings"

	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractKeyFromNode extracts the sort text of a property name or a key
// expression. Shapes that have no readable name yield "".
func ExtractKeyFromNode(node *sitter.Node, src *syntax.Source) string {
	switch syntax.KindOf(node) {
	case syntax.KindIdentifier,
		syntax.KindPropertyIdentifier,
		syntax.KindPrivatePropertyIdentifier,
		syntax.KindShorthandProperty,
		syntax.KindShorthandPropertyPattern,
		syntax.KindNumber:
		return src.Text(node)
	case syntax.KindString:
		return src.StringValue(node)
	case syntax.KindTemplateString:
		return templateKey(node, src)
	case syntax.KindComputedPropertyName:
		return ExtractKeyFromNode(FirstNamedChild(node), src)
	default:
		return ""
	}
}

// templateKey reads a template literal as its literal segments with each
// substitution replaced by the key of its expression.
func templateKey(node *sitter.Node, src *syntax.Source) string {
	var b strings.Builder

	// Skip the opening backtick
	pos := syntax.Start(node) + 1
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if syntax.KindOf(child) != syntax.KindTemplateSubstitution {
			continue
		}
		b.WriteString(src.Slice(pos, syntax.Start(child)))
		b.WriteString(ExtractKeyFromNode(FirstNamedChild(child), src))
		pos = syntax.End(child)
	}

	end := syntax.End(node) - 1
	if pos < end {
		b.WriteString(src.Slice(pos, end))
	}
	return b.String()
}

// FirstNamedChild returns the first named child that is not a comment.
func FirstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if syntax.KindOf(child) != syntax.KindComment {
			return child
		}
	}
	return nil
}
