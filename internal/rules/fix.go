package rules

import (
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/reconstruction"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/checker"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// rewriteDomain builds the single fix that puts items into target order,
// keeping the original separators. It returns nil when nothing moves.
func rewriteDomain(src *syntax.Source, items []interfaces.SortableItem) (*lint.Fix, error) {
	order := checker.TargetOrder(items)
	if checker.IsIdentity(order) {
		return nil, nil
	}

	edit, err := reconstruction.Rewrite(src.Content, reconstruction.Plan{
		Items: reconstruction.ItemsFor(nodesOf(items), src, false),
		Order: order,
	})
	if err != nil {
		return nil, err
	}
	return toFix(edit), nil
}

func nodesOf(items []interfaces.SortableItem) []*sitter.Node {
	nodes := make([]*sitter.Node, len(items))
	for i, item := range items {
		nodes[i] = item.GetNode()
	}
	return nodes
}

func toFix(edit reconstruction.Edit) *lint.Fix {
	return &lint.Fix{Start: edit.Start, End: edit.End, Text: edit.Text}
}

func keyData(current, previous interfaces.SortableItem) map[string]string {
	return map[string]string{
		"current":  current.GetSortKey().Value(),
		"previous": previous.GetSortKey().Value(),
	}
}
