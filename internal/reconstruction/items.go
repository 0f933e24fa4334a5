package reconstruction

import (
	"bytes"

	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// ItemsFor builds rewrite items for sibling nodes in source order. Each item
// covers the node and its owned leading comments; with trailing set it also
// covers a comment on the node's last row.
func ItemsFor(nodes []*sitter.Node, src *syntax.Source, trailing bool) []Item {
	items := make([]Item, len(nodes))
	for i, n := range nodes {
		r := common.OwnedRange(n, src, common.Ownership{First: i == 0, Trailing: trailing})
		items[i] = Item{Start: r.Start, End: r.End}
	}
	return items
}

// GroupSeparator puts a blank line between items of different groups and a
// single line break between items of the same group.
func GroupSeparator(groups []int, content []byte) SeparatorFunc {
	nl := LineBreak(content)
	return func(prev, next int) string {
		if groups[prev] != groups[next] {
			return nl + nl
		}
		return nl
	}
}

// LineBreak returns the line terminator used by content.
func LineBreak(content []byte) string {
	if bytes.Contains(content, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}
