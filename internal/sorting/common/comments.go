package common

import (
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Ownership decides which neighbouring comments move together with a node.
type Ownership struct {
	// First marks the first node of a reorder domain. Only comments attached
	// to it without a blank line are owned; detached header comments stay put.
	First bool
	// Trailing claims the comments starting on the row the node ends on.
	Trailing bool
}

// OwnedRange returns the bytes that belong to n: its leading comments, the
// node itself and, when requested, its trailing same-row comments.
//
// Comments starting on the row where the previous sibling ends are that
// sibling's trailing comments and are never owned by n.
func OwnedRange(n *sitter.Node, src *syntax.Source, own Ownership) Range {
	comments := LeadingComments(n, src, own.First)

	r := Range{Start: syntax.Start(n), End: syntax.End(n)}
	if len(comments) > 0 {
		r.Start = syntax.Start(comments[0])
	}
	if own.Trailing {
		if after := src.TrailingComments(n); len(after) > 0 {
			r.End = syntax.End(after[len(after)-1])
		}
	}
	return r
}

// LeadingComments returns the comments owned by n that precede it.
func LeadingComments(n *sitter.Node, src *syntax.Source, first bool) []*sitter.Node {
	comments, prev := src.CommentsBefore(n)

	if prev != nil {
		for len(comments) > 0 && comments[0].StartPoint().Row == prev.EndPoint().Row {
			comments = comments[1:]
		}
	}

	if first {
		next := syntax.Start(n)
		keep := len(comments)
		for i := len(comments) - 1; i >= 0; i-- {
			if src.HasBlankLine(syntax.End(comments[i]), next) {
				break
			}
			keep = i
			next = syntax.Start(comments[i])
		}
		comments = comments[keep:]
	}

	return comments
}
