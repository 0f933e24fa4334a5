package syntax

import (
	"bytes"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
)

// Source gives read access to the text of a parsed file.
type Source struct {
	Path    string
	Content []byte
}

// Position is a 1-based line/column location.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// NewSource wraps file content for the rules.
func NewSource(path string, content []byte) *Source {
	return &Source{Path: path, Content: content}
}

// Start returns the start byte offset of n.
func Start(n *sitter.Node) int {
	return int(n.StartByte())
}

// End returns the end byte offset of n.
func End(n *sitter.Node) int {
	return int(n.EndByte())
}

// Text returns the raw source text of n.
func (s *Source) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(s.Content[n.StartByte():n.EndByte()])
}

// Slice returns the raw source text of [start, end).
func (s *Source) Slice(start, end int) string {
	return string(s.Content[start:end])
}

// StringValue returns the contents of a string literal without its quotes.
func (s *Source) StringValue(n *sitter.Node) string {
	return strings.Trim(s.Text(n), "\"'`")
}

// HasBlankLine reports whether [start, end) contains an empty line.
func (s *Source) HasBlankLine(start, end int) bool {
	if start >= end {
		return false
	}
	gap := s.Content[start:end]
	first := bytes.IndexByte(gap, '\n')
	if first < 0 {
		return false
	}
	return bytes.IndexByte(gap[first+1:], '\n') >= 0
}

// CommentsBefore returns the comment siblings directly preceding n, in
// source order, together with the closest preceding non-comment sibling
// (nil when n is the first child).
func (s *Source) CommentsBefore(n *sitter.Node) ([]*sitter.Node, *sitter.Node) {
	var comments []*sitter.Node
	prev := n.PrevSibling()
	for prev != nil && KindOf(prev) == KindComment {
		comments = append(comments, prev)
		prev = prev.PrevSibling()
	}
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return comments, prev
}

// TrailingComments returns the consecutive comment siblings that follow n
// and start on the row n ends on.
func (s *Source) TrailingComments(n *sitter.Node) []*sitter.Node {
	var comments []*sitter.Node
	row := n.EndPoint().Row
	for next := n.NextSibling(); next != nil && KindOf(next) == KindComment; next = next.NextSibling() {
		if next.StartPoint().Row != row {
			break
		}
		comments = append(comments, next)
	}
	return comments
}

// Position returns the 1-based start position of n.
func (s *Source) Position(n *sitter.Node) Position {
	return pointPosition(n.StartPoint())
}

// EndPosition returns the 1-based end position of n.
func (s *Source) EndPosition(n *sitter.Node) Position {
	return pointPosition(n.EndPoint())
}

func pointPosition(p sitter.Point) Position {
	row, err := safecast.Conv[int](p.Row)
	if err != nil {
		return Position{}
	}
	col, err := safecast.Conv[int](p.Column)
	if err != nil {
		return Position{Line: row + 1}
	}
	return Position{Line: row + 1, Column: col + 1}
}
