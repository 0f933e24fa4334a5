package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Visitor is called once for every visited node of a registered kind.
type Visitor func(n *sitter.Node) error

// Walker dispatches nodes to the visitors registered for their kind.
type Walker struct {
	visitors map[Kind][]Visitor
}

// NewWalker creates an empty walker.
func NewWalker() *Walker {
	return &Walker{visitors: make(map[Kind][]Visitor)}
}

// On registers v for nodes of kind k. Visitors run in registration order.
func (w *Walker) On(k Kind, v Visitor) {
	w.visitors[k] = append(w.visitors[k], v)
}

// Walk traverses the tree depth-first, parents before children.
// The first visitor error stops the traversal and is returned.
func (w *Walker) Walk(root *sitter.Node) error {
	var traverse func(*sitter.Node) error
	traverse = func(n *sitter.Node) error {
		for _, v := range w.visitors[KindOf(n)] {
			if err := v(n); err != nil {
				return err
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			if err := traverse(n.Child(i)); err != nil {
				return err
			}
		}
		return nil
	}

	if root == nil {
		return nil
	}
	return traverse(root)
}
