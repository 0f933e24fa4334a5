package rules

import (
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/checker"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/types/objects"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// SortObjectKeys orders the keys of object literals. Spread elements split
// an object into runs that are sorted independently.
type SortObjectKeys struct{}

func (r *SortObjectKeys) ID() string { return "sort-object-keys" }

func (r *SortObjectKeys) Description() string {
	return "Object literal keys are sorted between spread elements"
}

func (r *SortObjectKeys) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindObject}
}

func (r *SortObjectKeys) Messages() map[string]string {
	return map[string]string{
		"keyOrder": "Expected object key '{{current}}' to come before '{{previous}}'.",
	}
}

func (r *SortObjectKeys) Check(ctx *Context, node *sitter.Node) error {
	sorter := objects.NewObjectSorter(node)

	for _, run := range sorter.Runs(ctx.Source) {
		state := checker.Check(run, true)
		if state.Sorted() {
			continue
		}

		var fix *lint.Fix
		if state.Fixable && ctx.Options.Fix {
			var err error
			if fix, err = rewriteDomain(ctx.Source, run); err != nil {
				return err
			}
		}

		for i, v := range state.Violations {
			if i > 0 {
				fix = nil
			}
			ctx.Report(run[v.Index].GetNode(), "keyOrder", keyData(run[v.Index], run[v.Reference]), fix)
		}
	}

	return nil
}
