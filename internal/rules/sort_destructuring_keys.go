package rules

import (
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/checker"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/types/patterns"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// SortDestructuringKeys orders the keys of object destructuring patterns and
// keeps a rest element last.
type SortDestructuringKeys struct{}

func (r *SortDestructuringKeys) ID() string { return "sort-destructuring-keys" }

func (r *SortDestructuringKeys) Description() string {
	return "Destructured keys are sorted and a rest element comes last"
}

func (r *SortDestructuringKeys) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindObjectPattern}
}

func (r *SortDestructuringKeys) Messages() map[string]string {
	return map[string]string{
		"keyOrder": "Expected destructured key '{{current}}' to come before '{{previous}}'.",
		"restLast": "Rest element '{{name}}' must be the last property.",
	}
}

func (r *SortDestructuringKeys) Check(ctx *Context, node *sitter.Node) error {
	domain := patterns.NewPatternSorter(node).Domain(ctx.Source)
	if len(domain) < 2 {
		return nil
	}

	state := checker.Check(domain, true)
	if state.Sorted() {
		return nil
	}

	var fix *lint.Fix
	if state.Fixable && ctx.Options.Fix {
		var err error
		if fix, err = rewriteDomain(ctx.Source, domain); err != nil {
			return err
		}
	}

	for i, v := range state.Violations {
		if i > 0 {
			fix = nil
		}

		cur := domain[v.Index]
		if v.Kind == checker.PinnedNotLast {
			rest := cur.GetNode()
			ctx.Report(rest, "restLast", map[string]string{
				"name": ctx.Source.Text(common.FirstNamedChild(rest)),
			}, fix)
			continue
		}
		ctx.Report(cur.GetNode(), "keyOrder", keyData(cur, domain[v.Reference]), fix)
	}

	return nil
}
