package rules

import (
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/reconstruction"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/checker"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/strategies"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/types/imports"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// SortImports orders the top-level import declarations of a module by group
// and key, and the named specifiers inside each declaration.
type SortImports struct{}

func (r *SortImports) ID() string { return "sort-imports" }

func (r *SortImports) Description() string {
	return "Import declarations are grouped and sorted, and so are their named specifiers"
}

func (r *SortImports) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindProgram}
}

func (r *SortImports) Messages() map[string]string {
	return map[string]string{
		"groupOrder":       "Expected '{{current}}' ({{currentGroup}}) to come before '{{previous}}' ({{previousGroup}}).",
		"declarationOrder": "Expected import '{{current}}' to come before '{{previous}}'.",
		"memberOrder":      "Expected member '{{current}}' to come before '{{previous}}'.",
	}
}

func (r *SortImports) Check(ctx *Context, node *sitter.Node) error {
	strategy, err := strategies.NewFactory().CreateStrategy(ctx.Options)
	if err != nil {
		return err
	}

	list := imports.CollectList(node, ctx.Source)
	if len(list.Declarations) == 0 {
		return nil
	}
	for _, decl := range list.Declarations {
		decl.Prepare(strategy, ctx.Resolver)
	}

	decls := list.Declarations
	state := checker.Check(list.Items(), !list.Interleaved)

	members := make(map[int]checker.State)
	for i, decl := range decls {
		if len(decl.Named) < 2 {
			continue
		}
		if s := checker.Check(decl.NamedItems(), true); !s.Sorted() {
			members[i] = s
		}
	}

	var listFix *lint.Fix
	if state.Fixable && ctx.Options.Fix {
		if listFix, err = r.fixList(ctx.Source, list, members); err != nil {
			return err
		}
	}
	if list.Interleaved && !state.Sorted() {
		ctx.Logger.Debug("import list interleaved with other statements, not fixing",
			"path", ctx.Source.Path)
	}

	for i, v := range state.Violations {
		cur, prev := decls[v.Index], decls[v.Reference]

		var fix *lint.Fix
		if i == 0 {
			fix = listFix
		}

		if v.Kind == checker.GroupOrder {
			ctx.Report(cur.Node, "groupOrder", map[string]string{
				"current":       cur.Source,
				"currentGroup":  cur.Group.Label(),
				"previous":      prev.Source,
				"previousGroup": prev.Group.Label(),
			}, fix)
			continue
		}
		ctx.Report(cur.Node, "declarationOrder", keyData(cur, prev), fix)
	}

	for i, decl := range decls {
		s, ok := members[i]
		if !ok {
			continue
		}

		var fix *lint.Fix
		if listFix == nil && ctx.Options.Fix {
			edit, err := r.sortMembers(ctx.Source, decl)
			if err != nil {
				return err
			}
			fix = toFix(edit)
		}

		for j, v := range s.Violations {
			cur, prev := decl.Named[v.Index], decl.Named[v.Reference]
			if j > 0 {
				fix = nil
			}
			ctx.Report(cur.Node, "memberOrder", keyData(cur, prev), fix)
		}
	}

	return nil
}

// fixList rewrites the whole import list in one edit. Declarations with
// unsorted members get their specifiers sorted inside the same edit.
func (r *SortImports) fixList(src *syntax.Source, list imports.List, members map[int]checker.State) (*lint.Fix, error) {
	decls := list.Declarations

	nodes := make([]*sitter.Node, len(decls))
	groups := make([]int, len(decls))
	for i, decl := range decls {
		nodes[i] = decl.Node
		groups[i] = decl.GetGroup()
	}

	items := reconstruction.ItemsFor(nodes, src, true)
	for i := range members {
		edit, err := r.sortMembers(src, decls[i])
		if err != nil {
			return nil, err
		}

		item := items[i]
		text := make([]byte, 0, item.End-item.Start+len(edit.Text))
		text = append(text, src.Content[item.Start:edit.Start]...)
		text = append(text, edit.Text...)
		text = append(text, src.Content[edit.End:item.End]...)
		items[i].Text = text
	}

	edit, err := reconstruction.Rewrite(src.Content, reconstruction.Plan{
		Items:     items,
		Order:     checker.TargetOrder(list.Items()),
		Separator: reconstruction.GroupSeparator(groups, src.Content),
	})
	if err != nil {
		return nil, err
	}
	return toFix(edit), nil
}

// sortMembers reorders the named specifiers of one declaration.
func (r *SortImports) sortMembers(src *syntax.Source, decl *imports.Declaration) (reconstruction.Edit, error) {
	items := decl.NamedItems()
	return reconstruction.Rewrite(src.Content, reconstruction.Plan{
		Items: reconstruction.ItemsFor(nodesOf(items), src, false),
		Order: checker.TargetOrder(items),
	})
}
