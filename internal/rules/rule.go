// Package rules holds the ordering rules and the traversal that drives them.
package rules

import (
	"log/slog"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Rule checks nodes of the kinds it registers for and reports violations.
type Rule interface {
	// ID is the name used in diagnostics, config and directives.
	ID() string

	// Description is a one-line summary for the rules listing.
	Description() string

	// Kinds lists the node kinds Check is called for.
	Kinds() []syntax.Kind

	// Messages maps message IDs to {{name}} templates.
	Messages() map[string]string

	// Check inspects one node. A returned error aborts the whole traversal.
	Check(ctx *Context, node *sitter.Node) error
}

// Context is what a rule sees of the file under check.
type Context struct {
	Source   *syntax.Source
	Options  config.RuleOptions
	Resolver interfaces.Resolver
	Logger   *slog.Logger

	rule     Rule
	reporter lint.Reporter
}

// Report renders messageID with data and hands the diagnostic to the sink.
func (c *Context) Report(node *sitter.Node, messageID string, data map[string]string, fix *lint.Fix) {
	c.reporter.Report(lint.Diagnostic{
		Path:      c.Source.Path,
		RuleID:    c.rule.ID(),
		MessageID: messageID,
		Message:   lint.Render(c.rule.Messages()[messageID], data),
		Data:      data,
		Start:     c.Source.Position(node),
		End:       c.Source.EndPosition(node),
		Fix:       fix,
	})
}
