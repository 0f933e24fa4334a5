package rules

import (
	"fmt"
	"log/slog"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
)

// Env configures one traversal.
type Env struct {
	Source   *syntax.Source
	Options  config.RuleOptions
	Resolver interfaces.Resolver
	Logger   *slog.Logger
	// Rules defaults to All().
	Rules []Rule
}

// Run walks root once, handing each node to the enabled rules registered for
// its kind. Diagnostics go to reporter; the first rule error stops the walk.
func Run(root *sitter.Node, env Env, reporter lint.Reporter) error {
	if err := env.Options.Validate(); err != nil {
		return err
	}

	logger := env.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	resolver := env.Resolver
	if resolver == nil {
		resolver = noResolver{}
	}
	ruleSet := env.Rules
	if ruleSet == nil {
		ruleSet = All()
	}

	walker := syntax.NewWalker()
	for _, rule := range ruleSet {
		if !env.Options.RuleEnabled(rule.ID()) {
			logger.Debug("rule disabled", "rule", rule.ID(), "path", env.Source.Path)
			continue
		}

		ctx := &Context{
			Source:   env.Source,
			Options:  env.Options,
			Resolver: resolver,
			Logger:   logger.With("rule", rule.ID()),
			rule:     rule,
			reporter: reporter,
		}
		for _, kind := range rule.Kinds() {
			walker.On(kind, func(n *sitter.Node) error {
				if err := rule.Check(ctx, n); err != nil {
					return fmt.Errorf("%s: %w", rule.ID(), err)
				}
				return nil
			})
		}
	}

	return walker.Walk(root)
}

// noResolver treats every bare specifier as internal.
type noResolver struct{}

func (noResolver) Resolves(string) bool { return false }
