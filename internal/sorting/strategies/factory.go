package strategies

import (
	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
)

// Factory creates sorting strategies based on configuration
type Factory struct{}

// CreateStrategy creates the appropriate strategy for the declarationSort option
func (f *Factory) CreateStrategy(opts config.RuleOptions) (interfaces.SortStrategy, error) {
	mode, err := config.ParseSortMode(string(opts.DeclarationSort))
	if err != nil {
		return nil, err
	}

	if mode == config.SortBySource {
		return &SourcePathStrategy{}, nil
	}
	return &ImportNameStrategy{}, nil
}

// NewFactory creates a new strategy factory
func NewFactory() *Factory {
	return &Factory{}
}
