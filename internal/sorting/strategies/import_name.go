package strategies

import (
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/common"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
)

// ImportNameStrategy sorts declarations by the names they bind
type ImportNameStrategy struct{}

func (s *ImportNameStrategy) ExtractKey(decl interfaces.Declaration) common.SortKey {
	return decl.BindingKey()
}

func (s *ImportNameStrategy) GetName() string {
	return "import"
}

// SourcePathStrategy sorts declarations by module path
type SourcePathStrategy struct{}

func (s *SourcePathStrategy) ExtractKey(decl interfaces.Declaration) common.SortKey {
	return decl.SourceKey()
}

func (s *SourcePathStrategy) GetName() string {
	return "source"
}
