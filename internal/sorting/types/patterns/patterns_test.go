package patterns

import (
	"context"
	"testing"

	"github.com/evanrichards/tree-sorter-imports/internal/parser"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstPattern(t *testing.T, code string) (*sitter.Node, *syntax.Source) {
	t.Helper()

	content := []byte(code)
	tree, err := parser.Parse(context.Background(), parser.JavaScript, content)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	var found *sitter.Node
	w := syntax.NewWalker()
	w.On(syntax.KindObjectPattern, func(n *sitter.Node) error {
		if found == nil {
			found = n
		}
		return nil
	})
	require.NoError(t, w.Walk(tree.RootNode()))
	require.NotNil(t, found)

	return found, syntax.NewSource("test.js", content)
}

func domainKeys(t *testing.T, code string) []string {
	t.Helper()
	node, src := firstPattern(t, code)

	var keys []string
	for _, item := range NewPatternSorter(node).Domain(src) {
		keys = append(keys, item.GetSortKey().String())
	}
	return keys
}

func TestExtract(t *testing.T) {
	node, src := firstPattern(t, "const { plain, renamed: local, withDefault = 1, 'str': s, ...rest } = obj;")

	var keys []string
	for _, p := range NewPatternSorter(node).Extract(src) {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"plain", "renamed", "withDefault", "str", "rest"}, keys)
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"trailing_rest_excluded", "const { b, a, ...rest } = o;", []string{"b", "a"}},
		{"leading_rest_pinned", "const { ...rest, b, a } = o;", []string{"<last>", "b", "a"}},
		{"middle_rest_pinned", "const { b, ...rest, a } = o;", []string{"b", "<last>", "a"}},
		{"no_rest", "const { b, a } = o;", []string{"b", "a"}},
		{"only_rest", "const { ...rest } = o;", nil},
		{"empty", "const {} = o;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domainKeys(t, tt.code))
		})
	}
}

func TestRestIsPinned(t *testing.T) {
	node, src := firstPattern(t, "function f({ a, ...others }) {}")

	props := NewPatternSorter(node).Extract(src)
	require.Len(t, props, 2)
	assert.False(t, props[0].IsPinned())
	assert.True(t, props[1].IsPinned())
	assert.True(t, props[1].GetSortKey().IsSentinel())
}
