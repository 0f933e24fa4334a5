package parser

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies the tree-sitter grammar used for a file.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

var extensions = map[string]Language{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// Parser pools to avoid recreating parsers, one per grammar
var pools = map[Language]*sync.Pool{
	JavaScript: newPool(javascript.GetLanguage),
	TypeScript: newPool(typescript.GetLanguage),
	TSX:        newPool(tsx.GetLanguage),
}

func newPool(grammar func() *sitter.Language) *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			p.SetLanguage(grammar())
			return p
		},
	}
}

// LanguageFor returns the grammar for a file path based on its extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Extensions returns every supported file extension, sorted.
func Extensions() []string {
	return slices.Sorted(maps.Keys(extensions))
}

// Parse parses content with the grammar for lang. The caller must Close the tree.
func Parse(ctx context.Context, lang Language, content []byte) (*sitter.Tree, error) {
	pool, ok := pools[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}

	p := pool.Get().(*sitter.Parser)
	defer pool.Put(p)

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return tree, nil
}
