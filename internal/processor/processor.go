// Package processor runs the ordering rules over files and applies their fixes.
package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/lint"
	"github.com/evanrichards/tree-sorter-imports/internal/parser"
	"github.com/evanrichards/tree-sorter-imports/internal/resolve"
	"github.com/evanrichards/tree-sorter-imports/internal/rules"
	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
	"github.com/evanrichards/tree-sorter-imports/internal/syntax"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/afero"
)

// MaxPasses bounds the parse, check and fix loop. Fixes that overlap an
// accepted fix, such as a nested object inside a reordered one, land in a
// later pass.
const MaxPasses = 10

// ErrUnsupportedFile is returned for paths without a known grammar.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Result is the outcome of processing one file.
type Result struct {
	Path string `json:"path" yaml:"path"`
	// Diagnostics found in the original content.
	Diagnostics []lint.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	// Remaining diagnostics after fixing; equal to Diagnostics without fix.
	Remaining []lint.Diagnostic `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	Original  []byte            `json:"-" yaml:"-"`
	Content   []byte            `json:"-" yaml:"-"`
	Changed   bool              `json:"changed" yaml:"changed"`
	Passes    int               `json:"passes" yaml:"passes"`
	// Skipped is set when a directive disables the file.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// Resolutions holds every resolver answer the import groups relied on,
	// keyed by specifier.
	Resolutions map[string]bool `json:"-" yaml:"-"`
}

// Processor handles the complete check and fix workflow for source files
type Processor struct {
	opts    config.RuleOptions
	fs      afero.Fs
	modules *resolve.NodeModules
	logger  *slog.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithFs sets the filesystem files are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(p *Processor) { p.fs = fs }
}

// WithResolver sets the resolver used to tell installed packages apart.
func WithResolver(modules *resolve.NodeModules) Option {
	return func(p *Processor) { p.modules = modules }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor creates a processor. Invalid options are reported here so a
// bad configuration fails before any file is read.
func NewProcessor(opts config.RuleOptions, options ...Option) (*Processor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{opts: opts}
	for _, o := range options {
		o(p)
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.modules == nil {
		p.modules = resolve.NewNodeModules(p.fs)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p, nil
}

// Options returns the rule options the processor was created with.
func (p *Processor) Options() config.RuleOptions {
	return p.opts
}

// ProcessContent checks content as if it were stored at path and, when the
// fix option is set, applies fixes until none remain.
func (p *Processor) ProcessContent(ctx context.Context, path string, content []byte) (Result, error) {
	result := Result{Path: path, Original: content, Content: content}

	lang, ok := parser.LanguageFor(path)
	if !ok {
		return result, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}

	opts := p.opts
	resolver := &recordingResolver{
		next:    p.modules.For(filepath.Dir(path)),
		answers: make(map[string]bool),
	}

	current := content
	for pass := 0; ; pass++ {
		tree, err := parser.Parse(ctx, lang, current)
		if err != nil {
			return result, fmt.Errorf("%s: %w", path, err)
		}
		root := tree.RootNode()

		if pass == 0 {
			directive := parser.FindDirectives(root, current)
			if directive.Disable {
				tree.Close()
				p.logger.Debug("file disabled by directive", "path", path)
				result.Skipped = true
				return result, nil
			}
			opts = directive.Apply(opts)
		}

		diags, err := p.lint(root, path, current, opts, resolver)
		tree.Close()
		if err != nil {
			return result, err
		}

		result.Passes = pass + 1
		if pass == 0 {
			result.Diagnostics = diags
		}
		result.Remaining = diags

		if !opts.Fix || pass+1 >= MaxPasses {
			break
		}

		next, applied := lint.ApplyFixes(current, lint.Fixes(diags))
		if applied == 0 {
			break
		}
		p.logger.Debug("applied fixes", "path", path, "pass", pass+1, "count", applied)
		current = next
	}

	result.Content = current
	result.Changed = !bytes.Equal(current, content)
	result.Resolutions = resolver.answers
	return result, nil
}

// ResetResolver forgets memoized node_modules lookups so installs and
// removals since the last run are seen.
func (p *Processor) ResetResolver() {
	p.modules.Reset()
}

// recordingResolver remembers the answers it passes through.
type recordingResolver struct {
	next    interfaces.Resolver
	answers map[string]bool
}

func (r *recordingResolver) Resolves(specifier string) bool {
	ok := r.next.Resolves(specifier)
	r.answers[specifier] = ok
	return ok
}

func (p *Processor) lint(root *sitter.Node, path string, content []byte,
	opts config.RuleOptions, resolver interfaces.Resolver,
) ([]lint.Diagnostic, error) {
	if root.HasError() {
		p.logger.Debug("syntax errors in file", "path", path)
	}

	collector := lint.NewCollector()
	err := rules.Run(root, rules.Env{
		Source:   syntax.NewSource(path, content),
		Options:  opts,
		Resolver: resolver,
		Logger:   p.logger,
	}, collector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return collector.Diagnostics(), nil
}

// ProcessFile reads path, processes it and, when write is set and fixes
// changed the content, writes the result back.
func (p *Processor) ProcessFile(ctx context.Context, path string, write bool) (Result, error) {
	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("reading file: %w", err)
	}

	result, err := p.ProcessContent(ctx, path, content)
	if err != nil {
		return result, err
	}

	if result.Changed && write {
		info, err := p.fs.Stat(path)
		if err != nil {
			return result, fmt.Errorf("stat file: %w", err)
		}
		if err := afero.WriteFile(p.fs, path, result.Content, info.Mode().Perm()); err != nil {
			return result, fmt.Errorf("writing file: %w", err)
		}
		p.logger.Info("wrote fixes", "path", path, "passes", result.Passes)
	}

	return result, nil
}
