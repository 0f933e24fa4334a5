// Package app wires the command line interface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/evanrichards/tree-sorter-imports/internal/cache"
	"github.com/evanrichards/tree-sorter-imports/internal/fileutil"
	"github.com/evanrichards/tree-sorter-imports/internal/parser"
	"github.com/evanrichards/tree-sorter-imports/internal/processor"
	"github.com/evanrichards/tree-sorter-imports/internal/resolve"
	"github.com/evanrichards/tree-sorter-imports/internal/watch"
)

// ErrNeedsSorting is returned in check mode when any file is out of order.
var ErrNeedsSorting = errors.New("files need sorting")

const rootLongDescription = `tree-sorter-imports checks and fixes the order of import declarations,
object literal keys and destructuring keys in JavaScript and TypeScript files.

Without --write fixes are shown as a unified diff and nothing is modified.
Paths default to the current directory; directories are searched recursively,
skipping hidden directories and node_modules.`

// Settings are the resolved flags of one run.
type Settings struct {
	Check      bool
	Fix        bool
	Write      bool
	Watch      bool
	NoCache    bool
	Verbose    bool
	Workers    int
	Format     Format
	Extensions []string
	Excludes   []string
}

type runner struct {
	v        *viper.Viper
	fs       afero.Fs
	settings Settings
	logger   *slog.Logger
	modules  *resolve.NodeModules
	out      io.Writer
	errOut   io.Writer

	configFile string
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	r := &runner{v: newConfig(), fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:           "tree-sorter-imports [flags] [path...]",
		Short:         "Sort imports, object keys and destructuring keys",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return readConfig(r.v, r.configFile)
		},
		RunE: r.run,
	}

	flags := cmd.Flags()
	flags.BoolVar(&r.settings.Check, checkFlagName, false, "exit with status 1 when files are not sorted")
	flags.BoolVar(&r.settings.Fix, fixFlagName, false, "compute fixes (implied by --write)")
	flags.BoolVar(&r.settings.Write, writeFlagName, false, "write fixes to files (default: dry-run diff)")
	flags.BoolVar(&r.settings.Watch, watchFlagName, false, "keep running and re-check files when they change")
	flags.BoolVarP(&r.settings.Verbose, verboseFlagName, "v", false, "show every file and debug logging")

	flags.String(declarationSortFlagName, r.v.GetString(declarationSortKey), "key for import declarations: import or source")
	bindFlagToConfig(r.v, flags.Lookup(declarationSortFlagName), declarationSortKey)

	flags.StringSlice(disableRuleFlagName, nil, "disable a rule by ID (can be repeated)")
	bindFlagToConfig(r.v, flags.Lookup(disableRuleFlagName), disabledRulesKey)

	flags.StringSlice(extensionsFlagName, r.v.GetStringSlice(extensionsKey), "file extensions to process")
	bindFlagToConfig(r.v, flags.Lookup(extensionsFlagName), extensionsKey)

	flags.StringArrayP(excludeFlagName, "x", nil, "exclude files matching a ** glob (can be repeated)")
	bindFlagToConfig(r.v, flags.Lookup(excludeFlagName), excludeKey)

	flags.Int(workersFlagName, r.v.GetInt(workersKey), "number of parallel workers (0 = number of CPUs)")
	bindFlagToConfig(r.v, flags.Lookup(workersFlagName), workersKey)

	flags.Bool(noCacheFlagName, false, "ignore and do not update the result cache")
	bindFlagToConfig(r.v, flags.Lookup(noCacheFlagName), noCacheKey)

	flags.StringP(formatFlagName, "f", r.v.GetString(formatKey), "output format: text, json or yaml")
	bindFlagToConfig(r.v, flags.Lookup(formatFlagName), formatKey)

	flags.String(logFileFlagName, "", "write debug logs to this file")
	bindFlagToConfig(r.v, flags.Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().StringVar(&r.configFile, configFlagName, "", "config file (default ./"+configFileName+")")

	cmd.AddCommand(newRulesCommand())
	return cmd
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	r.out = cmd.OutOrStdout()
	r.errOut = cmd.ErrOrStderr()

	if err := r.resolveSettings(); err != nil {
		return err
	}

	logger, closer := configureLogger(r.v, r.settings.Verbose)
	defer closer.Close()
	r.logger = logger

	opts, err := ruleOptions(r.v, r.settings.Fix || r.settings.Write)
	if err != nil {
		return err
	}

	r.modules = resolve.NewNodeModules(r.fs)
	proc, err := processor.NewProcessor(opts,
		processor.WithFs(r.fs),
		processor.WithResolver(r.modules),
		processor.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := r.collectFiles(args)
	if err != nil {
		return err
	}
	logger.Info("starting run", "files", len(files), "workers", r.settings.Workers, "fix", opts.Fix)

	var resultCache *cache.Cache
	if !r.settings.NoCache && !opts.Fix {
		if resultCache, err = cache.Open(r.fs, "."); err != nil {
			logger.Warn("cache unavailable", "error", err)
			resultCache = nil
		}
	}

	needsSorting, err := r.processFiles(cmd.Context(), proc, resultCache, files)
	if saveErr := resultCache.Save(); saveErr != nil {
		logger.Warn("failed to save cache", "error", saveErr)
	}
	if err != nil {
		return err
	}

	if r.settings.Watch {
		return r.watch(cmd.Context(), proc, args)
	}

	if r.settings.Check && needsSorting {
		return ErrNeedsSorting
	}
	return nil
}

func (r *runner) resolveSettings() error {
	s := &r.settings

	s.Workers = r.v.GetInt(workersKey)
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	s.NoCache = r.v.GetBool(noCacheKey)

	format, err := ParseFormat(r.v.GetString(formatKey))
	if err != nil {
		return err
	}
	s.Format = format

	s.Extensions = normalizeExtensions(r.v.GetStringSlice(extensionsKey))
	for _, ext := range s.Extensions {
		if _, ok := parser.LanguageFor("file" + ext); !ok {
			return fmt.Errorf("unsupported extension %q (supported: %s)", ext, strings.Join(parser.Extensions(), ", "))
		}
	}

	s.Excludes = r.v.GetStringSlice(excludeKey)
	return fileutil.ValidateExcludes(s.Excludes)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func (r *runner) collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := r.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fileutil.FindFiles(r.fs, path, r.settings.Extensions, r.settings.Excludes)
			if err != nil {
				return nil, fmt.Errorf("error finding files: %w", err)
			}
			files = append(files, found...)
			continue
		}

		if !fileutil.HasValidExtension(path, r.settings.Extensions) {
			return nil, fmt.Errorf("file %s does not have a valid extension", path)
		}
		files = append(files, path)
	}

	return files, nil
}

// processFiles runs the processor over files in parallel and prints the
// report. It returns whether any file had diagnostics left.
func (r *runner) processFiles(ctx context.Context, proc *processor.Processor, resultCache *cache.Cache, files []string) (bool, error) {
	optsHash, err := cache.OptionsHash(proc.Options())
	if err != nil {
		return false, err
	}

	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.settings.Workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processOne(gctx, proc, resultCache, optsHash, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	rep := newReport(r.settings, r.out, r.errOut)
	return rep.Write(results)
}

type fileResult struct {
	processor.Result
	Cached bool
	Err    error
}

func (r *runner) processOne(ctx context.Context, proc *processor.Processor, resultCache *cache.Cache, optsHash, file string) fileResult {
	content, err := afero.ReadFile(r.fs, file)
	if err != nil {
		return fileResult{Result: processor.Result{Path: file}, Err: fmt.Errorf("reading file: %w", err)}
	}

	contentHash := cache.Hash(content)
	resolver := r.modules.For(filepath.Dir(file))
	if resultCache.IsClean(file, contentHash, optsHash, resolver.Resolves) {
		r.logger.Debug("cache hit", "path", file)
		return fileResult{Result: processor.Result{Path: file, Original: content, Content: content}, Cached: true}
	}

	var result processor.Result
	if r.settings.Write {
		result, err = proc.ProcessFile(ctx, file, true)
	} else {
		result, err = proc.ProcessContent(ctx, file, content)
	}
	if err != nil {
		r.logger.Error("processing failed", "path", file, "error", err)
		resultCache.Forget(file)
		return fileResult{Result: result, Err: err}
	}

	resultCache.Record(file, cache.Entry{
		ContentHash: contentHash,
		OptionsHash: optsHash,
		Clean:       len(result.Diagnostics) == 0,
		Resolutions: result.Resolutions,
	})
	return fileResult{Result: result}
}

func (r *runner) watch(ctx context.Context, proc *processor.Processor, paths []string) error {
	var roots []string
	for _, path := range paths {
		info, err := r.fs.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			roots = append(roots, path)
		} else {
			roots = append(roots, filepath.Dir(path))
		}
	}

	w, err := watch.New(watch.Config{
		Roots: roots,
		Match: func(path string) bool {
			if !fileutil.HasValidExtension(path, r.settings.Extensions) {
				return false
			}
			for _, root := range roots {
				if fileutil.Excluded(root, path, r.settings.Excludes) {
					return false
				}
			}
			return true
		},
		Logger: r.logger,
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	fmt.Fprintln(r.errOut, "Watching for changes, press Ctrl+C to stop")

	for batch := range w.Batches() {
		proc.ResetResolver()
		if _, err := r.processFiles(ctx, proc, nil, batch); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
	return nil
}
