package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/evanrichards/tree-sorter-imports/internal/cache"
)

const unsortedSource = "const config = {\n  zebra: 1,\n  alpha: 2,\n};\n"
const sortedSource = "const config = {\n  alpha: 2,\n  zebra: 1,\n};\n"

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckReportsUnsortedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.ts", unsortedSource)

	out, _, err := execute(t, "--check", "--no-cache", path)
	require.ErrorIs(t, err, ErrNeedsSorting)
	assert.Contains(t, out, path+":3:3: Expected object key 'alpha' to come before 'zebra'. [sort-object-keys]")
}

func TestCheckPassesOnSortedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.ts", sortedSource)

	_, _, err := execute(t, "--check", "--no-cache", dir)
	require.NoError(t, err)
}

func TestFixPrintsDiffWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.ts", unsortedSource)

	out, _, err := execute(t, "--fix", "--no-cache", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- a/"+path)
	assert.Contains(t, out, "+++ b/"+path)
	assert.Contains(t, out, "@@")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unsortedSource, string(got))
}

func TestWriteFixesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/config.ts", unsortedSource)
	skipped := writeFile(t, dir, "node_modules/pkg/index.js", unsortedSource)
	excluded := writeFile(t, dir, "src/gen/api.generated.ts", unsortedSource)

	out, _, err := execute(t, "--write", "--no-cache", "--exclude", "**/*.generated.ts", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Sorted "+path)

	for file, expected := range map[string]string{
		path:     sortedSource,
		skipped:  unsortedSource,
		excluded: unsortedSource,
	} {
		got, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Equal(t, expected, string(got), file)
	}
}

func TestJSONOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.js", "import b from './b'\nimport a from './a'\n")

	out, _, err := execute(t, "--format", "json", "--no-cache", path)
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Diagnostics, 1)
	assert.Equal(t, "sort-imports", doc.Files[0].Diagnostics[0].RuleID)
	assert.Equal(t, "declarationOrder", doc.Files[0].Diagnostics[0].MessageID)
	assert.Equal(t, 1, doc.Summary.FilesNeedSort)
}

func TestYAMLOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.ts", "const { b, a } = obj;\n")

	out, _, err := execute(t, "--format", "yaml", "--no-cache", path)
	require.NoError(t, err)

	var doc document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Diagnostics, 1)
	assert.Equal(t, "sort-destructuring-keys", doc.Files[0].Diagnostics[0].RuleID)
}

func TestDeclarationSortFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.ts", "import a from './beta'\nimport b from './alpha'\n")

	_, _, err := execute(t, "--check", "--no-cache", "--declaration-sort", "import", path)
	require.NoError(t, err)

	_, _, err = execute(t, "--check", "--no-cache", "--declaration-sort", "source", path)
	require.ErrorIs(t, err, ErrNeedsSorting)

	_, _, err = execute(t, "--no-cache", "--declaration-sort", "length", path)
	require.Error(t, err)
}

func TestDisableRuleFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.ts", unsortedSource)

	_, _, err := execute(t, "--check", "--no-cache", "--disable-rule", "sort-object-keys", path)
	require.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.ts", "import a from './beta'\nimport b from './alpha'\n")
	cfg := writeFile(t, dir, "settings.yaml", "rules:\n  declaration_sort: source\n")

	_, _, err := execute(t, "--check", "--no-cache", "--config", cfg, path)
	require.ErrorIs(t, err, ErrNeedsSorting)
}

func TestInvalidArguments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# notes")

	_, _, err := execute(t, "--no-cache", path)
	require.Error(t, err)

	_, _, err = execute(t, "--no-cache", "--format", "xml", dir)
	require.Error(t, err)

	_, _, err = execute(t, "--no-cache", filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestCacheSkipsCleanFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "src/clean.ts", sortedSource)
	writeFile(t, dir, "src/dirty.ts", unsortedSource)

	_, _, err := execute(t, "--check", "src")
	require.ErrorIs(t, err, ErrNeedsSorting)
	require.FileExists(t, filepath.Join(dir, cache.FileName))

	out, _, err := execute(t, "--check", "--verbose", "src")
	require.ErrorIs(t, err, ErrNeedsSorting)
	assert.Contains(t, out, "Cached:         1")
}

func TestRulesCommand(t *testing.T) {
	out, _, err := execute(t, "rules")
	require.NoError(t, err)

	for _, id := range []string{"sort-imports", "sort-object-keys", "sort-destructuring-keys"} {
		assert.Contains(t, out, id)
	}
	assert.True(t, strings.Contains(strings.ToUpper(out), "DESCRIPTION"))
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.ts", sortedSource)
	logPath := filepath.Join(dir, "run.log")

	_, _, err := execute(t, "--no-cache", "--verbose", "--log-file", logPath, path)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting run")
}

func TestPathArgumentsAlongsideSubcommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "src/config.ts", unsortedSource)
	writeFile(t, dir, "rules/config.ts", sortedSource)

	out, _, err := execute(t, "--check", "--no-cache", "src")
	require.ErrorIs(t, err, ErrNeedsSorting)
	assert.Contains(t, out, "[sort-object-keys]")

	_, _, err = execute(t, "--check", "--no-cache", "src/config.ts", "rules/config.ts")
	require.ErrorIs(t, err, ErrNeedsSorting)

	out, _, err = execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "sort-imports")
}

func TestCacheNoticesInstalledPackages(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "src/app.ts", "import a from './a';\nimport React from 'react';\n")

	_, _, err := execute(t, "--check", "src")
	require.NoError(t, err)

	out, _, err := execute(t, "--check", "--verbose", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "Cached:         1")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "react"), 0o755))

	out, _, err = execute(t, "--check", "src")
	require.ErrorIs(t, err, ErrNeedsSorting)
	assert.Contains(t, out, "Expected 'react' (external package imports) to come before './a' (internal imports).")
}
