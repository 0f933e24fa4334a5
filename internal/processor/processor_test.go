package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
	"github.com/evanrichards/tree-sorter-imports/internal/resolve"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectFile = "/project/src/app.ts"

func newTestProcessor(t *testing.T, opts config.RuleOptions) (*Processor, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project/node_modules/react", 0o755))
	require.NoError(t, fs.MkdirAll("/project/node_modules/@scope/ui", 0o755))
	require.NoError(t, fs.MkdirAll("/project/src", 0o755))

	p, err := NewProcessor(opts, WithFs(fs), WithResolver(resolve.NewNodeModules(fs)))
	require.NoError(t, err)
	return p, fs
}

func fixOptions() config.RuleOptions {
	opts := config.DefaultRuleOptions()
	opts.Fix = true
	return opts
}

func TestProcessContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mode     config.SortMode
		expected string
		messages []string
	}{
		{
			name: "groups_side_effect_external_static_asset",
			input: `import './side-effect'
import SomeImage from '../images.png'
import React from 'react'
`,
			expected: `import './side-effect'

import React from 'react'

import SomeImage from '../images.png'
`,
			messages: []string{
				"Expected 'react' (external package imports) to come before '../images.png' (static asset imports).",
			},
		},
		{
			name: "group_precedence_beats_names",
			input: `import a from './a'
import z from 'node:zlib'
`,
			expected: `import z from 'node:zlib'

import a from './a'
`,
			messages: []string{
				"Expected 'node:zlib' (external package imports) to come before './a' (internal imports).",
			},
		},
		{
			name: "comment_travels_with_declaration",
			input: `/* c1 */ import B from 'b'
import A from 'a'
`,
			expected: `import A from 'a'
/* c1 */ import B from 'b'
`,
			messages: []string{"Expected import 'A' to come before 'B'."},
		},
		{
			name: "trailing_comment_stays_on_its_line",
			input: `import b from './b'; // bee
import a from './a'; // ay
`,
			expected: `import a from './a'; // ay
import b from './b'; // bee
`,
			messages: []string{"Expected import 'a' to come before 'b'."},
		},
		{
			name: "named_specifiers_sorted_inside_list_fix",
			input: `import { d, c } from './b'
import { b, a } from './a'
`,
			expected: `import { a, b } from './a'
import { c, d } from './b'
`,
			messages: []string{
				"Expected member 'c' to come before 'd'.",
				"Expected import 'a' to come before 'c'.",
				"Expected member 'a' to come before 'b'.",
			},
		},
		{
			name:     "named_specifiers_key_on_imported_name",
			input:    "import { zed as a, alpha as z } from './x'\n",
			expected: "import { alpha as z, zed as a } from './x'\n",
			messages: []string{"Expected member 'alpha' to come before 'zed'."},
		},
		{
			name: "source_mode_orders_by_path",
			mode: config.SortBySource,
			input: `import a from './beta'
import b from './alpha'
`,
			expected: `import b from './alpha'
import a from './beta'
`,
			messages: []string{"Expected import './alpha' to come before './beta'."},
		},
		{
			name:     "object_keys_case_insensitive",
			input:    "const o = { B: 1, a: 2 };\n",
			expected: "const o = { a: 2, B: 1 };\n",
			messages: []string{"Expected object key 'a' to come before 'B'."},
		},
		{
			name:     "spread_barrier",
			input:    "const o = {...x, b, a, ...y, d, c};\n",
			expected: "const o = {...x, a, b, ...y, c, d};\n",
			messages: []string{
				"Expected object key 'a' to come before 'b'.",
				"Expected object key 'c' to come before 'd'.",
			},
		},
		{
			name:     "rest_stays_last",
			input:    "const {b, a, ...rest} = obj;\n",
			expected: "const {a, b, ...rest} = obj;\n",
			messages: []string{"Expected destructured key 'a' to come before 'b'."},
		},
		{
			name:     "rest_moved_last",
			input:    "const {...rest, a} = obj;\n",
			expected: "const {a, ...rest} = obj;\n",
			messages: []string{"Rest element 'rest' must be the last property."},
		},
		{
			name:     "nested_objects_converge",
			input:    "const o = {b: {d: 1, c: 2}, a: 1};\n",
			expected: "const o = {a: 1, b: {c: 2, d: 1}};\n",
			messages: []string{
				"Expected object key 'c' to come before 'd'.",
				"Expected object key 'a' to come before 'b'.",
			},
		},
		{
			name: "multiline_object_keeps_comments",
			input: `const o = {
  // zed
  z: 1,
  a: 2,
};
`,
			expected: `const o = {
  a: 2,
  // zed
  z: 1,
};
`,
			messages: []string{"Expected object key 'a' to come before 'z'."},
		},
		{
			name:     "sorted_input_untouched",
			input:    "import { a, b } from './a'\nconst o = { a, b };\nconst { c, d } = o;\n",
			expected: "import { a, b } from './a'\nconst o = { a, b };\nconst { c, d } = o;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fixOptions()
			if tt.mode != "" {
				opts.DeclarationSort = tt.mode
			}
			p, _ := newTestProcessor(t, opts)

			result, err := p.ProcessContent(context.Background(), projectFile, []byte(tt.input))
			require.NoError(t, err)

			var messages []string
			for _, d := range result.Diagnostics {
				messages = append(messages, d.Message)
			}
			assert.Equal(t, tt.messages, messages)
			assert.Equal(t, tt.expected, string(result.Content))
			assert.Equal(t, tt.input != tt.expected, result.Changed)
			assert.Empty(t, result.Remaining)

			// A second run over the fixed output finds nothing to do
			again, err := p.ProcessContent(context.Background(), projectFile, result.Content)
			require.NoError(t, err)
			assert.Empty(t, again.Diagnostics)
			assert.False(t, again.Changed)
		})
	}
}

func TestProcessContentCheckOnly(t *testing.T) {
	p, _ := newTestProcessor(t, config.DefaultRuleOptions())

	input := "const o = { b: 1, a: 2 };\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Nil(t, result.Diagnostics[0].Fix)
	assert.False(t, result.Changed)
	assert.Equal(t, input, string(result.Content))
	assert.Equal(t, 1, result.Passes)
}

func TestInterleavedImportsAreReportedButNotFixed(t *testing.T) {
	p, _ := newTestProcessor(t, fixOptions())

	input := "import b from './b'\nconst x = 1\nimport a from './a'\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "declarationOrder", result.Diagnostics[0].MessageID)
	assert.Nil(t, result.Diagnostics[0].Fix)
	assert.False(t, result.Changed)
	assert.Len(t, result.Remaining, 1)
}

func TestInterleavedImportsStillSortMembers(t *testing.T) {
	p, _ := newTestProcessor(t, fixOptions())

	input := "import { b, a } from './b'\nconst x = 1\nimport c from './a'\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)

	assert.Equal(t, "import { a, b } from './b'\nconst x = 1\nimport c from './a'\n", string(result.Content))
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		skipped    bool
		messageIDs []string
	}{
		{
			name:    "disable_file",
			input:   "// tree-sorter-imports: disable\nconst o = { b: 1, a: 2 };\n",
			skipped: true,
		},
		{
			name:       "disable_one_rule",
			input:      "/* tree-sorter-imports: disable=sort-object-keys */\nconst o = { b: 1, a: 2 };\nconst { d, c } = o;\n",
			messageIDs: []string{"keyOrder"},
		},
		{
			name:  "declaration_sort_override",
			input: "/* tree-sorter-imports: declaration-sort=source */\nimport b from './alpha'\nimport a from './beta'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProcessor(t, config.DefaultRuleOptions())

			result, err := p.ProcessContent(context.Background(), projectFile, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.skipped, result.Skipped)

			var ids []string
			for _, d := range result.Diagnostics {
				ids = append(ids, d.MessageID)
			}
			assert.Equal(t, tt.messageIDs, ids)
		})
	}
}

func TestConfigurationErrors(t *testing.T) {
	opts := config.DefaultRuleOptions()
	opts.DeclarationSort = "length"

	_, err := NewProcessor(opts)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "length", cfgErr.Value)

	p, _ := newTestProcessor(t, config.DefaultRuleOptions())
	_, err = p.ProcessContent(context.Background(), projectFile,
		[]byte("/* tree-sorter-imports: declaration-sort=length */\nimport a from './a'\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidOption))
}

func TestUnsupportedFile(t *testing.T) {
	p, _ := newTestProcessor(t, config.DefaultRuleOptions())

	_, err := p.ProcessContent(context.Background(), "/project/README.md", []byte("# hi"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestScopedPackagesAreExternal(t *testing.T) {
	p, _ := newTestProcessor(t, config.DefaultRuleOptions())

	input := "import a from './a'\nimport { Button } from '@scope/ui/button'\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "groupOrder", result.Diagnostics[0].MessageID)
	assert.Equal(t, "external package imports", result.Diagnostics[0].Data["currentGroup"])
}

func TestProcessFile(t *testing.T) {
	tests := []struct {
		name     string
		write    bool
		input    string
		expected string
	}{
		{
			name:     "write_fixes",
			write:    true,
			input:    "const config = {\n  zebra: \"value1\",\n  alpha: \"value2\",\n  beta: \"value3\",\n};\n",
			expected: "const config = {\n  alpha: \"value2\",\n  beta: \"value3\",\n  zebra: \"value1\",\n};\n",
		},
		{
			name:     "dry_run_leaves_file",
			write:    false,
			input:    "const config = {\n  zebra: \"value1\",\n  alpha: \"value2\",\n};\n",
			expected: "const config = {\n  zebra: \"value1\",\n  alpha: \"value2\",\n};\n",
		},
		{
			name:     "already_sorted_no_write",
			write:    true,
			input:    "const config = {\n  alpha: \"value2\",\n  zebra: \"value1\",\n};\n",
			expected: "const config = {\n  alpha: \"value2\",\n  zebra: \"value1\",\n};\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fs := newTestProcessor(t, fixOptions())
			require.NoError(t, afero.WriteFile(fs, "/project/src/config.js", []byte(tt.input), 0o644))

			_, err := p.ProcessFile(context.Background(), "/project/src/config.js", tt.write)
			require.NoError(t, err)

			got, err := afero.ReadFile(fs, "/project/src/config.js")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestProcessFileMissing(t *testing.T) {
	p, _ := newTestProcessor(t, config.DefaultRuleOptions())

	_, err := p.ProcessFile(context.Background(), "/project/src/missing.ts", false)
	require.Error(t, err)
}

func TestResolutionsAreRecorded(t *testing.T) {
	p, _ := newTestProcessor(t, config.DefaultRuleOptions())

	input := "import './setup';\nimport React from 'react';\nimport vue from 'vue';\nimport a from './a';\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"react": true, "vue": false}, result.Resolutions)
}

func TestResetResolverSeesInstalledPackages(t *testing.T) {
	p, fs := newTestProcessor(t, config.DefaultRuleOptions())

	input := "import a from './a';\nimport vue from 'vue';\n"
	result, err := p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)

	require.NoError(t, fs.MkdirAll("/project/node_modules/vue", 0o755))

	result, err = p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics, "lookups stay memoized until reset")

	p.ResetResolver()
	result, err = p.ProcessContent(context.Background(), projectFile, []byte(input))
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "groupOrder", result.Diagnostics[0].MessageID)
}
