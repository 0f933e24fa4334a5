// Package lint holds diagnostics, fixes and the sinks that collect them.
package lint

import (
	"regexp"
	"sort"

	"github.com/evanrichards/tree-sorter-imports/internal/syntax"
)

// Fix replaces the byte range [Start, End) with Text.
type Fix struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`
}

// Diagnostic is a single ordering violation.
type Diagnostic struct {
	Path      string            `json:"path" yaml:"path"`
	RuleID    string            `json:"rule" yaml:"rule"`
	MessageID string            `json:"messageId" yaml:"message_id"`
	Message   string            `json:"message" yaml:"message"`
	Data      map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
	Start     syntax.Position   `json:"start" yaml:"start"`
	End       syntax.Position   `json:"end" yaml:"end"`
	Fix       *Fix              `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// HasFix reports whether the diagnostic carries a fix.
func (d *Diagnostic) HasFix() bool {
	return d.Fix != nil
}

var placeholderRegex = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Render substitutes {{name}} placeholders in template with values from
// data. Unknown placeholders are left untouched.
func Render(template string, data map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholderRegex.FindStringSubmatch(m)[1]
		if v, ok := data[name]; ok {
			return v
		}
		return m
	})
}

// Reporter receives diagnostics from the rules.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector is a Reporter that keeps every diagnostic.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report stores d.
func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns the collected diagnostics ordered by position.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Line != out[j].Start.Line {
			return out[i].Start.Line < out[j].Start.Line
		}
		return out[i].Start.Column < out[j].Start.Column
	})
	return out
}

// Fixes returns the fixes carried by diags.
func Fixes(diags []Diagnostic) []Fix {
	var fixes []Fix
	for _, d := range diags {
		if d.Fix != nil {
			fixes = append(fixes, *d.Fix)
		}
	}
	return fixes
}
