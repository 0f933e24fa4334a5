package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/evanrichards/tree-sorter-imports/internal/lint"
)

// Format selects how results are printed.
type Format string

const (
	formatText Format = "text"
	formatJSON Format = "json"
	formatYAML Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(value string) (Format, error) {
	switch f := Format(value); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	}
	return "", fmt.Errorf("unsupported output format %q (supported: text, json, yaml)", value)
}

var (
	pathColor    = color.New(color.FgCyan, color.Bold)
	ruleColor    = color.New(color.FgHiBlack)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
)

type stats struct {
	TotalFiles       int `json:"totalFiles" yaml:"total_files"`
	FilesNeedSort    int `json:"filesNeedSort" yaml:"files_need_sort"`
	FilesNoChanges   int `json:"filesNoChanges" yaml:"files_no_changes"`
	FilesChanged     int `json:"filesChanged" yaml:"files_changed"`
	ErrorFiles       int `json:"errorFiles" yaml:"error_files"`
	CachedFiles      int `json:"cachedFiles" yaml:"cached_files"`
	TotalDiagnostics int `json:"totalDiagnostics" yaml:"total_diagnostics"`
}

type fileReport struct {
	Path        string            `json:"path" yaml:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Changed     bool              `json:"changed" yaml:"changed"`
	Written     bool              `json:"written,omitempty" yaml:"written,omitempty"`
	Diff        string            `json:"diff,omitempty" yaml:"diff,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
}

type document struct {
	Files   []fileReport `json:"files" yaml:"files"`
	Summary stats        `json:"summary" yaml:"summary"`
}

type report struct {
	settings Settings
	out      io.Writer
	errOut   io.Writer
}

func newReport(settings Settings, out, errOut io.Writer) *report {
	return &report{settings: settings, out: out, errOut: errOut}
}

// Write prints results and returns whether any file needed sorting, along
// with the first processing error.
func (r *report) Write(results []fileResult) (bool, error) {
	doc := document{Files: make([]fileReport, 0, len(results))}
	doc.Summary.TotalFiles = len(results)

	var firstErr error
	for _, res := range results {
		fr := fileReport{
			Path:        res.Path,
			Diagnostics: res.Diagnostics,
			Changed:     res.Changed,
			Written:     res.Changed && r.settings.Write,
		}
		if fr.Diagnostics == nil {
			fr.Diagnostics = []lint.Diagnostic{}
		}

		switch {
		case res.Err != nil:
			fr.Error = res.Err.Error()
			doc.Summary.ErrorFiles++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", res.Path, res.Err)
			}
		case len(res.Diagnostics) > 0:
			doc.Summary.FilesNeedSort++
		default:
			doc.Summary.FilesNoChanges++
		}
		if res.Cached {
			doc.Summary.CachedFiles++
		}
		if res.Changed {
			doc.Summary.FilesChanged++
			if !r.settings.Write {
				fr.Diff = unifiedDiff(res.Path, res.Original, res.Content)
			}
		}
		doc.Summary.TotalDiagnostics += len(res.Diagnostics)

		doc.Files = append(doc.Files, fr)
	}

	var err error
	switch r.settings.Format {
	case formatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if closeErr := enc.Close(); err == nil {
			err = closeErr
		}
	default:
		r.writeText(doc)
	}
	if err != nil {
		return false, fmt.Errorf("writing report: %w", err)
	}

	return doc.Summary.FilesNeedSort > 0, firstErr
}

func (r *report) writeText(doc document) {
	for _, f := range doc.Files {
		if f.Error != "" {
			fmt.Fprintf(r.errOut, "%s %s: %s\n", errorColor.Sprint("Error:"), f.Path, f.Error)
			continue
		}

		for _, d := range f.Diagnostics {
			fmt.Fprintf(r.out, "%s:%d:%d: %s %s\n",
				pathColor.Sprint(f.Path), d.Start.Line, d.Start.Column,
				d.Message, ruleColor.Sprintf("[%s]", d.RuleID))
		}

		switch {
		case f.Written:
			fmt.Fprintf(r.out, "%s %s\n", okColor.Sprint("✓ Sorted"), f.Path)
		case f.Diff != "":
			writeColoredDiff(r.out, f.Diff)
		case len(f.Diagnostics) == 0 && r.settings.Verbose:
			fmt.Fprintf(r.out, "%s %s\n", okColor.Sprint("✓ No changes needed"), f.Path)
		}
	}

	s := doc.Summary
	if !r.settings.Verbose && s.TotalFiles <= 1 {
		return
	}

	fmt.Fprintln(r.out, "\n─────────────────────────────────────")
	fmt.Fprintf(r.out, "Total files:    %d\n", s.TotalFiles)
	switch {
	case r.settings.Write:
		fmt.Fprintf(r.out, "Sorted:         %d\n", s.FilesChanged)
	case r.settings.Fix:
		fmt.Fprintf(r.out, "Would sort:     %d\n", s.FilesChanged)
	}
	fmt.Fprintf(r.out, "No changes:     %d\n", s.FilesNoChanges)
	if s.FilesNeedSort > 0 {
		fmt.Fprintf(r.out, "Need sorting:   %s\n", warnColor.Sprintf("%d", s.FilesNeedSort))
	}
	if s.CachedFiles > 0 {
		fmt.Fprintf(r.out, "Cached:         %d\n", s.CachedFiles)
	}
	if s.ErrorFiles > 0 {
		fmt.Fprintf(r.out, "Errors:         %s\n", errorColor.Sprintf("%d", s.ErrorFiles))
	}
}

func unifiedDiff(path string, before, after []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}

func writeColoredDiff(w io.Writer, diff string) {
	for _, line := range difflib.SplitLines(diff) {
		switch {
		case len(line) >= 3 && (line[:3] == "+++" || line[:3] == "---"):
			fmt.Fprint(w, line)
		case len(line) > 0 && line[0] == '+':
			fmt.Fprint(w, addedColor.Sprint(line))
		case len(line) > 0 && line[0] == '-':
			fmt.Fprint(w, removedColor.Sprint(line))
		default:
			fmt.Fprint(w, line)
		}
	}
}
