package config

import (
	"regexp"
	"strings"
)

// DirectivePrefix marks an inline configuration comment.
const DirectivePrefix = "tree-sorter-imports:"

var directiveRegex = regexp.MustCompile(`(?s)tree-sorter-imports:\s*(.*)`)

// Directive contains configuration options from an inline comment.
type Directive struct {
	Disable         bool
	DisabledRules   []string
	DeclarationSort string
}

// ParseDirective extracts configuration from a directive comment such as
//
//	/* tree-sorter-imports: declaration-sort=source disable=sort-object-keys */
//
// Comments without the prefix yield an empty Directive.
func ParseDirective(commentText []byte) Directive {
	var d Directive

	match := directiveRegex.FindSubmatch(commentText)
	if match == nil {
		return d
	}

	body := string(match[1])
	if idx := strings.Index(body, "*/"); idx >= 0 {
		body = body[:idx]
	}

	// Remove leading asterisks from each line (for multiline comments)
	lines := strings.Split(body, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	for _, opt := range strings.Fields(strings.Join(cleaned, " ")) {
		switch {
		case opt == "disable":
			d.Disable = true
		case strings.HasPrefix(opt, "disable="):
			for _, id := range strings.Split(strings.TrimPrefix(opt, "disable="), ",") {
				if id = strings.Trim(id, "\"'"); id != "" {
					d.DisabledRules = append(d.DisabledRules, id)
				}
			}
		case strings.HasPrefix(opt, "declaration-sort="):
			d.DeclarationSort = strings.Trim(strings.TrimPrefix(opt, "declaration-sort="), "\"'")
		}
	}

	return d
}

// Apply layers the directive over opts.
func (d Directive) Apply(opts RuleOptions) RuleOptions {
	if d.DeclarationSort != "" {
		opts.DeclarationSort = SortMode(d.DeclarationSort)
	}
	if len(d.DisabledRules) > 0 {
		opts.DisabledRules = append(append([]string(nil), opts.DisabledRules...), d.DisabledRules...)
	}
	return opts
}
