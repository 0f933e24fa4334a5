package config

import (
	"errors"
	"fmt"
	"slices"
)

// SortMode selects how import declarations are keyed when they share a group.
type SortMode string

const (
	// SortByImport keys a declaration by the names it binds.
	SortByImport SortMode = "import"
	// SortBySource keys a declaration by its module path.
	SortBySource SortMode = "source"

	// DefaultSortMode is used when no declarationSort option is given.
	DefaultSortMode = SortByImport
)

// ErrInvalidOption is wrapped by every configuration error.
var ErrInvalidOption = errors.New("invalid option")

// Error reports an option value the rules cannot honor.
type Error struct {
	Option string
	Value  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration: unsupported %s %q", e.Option, e.Value)
}

func (e *Error) Unwrap() error {
	return ErrInvalidOption
}

// RuleOptions are the options consumed by the sorting rules.
type RuleOptions struct {
	DeclarationSort SortMode `mapstructure:"declaration_sort" yaml:"declaration_sort"`
	Fix             bool     `mapstructure:"fix" yaml:"fix"`
	DisabledRules   []string `mapstructure:"disabled_rules" yaml:"disabled_rules"`
}

// DefaultRuleOptions returns the options used when nothing is configured.
func DefaultRuleOptions() RuleOptions {
	return RuleOptions{
		DeclarationSort: DefaultSortMode,
	}
}

// ParseSortMode converts a user supplied value into a SortMode.
// An empty value selects DefaultSortMode.
func ParseSortMode(value string) (SortMode, error) {
	switch SortMode(value) {
	case "":
		return DefaultSortMode, nil
	case SortByImport, SortBySource:
		return SortMode(value), nil
	}
	return "", &Error{Option: "declarationSort", Value: value}
}

// Validate checks the options for values the rules cannot honor.
func (o RuleOptions) Validate() error {
	if _, err := ParseSortMode(string(o.DeclarationSort)); err != nil {
		return err
	}
	return nil
}

// RuleEnabled reports whether the rule with the given ID should run.
func (o RuleOptions) RuleEnabled(id string) bool {
	return !slices.Contains(o.DisabledRules, id)
}
