package imports

import (
	"regexp"
	"strings"

	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"
)

// Group is the category of an import declaration. Groups are ordered by
// value; the values are not contiguous.
type Group int

const (
	SideEffect  Group = 0
	External    Group = 1
	Internal    Group = 2
	StaticAsset Group = 3
)

var staticAssetPattern = regexp.MustCompile(`(?i)\.(svg|woff2?|tts|eot|bmp|jpe?g|gif|png|json|txt)$`)

// Label returns the human readable name used in diagnostics.
func (g Group) Label() string {
	switch g {
	case SideEffect:
		return "side effect imports"
	case External:
		return "external package imports"
	case Internal:
		return "internal imports"
	case StaticAsset:
		return "static asset imports"
	}
	return "imports"
}

// Classify assigns a declaration to its group. The first matching rule wins:
// no specifiers, static asset extension, resolvable bare package, otherwise internal.
func Classify(decl *Declaration, resolver interfaces.Resolver) Group {
	if decl.IsSideEffect() {
		return SideEffect
	}
	if staticAssetPattern.MatchString(decl.Source) {
		return StaticAsset
	}
	if !strings.HasPrefix(decl.Source, ".") && resolver != nil && resolver.Resolves(decl.Source) {
		return External
	}
	return Internal
}
