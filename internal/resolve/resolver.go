// Package resolve answers whether an import specifier names an installed
// package.
package resolve

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanrichards/tree-sorter-imports/internal/sorting/interfaces"

	"github.com/spf13/afero"
)

// NodeModules resolves bare specifiers against node_modules directories
// found by walking up from a file's directory.
type NodeModules struct {
	fs    afero.Fs
	cache sync.Map // dir + "\x00" + package -> bool
}

// NewNodeModules creates a resolver on fs. A nil fs uses the OS filesystem.
func NewNodeModules(fs afero.Fs) *NodeModules {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &NodeModules{fs: fs}
}

// For returns a Resolver bound to the directory of the file being checked.
func (r *NodeModules) For(dir string) interfaces.Resolver {
	return boundResolver{modules: r, dir: filepath.Clean(dir)}
}

// Resolves reports whether specifier is a built-in module or an installed
// package visible from dir.
func (r *NodeModules) Resolves(dir, specifier string) bool {
	if IsBuiltin(specifier) {
		return true
	}

	pkg := PackageName(specifier)
	if pkg == "" {
		return false
	}

	key := dir + "\x00" + pkg
	if cached, ok := r.cache.Load(key); ok {
		return cached.(bool)
	}

	found := r.lookup(dir, pkg)
	r.cache.Store(key, found)
	return found
}

func (r *NodeModules) lookup(dir, pkg string) bool {
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
		if ok, err := afero.DirExists(r.fs, candidate); err == nil && ok {
			return true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Reset drops every memoized lookup.
func (r *NodeModules) Reset() {
	r.cache.Clear()
}

type boundResolver struct {
	modules *NodeModules
	dir     string
}

func (b boundResolver) Resolves(specifier string) bool {
	return b.modules.Resolves(b.dir, specifier)
}

// PackageName strips a subpath from a bare specifier: "lodash/fp" becomes
// "lodash" and "@scope/pkg/x" becomes "@scope/pkg". Relative and absolute
// paths yield "".
func PackageName(specifier string) string {
	if specifier == "" || strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		return ""
	}

	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") {
		if len(parts) < 2 || parts[1] == "" {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// Static resolves a fixed set of package names. Subpaths of a listed
// package resolve too.
type Static map[string]bool

// Resolves implements interfaces.Resolver.
func (s Static) Resolves(specifier string) bool {
	if IsBuiltin(specifier) {
		return true
	}
	return s[PackageName(specifier)]
}
