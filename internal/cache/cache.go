// Package cache remembers which files were clean the last time they were
// checked, so unchanged files can be skipped.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanrichards/tree-sorter-imports/internal/config"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// FileName is the cache file written in the project root.
const FileName = ".tree-sorter-imports.cache"

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 2

// Entry is what is remembered about one file.
type Entry struct {
	ContentHash string `msgpack:"content_hash"`
	OptionsHash string `msgpack:"options_hash"`
	Clean       bool   `msgpack:"clean"`
	// Resolutions are the resolver answers the verdict depended on.
	Resolutions map[string]bool `msgpack:"resolutions,omitempty"`
}

func (e Entry) equal(other Entry) bool {
	return e.ContentHash == other.ContentHash &&
		e.OptionsHash == other.OptionsHash &&
		e.Clean == other.Clean &&
		maps.Equal(e.Resolutions, other.Resolutions)
}

type payload struct {
	Schema  uint16           `msgpack:"schema"`
	Entries map[string]Entry `msgpack:"entries"`
}

// Cache is a path keyed store of Entries. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	fs      afero.Fs
	path    string
	entries map[string]Entry
	dirty   bool
}

// Open loads the cache stored in dir. A missing, unreadable or outdated
// cache file yields an empty cache.
func Open(fs afero.Fs, dir string) (*Cache, error) {
	c := &Cache{
		fs:      fs,
		path:    filepath.Join(dir, FileName),
		entries: make(map[string]Entry),
	}

	data, err := afero.ReadFile(fs, c.path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil || p.Schema != schemaVersion {
		return c, nil
	}
	if p.Entries != nil {
		c.entries = p.Entries
	}
	return c, nil
}

// Hash fingerprints file content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// OptionsHash fingerprints the rule options a result was computed with.
func OptionsHash(opts config.RuleOptions) (string, error) {
	data, err := msgpack.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("hashing options: %w", err)
	}
	return Hash(data), nil
}

// IsClean reports whether path was clean when last checked with the same
// content and options, and resolves still gives every recorded answer.
// A nil resolves skips the resolution check.
func (c *Cache) IsClean(path, contentHash, optionsHash string, resolves func(specifier string) bool) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok || !e.Clean || e.ContentHash != contentHash || e.OptionsHash != optionsHash {
		return false
	}
	if resolves == nil {
		return true
	}
	for specifier, want := range e.Resolutions {
		if resolves(specifier) != want {
			return false
		}
	}
	return true
}

// Record stores the outcome of checking path.
func (c *Cache) Record(path string, e Entry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[path]; ok && old.equal(e) {
		return
	}
	c.entries[path] = e
	c.dirty = true
}

// Forget drops what is known about path.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.dirty = true
	}
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save writes the cache back if it changed.
func (c *Cache) Save() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	data, err := msgpack.Marshal(payload{Schema: schemaVersion, Entries: c.entries})
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := afero.WriteFile(c.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := c.fs.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}

	c.dirty = false
	return nil
}
