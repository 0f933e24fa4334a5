package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipDir(t *testing.T) {
	assert.True(t, SkipDir("node_modules"))
	assert.True(t, SkipDir(".git"))
	assert.False(t, SkipDir("src"))
	assert.False(t, SkipDir("."))
}

func TestWatcherEmitsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))

	w, err := New(Config{
		Roots:    []string{dir},
		Match:    func(p string) bool { return strings.HasSuffix(p, ".ts") },
		Debounce: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	target := filepath.Join(dir, "src", "app.ts")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("const o = {}\n"), 0o644))

	select {
	case batch := <-w.Batches():
		assert.Equal(t, []string{target}, batch)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch received")
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	w, err := New(Config{Roots: []string{t.TempDir()}, Debounce: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case _, ok := <-w.Batches():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("batches channel not closed")
	}
}
