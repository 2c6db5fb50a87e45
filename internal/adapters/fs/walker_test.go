package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/fs"
	"go.trai.ch/fnpack/internal/core/domain"
)

// writeTree creates the given files (with dummy content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func collect(walker *fs.Walker, root string, ignore *domain.IgnoreSet) []string {
	var rels []string
	for rel := range walker.WalkFiles(root, ignore) {
		rels = append(rels, rel)
	}
	slices.Sort(rels)
	return rels
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"handler.py":                      "def handler(): pass",
		"requests/__init__.py":            "",
		"requests/__pycache__/mod.pyc":    "bytecode",
		"requests/tests/test_api.py":      "test",
		"module.pyc":                      "bytecode",
		"urllib3/util/ssl_.py":            "",
	})

	ignore, err := domain.NewIgnoreSet([]string{"*.pyc", "__pycache__/*", "tests/*"})
	require.NoError(t, err)

	got := collect(fs.NewWalker(), root, ignore)
	assert.Equal(t, []string{
		"handler.py",
		"requests/__init__.py",
		"urllib3/util/ssl_.py",
	}, got)
}

func TestWalker_PrunesIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep/file.py":        "",
		"skipped/nested/a.py": "",
		"skipped/b.py":        "",
	})

	ignore, err := domain.NewIgnoreSet([]string{"skipped"})
	require.NoError(t, err)

	got := collect(fs.NewWalker(), root, ignore)
	assert.Equal(t, []string{"keep/file.py"}, got)
}

func TestWalker_EmptyIgnoreYieldsEverything(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":     "",
		"b/c.pyc":  "",
	})

	ignore, err := domain.NewIgnoreSet(nil)
	require.NoError(t, err)

	got := collect(fs.NewWalker(), root, ignore)
	assert.Equal(t, []string{"a.py", "b/c.pyc"}, got)
}

func TestWalker_EarlyStop(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "",
		"b.py": "",
		"c.py": "",
	})

	ignore, err := domain.NewIgnoreSet(nil)
	require.NoError(t, err)

	seen := 0
	err = fs.NewWalker().WalkFilesErr(root, ignore, func(string) bool {
		seen++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestWalker_MissingRoot(t *testing.T) {
	ignore, err := domain.NewIgnoreSet(nil)
	require.NoError(t, err)

	walkErr := fs.NewWalker().WalkFilesErr(filepath.Join(t.TempDir(), "absent"), ignore, func(string) bool {
		return true
	})
	assert.Error(t, walkErr)
}
