package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/fs"
	"go.trai.ch/fnpack/internal/core/domain"
)

func sizerPlan(prefix, archive string) *domain.BuildPlan {
	return &domain.BuildPlan{
		Prefix:      domain.NewInternedString(prefix),
		ArchivePath: domain.NewInternedString(archive),
	}
}

func TestSizer_Measure(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	writeTree(t, prefix, map[string]string{
		"a.py":       "12345",
		"pkg/b.py":   "1234567890",
		"pkg/c/d.py": "123",
	})

	archive := filepath.Join(dir, "function.zip")
	require.NoError(t, os.WriteFile(archive, make([]byte, 42), 0o644))

	report, err := fs.NewSizer().Measure(context.Background(), sizerPlan(prefix, archive))
	require.NoError(t, err)
	assert.Equal(t, int64(18), report.TreeBytes)
	assert.Equal(t, int64(42), report.ArchiveBytes)
}

func TestSizer_MeasureTree(t *testing.T) {
	prefix := t.TempDir()
	writeTree(t, prefix, map[string]string{
		"only.py": "abcd",
	})

	tree, err := fs.NewSizer().MeasureTree(context.Background(), sizerPlan(prefix, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(4), tree)
}

func TestSizer_MissingArchive(t *testing.T) {
	prefix := t.TempDir()
	writeTree(t, prefix, map[string]string{"a.py": "x"})

	_, err := fs.NewSizer().Measure(context.Background(), sizerPlan(prefix, filepath.Join(prefix, "nope.zip")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMeasurement))
}

func TestSizer_MissingPrefix(t *testing.T) {
	dir := t.TempDir()
	_, err := fs.NewSizer().MeasureTree(context.Background(), sizerPlan(filepath.Join(dir, "absent"), ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMeasurement))
}
