package assemble_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/assemble"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newAssembler(t *testing.T) *assemble.Assembler {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return assemble.NewAssembler(log)
}

func assemblePlan(entry, ignoreFile, prefix string) *domain.BuildPlan {
	return &domain.BuildPlan{
		EntryPoint: domain.NewInternedString(entry),
		IgnoreFile: domain.NewInternedString(ignoreFile),
		Prefix:     domain.NewInternedString(prefix),
	}
}

func TestAssembler_CopiesPayload(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	require.NoError(t, os.MkdirAll(prefix, 0o750))

	entry := filepath.Join(dir, "handler.py")
	require.NoError(t, os.WriteFile(entry, []byte("def handler(): pass"), 0o644))
	ignoreFile := filepath.Join(dir, ".packageignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("*.pyc\n"), 0o644))

	err := newAssembler(t).Assemble(context.Background(), assemblePlan(entry, ignoreFile, prefix))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(prefix, "handler.py"))
	require.NoError(t, err)
	assert.Equal(t, "def handler(): pass", string(got))

	got, err = os.ReadFile(filepath.Join(prefix, ".packageignore"))
	require.NoError(t, err)
	assert.Equal(t, "*.pyc\n", string(got))
}

func TestAssembler_OverwritesCollision(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	require.NoError(t, os.MkdirAll(prefix, 0o750))

	// A dependency already installed a file with the entry point's name.
	require.NoError(t, os.WriteFile(filepath.Join(prefix, "handler.py"), []byte("from a dependency"), 0o644))

	entry := filepath.Join(dir, "handler.py")
	require.NoError(t, os.WriteFile(entry, []byte("the real handler"), 0o644))

	err := newAssembler(t).Assemble(context.Background(), assemblePlan(entry, "", prefix))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(prefix, "handler.py"))
	require.NoError(t, err)
	assert.Equal(t, "the real handler", string(got))
}

func TestAssembler_MissingIgnoreFileIsFine(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	require.NoError(t, os.MkdirAll(prefix, 0o750))

	entry := filepath.Join(dir, "handler.py")
	require.NoError(t, os.WriteFile(entry, []byte("code"), 0o644))

	err := newAssembler(t).Assemble(context.Background(), assemblePlan(entry, filepath.Join(dir, "absent"), prefix))
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(prefix, "absent"))
	assert.Error(t, statErr)
}

func TestAssembler_MissingEntryPoint(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "prefix")
	require.NoError(t, os.MkdirAll(prefix, 0o750))

	err := newAssembler(t).Assemble(context.Background(), assemblePlan(filepath.Join(dir, "nope.py"), "", prefix))
	assert.Error(t, err)
}
