package pip_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/pip"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func installPlan(manifest, prefixDir string) *domain.BuildPlan {
	return &domain.BuildPlan{
		ManifestPath: domain.NewInternedString(manifest),
		Prefix:       domain.NewInternedString(prefixDir),
		Python:       domain.NewInternedString("python3"),
	}
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func TestInstaller_UpgradeRunsFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("requests==2.31.0\n"), 0o644))
	prefixDir := filepath.Join(dir, "prefix")

	executor := mocks.NewMockExecutor(ctrl)
	gomock.InOrder(
		executor.EXPECT().Execute(
			gomock.Any(),
			[]string{"python3", "-m", "pip", "install", "--upgrade", "pip"},
			"", nil, gomock.Any(), gomock.Any(),
		).Return(nil),
		executor.EXPECT().Execute(
			gomock.Any(),
			[]string{"python3", "-m", "pip", "install", "--target", prefixDir, "--requirement", manifest},
			"", nil, gomock.Any(), gomock.Any(),
		).Return(nil),
	)

	installer := pip.NewInstaller(executor, quietLogger(ctrl))
	err := installer.Install(context.Background(), installPlan(manifest, prefixDir))
	require.NoError(t, err)
}

func TestInstaller_EmptyManifestShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("# nothing declared\n"), 0o644))

	executor := mocks.NewMockExecutor(ctrl)
	// Only the self-upgrade runs; no install invocation follows.
	executor.EXPECT().Execute(
		gomock.Any(),
		[]string{"python3", "-m", "pip", "install", "--upgrade", "pip"},
		"", nil, gomock.Any(), gomock.Any(),
	).Return(nil).Times(1)

	installer := pip.NewInstaller(executor, quietLogger(ctrl))
	err := installer.Install(context.Background(), installPlan(manifest, filepath.Join(dir, "prefix")))
	require.NoError(t, err)
}

func TestInstaller_AbsentManifestShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(
		gomock.Any(), gomock.Any(), "", nil, gomock.Any(), gomock.Any(),
	).Return(nil).Times(1)

	installer := pip.NewInstaller(executor, quietLogger(ctrl))
	err := installer.Install(context.Background(), installPlan(filepath.Join(dir, "absent.txt"), filepath.Join(dir, "prefix")))
	require.NoError(t, err)
}

func TestInstaller_ResolutionFailureClassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("no-such-package==99.0\n"), 0o644))

	executor := mocks.NewMockExecutor(ctrl)
	gomock.InOrder(
		executor.EXPECT().Execute(
			gomock.Any(), gomock.Any(), "", nil, gomock.Any(), gomock.Any(),
		).Return(nil),
		executor.EXPECT().Execute(
			gomock.Any(), gomock.Any(), "", nil, gomock.Any(), gomock.Any(),
		).DoAndReturn(func(_ context.Context, _ []string, _ string, _ []string, _, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("ERROR: No matching distribution found for no-such-package==99.0\n"))
			return errors.New("exit status 1")
		}),
	)

	installer := pip.NewInstaller(executor, quietLogger(ctrl))
	err := installer.Install(context.Background(), installPlan(manifest, filepath.Join(dir, "prefix")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyResolution))
}

func TestInstaller_UpgradeFailureHaltsInstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("requests==2.31.0\n"), 0o644))

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(
		gomock.Any(), gomock.Any(), "", nil, gomock.Any(), gomock.Any(),
	).Return(errors.New("exit status 1")).Times(1)

	installer := pip.NewInstaller(executor, quietLogger(ctrl))
	err := installer.Install(context.Background(), installPlan(manifest, filepath.Join(dir, "prefix")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyResolution))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("requests==2.31.0\nboto3\n"), 0o644))

	m, err := pip.LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.False(t, m.Pinned())

	absent, err := pip.LoadManifest(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.True(t, absent.Empty())

	require.NoError(t, os.WriteFile(path, []byte("==broken\n"), 0o644))
	_, err = pip.LoadManifest(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrManifestParse))
}
