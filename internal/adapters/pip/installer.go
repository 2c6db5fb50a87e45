// Package pip implements dependency installation into the prefix via the
// Python package installer.
package pip

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// resolutionMarkers are stderr fragments that identify a dependency
// resolution failure rather than an environment fault.
var resolutionMarkers = []string{
	"no matching distribution",
	"could not find a version",
	"resolutionimpossible",
	"conflicting dependencies",
	"not found",
}

// Installer implements ports.Installer by shelling out to pip through the
// configured interpreter.
type Installer struct {
	executor ports.Executor
	logger   ports.Logger
}

var _ ports.Installer = (*Installer)(nil)

// NewInstaller creates a new Installer.
func NewInstaller(executor ports.Executor, logger ports.Logger) *Installer {
	return &Installer{
		executor: executor,
		logger:   logger,
	}
}

// Install upgrades pip, then installs the plan's manifest into the prefix.
// The self-upgrade always runs first so dependency resolution happens with a
// current resolver. An empty manifest short-circuits after the upgrade.
//
// There is no rollback: a failed install leaves the prefix contaminated and
// the next provision pass starts it over.
func (i *Installer) Install(ctx context.Context, plan *domain.BuildPlan) error {
	python := plan.Python.String()

	if err := i.run(ctx, []string{python, "-m", "pip", "install", "--upgrade", "pip"}); err != nil {
		return zerr.Wrap(err, "pip self-upgrade failed")
	}

	manifest, err := LoadManifest(plan.ManifestPath.String())
	if err != nil {
		return err
	}
	if manifest.Empty() {
		i.logger.Info("manifest is empty, nothing to install")
		return nil
	}
	if !manifest.Pinned() {
		i.logger.Warn("manifest has unpinned requirements, builds may not be reproducible")
	}

	argv := []string{
		python, "-m", "pip", "install",
		"--target", plan.Prefix.String(),
		"--requirement", plan.ManifestPath.String(),
	}
	if err := i.run(ctx, argv); err != nil {
		err = zerr.With(err, "manifest", plan.ManifestPath.String())
		return zerr.With(err, "requirements", len(manifest))
	}

	return nil
}

// run executes one pip invocation, streaming output to the stage vertex when
// one is attached to the context. Any failure is classified as
// ErrDependencyResolution with the tail of stderr as context.
func (i *Installer) run(ctx context.Context, argv []string) error {
	var stderrBuf bytes.Buffer
	var stdout io.Writer
	stderr := io.Writer(&stderrBuf)

	if v := ports.VertexFromContext(ctx); v != nil {
		stdout = v.Stdout()
		stderr = io.MultiWriter(&stderrBuf, v.Stderr())
	}

	if err := i.executor.Execute(ctx, argv, "", nil, stdout, stderr); err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrDependencyResolution, err.Error()), "command", strings.Join(argv, " "))
		if tail := stderrTail(stderrBuf.String()); tail != "" {
			wrapped = zerr.With(wrapped, "stderr", tail)
		}
		if marker := classify(stderrBuf.String()); marker != "" {
			wrapped = zerr.With(wrapped, "cause", marker)
		}
		return wrapped
	}

	return nil
}

// LoadManifest reads and parses a requirements file. An absent file is an
// empty manifest.
func LoadManifest(path string) (domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the build plan
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Manifest{}, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParse, err.Error()), "path", path)
	}
	manifest, err := domain.ParseManifest(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return manifest, nil
}

// classify returns the first known resolution marker found in stderr, or "".
func classify(stderr string) string {
	lowered := strings.ToLower(stderr)
	for _, marker := range resolutionMarkers {
		if strings.Contains(lowered, marker) {
			return marker
		}
	}
	return ""
}

// stderrTail returns the last few non-empty lines of stderr for error context.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	const keep = 5
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}
