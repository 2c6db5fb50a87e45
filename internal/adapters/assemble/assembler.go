// Package assemble copies the function payload into the install prefix.
package assemble

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Assembler implements ports.Assembler on the local filesystem.
type Assembler struct {
	logger ports.Logger
}

var _ ports.Assembler = (*Assembler)(nil)

// NewAssembler creates a new Assembler.
func NewAssembler(logger ports.Logger) *Assembler {
	return &Assembler{
		logger: logger,
	}
}

// Assemble copies the entry point and, when present, the ignore file into the
// prefix root. Existing files of the same name are overwritten; the entry
// point wins any collision with an installed dependency file.
func (a *Assembler) Assemble(ctx context.Context, plan *domain.BuildPlan) error {
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "assembly canceled")
	}

	prefix := plan.Prefix.String()

	if err := copyIntoDir(plan.EntryPoint.String(), prefix); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy entry point"), "entrypoint", plan.EntryPoint.String())
	}
	a.logger.Info("copied entry point into prefix")

	ignorePath := plan.IgnoreFile.String()
	if ignorePath == "" {
		return nil
	}
	if err := copyIntoDir(ignorePath, prefix); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(err, "ignore_file", ignorePath)
	}
	a.logger.Info("copied ignore file into prefix")

	return nil
}

// copyIntoDir copies src byte-for-byte into dir, keeping its base name.
func copyIntoDir(src, dir string) error {
	in, err := os.Open(src) //nolint:gosec // path comes from the build plan
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return zerr.Wrap(err, "failed to open source file")
	}
	defer in.Close() //nolint:errcheck // read-only file

	dst := filepath.Join(dir, filepath.Base(src))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // path derives from the build plan
	if err != nil {
		return zerr.Wrap(err, "failed to create destination file")
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck,gosec // already failing
		return zerr.Wrap(err, "failed to copy file contents")
	}

	if err := out.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush destination file")
	}
	return nil
}
