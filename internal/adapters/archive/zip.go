// Package archive implements exclusion-aware zip packaging of the prefix.
package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/fnpack/internal/adapters/fs"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Archiver implements ports.Archiver as a streaming zip writer over the
// prefix tree.
type Archiver struct {
	walker *fs.Walker
	logger ports.Logger
}

var _ ports.Archiver = (*Archiver)(nil)

// NewArchiver creates a new Archiver.
func NewArchiver(walker *fs.Walker, logger ports.Logger) *Archiver {
	return &Archiver{
		walker: walker,
		logger: logger,
	}
}

// Archive walks the prefix and writes every non-excluded regular file into a
// zip at the plan's archive path, entries named by their slash-relative path
// so the prefix root becomes the archive root. Directories carry no entries.
// Files are compressed at the highest deflate level. On failure the partial
// output file is removed and ErrArchiveWrite is returned; the prefix itself
// is left untouched. Returns the size in bytes of the finished archive.
func (a *Archiver) Archive(ctx context.Context, plan *domain.BuildPlan) (int64, error) {
	root := plan.Prefix.String()
	outPath := plan.ArchivePath.String()

	ignore, err := fs.LoadIgnoreFile(plan.IgnoreFile.String())
	if err != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	// The output must never archive itself when it lands inside the prefix.
	selfRel := ""
	if rel, relErr := filepath.Rel(root, outPath); relErr == nil && filepath.IsLocal(rel) {
		selfRel = filepath.ToSlash(rel)
	}

	out, err := os.Create(outPath) //nolint:gosec // path comes from the build plan
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "archive", outPath)
	}

	size, err := a.write(ctx, out, root, ignore, selfRel)
	if err != nil {
		out.Close()        //nolint:errcheck,gosec // already failing
		os.Remove(outPath) //nolint:errcheck,gosec // partial output
		return 0, zerr.With(err, "archive", outPath)
	}

	return size, nil
}

func (a *Archiver) write(ctx context.Context, out *os.File, root string, ignore *domain.IgnoreSet, selfRel string) (int64, error) {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	entries := 0
	var addErr error
	walkErr := a.walker.WalkFilesErr(root, ignore, func(rel string) bool {
		if ctx.Err() != nil {
			return false
		}
		if rel == selfRel {
			return true
		}
		if addErr = addFile(zw, root, rel); addErr != nil {
			return false
		}
		entries++
		return true
	})
	if addErr != nil {
		return 0, addErr
	}
	if walkErr != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, walkErr.Error())
	}
	if err := ctx.Err(); err != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	if err := zw.Close(); err != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}
	if err := out.Close(); err != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	stat, err := os.Stat(out.Name())
	if err != nil {
		return 0, zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	a.logger.Info("archived " + strconv.Itoa(entries) + " files into " + out.Name())
	return stat.Size(), nil
}

// addFile streams one file from the tree into the zip writer.
func addFile(zw *zip.Writer, root, rel string) error {
	src := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Lstat(src)
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}
	header.Name = rel
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}

	f, err := os.Open(src) //nolint:gosec // path derived from the walked tree
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveWrite, err.Error())
	}
	defer f.Close() //nolint:errcheck // read-only file

	if _, err := io.Copy(w, f); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "entry", rel)
	}

	return nil
}
