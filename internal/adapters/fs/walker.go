// Package fs provides file system adapters for walking, measuring, and
// fingerprinting the installation prefix.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/fnpack/internal/core/domain"
)

// Walker yields the files under a prefix root that the archive would include.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields slash-separated paths relative to root for every regular
// file not excluded by the ignore set. Directories whose relative path is
// excluded are pruned without descending. Walk errors abort the iteration and
// are reported through the final callback of filepath.WalkDir, so callers that
// need errors should use WalkFilesErr.
func (w *Walker) WalkFiles(root string, ignore *domain.IgnoreSet) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = w.WalkFilesErr(root, ignore, func(rel string) bool {
			return yield(rel)
		})
	}
}

// WalkFilesErr walks like WalkFiles but surfaces the first filesystem error.
// The visit callback returns false to stop early.
func (w *Walker) WalkFilesErr(root string, ignore *domain.IgnoreSet, visit func(rel string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if ignore.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !visit(rel) {
			return filepath.SkipAll
		}
		return nil
	})
}
