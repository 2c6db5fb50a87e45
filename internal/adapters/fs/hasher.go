package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes a deterministic fingerprint of the assembled prefix. Two
// pipeline runs from a pinned manifest yield the same fingerprint, which is
// the concrete witness for build reproducibility.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the sorted relative paths and per-file content hashes of
// everything under the prefix that the archive would include. Timestamps and
// permissions are deliberately left out so the fingerprint tracks only entry
// sets and contents.
func (h *Hasher) Fingerprint(plan *domain.BuildPlan) (string, error) {
	ignore, err := LoadIgnoreFile(plan.IgnoreFile.String())
	if err != nil {
		return "", err
	}

	root := plan.Prefix.String()
	var rels []string
	if walkErr := h.walker.WalkFilesErr(root, ignore, func(rel string) bool {
		rels = append(rels, rel)
		return true
	}); walkErr != nil {
		return "", zerr.With(zerr.Wrap(walkErr, "failed to walk prefix"), "root", root)
	}
	sort.Strings(rels)

	hasher := xxhash.New()
	for _, rel := range rels {
		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})

		fileHash, hashErr := h.ComputeFileHash(filepath.Join(root, filepath.FromSlash(rel)))
		if hashErr != nil {
			return "", hashErr
		}
		if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
