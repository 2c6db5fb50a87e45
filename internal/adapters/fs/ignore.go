package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// LoadIgnoreFile reads an ignore-pattern file and parses it into an
// IgnoreSet. An absent file means "exclude nothing" and yields an empty set.
func LoadIgnoreFile(path string) (*domain.IgnoreSet, error) {
	if path == "" {
		return domain.NewIgnoreSet(nil)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the build plan
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.NewIgnoreSet(nil)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read ignore file"), "path", path)
	}

	set, err := domain.ParseIgnorePatterns(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return set, nil
}
