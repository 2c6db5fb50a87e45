package domain

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// IgnoreSet is an ordered sequence of glob patterns identifying paths to
// exclude from the archive. Matching is unordered-semantically: a path is
// excluded if ANY pattern matches, so order only mirrors the source file.
//
// Patterns use shell-glob semantics (doublestar) against slash-separated
// paths relative to the prefix root, e.g. "*.pyc", "__pycache__/*", "tests/*".
type IgnoreSet struct {
	patterns []string
}

// NewIgnoreSet builds an IgnoreSet from patterns, validating each one.
func NewIgnoreSet(patterns []string) (*IgnoreSet, error) {
	set := &IgnoreSet{}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, zerr.With(ErrIgnorePattern, "pattern", p)
		}
		set.patterns = append(set.patterns, p)
	}
	return set, nil
}

// ParseIgnorePatterns parses ignore-file text, one glob per line. Blank lines
// and '#' comment lines are skipped. Empty input yields an empty set, which
// excludes nothing.
func ParseIgnorePatterns(data []byte) (*IgnoreSet, error) {
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return NewIgnoreSet(patterns)
}

// Len returns the number of patterns in the set.
func (s *IgnoreSet) Len() int {
	return len(s.patterns)
}

// Patterns returns the patterns in source order.
func (s *IgnoreSet) Patterns() []string {
	return s.patterns
}

// Match reports whether the slash-separated relative path is excluded. A
// pattern matches when it matches any contiguous component window of the
// path, mirroring how ignore files are conventionally read: "*.pyc" excludes
// bytecode at any depth, "__pycache__/*" and "tests/*" exclude those trees
// wherever a dependency bundles them, and a bare directory name excludes the
// whole subtree beneath it.
func (s *IgnoreSet) Match(rel string) bool {
	if s == nil || len(s.patterns) == 0 {
		return false
	}
	rel = strings.Trim(path.Clean(rel), "/")
	if rel == "." || rel == "" {
		return false
	}
	comps := strings.Split(rel, "/")

	for _, pattern := range s.patterns {
		pattern = strings.TrimSuffix(pattern, "/")
		for end := 1; end <= len(comps); end++ {
			for start := range end {
				probe := strings.Join(comps[start:end], "/")
				if ok, err := doublestar.Match(pattern, probe); err == nil && ok {
					return true
				}
			}
		}
	}
	return false
}
