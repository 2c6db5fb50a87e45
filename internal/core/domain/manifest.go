// Package domain contains the core domain models for the artifact packaging pipeline.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// constraint operators recognized in a requirement line, longest first so that
// "==" is not split as "=".
var constraintOperators = []string{"===", "==", "~=", "!=", "<=", ">=", "<", ">"}

// Requirement represents a single declared third-party package with an
// optional version constraint, parsed from one manifest line.
type Requirement struct {
	// Name is the package name as declared (e.g., "requests").
	Name InternedString

	// Constraint is the raw version constraint including its operator
	// (e.g., "==2.31.0"). Empty when the line carries no constraint.
	Constraint InternedString
}

// Pinned reports whether the requirement names one exact version.
func (r Requirement) Pinned() bool {
	c := r.Constraint.String()
	return strings.HasPrefix(c, "==") && !strings.ContainsAny(c, "*,")
}

// String reconstructs the manifest line for the requirement.
func (r Requirement) String() string {
	return r.Name.String() + r.Constraint.String()
}

// Manifest is the ordered list of declared packages. Order is the file order;
// it is preserved even though installation does not depend on it.
type Manifest []Requirement

// Empty reports whether the manifest declares no packages.
func (m Manifest) Empty() bool {
	return len(m) == 0
}

// Pinned reports whether every requirement names an exact version. Unpinned
// manifests make a build only as reproducible as the upstream package index.
func (m Manifest) Pinned() bool {
	for _, r := range m {
		if !r.Pinned() {
			return false
		}
	}
	return true
}

// ParseManifest parses manifest text, one requirement per line. Blank lines
// and lines starting with '#' are skipped; an inline " #" comment is stripped.
// A non-blank line that yields no package name fails with ErrManifestParse.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest

	for i, line := range strings.Split(string(data), "\n") {
		req, ok, err := parseRequirementLine(line)
		if err != nil {
			return nil, zerr.With(err, "line", i+1)
		}
		if ok {
			m = append(m, req)
		}
	}

	return m, nil
}

func parseRequirementLine(line string) (Requirement, bool, error) {
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Requirement{}, false, nil
	}

	name := line
	constraint := ""
	for _, op := range constraintOperators {
		if idx := strings.Index(line, op); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			constraint = strings.TrimSpace(line[idx:])
			break
		}
	}

	if !validPackageName(name) {
		return Requirement{}, false, zerr.With(ErrManifestParse, "content", line)
	}

	return Requirement{
		Name:       NewInternedString(name),
		Constraint: NewInternedString(constraint),
	}, true, nil
}

// validPackageName checks the conventional package-name alphabet: letters,
// digits, dots, hyphens and underscores, starting with a letter or digit.
// Extras markers ("name[extra]") are accepted as part of the name.
func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0]
	isAlnum := func(c byte) bool {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
	}
	if !isAlnum(first) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if isAlnum(c) || c == '.' || c == '-' || c == '_' || c == '[' || c == ']' || c == ',' {
			continue
		}
		return false
	}
	return true
}
