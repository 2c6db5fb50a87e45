package ports

import "go.trai.ch/fnpack/internal/core/domain"

// Hasher defines the interface for fingerprinting the assembled prefix.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint computes a deterministic hash over the relative paths and
	// contents of every file the archive would include. Two runs from a
	// pinned manifest produce the same fingerprint.
	Fingerprint(plan *domain.BuildPlan) (string, error)
}
