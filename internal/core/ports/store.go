package ports

import "go.trai.ch/fnpack/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build run records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for a given build ID.
	// Returns nil, nil if not found.
	Get(buildID string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(info domain.BuildInfo) error
}
