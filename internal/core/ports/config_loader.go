package ports

import "go.trai.ch/fnpack/internal/core/domain"

// ConfigLoader defines the interface for loading the build plan.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the build configuration from the given working directory
	// and returns the resolved plan.
	Load(cwd string) (*domain.BuildPlan, error)
}
