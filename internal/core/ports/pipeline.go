// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/fnpack/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks

// Provisioner creates the isolated installation prefix for a build run.
type Provisioner interface {
	// Provision produces a fresh, empty prefix at plan.Prefix, removing any
	// leftovers from a previous run. It is idempotent: re-running yields an
	// equivalently-empty starting state.
	Provision(ctx context.Context, plan *domain.BuildPlan) error
}

// Installer installs the declared dependency manifest into the prefix.
type Installer interface {
	// Install upgrades the installer tool itself, then installs every
	// manifest package and its transitive dependencies into plan.Prefix.
	// On failure the prefix is contaminated and must be discarded; no
	// rollback is attempted.
	Install(ctx context.Context, plan *domain.BuildPlan) error
}

// Assembler copies the first-party payload into the prefix root.
type Assembler interface {
	// Assemble copies the entry-point file and the ignore-pattern file into
	// the root of plan.Prefix, overwriting on collision.
	Assemble(ctx context.Context, plan *domain.BuildPlan) error
}

// Archiver produces the compressed artifact from the prefix contents.
type Archiver interface {
	// Archive walks plan.Prefix and streams every non-ignored file into a
	// compressed archive at plan.ArchivePath, rooted at the prefix root.
	// It returns the archive size in bytes.
	Archive(ctx context.Context, plan *domain.BuildPlan) (int64, error)
}

// SizeReporter measures the assembled prefix and the produced archive.
type SizeReporter interface {
	// Measure computes the recursive prefix footprint and the archive size.
	Measure(ctx context.Context, plan *domain.BuildPlan) (domain.SizeReport, error)

	// MeasureTree computes only the recursive prefix footprint. Used for the
	// optional interim report taken before archiving.
	MeasureTree(ctx context.Context, plan *domain.BuildPlan) (int64, error)
}
