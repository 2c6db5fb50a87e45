// Package prefix implements provisioning of the isolated install prefix.
package prefix

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provisioner implements ports.Provisioner on the local filesystem.
type Provisioner struct {
	logger ports.Logger
}

var _ ports.Provisioner = (*Provisioner)(nil)

// NewProvisioner creates a new Provisioner.
func NewProvisioner(logger ports.Logger) *Provisioner {
	return &Provisioner{
		logger: logger,
	}
}

// Provision removes any previous tree at the plan's prefix and recreates an
// empty directory. Repeated calls are idempotent: each run starts from an
// equivalently empty prefix.
func (p *Provisioner) Provision(ctx context.Context, plan *domain.BuildPlan) error {
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(domain.ErrProvisioning, err.Error())
	}

	path := filepath.Clean(plan.Prefix.String())
	if path == "" || path == "." || path == string(filepath.Separator) {
		return zerr.With(zerr.Wrap(domain.ErrProvisioning, "refusing to provision prefix"), "prefix", path)
	}

	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrProvisioning, err.Error()), "prefix", path)
	}

	if err := os.MkdirAll(path, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrProvisioning, err.Error()), "prefix", path)
	}

	p.logger.Info("provisioned install prefix " + path)
	return nil
}
