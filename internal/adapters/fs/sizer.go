package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.SizeReporter = (*Sizer)(nil)

// Sizer implements ports.SizeReporter by walking the prefix tree and statting
// the produced archive. Measurement is read-only and advisory; it never gates
// the build against a platform ceiling.
type Sizer struct{}

// NewSizer creates a new Sizer.
func NewSizer() *Sizer {
	return &Sizer{}
}

// Measure computes both sizes, the tree walk and the archive stat running
// concurrently under an errgroup.
func (s *Sizer) Measure(ctx context.Context, plan *domain.BuildPlan) (domain.SizeReport, error) {
	var report domain.SizeReport

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tree, err := s.MeasureTree(ctx, plan)
		if err != nil {
			return err
		}
		report.TreeBytes = tree
		return nil
	})
	g.Go(func() error {
		info, err := os.Stat(plan.ArchivePath.String())
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrMeasurement, err.Error()), "path", plan.ArchivePath.String())
		}
		report.ArchiveBytes = info.Size()
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.SizeReport{}, err
	}
	return report, nil
}

// MeasureTree computes the recursive on-disk footprint of the prefix.
func (s *Sizer) MeasureTree(ctx context.Context, plan *domain.BuildPlan) (int64, error) {
	root := plan.Prefix.String()
	var total int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrMeasurement, err.Error()), "root", root)
	}

	return total, nil
}
