// Package pipeline implements the sequential packaging stage runner.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docker/go-units"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// StageStatus represents the status of a pipeline stage.
type StageStatus string

const (
	// StatusPending indicates the stage is waiting to run.
	StatusPending StageStatus = "Pending"
	// StatusRunning indicates the stage is currently running.
	StatusRunning StageStatus = "Running"
	// StatusCompleted indicates the stage finished successfully.
	StatusCompleted StageStatus = "Completed"
	// StatusFailed indicates the stage failed.
	StatusFailed StageStatus = "Failed"
	// StatusSkipped indicates the stage never ran because an earlier stage
	// failed.
	StatusSkipped StageStatus = "Skipped"
)

// Stage names in execution order.
const (
	StageProvision = "provision"
	StageInstall   = "install"
	StageAssemble  = "assemble"
	StageInterim   = "measure-tree"
	StageArchive   = "archive"
	StageReport    = "report"
)

// Pipeline runs the packaging stages strictly left to right. A stage failure
// halts the run immediately; later stages never start and partial outputs of
// the failed run are left in place for inspection.
type Pipeline struct {
	provisioner ports.Provisioner
	installer   ports.Installer
	assembler   ports.Assembler
	archiver    ports.Archiver
	sizer       ports.SizeReporter
	hasher      ports.Hasher
	store       ports.BuildInfoStore
	telemetry   ports.Telemetry
	logger      ports.Logger

	mu     sync.RWMutex
	status map[string]StageStatus
}

// NewPipeline creates a new Pipeline over the given stage implementations.
func NewPipeline(
	provisioner ports.Provisioner,
	installer ports.Installer,
	assembler ports.Assembler,
	archiver ports.Archiver,
	sizer ports.SizeReporter,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		provisioner: provisioner,
		installer:   installer,
		assembler:   assembler,
		archiver:    archiver,
		sizer:       sizer,
		hasher:      hasher,
		store:       store,
		telemetry:   telemetry,
		logger:      logger,
		status:      make(map[string]StageStatus),
	}
}

type stage struct {
	name string
	run  func(ctx context.Context, plan *domain.BuildPlan) error
}

// Run executes the full packaging pipeline for the plan. On success the build
// record (sizes, fingerprint) is persisted under the plan's build ID.
func (p *Pipeline) Run(ctx context.Context, plan *domain.BuildPlan) error {
	var report domain.SizeReport

	stages := []stage{
		{StageProvision, p.provisioner.Provision},
		{StageInstall, p.installer.Install},
		{StageAssemble, p.assembler.Assemble},
	}
	if plan.ReportInterimSize {
		stages = append(stages, stage{StageInterim, p.measureInterim})
	}
	stages = append(stages,
		stage{StageArchive, func(ctx context.Context, plan *domain.BuildPlan) error {
			_, err := p.archiver.Archive(ctx, plan)
			return err
		}},
		stage{StageReport, func(ctx context.Context, plan *domain.BuildPlan) error {
			var err error
			report, err = p.sizer.Measure(ctx, plan)
			return err
		}},
	)

	for _, s := range stages {
		p.setStatus(s.name, StatusPending)
	}

	for i, s := range stages {
		if err := ctx.Err(); err != nil {
			p.setStatus(s.name, StatusSkipped)
			return zerr.With(zerr.Wrap(err, "pipeline canceled"), "stage", s.name)
		}

		p.setStatus(s.name, StatusRunning)
		if err := p.runStage(ctx, s, plan); err != nil {
			p.setStatus(s.name, StatusFailed)
			for _, later := range stages[i+1:] {
				p.setStatus(later.name, StatusSkipped)
			}
			return zerr.With(err, "stage", s.name)
		}
		p.setStatus(s.name, StatusCompleted)
	}

	p.logger.Info(fmt.Sprintf(
		"packaged %s: tree %s, archive %s (ratio %.2f)",
		plan.ArchivePath.String(), report.HumanTree(), report.HumanArchive(), report.Ratio(),
	))

	return p.record(plan, report)
}

// runStage runs one stage under its own telemetry vertex.
func (p *Pipeline) runStage(ctx context.Context, s stage, plan *domain.BuildPlan) error {
	stageCtx, vertex := p.telemetry.Record(ctx, s.name)
	err := s.run(stageCtx, plan)
	vertex.Complete(err)
	return err
}

// measureInterim reports the uncompressed prefix footprint before archiving.
func (p *Pipeline) measureInterim(ctx context.Context, plan *domain.BuildPlan) error {
	treeBytes, err := p.sizer.MeasureTree(ctx, plan)
	if err != nil {
		return err
	}
	p.logger.Info("assembled tree is " + units.HumanSize(float64(treeBytes)))
	return nil
}

// record computes the tree fingerprint and persists the build record.
func (p *Pipeline) record(plan *domain.BuildPlan, report domain.SizeReport) error {
	fingerprint, err := p.hasher.Fingerprint(plan)
	if err != nil {
		return zerr.Wrap(err, "failed to fingerprint prefix tree")
	}

	info := domain.BuildInfo{
		BuildID:      domain.GenerateBuildID(plan),
		Archive:      plan.ArchivePath.String(),
		TreeBytes:    report.TreeBytes,
		ArchiveBytes: report.ArchiveBytes,
		Fingerprint:  fingerprint,
		Timestamp:    time.Now().UTC(),
	}
	if err := p.store.Put(info); err != nil {
		return zerr.Wrap(err, "failed to persist build record")
	}

	p.logger.Info("recorded build " + info.BuildID[:12] + " fingerprint " + fingerprint)
	return nil
}

// Status returns the recorded status of a stage.
func (p *Pipeline) Status(name string) StageStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status[name]
}

func (p *Pipeline) setStatus(name string, status StageStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[name] = status
}
