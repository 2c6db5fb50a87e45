// Package app implements the application layer for fnpack.
package app

import (
	"context"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/fnpack/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, pipe *pipeline.Pipeline, telemetry ports.Telemetry) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		telemetry:    telemetry,
	}
}

// Run loads the build plan from the working directory and executes the
// packaging pipeline.
func (a *App) Run(ctx context.Context) error {
	plan, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	defer func() {
		_ = a.telemetry.Close()
	}()

	if err := a.pipeline.Run(ctx, plan); err != nil {
		return zerr.Wrap(domain.ErrBuildExecutionFailed, err.Error())
	}

	return nil
}
