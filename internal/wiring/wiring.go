// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fnpack/internal/adapters/archive"
	_ "go.trai.ch/fnpack/internal/adapters/assemble"
	_ "go.trai.ch/fnpack/internal/adapters/cas"
	_ "go.trai.ch/fnpack/internal/adapters/config"
	_ "go.trai.ch/fnpack/internal/adapters/fs"
	_ "go.trai.ch/fnpack/internal/adapters/logger"
	_ "go.trai.ch/fnpack/internal/adapters/pip"
	_ "go.trai.ch/fnpack/internal/adapters/prefix"
	_ "go.trai.ch/fnpack/internal/adapters/shell"
	_ "go.trai.ch/fnpack/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/fnpack/internal/app"
	_ "go.trai.ch/fnpack/internal/engine/pipeline"
)
