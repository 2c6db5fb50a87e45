package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs argv in dir with the process environment extended by env
	// ("KEY=VALUE" strings, PATH entries prepended). Command output streams
	// to stdout/stderr; a nil writer streams to the executor's logger
	// instead. A non-zero exit is returned as an error carrying the exit
	// code.
	Execute(ctx context.Context, argv []string, dir string, env []string, stdout, stderr io.Writer) error
}
