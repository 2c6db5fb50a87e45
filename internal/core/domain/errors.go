package domain

import "go.trai.ch/zerr"

var (
	// ErrProvisioning is returned when the installation prefix cannot be created or reset.
	ErrProvisioning = zerr.New("provisioning failed")

	// ErrDependencyResolution is returned when the dependency manifest cannot be satisfied.
	ErrDependencyResolution = zerr.New("dependency resolution failed")

	// ErrArchiveWrite is returned when writing the output archive fails.
	ErrArchiveWrite = zerr.New("archive write failed")

	// ErrMeasurement is returned when the size report cannot be computed.
	ErrMeasurement = zerr.New("size measurement failed")

	// ErrManifestParse is returned when a manifest line has no parseable package name.
	ErrManifestParse = zerr.New("malformed manifest line")

	// ErrIgnorePattern is returned when an ignore-file line is not a valid glob pattern.
	ErrIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrBuildExecutionFailed is returned by the application layer when the packaging
	// pipeline fails. The CLI uses it to discriminate build failures from usage errors.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
