// Package config provides the configuration loader for fnpack.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	// Filename overrides the default configuration file name.
	Filename string

	logger ports.Logger
}

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// NewLoader creates a loader reading DefaultFilename from the working
// directory.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: DefaultFilename,
		logger:   logger,
	}
}

// Load reads the configuration from the given working directory and resolves
// it into a build plan.
func (l *FileConfigLoader) Load(cwd string) (*domain.BuildPlan, error) {
	path := filepath.Join(cwd, l.Filename)
	plan, err := Load(path)
	if err != nil {
		return nil, err
	}
	if l.logger != nil {
		l.logger.Info("loaded build plan from " + path)
	}
	return plan, nil
}

// Load reads a configuration file from the given path and returns the
// resolved build plan. Relative paths in the file stay relative to the
// process working directory. The entry point must exist; everything else is
// allowed to be absent at load time.
func Load(path string) (*domain.BuildPlan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var packfile Packfile
	if err := yaml.Unmarshal(data, &packfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	applyDefaults(&packfile)

	if err := validate(&packfile); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &domain.BuildPlan{
		EntryPoint:        domain.NewInternedString(packfile.EntryPoint),
		ManifestPath:      domain.NewInternedString(packfile.Manifest),
		IgnoreFile:        domain.NewInternedString(packfile.IgnoreFile),
		Prefix:            domain.NewInternedString(packfile.Prefix),
		ArchivePath:       domain.NewInternedString(packfile.Archive),
		Python:            domain.NewInternedString(packfile.Python),
		ReportInterimSize: packfile.ReportInterimSize,
	}, nil
}

func applyDefaults(p *Packfile) {
	if p.EntryPoint == "" {
		p.EntryPoint = DefaultEntryPoint
	}
	if p.Manifest == "" {
		p.Manifest = DefaultManifest
	}
	if p.IgnoreFile == "" {
		p.IgnoreFile = DefaultIgnoreFile
	}
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	if p.Archive == "" {
		p.Archive = DefaultArchive
	}
	if p.Python == "" {
		p.Python = DefaultPython
	}
}

func validate(p *Packfile) error {
	if _, err := os.Stat(p.EntryPoint); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.New("entry point does not exist"), "entrypoint", p.EntryPoint)
		}
		return zerr.With(zerr.Wrap(err, "failed to stat entry point"), "entrypoint", p.EntryPoint)
	}

	if filepath.Clean(p.Prefix) == string(filepath.Separator) {
		return zerr.With(zerr.New("prefix must not be the filesystem root"), "prefix", p.Prefix)
	}

	return nil
}
