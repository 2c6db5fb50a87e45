package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/config"
)

// chdir switches into dir for the duration of the test so relative paths in
// the loaded plan resolve against it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("handler.py", []byte("def handler(): pass"), 0o644))
	require.NoError(t, os.WriteFile("fnpack.yaml", []byte("{}\n"), 0o644))

	plan, err := config.Load("fnpack.yaml")
	require.NoError(t, err)

	assert.Equal(t, "handler.py", plan.EntryPoint.String())
	assert.Equal(t, "requirements.txt", plan.ManifestPath.String())
	assert.Equal(t, ".packageignore", plan.IgnoreFile.String())
	assert.Equal(t, ".fnpack/prefix", plan.Prefix.String())
	assert.Equal(t, "function.zip", plan.ArchivePath.String())
	assert.Equal(t, "python3", plan.Python.String())
	assert.False(t, plan.ReportInterimSize)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("main.py", []byte("code"), 0o644))
	content := `entrypoint: main.py
manifest: deps.txt
ignore_file: .zipignore
prefix: build/prefix
archive: out/bundle.zip
python: python3.12
report_interim_size: true
`
	require.NoError(t, os.WriteFile("fnpack.yaml", []byte(content), 0o644))

	plan, err := config.Load("fnpack.yaml")
	require.NoError(t, err)

	assert.Equal(t, "main.py", plan.EntryPoint.String())
	assert.Equal(t, "deps.txt", plan.ManifestPath.String())
	assert.Equal(t, ".zipignore", plan.IgnoreFile.String())
	assert.Equal(t, "build/prefix", plan.Prefix.String())
	assert.Equal(t, "out/bundle.zip", plan.ArchivePath.String())
	assert.Equal(t, "python3.12", plan.Python.String())
	assert.True(t, plan.ReportInterimSize)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "fnpack.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingEntryPoint(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("fnpack.yaml", []byte("entrypoint: nope.py\n"), 0o644))

	_, err := config.Load("fnpack.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry point")
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("fnpack.yaml", []byte("entrypoint: [unterminated\n"), 0o644))

	_, err := config.Load("fnpack.yaml")
	assert.Error(t, err)
}

func TestFileConfigLoader_Load(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("handler.py", []byte("code"), 0o644))
	require.NoError(t, os.WriteFile("fnpack.yaml", []byte("archive: artifact.zip\n"), 0o644))

	loader := &config.FileConfigLoader{Filename: "fnpack.yaml"}
	plan, err := loader.Load(".")
	require.NoError(t, err)
	assert.Equal(t, "artifact.zip", plan.ArchivePath.String())
}
