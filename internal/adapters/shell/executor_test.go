package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fnpack/internal/adapters/shell"
	"go.trai.ch/fnpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_CapturesOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(log)

	var stdout, stderr bytes.Buffer
	err := executor.Execute(
		context.Background(),
		[]string{"sh", "-c", "echo out; echo err >&2"},
		"", nil, &stdout, &stderr,
	)
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_NilWritersStreamToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("line one")
	log.EXPECT().Info("line two")
	log.EXPECT().Warn("oops")

	executor := shell.NewExecutor(log)
	err := executor.Execute(
		context.Background(),
		[]string{"sh", "-c", "echo 'line one'; echo 'line two'; echo oops >&2"},
		"", nil, nil, nil,
	)
	require.NoError(t, err)
}

func TestExecutor_FlushesUnterminatedLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("no newline")

	executor := shell.NewExecutor(log)
	err := executor.Execute(
		context.Background(),
		[]string{"sh", "-c", "printf 'no newline'"},
		"", nil, nil, nil,
	)
	require.NoError(t, err)
}

func TestExecutor_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(log)
	var stdout, stderr bytes.Buffer
	err := executor.Execute(
		context.Background(),
		[]string{"sh", "-c", "exit 3"},
		"", nil, &stdout, &stderr,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	executor := shell.NewExecutor(log)

	var stdout bytes.Buffer
	err := executor.Execute(
		context.Background(),
		[]string{"pwd"},
		dir, nil, &stdout, &bytes.Buffer{},
	)
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), filepath.Base(resolved))
}

func TestExecutor_ExtraPathPrepended(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)

	toolDir := t.TempDir()
	script := filepath.Join(toolDir, "mytool")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho from-mytool\n"), 0o755))

	executor := shell.NewExecutor(log)
	var stdout bytes.Buffer
	err := executor.Execute(
		context.Background(),
		[]string{"mytool"},
		"", []string{"PATH=" + toolDir}, &stdout, &bytes.Buffer{},
	)
	require.NoError(t, err)
	assert.Equal(t, "from-mytool\n", stdout.String())
}

func TestExecutor_EmptyArgv(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(log)
	assert.NoError(t, executor.Execute(context.Background(), nil, "", nil, nil, nil))
}
