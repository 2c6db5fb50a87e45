// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/fnpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs argv in dir with the process environment extended by env.
// PATH entries from env are prepended to the system PATH so callers can put
// tool directories in front. When stdout or stderr is nil, that stream is
// line-buffered into the executor's logger instead.
func (e *Executor) Execute(ctx context.Context, argv []string, dir string, env []string, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	name := argv[0]
	args := argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env)

	// Resolve the executable against the merged PATH, not the process PATH.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // caller provided command
	// exec.CommandContext sets Args[0] to the executable path. Preserve the
	// original name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = dir
	cmd.Env = cmdEnv

	var flushers []*lineWriter
	if stdout == nil {
		lw := &lineWriter{logger: e.logger, level: "info"}
		flushers = append(flushers, lw)
		stdout = lw
	}
	if stderr == nil {
		lw := &lineWriter{logger: e.logger, level: "warn"}
		flushers = append(flushers, lw)
		stderr = lw
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	for _, lw := range flushers {
		lw.Flush()
	}

	if runErr != nil {
		exitCode := -1 // unknown or signal
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err := zerr.With(zerr.Wrap(runErr, "command failed"), "command", name)
		return zerr.With(err, "exit_code", exitCode)
	}

	return nil
}

// lineWriter buffers partial writes and forwards complete lines to the logger.
type lineWriter struct {
	logger ports.Logger
	level  string
	buf    strings.Builder
}

func (w *lineWriter) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if b == '\n' {
			w.emit(w.buf.String())
			w.buf.Reset()
			continue
		}
		w.buf.WriteByte(b)
	}
	return len(p), nil
}

// Flush emits any buffered final line that was not newline-terminated.
func (w *lineWriter) Flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line string) {
	if w.level == "warn" {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}

// resolveEnvironment merges environment variables, the extra env taking
// precedence. PATH is special-cased: extra PATH entries are prepended to the
// system PATH rather than replacing it.
func resolveEnvironment(sysEnv, extraEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range extraEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
			continue
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
