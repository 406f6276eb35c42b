package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Runner executes a command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	// Stdout and Stderr additionally receive the live output when set.
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

func (e *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%s is required to install dependencies: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), e.Env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if e.Stdout != nil {
		cmd.Stdout = io.MultiWriter(e.Stdout, &stdoutBuf)
	}
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.Stderr, &stderrBuf)
	}

	err = cmd.Run()
	return stdoutBuf.Bytes(), stderrBuf.Bytes(), err
}

// ExitError reports a package manager run that did not succeed.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Installer installs a project's dependencies with a package manager.
type Installer struct {
	Command string
	Args    []string
	Runner  Runner
	Logger  *log.Logger
}

func NewInstaller(command string, args ...string) *Installer {
	if command == "" {
		command = "npm"
		args = []string{"install"}
	}
	return &Installer{
		Command: command,
		Args:    args,
		Runner:  &ExecRunner{},
		Logger:  log.New(io.Discard),
	}
}

// Install runs the package manager in dir.
func (i *Installer) Install(ctx context.Context, dir string) error {
	line := strings.TrimSpace(i.Command + " " + strings.Join(i.Args, " "))

	start := time.Now()
	_, stderr, err := i.Runner.Run(ctx, dir, i.Command, i.Args...)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", line, ctx.Err())
		}

		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExitError{
			Command: line,
			Code:    code,
			Stderr:  tail(string(stderr), 5),
			Err:     err,
		}
	}

	if i.Logger != nil {
		i.Logger.Debug("dependencies installed", "command", line, "took", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
