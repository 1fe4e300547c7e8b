package command

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/acacha/adminlte-laravel-installer/internal/errors"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single line delivered to an OutputCallback.
const maxLineSize = 1024 * 1024

// OutputCallback receives child process output one line at a time.
type OutputCallback func(line string)

// Executor runs external commands in a working directory.
type Executor struct {
	workDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures an Executor.
type Option func(*Executor)

// WithStdio sets the streams passthrough commands are attached to.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates a new Executor attached to the process' standard streams.
func NewExecutor(workDir string, opts ...Option) *Executor {
	e := &Executor{
		workDir: workDir,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CommandLine renders name and args the way they are shown to the user.
func CommandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Passthrough runs a command with the executor's stdin, stdout and stderr
// attached, so interactive prompts reach the user.
func (e *Executor) Passthrough(ctx context.Context, name string, args []string) error {
	slog.Debug("executing command", "command", CommandLine(name, args), "mode", "passthrough")

	cmd := e.command(ctx, name, args)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Run(); err != nil {
		return e.wrapError(ctx, name, args, err)
	}

	slog.Debug("command succeeded", "command", CommandLine(name, args))
	return nil
}

// ExecuteWithOutput runs a command and delivers its combined stdout and
// stderr to callback line by line as the lines are produced.
// A nil callback drains the output.
func (e *Executor) ExecuteWithOutput(ctx context.Context, name string, args []string, callback OutputCallback) error {
	slog.Debug("executing command", "command", CommandLine(name, args), "mode", "stream")

	cmd := e.command(ctx, name, args)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return e.wrapError(ctx, name, args, err)
	}

	var g errgroup.Group
	g.Go(func() error {
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if callback != nil {
				callback(scanner.Text())
			}
		}
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, pr)
		return scanner.Err()
	})

	waitErr := cmd.Wait()
	pw.Close()
	if err := g.Wait(); err != nil {
		slog.Warn("failed to read command output", "command", CommandLine(name, args), "error", err)
	}

	if waitErr != nil {
		return e.wrapError(ctx, name, args, waitErr)
	}

	slog.Debug("command succeeded", "command", CommandLine(name, args))
	return nil
}

func (e *Executor) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}
	return cmd
}

// wrapError classifies a failed run as a launch failure or a non-zero exit.
func (e *Executor) wrapError(ctx context.Context, name string, args []string, err error) error {
	line := CommandLine(name, args)

	if ctxErr := ctx.Err(); ctxErr != nil {
		slog.Debug("command interrupted", "command", line, "error", ctxErr)
		return errors.NewProcessError(line, -1, ctxErr)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		slog.Debug("command failed", "command", line, "exitCode", exitErr.ExitCode())
		return errors.NewProcessError(line, exitErr.ExitCode(), err)
	}

	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrPermission) {
		slog.Debug("command could not be started", "command", line, "error", err)
		return errors.NewToolNotFoundError(name, err)
	}

	slog.Error("command failed", "command", line, "error", err)
	return errors.NewProcessError(line, -1, err)
}
