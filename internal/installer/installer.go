// Package installer installs the AdminLTE template into a Laravel project,
// either through llum or by running composer and artisan directly.
package installer

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/acacha/adminlte-laravel-installer/internal/config"
	"github.com/acacha/adminlte-laravel-installer/internal/errors"
	"github.com/acacha/adminlte-laravel-installer/internal/installer/command"
	"github.com/acacha/adminlte-laravel-installer/internal/log"
	"github.com/acacha/adminlte-laravel-installer/internal/path"
	"github.com/acacha/adminlte-laravel-installer/internal/stub"
	"github.com/acacha/adminlte-laravel-installer/internal/ui"
)

const (
	llumHint     = "Install llum with 'composer global require acacha/llum',\nor run the installer with --no-llum."
	composerHint = "Install composer from https://getcomposer.org,\nor place composer.phar in the project directory."
	phpHint      = "Make sure php is on your PATH or set 'php' in config.cue."
)

// Runner runs external processes.
type Runner interface {
	Passthrough(ctx context.Context, name string, args []string) error
	ExecuteWithOutput(ctx context.Context, name string, args []string, callback command.OutputCallback) error
}

// Installer executes install plans in a project directory.
type Installer struct {
	runner  Runner
	printer *ui.Printer
	env     path.Environment
	cfg     *config.Config
	workDir string
	stubs   fs.FS
	logs    *log.Store
}

// Option configures an Installer.
type Option func(*Installer)

// WithStubs replaces the bundled stubs.
func WithStubs(stubs fs.FS) Option {
	return func(i *Installer) {
		i.stubs = stubs
	}
}

// WithLogStore captures streamed output so failed steps leave a log behind.
func WithLogStore(store *log.Store) Option {
	return func(i *Installer) {
		i.logs = store
	}
}

// NewInstaller creates an Installer for the project in workDir.
func NewInstaller(runner Runner, printer *ui.Printer, env path.Environment, cfg *config.Config, workDir string, opts ...Option) *Installer {
	i := &Installer{
		runner:  runner,
		printer: printer,
		env:     env,
		cfg:     cfg,
		workDir: workDir,
		stubs:   stub.FS,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Tools resolves the commands needed by the strategy opts selects.
func (i *Installer) Tools(opts Options) Tools {
	tools := Tools{
		PHP:        i.cfg.PHP,
		Package:    i.cfg.Package,
		Constraint: i.cfg.Constraint,
		PublishTag: i.cfg.PublishTag,
		Stub:       stub.AppConfig,
		AppConfig:  filepath.Join(i.workDir, "config", "app.php"),
	}

	if !opts.SkipExternalTool {
		tools.Llum = i.cfg.Llum
		if tools.Llum == "" {
			tools.Llum = path.FindLlum(i.env)
		}
		return tools
	}

	tools.Composer = path.FindComposer(i.workDir, i.cfg.PHP)
	if tools.Composer[0] == path.ComposerName {
		tools.Composer[0] = i.cfg.Composer
	}
	return tools
}

// Run installs the template. Steps run in order and the first failure
// stops the run; completed steps are not undone.
func (i *Installer) Run(ctx context.Context, opts Options) error {
	steps := Plan(opts, i.Tools(opts))

	slog.Debug("install plan", "steps", len(steps), "skipLlum", opts.SkipExternalTool, "dev", opts.InstallDev,
		"vendorPublish", opts.UseVendorPublish, "dontForce", opts.ConfirmOverwrite)

	for _, step := range steps {
		if err := i.execute(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) execute(ctx context.Context, step Step) error {
	switch step.Kind {
	case StepCopy:
		i.printer.Copying(step.Source, step.Destination)
		return stub.Copy(i.stubs, step.Source, step.Destination)

	case StepStream:
		i.printer.Info("Running %s", command.CommandLine(step.Command, step.Args))
		return i.stream(ctx, step)

	default:
		i.printer.Info("%s", command.CommandLine(step.Command, step.Args))
		err := i.runner.Passthrough(ctx, step.Command, step.Args)
		return withHint(step, err)
	}
}

// stream runs a StepStream step, relaying and recording its output.
func (i *Installer) stream(ctx context.Context, step Step) error {
	if i.logs != nil {
		i.logs.RecordStart(step.Name, command.CommandLine(step.Command, step.Args))
	}

	err := i.runner.ExecuteWithOutput(ctx, step.Command, step.Args, func(line string) {
		i.printer.Output(line)
		if i.logs != nil {
			i.logs.RecordOutput(step.Name, line)
		}
	})

	if i.logs == nil {
		return withHint(step, err)
	}

	if err == nil {
		i.logs.RecordComplete(step.Name)
		return nil
	}

	i.logs.RecordError(step.Name, err)
	if flushErr := i.logs.Flush(); flushErr != nil {
		slog.Warn("failed to write install log", "step", step.Name, "error", flushErr)
		return withHint(step, err)
	}

	var procErr *errors.ProcessError
	if stderrors.As(err, &procErr) && i.logs.Written(step.Name) {
		procErr.Base.WithDetail("Log", i.logs.LogFile(step.Name))
	}
	return withHint(step, err)
}

// withHint attaches install advice to launch failures.
func withHint(step Step, err error) error {
	var notFound *errors.ToolNotFoundError
	if !stderrors.As(err, &notFound) {
		return err
	}

	switch step.Name {
	case StepLlum:
		notFound.WithHint(llumHint)
	case StepRequire:
		if len(step.Args) > 0 && step.Args[0] == path.ComposerPhar {
			notFound.WithHint(phpHint)
		} else {
			notFound.WithHint(composerHint)
		}
	case StepPublish:
		notFound.WithHint(phpHint)
	}
	return err
}
