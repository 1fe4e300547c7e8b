package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/acacha/adminlte-laravel-installer/internal/installer"
	"github.com/acacha/adminlte-laravel-installer/internal/installer/command"
	"github.com/acacha/adminlte-laravel-installer/internal/log"
	"github.com/acacha/adminlte-laravel-installer/internal/path"
	"github.com/acacha/adminlte-laravel-installer/internal/ui"
	"github.com/spf13/cobra"
)

// keepLogSessions is the number of failure log sessions kept on disk.
const keepLogSessions = 5

// installConfig holds configuration for the install command.
type installConfig struct {
	noLlum        bool
	dev           bool
	vendorPublish bool
	dontForce     bool
}

var installCfg installConfig

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install AdminLTE into the Laravel project in the current directory",
	Long: `Install the AdminLTE template into the Laravel project in the current directory.

By default llum is run:
  llum package [--dev] AdminLTE[VendorPublish][DontForce]

With --no-llum the steps are run directly:
  composer require acacha/admin-lte-template-laravel[:dev-master]
  copy config/app.php
  php artisan adminlte-laravel:publish   (or vendor:publish --tag=adminlte --force)

llum is looked up in ~/.composer/vendor/bin and ~/.config/composer/vendor/bin
before the search path. A composer.phar in the project is preferred over a
global composer.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installCfg.noLlum, "no-llum", false, "Do not use llum; run composer and artisan directly")
	installCmd.Flags().BoolVar(&installCfg.dev, "dev", false, "Install the development version")
	installCmd.Flags().BoolVar(&installCfg.vendorPublish, "use-vendor-publish", false, "Publish with vendor:publish instead of adminlte-laravel:publish")
	installCmd.Flags().BoolVar(&installCfg.dontForce, "dontforce", false, "Ask before overwriting existing files (llum only)")
}

func (c installConfig) options() installer.Options {
	return installer.Options{
		SkipExternalTool: c.noLlum,
		InstallDev:       c.dev,
		UseVendorPublish: c.vendorPublish,
		ConfirmOverwrite: c.dontForce,
	}
}

func runInstall(cmd *cobra.Command, _ []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	env := path.OSEnvironment{}
	cfg, paths, err := loadConfig(env)
	if err != nil {
		return err
	}

	logStore := log.NewStore(paths.LogDir())
	slog.Debug("install log session", "dir", logStore.SessionDir())
	defer func() {
		logStore.Close()
		if cleanupErr := logStore.Cleanup(keepLogSessions); cleanupErr != nil {
			slog.Warn("failed to clean up old log sessions", "error", cleanupErr)
		}
	}()

	executor := command.NewExecutor(workDir,
		command.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))

	inst := installer.NewInstaller(executor, ui.NewPrinter(cmd.OutOrStdout()), env, cfg, workDir,
		installer.WithLogStore(logStore))

	return inst.Run(cmd.Context(), installCfg.options())
}
