package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/acacha/adminlte-laravel-installer/internal/config"
	"github.com/acacha/adminlte-laravel-installer/internal/path"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const outputJSON = "json"

// rootConfig holds the flags shared by every command.
type rootConfig struct {
	configFile  string
	logLevel    string
	noColor     bool
	errorFormat string
}

var rootCfg = rootConfig{logLevel: "warn", errorFormat: "text"}

var rootCmd = &cobra.Command{
	Use:   "adminlte-laravel",
	Short: "Install the AdminLTE template into a Laravel project",
	Long: `adminlte-laravel installs the AdminLTE admin template into the Laravel
project in the current directory.

By default the work is delegated to llum:
  adminlte-laravel install

Without llum, composer and artisan are run directly:
  adminlte-laravel install --no-llum`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupOutput(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCfg.configFile, "config", "", "Config file (default ~/.config/adminlte-laravel/config.cue)")
	rootCmd.PersistentFlags().StringVar(&rootCfg.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootCfg.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&rootCfg.errorFormat, "error-format", "text", "Error output format (text, json)")

	rootCmd.AddCommand(
		versionCmd,
		installCmd,
		configCmd,
	)
}

// setupOutput configures colors and the default logger for a command run.
func setupOutput(cmd *cobra.Command) {
	if rootCfg.noColor || !isTerminal(cmd.OutOrStdout()) {
		color.NoColor = true
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(rootCfg.logLevel),
	})))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelWarn for unrecognized values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// loadConfig reads the config file selected by --config and resolves the
// paths it configures.
func loadConfig(env path.Environment) (*config.Config, *path.Paths, error) {
	paths := path.New(env)

	file := paths.ConfigFile()
	if rootCfg.configFile != "" {
		file = paths.Expand(rootCfg.configFile)
	}

	cfg, err := config.LoadConfig(file)
	if err != nil {
		return nil, nil, err
	}

	return cfg, path.New(env, path.WithLogDir(cfg.LogDir)), nil
}
