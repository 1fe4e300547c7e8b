package path

import (
	"path/filepath"
	"strings"
)

// Default path suffixes (relative to home directory)
const (
	defaultConfigSuffix = ".config/adminlte-laravel"
	defaultLogSuffix    = ".cache/adminlte-laravel/logs"
	configFileName      = "config.cue"
)

// Paths holds the configurable paths used by the installer.
type Paths struct {
	home      string
	configDir string
	logDir    string
}

// Option is a functional option for configuring Paths.
type Option func(*Paths)

// WithConfigDir sets a custom config directory.
func WithConfigDir(dir string) Option {
	return func(p *Paths) {
		p.configDir = dir
	}
}

// WithLogDir sets a custom directory for failure logs.
func WithLogDir(dir string) Option {
	return func(p *Paths) {
		p.logDir = dir
	}
}

// New creates Paths rooted at the home directory resolved from env.
// Option values may start with "~/".
func New(env Environment, opts ...Option) *Paths {
	home := HomeDir(env)

	p := &Paths{
		home:      home,
		configDir: filepath.Join(home, defaultConfigSuffix),
		logDir:    filepath.Join(home, defaultLogSuffix),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.configDir = p.Expand(p.configDir)
	p.logDir = p.Expand(p.logDir)

	return p
}

// Home returns the resolved home directory.
func (p *Paths) Home() string {
	return p.home
}

// ConfigDir returns the config directory.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns <configDir>/config.cue.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, configFileName)
}

// LogDir returns the directory failure logs are written to.
func (p *Paths) LogDir() string {
	return p.logDir
}

// Expand expands a leading ~ to the home directory.
func (p *Paths) Expand(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	return path
}
