package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
	"github.com/Masterminds/semver/v3"
	"github.com/acacha/adminlte-laravel-installer/internal/errors"
)

// Defaults reproduce the stock installer behaviour.
const (
	DefaultPackage    = "acacha/admin-lte-template-laravel"
	DefaultPHP        = "php"
	DefaultComposer   = "composer"
	DefaultPublishTag = "adminlte"
	DefaultLogDir     = "~/.cache/adminlte-laravel/logs"
)

// Config represents the installer configuration read from config.cue.
type Config struct {
	// Package is the composer package identifier required by --no-llum.
	Package string `json:"composerPackage"`
	// PHP is the php binary used for artisan and composer.phar.
	PHP string `json:"php"`
	// Composer is the global composer command.
	Composer string `json:"composer"`
	// Llum overrides the llum locator when non-empty.
	Llum string `json:"llum,omitempty"`
	// PublishTag is the vendor:publish tag.
	PublishTag string `json:"publishTag"`
	// Constraint is an optional composer version constraint used without --dev.
	// Accepted forms are a semver range ("^4.0", ">=4.1 <5"), the same with a
	// stability flag ("^4.0@dev", "~4.2@beta"), or a branch ("dev-develop").
	Constraint string `json:"constraint,omitempty"`
	// LogDir is where output of failed steps is kept.
	LogDir string `json:"logDir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Package:    DefaultPackage,
		PHP:        DefaultPHP,
		Composer:   DefaultComposer,
		PublishTag: DefaultPublishTag,
		LogDir:     DefaultLogDir,
	}
}

// LoadConfig loads configuration from the config.cue file at path.
// Returns default config if the file doesn't exist or has no config block.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("no config file, using defaults", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.NewConfigError(path, "failed to read config", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if value.Err() != nil {
		return nil, configErrorAt(path, "failed to compile config", value.Err())
	}

	configValue := value.LookupPath(cue.ParsePath("config"))
	if !configValue.Exists() {
		return DefaultConfig(), nil
	}

	cfg := DefaultConfig()
	jsonBytes, err := configValue.MarshalJSON()
	if err != nil {
		return nil, configErrorAt(path, "failed to evaluate config", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.NewConfigError(path, "failed to decode config", err).
			WithHint("Known fields: composerPackage, php, composer, llum, publishTag, constraint, logDir.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configErrorAt builds a ConfigError carrying the first CUE error position.
func configErrorAt(path, message string, err error) *errors.ConfigError {
	cfgErr := errors.NewConfigError(path, message, err)
	for _, e := range cueerrors.Errors(err) {
		pos := e.Position()
		if pos.Line() > 0 {
			return cfgErr.WithLocation(pos.Line(), pos.Column())
		}
	}
	return cfgErr
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Package == "" || !strings.Contains(c.Package, "/") {
		return errors.NewValidationError("composerPackage", "vendor/name", c.Package, nil)
	}
	if c.PHP == "" {
		return errors.NewValidationError("php", "php binary", c.PHP, nil)
	}
	if c.Composer == "" {
		return errors.NewValidationError("composer", "composer command", c.Composer, nil)
	}
	if c.PublishTag == "" {
		return errors.NewValidationError("publishTag", "non-empty tag", c.PublishTag, nil)
	}
	if c.Constraint != "" {
		if err := validateConstraint(c.Constraint); err != nil {
			return errors.NewValidationError("constraint", "composer constraint (e.g. ^4.0, ^4.0@dev, dev-develop)", c.Constraint, err)
		}
	}
	return nil
}

// stabilityFlag matches a trailing composer stability flag such as "@dev".
var stabilityFlag = regexp.MustCompile(`(?i)@(dev|alpha|beta|rc|stable)$`)

// validateConstraint checks the subset of composer constraints documented
// on Config.Constraint.
func validateConstraint(c string) error {
	if branch, ok := strings.CutPrefix(c, "dev-"); ok {
		if branch == "" || strings.ContainsAny(branch, " \t@") {
			return fmt.Errorf("invalid branch constraint %q", c)
		}
		return nil
	}

	_, err := semver.NewConstraint(stabilityFlag.ReplaceAllString(c, ""))
	return err
}

// ToCue generates CUE content from Config.
func (c *Config) ToCue() ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.Encode(map[string]any{
		"config": c,
	})
	if v.Err() != nil {
		return nil, fmt.Errorf("failed to encode config: %w", v.Err())
	}

	b, err := format.Node(v.Syntax())
	if err != nil {
		return nil, fmt.Errorf("failed to format config: %w", err)
	}

	return append([]byte("package adminlte\n\n"), b...), nil
}
