// Package config loads application settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"glasslabel-go/domain/labeling"
)

// DefaultPath is the location of the default settings inside the resources FS.
const DefaultPath = "config/default.yaml"

// EnvConfigPath names an environment variable pointing at an explicit settings file.
const EnvConfigPath = "GLASSLABEL_CONFIG"

// History backends.
const (
	BackendMemory  = "memory"
	BackendMongoDB = "mongodb"
)

// Config is the full application configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Display   DisplayConfig   `yaml:"display"`
	Labels    LabelsConfig    `yaml:"labels"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	History   HistoryConfig   `yaml:"history"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// DisplayConfig is the fixed box the current image is scaled into.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	KeepAspect bool `yaml:"keep_aspect"`
}

// LabelsConfig holds the operator-facing names and keys of both labels.
type LabelsConfig struct {
	Positive LabelBinding `yaml:"positive"`
	Negative LabelBinding `yaml:"negative"`
}

// LabelBinding is the button name and the single-character shortcut of one label.
type LabelBinding struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// ReconcileConfig controls reconciliation.
type ReconcileConfig struct {
	Unrecognized string `yaml:"unrecognized"`
}

// HistoryConfig selects where applied labels are recorded.
type HistoryConfig struct {
	Backend string        `yaml:"backend"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// MongoDBConfig configures the MongoDB history backend.
type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	PingTimeout    time.Duration `yaml:"ping_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	AddSource bool   `yaml:"add_source"`
}

// Loader reads settings from a defaults FS and optional override files.
type Loader struct {
	defaults fs.FS
}

// NewLoader creates a loader whose base settings come from DefaultPath in defaults.
func NewLoader(defaults fs.FS) *Loader {
	return &Loader{defaults: defaults}
}

// Load reads the defaults and applies each existing override file in order.
// Missing override files are skipped. Keys absent from an override keep their previous value.
func (l *Loader) Load(overrides ...string) (*Config, error) {
	cfg := &Config{}

	data, err := fs.ReadFile(l.defaults, DefaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	for _, path := range overrides {
		if path == "" {
			continue
		}
		if err := mergeFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the per-user override location.
// It returns an empty string if no user config directory is available.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glasslabel", "config.yaml")
}

// OverridePaths returns the user override followed by the file named in EnvConfigPath, if set.
func OverridePaths() []string {
	return []string{UserConfigPath(), os.Getenv(EnvConfigPath)}
}

// Policy returns the parsed unrecognized-label policy.
func (c *Config) Policy() labeling.UnrecognizedPolicy {
	p, err := labeling.ParsePolicy(c.Reconcile.Unrecognized)
	if err != nil {
		return labeling.PolicyDrop
	}
	return p
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}

	for name, b := range map[string]LabelBinding{"positive": c.Labels.Positive, "negative": c.Labels.Negative} {
		if b.Name == "" {
			return fmt.Errorf("labels.%s.name must not be empty", name)
		}
		if b.Key != "" && utf8.RuneCountInString(b.Key) != 1 {
			return fmt.Errorf("labels.%s.key must be a single character, got %q", name, b.Key)
		}
	}
	// Keys are matched without regard to case, so "j" and "J" collide.
	if c.Labels.Positive.Key != "" && strings.EqualFold(c.Labels.Positive.Key, c.Labels.Negative.Key) {
		return fmt.Errorf("labels share the key %q", c.Labels.Positive.Key)
	}

	if _, err := labeling.ParsePolicy(c.Reconcile.Unrecognized); err != nil {
		return err
	}

	switch c.History.Backend {
	case "", BackendMemory:
	case BackendMongoDB:
		if c.History.MongoDB.URI == "" || c.History.MongoDB.Database == "" || c.History.MongoDB.Collection == "" {
			return errors.New("history.mongodb needs uri, database and collection")
		}
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}

	return nil
}
