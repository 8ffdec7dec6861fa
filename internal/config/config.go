// Package config resolves runtime settings from defaults, an optional
// config.yaml in the data directory, and ABOOK_* environment variables,
// in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix      = "ABOOK"
	configFileName = "config.yaml"
	defaultDirName = ".abook"
)

type Config struct {
	DataDir        string `envconfig:"DATA_DIR"`
	Backend        string `envconfig:"BACKEND"`
	Passphrase     string `envconfig:"PASSPHRASE"`
	BirthdayWindow int    `envconfig:"BIRTHDAY_WINDOW"`
	Autosave       bool   `envconfig:"AUTOSAVE"`
	Audit          bool   `envconfig:"AUDIT"`
	Debug          bool   `envconfig:"DEBUG"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
}

type yamlConfig struct {
	DataDir        string `yaml:"data_dir"`
	Backend        string `yaml:"backend"`
	BirthdayWindow *int   `yaml:"birthday_window"`
	Autosave       *bool  `yaml:"autosave"`
	Audit          *bool  `yaml:"audit"`
	Debug          *bool  `yaml:"debug"`
	LogLevel       string `yaml:"log_level"`
}

func Default() *Config {
	dataDir := defaultDirName
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, defaultDirName)
	}

	return &Config{
		DataDir:        dataDir,
		Backend:        "json",
		BirthdayWindow: 7,
		Autosave:       true,
		Audit:          true,
		LogLevel:       "info",
	}
}

// Load builds the configuration. When path is empty, config.yaml is looked
// up in the default data directory and may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, configFileName)
	}

	if err := cfg.applyFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if y.DataDir != "" {
		c.DataDir = y.DataDir
	}
	if y.Backend != "" {
		c.Backend = y.Backend
	}
	if y.BirthdayWindow != nil {
		c.BirthdayWindow = *y.BirthdayWindow
	}
	if y.Autosave != nil {
		c.Autosave = *y.Autosave
	}
	if y.Audit != nil {
		c.Audit = *y.Audit
	}
	if y.Debug != nil {
		c.Debug = *y.Debug
	}
	if y.LogLevel != "" {
		c.LogLevel = y.LogLevel
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid backend: %s (must be 'json' or 'sqlite')", c.Backend)
	}

	if c.Passphrase != "" && c.Backend != "json" {
		return fmt.Errorf("passphrase encryption is only supported by the json backend")
	}

	if c.BirthdayWindow <= 0 {
		return fmt.Errorf("birthday window must be positive, got: %d", c.BirthdayWindow)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data directory must not be empty")
	}

	return nil
}

func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func (c *Config) AuditDir() string {
	return filepath.Join(c.DataDir, "audit")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
