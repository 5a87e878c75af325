// Package config handles configuration loading for habit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// JournalConfig controls the optional invocation journal.
type JournalConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	Path         string `mapstructure:"path" yaml:"path"`
	MaxEntries   int    `mapstructure:"max_entries" yaml:"max_entries"`     // 0 keeps everything
	HistoryLimit int    `mapstructure:"history_limit" yaml:"history_limit"` // rows shown by --history
}

// Load loads the configuration from files and environment variables.
// If path is non-empty it must point to an existing config file.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Read config file (optional unless explicitly requested)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Journal.Path = expandPath(cfg.Journal.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "")
	v.SetDefault("journal.max_entries", 1000)
	v.SetDefault("journal.history_limit", 20)
}

// bindEnv binds every known key to HABIT_<SECTION>_<KEY>, plus short aliases.
// No AutomaticEnv here: under it HABIT_JOURNAL shadows the whole journal section.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("HABIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range v.AllKeys() {
		v.BindEnv(key)
	}

	// Short aliases, checked after the full names
	v.BindEnv("logging.level", "HABIT_LOG_LEVEL")
	v.BindEnv("journal.enabled", "HABIT_JOURNAL")
}

// Validate checks values that viper cannot type-check on its own.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (must be text or json)", c.Logging.Format)
	}
	if c.Journal.MaxEntries < 0 {
		return fmt.Errorf("journal.max_entries must not be negative, got %d", c.Journal.MaxEntries)
	}
	if c.Journal.HistoryLimit < 0 {
		return fmt.Errorf("journal.history_limit must not be negative, got %d", c.Journal.HistoryLimit)
	}
	return nil
}

// JournalPath returns the configured journal path, or the default location.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return GetDefaultJournalPath()
}

// Dir returns the per-user config directory ($HOME/.config/habit).
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "habit"), nil
}

// GetDefaultJournalPath returns the default journal database path.
func GetDefaultJournalPath() string {
	dir, err := Dir()
	if err != nil {
		return "./habit.db"
	}
	return filepath.Join(dir, "habit.db")
}

// EnsureJournalDir ensures the directory for the journal path exists.
func EnsureJournalDir(journalPath string) error {
	return os.MkdirAll(filepath.Dir(journalPath), 0755)
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
