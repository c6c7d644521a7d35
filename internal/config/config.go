// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// Log file configuration
	Log LogConfig `toml:"log"`

	// Spreadsheet import configuration
	Import ImportConfig `toml:"import"`

	// Card render configuration
	Render RenderConfig `toml:"render"`
}

// StorageConfig contains durable-slot settings.
type StorageConfig struct {
	Path          string `toml:"path"`           // Path to the catalog database (empty = default location)
	Encrypt       bool   `toml:"encrypt"`        // Encrypt the snapshot at rest
	PassphraseEnv string `toml:"passphrase_env"` // Environment variable holding the passphrase
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      string `toml:"level"`        // debug, info, warn, error
	FilePath   string `toml:"file_path"`    // Log file (empty = stderr only)
	MaxSizeMB  int    `toml:"max_size_mb"`  // Rotate after this size
	MaxBackups int    `toml:"max_backups"`  // Rotated files to keep
	MaxAgeDays int    `toml:"max_age_days"` // Days to keep rotated files
}

// ImportConfig contains bulk-import settings.
type ImportConfig struct {
	WatchDir string `toml:"watch_dir"` // Drop directory auto-imported by the watch command
}

// RenderConfig contains card export settings.
type RenderConfig struct {
	OutputDir string `toml:"output_dir"` // Directory for exported card images
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:          "",
			Encrypt:       false,
			PassphraseEnv: "DUNGEON_ARCHITECT_PASSPHRASE",
		},
		Log: LogConfig{
			Level:      "info",
			FilePath:   "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		Import: ImportConfig{
			WatchDir: "",
		},
		Render: RenderConfig{
			OutputDir: ".",
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".dungeon-architect")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if
// the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log max size cannot be negative: %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log max backups cannot be negative: %d", c.Log.MaxBackups)
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log max age cannot be negative: %d", c.Log.MaxAgeDays)
	}

	if c.Storage.Encrypt && c.Storage.PassphraseEnv == "" {
		return fmt.Errorf("encryption enabled but no passphrase environment variable configured")
	}
	return nil
}

// DatabasePath resolves the catalog database path, defaulting to the
// application data directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.db"), nil
}
