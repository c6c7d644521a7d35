package config

import (
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.Log.Level)
	}
	if cfg.Storage.PassphraseEnv != "DUNGEON_ARCHITECT_PASSPHRASE" {
		t.Errorf("Unexpected default passphrase env %q", cfg.Storage.PassphraseEnv)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Storage.Path = "/tmp/custom.db"
	cfg.Import.WatchDir = "/tmp/drops"
	cfg.Render.OutputDir = "/tmp/cards"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %q", loaded.Log.Level)
	}
	if loaded.Storage.Path != "/tmp/custom.db" {
		t.Errorf("Expected storage path round-tripped, got %q", loaded.Storage.Path)
	}
	if loaded.Import.WatchDir != "/tmp/drops" || loaded.Render.OutputDir != "/tmp/cards" {
		t.Errorf("Expected import/render settings round-tripped, got %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}

	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected invalid log level to be rejected")
	}

	cfg = DefaultConfig()
	cfg.Log.MaxSizeMB = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected negative max size to be rejected")
	}

	cfg = DefaultConfig()
	cfg.Storage.Encrypt = true
	cfg.Storage.PassphraseEnv = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected encryption without a passphrase env to be rejected")
	}
}

func TestDatabasePathPrefersExplicitPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/tmp/explicit.db"

	path, err := cfg.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath failed: %v", err)
	}
	if path != "/tmp/explicit.db" {
		t.Errorf("Expected the explicit path, got %q", path)
	}
}
