package storage

import (
	"path/filepath"
	"testing"
)

func TestOpenInMemoryAppliesSchema(t *testing.T) {
	db := testDB(t)

	var name string
	err := db.Conn().QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'slots'").Scan(&name)
	if err != nil {
		t.Fatalf("Expected slots table after open: %v", err)
	}
}

func TestOpenFileRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	db, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("Expected path %q, got %q", path, db.Path())
	}

	var name string
	err = db.Conn().QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'slots'").Scan(&name)
	if err != nil {
		t.Fatalf("Expected slots table after migration: %v", err)
	}

	// Opening again over the existing file must be a no-op migration.
	db2, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	_ = db2.Close()
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Expected nil config to be rejected")
	}
}
