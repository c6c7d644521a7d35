package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupManager creates point-in-time copies of the catalog database.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the given database
// path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// Backup copies the database into dir (default: a "backups" directory
// next to the database) and returns the backup path. Uses VACUUM INTO
// for an atomic copy, falling back to a plain file copy.
func (bm *BackupManager) Backup(dir string) (string, error) {
	if dir == "" {
		dir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("backup_%s.db", timestamp))

	source, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	if _, err := source.Exec(fmt.Sprintf("VACUUM INTO %q", backupPath)); err != nil {
		if copyErr := bm.backupByCopy(backupPath); copyErr != nil {
			return "", copyErr
		}
	}

	return backupPath, nil
}

// backupByCopy copies the database file byte for byte. Fallback for
// SQLite builds without VACUUM INTO.
func (bm *BackupManager) backupByCopy(backupPath string) error {
	source, err := os.Open(bm.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open source database file: %w", err)
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, source); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}
	return nil
}

// DumpJSON writes the current snapshot as indented JSON next to the
// database backup, readable without the application.
func DumpJSON(ctx context.Context, adapter *Adapter, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dump directory: %w", err)
	}

	snap := adapter.Load(ctx)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("catalog_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write dump file: %w", err)
	}
	return path, nil
}
