package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

// SlotKey is the name of the single durable slot holding the
// serialized catalog.
const SlotKey = "dungeon-architect:catalog"

// encryptedPrefix marks slot values that were encrypted at rest.
const encryptedPrefix = EncryptionMagicHeader

// Partial describes the fields of a save request. Nil fields are left
// at their last persisted value (read-merge-write).
type Partial struct {
	Systems           *[]catalog.System
	Events            *[]catalog.Event
	Settings          *catalog.Settings
	SelectedSystemIDs *[]string
	GenerationCount   *int
}

// Adapter serializes the durable subset of the session state to the
// slot and hydrates it back. All failures are non-fatal: reads degrade
// to the seed dataset and writes are logged and dropped.
type Adapter struct {
	db     *DB
	logger *slog.Logger
	enc    *EncryptionConfig
}

// NewAdapter creates a persistence adapter over an open database.
// A nil logger falls back to slog.Default. A nil encryption config
// stores the snapshot as plain JSON.
func NewAdapter(db *DB, logger *slog.Logger, enc *EncryptionConfig) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{db: db, logger: logger, enc: enc}
}

// Save merges the given fields into the last persisted snapshot and
// rewrites the slot. Failures are logged and swallowed so the caller
// never blocks on persistence.
func (a *Adapter) Save(ctx context.Context, partial Partial) {
	current, err := a.readSlot(ctx)
	if err != nil {
		// Merge against the seed when there is nothing readable yet.
		current = DefaultSnapshot()
	}

	if partial.Systems != nil {
		current.Systems = *partial.Systems
	}
	if partial.Events != nil {
		current.Events = *partial.Events
	}
	if partial.Settings != nil {
		current.Settings = partial.Settings
	}
	if partial.SelectedSystemIDs != nil {
		current.SelectedSystemIDs = *partial.SelectedSystemIDs
	}
	if partial.GenerationCount != nil {
		current.GenerationCount = *partial.GenerationCount
	}

	// The legacy scalar never survives a rewrite.
	current.LegacySelectedSystem = ""

	if err := a.writeSlot(ctx, current); err != nil {
		a.logger.Warn("failed to persist catalog snapshot; in-memory state remains authoritative",
			"error", err)
	}
}

// Load reads the slot and returns the persisted snapshot. An absent or
// unparseable slot yields the default seed dataset. A legacy snapshot
// shape (scalar selected-system field) is upgraded best-effort without
// discarding user data.
func (a *Adapter) Load(ctx context.Context) Snapshot {
	snap, err := a.readSlot(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			a.logger.Warn("failed to read catalog snapshot; falling back to defaults", "error", err)
		}
		return DefaultSnapshot()
	}

	seed := DefaultSnapshot()

	// Defensive field-presence checks: any field an older snapshot
	// lacks falls back to its seed value.
	if snap.Systems == nil {
		snap.Systems = seed.Systems
	}
	if snap.Events == nil {
		snap.Events = seed.Events
	}
	if snap.Settings == nil {
		snap.Settings = seed.Settings
	}
	if snap.SelectedSystemIDs == nil {
		if snap.LegacySelectedSystem != "" {
			snap.SelectedSystemIDs = []string{snap.LegacySelectedSystem}
		} else {
			snap.SelectedSystemIDs = seed.SelectedSystemIDs
		}
	}
	snap.LegacySelectedSystem = ""
	if snap.GenerationCount < 1 {
		snap.GenerationCount = 1
	}

	return snap
}

// readSlot fetches and decodes the raw slot value.
func (a *Adapter) readSlot(ctx context.Context) (Snapshot, error) {
	var value string
	err := a.db.Conn().QueryRowContext(ctx,
		"SELECT value FROM slots WHERE key = ?", SlotKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("failed to read slot: %w", err)
	}

	raw := []byte(value)
	if strings.HasPrefix(value, encryptedPrefix) {
		if a.enc == nil {
			return Snapshot{}, fmt.Errorf("slot is encrypted but no passphrase is configured")
		}
		raw, err = DecryptSlotValue(value, a.enc)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to decrypt slot: %w", err)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse slot: %w", err)
	}
	return snap, nil
}

// writeSlot serializes and overwrites the slot value.
func (a *Adapter) writeSlot(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	value := string(data)
	if a.enc != nil {
		value, err = EncryptSlotValue(data, a.enc)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
	}

	_, err = a.db.Conn().ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, SlotKey, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}
