// Package storage keeps save games in a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/tatianab/casa-abandonada/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
) STRICT;`

// SQLiteStore is a models.SaveStore backed by one row per slot.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ models.SaveStore = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and makes sure the
// schema exists. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and writes serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Debug("opened save database", slog.String("path", path))
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, rec *models.SaveRecord) error {
	if err := models.ValidateSlot(slot); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSaveIO, err)
	}
	data, err := models.EncodeSaveRecord(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrSaveIO, err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO saves (slot, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrSaveIO, err)
	}
	s.logger.DebugContext(ctx, "saved game", slog.String("slot", slot))
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) (*models.SaveRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrSaveNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrSaveParse, err)
	}
	rec, err := models.DecodeSaveRecord([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot, err)
	}
	return rec, nil
}

// List returns the saved slots, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot FROM saves ORDER BY updated_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	slots := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
