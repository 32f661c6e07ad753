package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/expense-track/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.SlotStorage on a single SQLite table.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

var _ service.SlotStorage = (*SQLiteStorage)(nil)

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != memoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

const memoryPath = ":memory:"

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Load returns the payload stored in slot.
func (s *SQLiteStorage) Load(ctx context.Context, slot service.Slot) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateSlot(slot); err != nil {
		return nil, false, err
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, string(slot)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}

	slog.Debug("loaded slot", "slot", slot, "bytes", len(payload))
	return payload, true, nil
}

// Save replaces the payload stored in slot.
func (s *SQLiteStorage) Save(ctx context.Context, slot service.Slot, payload []byte) error {
	return s.SaveAll(ctx, map[service.Slot][]byte{slot: payload})
}

// SaveAll replaces several slots in one database transaction.
func (s *SQLiteStorage) SaveAll(ctx context.Context, payloads map[service.Slot][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for slot, payload := range payloads {
		if err := validateSlot(slot); err != nil {
			return err
		}
		if payload == nil {
			return fmt.Errorf("%w: payload for slot %s", ErrNilParameter, slot)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slots (name, payload, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			revision = slots.revision + 1`)
	if err != nil {
		return fmt.Errorf("failed to prepare slot write: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for slot, payload := range payloads {
		if _, err := stmt.ExecContext(ctx, string(slot), payload, now); err != nil {
			return fmt.Errorf("failed to save slot %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slots: %w", err)
	}

	slog.Debug("saved slots", "count", len(payloads))
	return nil
}

// Revision returns how many times slot has been written, 0 if never.
func (s *SQLiteStorage) Revision(ctx context.Context, slot service.Slot) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSlot(slot); err != nil {
		return 0, err
	}

	var revision int
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM slots WHERE name = ?`, string(slot)).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision of slot %s: %w", slot, err)
	}
	return revision, nil
}
