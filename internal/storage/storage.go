// Package storage is the persistence adapter: an asynchronous key-value
// store over sqlite, keyed by named slots. Each slot is read and written
// independently; there is no cross-slot transactionality.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Slot names a persisted value.
type Slot string

const (
	SlotSubscriptions Slot = "subscriptions"
	SlotHistory       Slot = "history"
	SlotIncome        Slot = "monthly_income"
	SlotLanguage      Slot = "language"
	SlotDarkMode      Slot = "dark_mode"
)

// Slots lists every persisted slot, in startup-read order.
var Slots = []Slot{SlotSubscriptions, SlotHistory, SlotIncome, SlotLanguage, SlotDarkMode}

// ErrNotFound reports a slot that has never been written.
var ErrNotFound = errors.New("storage: slot not found")

// DB wraps the sqlite handle behind the slot API.
type DB struct {
	db *sql.DB
}

// Open opens sqlite with sensible defaults.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Get reads a slot's raw JSON value. Returns ErrNotFound for an unwritten slot.
func (d *DB) Get(ctx context.Context, slot Slot) ([]byte, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, string(slot)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return []byte(value), nil
}

// Put writes a slot's raw JSON value, replacing any previous value.
// Last write wins per slot.
func (d *DB) Put(ctx context.Context, slot Slot, value []byte) error {
	_, err := d.db.ExecContext(ctx, `
	INSERT INTO slots(key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value;
	`, string(slot), string(value))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// Reset wipes all slots. It keeps the schema intact so the app can continue running.
func (d *DB) Reset(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("reset slots: %w", err)
	}
	_, _ = d.db.ExecContext(ctx, "VACUUM")
	return nil
}
