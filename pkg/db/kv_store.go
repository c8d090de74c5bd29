package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVStore stores whole values by key in the app_state table.
type KVStore struct {
	conn *Connection
}

// NewKVStore creates a new KVStore instance.
func NewKVStore(conn *Connection) *KVStore {
	return &KVStore{conn: conn}
}

// Get retrieves a value. found is false when the key has never been set.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM app_state WHERE key = ?`

	var value string
	err := s.conn.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, true, nil
}

// Set overwrites a value.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.conn.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// UpdatedAt returns when a key was last written. ok is false for absent keys.
func (s *KVStore) UpdatedAt(ctx context.Context, key string) (t time.Time, ok bool, err error) {
	query := `SELECT updated_at FROM app_state WHERE key = ?`

	err = s.conn.db.QueryRowContext(ctx, query, key).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get update time of %s: %w", key, err)
	}

	return t, true, nil
}

// Close closes the underlying connection.
func (s *KVStore) Close() error {
	return s.conn.Close()
}
