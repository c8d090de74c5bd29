// Package db provides SQLite persistence for the ledger and its history.
package db

import "context"

// Schema creates the app_state table, which holds whole serialized values
// (the current ledger and the history log) by key.
const Schema = `
CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	_, err := conn.ExecContext(ctx, Schema)
	return err
}
