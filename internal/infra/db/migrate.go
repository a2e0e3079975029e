package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the users table and its indexes. Safe to run on every start.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    image         TEXT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create users: %w", err)
	}

	indexes := []string{
		// FindByEmail は lower(email) で照合する
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users(lower(email))`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// MigrateDown drops the users table. All accounts are lost.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`DROP INDEX IF EXISTS idx_users_email_lower`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
