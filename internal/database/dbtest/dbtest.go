// Package dbtest provides throwaway sqlite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/saltyorg/todo-api/internal/config"
	"github.com/saltyorg/todo-api/internal/database"
)

// Schema mirrors database/schema.sql in sqlite syntax.
// AUTOINCREMENT keeps ids from being reused after deletes, like SERIAL.
const Schema = `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE
	)
`

// Config returns a sqlite database config pointing at path
func Config(path string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         path,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
}

// New creates a sqlite database in a temp dir with the todos table created.
// It is closed automatically when the test completes.
func New(t *testing.T) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	raw, err := sqlx.Open(config.DriverSQLite, path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if _, err := raw.Exec(Schema); err != nil {
		raw.Close()
		t.Fatalf("failed to create schema: %v", err)
	}
	if err := raw.Close(); err != nil {
		t.Fatalf("failed to close schema connection: %v", err)
	}

	db, err := database.New(context.Background(), Config(path))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		// Tests may close the pool themselves to simulate an outage.
		_ = db.Close()
	})

	return db
}
