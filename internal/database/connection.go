package database

import (
	"context"
	"database/sql"
)

// Queries are written with ? placeholders and rebound to the driver's style.

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.conn.Rebind(query), args...)
}

func (db *DB) get(ctx context.Context, dest any, query string, args ...any) error {
	return db.conn.GetContext(ctx, dest, db.conn.Rebind(query), args...)
}

func (db *DB) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return db.conn.SelectContext(ctx, dest, db.conn.Rebind(query), args...)
}
