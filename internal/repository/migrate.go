package repository

import (
	"context"
	"database/sql"
	_ "embed"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
