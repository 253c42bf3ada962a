package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the statement surface shared by *sql.DB and *sql.Tx, so a
// repository can run standalone or inside a caller's transaction
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn in a transaction that commits only when fn returns nil
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// inTx runs fn in a fresh transaction, or straight on db when db already is one
func inTx(ctx context.Context, db DBTX, fn func(q DBTX) error) error {
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fn(db)
	}
	return WithTx(ctx, sqlDB, func(tx *sql.Tx) error { return fn(tx) })
}
