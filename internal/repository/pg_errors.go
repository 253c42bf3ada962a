package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories react to
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgError unwraps err into a *pgconn.PgError carrying code, if any
func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	_, ok := pgError(err, pgUniqueViolation)
	return ok
}

// foreignKeyConstraint returns the violated constraint name for a 23503 error
func foreignKeyConstraint(err error) (string, bool) {
	pgErr, ok := pgError(err, pgForeignKeyViolation)
	if !ok {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}
