package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// isUniqueViolation works for both SQLite and PostgreSQL error texts.
func isUniqueViolation(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}

// notFound maps sql.ErrNoRows to the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// expectRows returns sentinel when a write touched no rows.
func expectRows(result sql.Result, sentinel error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sentinel
	}

	return nil
}
