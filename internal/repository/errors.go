package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes we translate at the gateway boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// foreignKeyViolation reports whether err is a foreign-key violation.
func foreignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}
