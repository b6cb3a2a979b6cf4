// Package pgerrors classifies PostgreSQL errors returned by lib/pq.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes used by repositories
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeSerialization       = "40001"
)

// IsUniqueViolation reports a unique constraint violation.
// When constraints are given, the violated constraint must be one of them.
func IsUniqueViolation(err error, constraints ...string) bool {
	return is(err, CodeUniqueViolation, constraints...)
}

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool {
	return is(err, CodeForeignKeyViolation)
}

// IsSerializationFailure reports a conflict of serializable transactions
func IsSerializationFailure(err error) bool {
	return is(err, CodeSerialization)
}

func is(err error, code string, constraints ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pqErr.Constraint == c {
			return true
		}
	}
	return false
}
