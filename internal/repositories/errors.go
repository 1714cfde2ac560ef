package repositories

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a required row does not exist.
var ErrNotFound = errors.New("record not found")

// uniqueViolationCode is PostgreSQL's error code for unique
// constraint violations.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint
// violation. Callers treat these as benign duplicates rather than
// failures.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound)
}
