// Package pgerr classifies PostgreSQL errors returned through lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const foreignKeyViolation = "foreign_key_violation"

// IsForeignKeyViolation reports whether err is a 23503 error, i.e. a row
// referenced a missing parent.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == foreignKeyViolation
}
