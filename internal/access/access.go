// Package access holds the row-level visibility rules shared by every
// resource: superusers see and act on all rows, everyone else only on the
// rows they own.
package access

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not enough permissions")
	ErrUnknownOwner = errors.New("owner does not exist")
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID          uuid.UUID
	IsSuperuser bool
}

// CanAccess reports whether the caller may see or modify a row owned by ownerID.
func (c Caller) CanAccess(ownerID uuid.UUID) bool {
	return c.IsSuperuser || c.ID == ownerID
}

// Authorize returns ErrForbidden when the caller may not touch the row.
func Authorize(c Caller, ownerID uuid.UUID) error {
	if !c.CanAccess(ownerID) {
		return ErrForbidden
	}
	return nil
}

// Filter is a WHERE clause plus its positional arguments. The zero value
// matches every row.
type Filter struct {
	Clause string
	Args   []any
}

// Scope returns the filter restricting a query on ownerColumn to the rows
// the caller may see. ownerColumn must be a trusted identifier.
func Scope(c Caller, ownerColumn string) Filter {
	if c.IsSuperuser {
		return Filter{}
	}
	return Filter{
		Clause: fmt.Sprintf(" WHERE %s = $1", ownerColumn),
		Args:   []any{c.ID},
	}
}

// Next returns the placeholder index following the filter's arguments.
func (f Filter) Next() int {
	return len(f.Args) + 1
}
