package rentbook

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an ID does not match any record of the state.
var ErrNotFound = errors.New("not found")

// InvalidInputError reports a core record the engine cannot reasonably
// default, like a tenant without a lease start. Reports built on such a
// record would be misleading, so the engine fails instead of zeroing it.
type InvalidInputError struct {
	Entity string // "tenant", "property" or "payment"
	ID     string
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s %s", e.Entity, e.ID, e.Field, e.Reason)
}

func invalidTenant(t Tenant, field, reason string) error {
	return &InvalidInputError{Entity: "tenant", ID: t.ID, Field: field, Reason: reason}
}
