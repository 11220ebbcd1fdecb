// Package booking admits new reservations: it validates request shape,
// enforces the prepaid advance-notice rule and delegates the atomic
// overlap-check-and-insert to a reservation store.  Errors are typed so
// handlers can map them onto transport responses without inspecting
// message text.
package booking

import "fmt"

// ValidationError reports malformed input or a violated business
// precondition (such as the 48-hour prepaid rule).  The request will
// fail the same way until the caller changes it; handlers respond 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError reports that the requested table is already booked for
// an overlapping window.  Retrying unchanged is pointless; callers
// should offer alternate slots.  Handlers respond 409.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// NotFoundError reports that a referenced resource (table, restaurant,
// menu item) does not exist.  Handlers respond 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// RepositoryError wraps a storage failure.  It is not the caller's
// fault and may be retried with backoff.  Handlers log the wrapped
// error in full and respond 500 with a generic message.
type RepositoryError struct {
	Err error
}

func (e *RepositoryError) Error() string { return fmt.Sprintf("repository: %v", e.Err) }

func (e *RepositoryError) Unwrap() error { return e.Err }
