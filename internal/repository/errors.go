// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking admitter to distinguish between different
// failure scenarios without parsing driver errors. For example,
// ErrConflict signals that an insert lost to existing state (a
// double-booked window or a duplicate table number), while
// ErrForbidden indicates that the current user does not own the
// resource being modified.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot proceed
// because of conflicting state, such as a reservation window that
// overlaps an existing one or a duplicate table number. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrRestaurantNotFound is returned when a referenced restaurant
// does not exist.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrTableNotFound is returned when a referenced table does not
// exist (or belongs to a different restaurant than claimed).
var ErrTableNotFound = errors.New("table not found")

// ErrMenuItemNotFound is returned when a referenced menu item does
// not exist within the given restaurant.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrRuleNotFound is returned when a referenced pricing rule does
// not exist.
var ErrRuleNotFound = errors.New("pricing rule not found")
