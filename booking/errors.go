package booking

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a terminal booking is asked to
// change status. Terminal transitions are rejected, never silently
// ignored.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound means the referenced booking or field does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError means the proposed interval collides with an existing
// non-terminal booking. User-actionable, not a system fault.
type ConflictError struct {
	Date string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict on %s", e.Date)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// PolicyError names the booking policy rule a proposal violated.
type PolicyError struct {
	Rule string // e.g. "working_hours", "minimum_duration", "advance_window"
}

func (e *PolicyError) Error() string {
	return "booking policy violation: " + e.Rule
}

func IsPolicyViolation(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
