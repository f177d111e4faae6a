package booking

import "pitchbook/models"

// IsTerminal reports whether a status allows no further transition.
// The empty status is a legacy "active" booking and counts as
// non-terminal.
func IsTerminal(status string) bool {
	switch status {
	case models.BookingApproved, models.BookingRejected, models.BookingCancelled:
		return true
	}
	return false
}

// Occupies reports whether a booking in this status blocks the slot.
// Only cancelled and rejected bookings free it; pending, approved and
// legacy unset statuses all occupy.
func Occupies(status string) bool {
	return status != models.BookingCancelled && status != models.BookingRejected
}

// CanTransition validates a lifecycle move: pending may become approved or
// rejected, and any non-terminal booking may be cancelled.
func CanTransition(from, to string) error {
	if IsTerminal(from) {
		return ErrInvalidTransition
	}
	switch to {
	case models.BookingApproved, models.BookingRejected:
		if from != models.BookingPending {
			return ErrInvalidTransition
		}
		return nil
	case models.BookingCancelled:
		return nil
	}
	return ErrInvalidTransition
}
