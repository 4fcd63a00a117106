package update_booking

import "errors"

var (
	// ErrInvalidInput means the request failed validation before any
	// allocation was attempted.
	ErrInvalidInput = errors.New("update_booking: invalid input")

	// ErrBookingNotFound means the booking does not exist.
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrBookingNotEditable means the booking's lifecycle state forbids
	// editing (it was cancelled).
	ErrBookingNotEditable = errors.New("update_booking: booking is not editable")

	// ErrOverlapDetected means the stored day already contains two bookings
	// claiming the same resource cell. Fatal; never auto-resolved.
	ErrOverlapDetected = errors.New("update_booking: overlap detected in stored bookings")

	// ErrInternal wraps infrastructure failures.
	ErrInternal = errors.New("update_booking: internal error")
)
