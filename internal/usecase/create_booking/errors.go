package create_booking

import "errors"

var (
	// ErrInvalidInput means the request failed validation before any
	// allocation was attempted.
	ErrInvalidInput = errors.New("create_booking: invalid input")

	// ErrOverlapDetected means the stored day already contains two bookings
	// claiming the same resource cell. Fatal; never auto-resolved.
	ErrOverlapDetected = errors.New("create_booking: overlap detected in stored bookings")

	// ErrInternal wraps infrastructure failures.
	ErrInternal = errors.New("create_booking: internal error")
)
