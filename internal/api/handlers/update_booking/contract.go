package update_booking

import (
	"context"

	updateBooking "github.com/mymy770/activelaser/internal/usecase/update_booking"
)

// UpdateBookingUseCase runs the re-allocation-backed edit flow.
type UpdateBookingUseCase interface {
	Execute(ctx context.Context, req *updateBooking.Request) (*updateBooking.Response, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
