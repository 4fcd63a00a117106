package create_booking

import (
	"context"

	createBooking "github.com/mymy770/activelaser/internal/usecase/create_booking"
)

// CreateBookingUseCase runs the allocation-backed create flow.
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
