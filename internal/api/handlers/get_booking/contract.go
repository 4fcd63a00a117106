package get_booking

import (
	"context"

	"github.com/mymy770/activelaser/internal/service/bookings/models"
)

// BookingsService covers the read operations without allocation.
type BookingsService interface {
	GetByID(ctx context.Context, id string) (*models.BookingResponse, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
