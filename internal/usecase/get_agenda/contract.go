package get_agenda

import (
	"context"

	"github.com/mymy770/activelaser/internal/domain"
)

// BookingRepository is the storage surface this use case needs.
type BookingRepository interface {
	GetByBranchAndDate(ctx context.Context, branchID int64, date string, includeCancelled bool) ([]*domain.Booking, error)
}

// ConfigRepository loads per-branch scheduling configuration.
type ConfigRepository interface {
	GetByBranchID(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
