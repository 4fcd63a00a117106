package update_booking

import (
	"context"

	"github.com/mymy770/activelaser/internal/domain"
)

// BookingRepository is the storage surface this use case needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByBranchAndDate(ctx context.Context, branchID int64, date string, includeCancelled bool) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConfigRepository loads per-branch scheduling configuration.
type ConfigRepository interface {
	GetByBranchID(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
}

// TransactionManager runs the read-allocate-write sequence atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics records allocation outcomes.
type Metrics interface {
	ObserveAllocation(outcome string)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
