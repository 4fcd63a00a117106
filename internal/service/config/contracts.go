package config

import (
	"context"

	"github.com/mymy770/activelaser/internal/domain"
)

// ConfigRepository is the storage surface the service needs.
type ConfigRepository interface {
	GetByBranchID(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error)
}

// TransactionManager wraps the multi-statement room replacement.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
