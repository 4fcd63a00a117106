package get_branch_config

import (
	"context"

	"github.com/mymy770/activelaser/internal/service/config/models"
)

// ConfigService manages per-branch scheduling configuration.
type ConfigService interface {
	GetByBranchID(ctx context.Context, branchID int64) (*models.ScheduleConfigResponse, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
