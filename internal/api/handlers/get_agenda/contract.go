package get_agenda

import (
	"context"

	getAgenda "github.com/mymy770/activelaser/internal/usecase/get_agenda"
)

// GetAgendaUseCase assembles the day view of one branch.
type GetAgendaUseCase interface {
	Execute(ctx context.Context, req *getAgenda.Request) (*getAgenda.Response, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
