package get_agenda

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mymy770/activelaser/internal/api/handlers"
	getAgenda "github.com/mymy770/activelaser/internal/usecase/get_agenda"
)

const (
	msgInvalidBranchID = "identifiant de succursale invalide"
	msgInvalidInput    = "paramètres invalides, date attendue au format YYYY-MM-DD"
)

type Handler struct {
	useCase GetAgendaUseCase
	logger  Logger
}

func NewHandler(useCase GetAgendaUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/agenda?date=YYYY-MM-DD&from=9&to=24
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	req := &getAgenda.Request{
		BranchID: branchID,
		Date:     r.URL.Query().Get("date"),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		req.FromHour, _ = strconv.Atoi(from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		req.ToHour, _ = strconv.Atoi(to)
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAgenda.ErrInvalidInput):
			h.logger.Warn("GET /branches/%d/agenda - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /branches/%d/agenda - Failed to build agenda: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
