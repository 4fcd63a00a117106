package get_branch_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mymy770/activelaser/internal/api/handlers"
	configService "github.com/mymy770/activelaser/internal/service/config"
)

const msgInvalidBranchID = "identifiant de succursale invalide"

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	cfg, err := h.service.GetByBranchID(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBranchID)

		default:
			h.logger.Error("GET /branches/%d/config - Failed to fetch config: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
