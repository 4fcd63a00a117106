package update_branch_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mymy770/activelaser/internal/api/handlers"
	configService "github.com/mymy770/activelaser/internal/service/config"
	"github.com/mymy770/activelaser/internal/service/config/models"
)

const (
	msgInvalidBranchID    = "identifiant de succursale invalide"
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidConfig      = "configuration invalide"
)

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

// Handle PUT /api/v1/branches/{branchId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/%d/config - Invalid request body: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BranchID = branchID

	cfg, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /branches/%d/config - Invalid config: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /branches/%d/config - Failed to update config: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/%d/config - Config updated", branchID)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
