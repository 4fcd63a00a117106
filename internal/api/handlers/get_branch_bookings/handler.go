package get_branch_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mymy770/activelaser/internal/api/handlers"
	"github.com/mymy770/activelaser/internal/service/bookings"
)

const (
	msgInvalidBranchID = "identifiant de succursale invalide"
	msgInvalidInput    = "paramètres invalides, date attendue au format YYYY-MM-DD"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/bookings?date=YYYY-MM-DD&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	date := r.URL.Query().Get("date")
	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	list, err := h.service.GetBranchBookings(r.Context(), branchID, date, includeCancelled)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /branches/%d/bookings - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /branches/%d/bookings - Failed to fetch bookings: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
