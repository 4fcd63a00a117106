package create_booking

import (
	"errors"
	"net/http"

	"github.com/mymy770/activelaser/internal/api/handlers"
	createBooking "github.com/mymy770/activelaser/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidTime        = "format d'heure invalide, attendu HH:MM"
	msgInvalidInput       = "paramètres de réservation invalides"
	msgOverlapDetected    = "chevauchement détecté dans le planning, contactez un administrateur"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
//
// An unresolved conflict is a 409 carrying the conflict body, so the
// dashboard can open the confirmation dialog and re-submit with the matching
// allow* flag.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrOverlapDetected):
			h.logger.Error("POST /bookings - Overlap in stored bookings: branch=%d date=%s: %v",
				req.BranchID, req.Date, err)
			handlers.RespondError(w, http.StatusConflict, msgOverlapDetected)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: branch=%d date=%s: %v",
				req.BranchID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if !result.Success {
		h.logger.Info("POST /bookings - Allocation conflict %s: branch=%d date=%s",
			response.Conflict.Type, req.BranchID, req.Date)
		handlers.RespondJSON(w, http.StatusConflict, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%s branch=%d date=%s",
		result.Booking.ID, req.BranchID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
