package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mymy770/activelaser/internal/api/handlers"
	updateBooking "github.com/mymy770/activelaser/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidTime        = "format d'heure invalide, attendu HH:MM"
	msgInvalidInput       = "paramètres de réservation invalides"
	msgBookingNotFound    = "réservation introuvable"
	msgBookingNotEditable = "réservation annulée, modification impossible"
	msgOverlapDetected    = "chevauchement détecté dans le planning, contactez un administrateur"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%s - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/%s - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%s - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%s - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrBookingNotEditable):
			h.logger.Warn("PUT /bookings/%s - Booking not editable", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingNotEditable)

		case errors.Is(err, updateBooking.ErrOverlapDetected):
			h.logger.Error("PUT /bookings/%s - Overlap in stored bookings: %v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgOverlapDetected)

		default:
			h.logger.Error("PUT /bookings/%s - Failed to update booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if !result.Success {
		h.logger.Info("PUT /bookings/%s - Allocation conflict %s", bookingID, response.Conflict.Type)
		handlers.RespondJSON(w, http.StatusConflict, response)
		return
	}

	h.logger.Info("PUT /bookings/%s - Booking updated: status=%s", bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}
