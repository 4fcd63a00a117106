package update_booking

import (
	"fmt"
	"strings"

	"github.com/mymy770/activelaser/internal/scheduler"
	svcmodels "github.com/mymy770/activelaser/internal/service/bookings/models"
	updateBooking "github.com/mymy770/activelaser/internal/usecase/update_booking"
)

// UpdateBookingRequest is the HTTP body of PUT /bookings/{id}. The whole
// scheduling shape is re-submitted; the booking is re-placed from scratch.
type UpdateBookingRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`

	EventType *string `json:"eventType,omitempty"`

	Participants        int  `json:"participants"`
	DurationMinutes     int  `json:"durationMinutes,omitempty"`
	GameDurationMinutes *int `json:"gameDurationMinutes,omitempty"`

	AllowSurbook     bool `json:"allowSurbook,omitempty"`
	AllowRoomOvercap bool `json:"allowRoomOvercap,omitempty"`

	CustomerFirstName *string `json:"customerFirstName,omitempty"`
	CustomerLastName  *string `json:"customerLastName,omitempty"`
	CustomerPhone     *string `json:"customerPhone,omitempty"`
	CustomerEmail     *string `json:"customerEmail,omitempty"`
	CustomerNotes     *string `json:"customerNotes,omitempty"`
	Color             *string `json:"color,omitempty"`
}

// ToUseCaseRequest converts the HTTP body into the use case request.
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID string) (*updateBooking.Request, error) {
	hour, minute, err := parseTime(r.Time)
	if err != nil {
		return nil, err
	}
	hour, minute = scheduler.RoundToGrid(hour, minute)

	return &updateBooking.Request{
		BookingID:           bookingID,
		Date:                r.Date,
		Hour:                hour,
		Minute:              minute,
		EventType:           r.EventType,
		Participants:        r.Participants,
		DurationMinutes:     r.DurationMinutes,
		GameDurationMinutes: r.GameDurationMinutes,
		AllowSurbook:        r.AllowSurbook,
		AllowRoomOvercap:    r.AllowRoomOvercap,
		CustomerFirstName:   r.CustomerFirstName,
		CustomerLastName:    r.CustomerLastName,
		CustomerPhone:       r.CustomerPhone,
		CustomerEmail:       r.CustomerEmail,
		CustomerNotes:       r.CustomerNotes,
		Color:               r.Color,
	}, nil
}

func parseTime(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", value)
	}
	return hour, minute, nil
}

// ConflictBody is the HTTP shape of an unresolved allocation conflict.
type ConflictBody struct {
	Type                 string `json:"type"`
	Title                string `json:"title"`
	Message              string `json:"message"`
	RequiresConfirmation bool   `json:"requiresConfirmation"`
	ExcessParticipants   int    `json:"excessParticipants,omitempty"`
	RoomName             string `json:"roomName,omitempty"`
	RoomCapacity         int    `json:"roomCapacity,omitempty"`
}

// UpdateBookingResponse is the HTTP body of an edit attempt. On a conflict
// the stored booking keeps its previous placement.
type UpdateBookingResponse struct {
	Success  bool                       `json:"success"`
	Booking  *svcmodels.BookingResponse `json:"booking,omitempty"`
	Conflict *ConflictBody              `json:"conflict,omitempty"`
}

// FromUseCaseResponse converts the use case outcome into the HTTP body.
func FromUseCaseResponse(result *updateBooking.Response) *UpdateBookingResponse {
	resp := &UpdateBookingResponse{Success: result.Success}
	if result.Booking != nil {
		resp.Booking = svcmodels.FromDomainBooking(result.Booking)
	}
	if result.Conflict != nil {
		presentation := scheduler.PresentConflict(*result.Conflict)
		resp.Conflict = &ConflictBody{
			Type:                 string(result.Conflict.Type),
			Title:                presentation.Title,
			Message:              presentation.Message,
			RequiresConfirmation: scheduler.RequiresConfirmation(*result.Conflict),
			ExcessParticipants:   presentation.ExcessParticipants,
			RoomName:             presentation.RoomName,
			RoomCapacity:         presentation.RoomCapacity,
		}
	}
	return resp
}
