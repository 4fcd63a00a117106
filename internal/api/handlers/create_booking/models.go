package create_booking

import (
	"fmt"
	"strings"

	"github.com/mymy770/activelaser/internal/scheduler"
	svcmodels "github.com/mymy770/activelaser/internal/service/bookings/models"
	createBooking "github.com/mymy770/activelaser/internal/usecase/create_booking"
)

// CreateBookingRequest is the HTTP body of POST /bookings. Time arrives as
// "HH:MM" and is snapped to the 15-minute grid before allocation.
type CreateBookingRequest struct {
	BranchID int64  `json:"branchId"`
	Date     string `json:"date"`
	Time     string `json:"time"`

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

// ToUseCaseRequest converts the HTTP body into the use case request,
// parsing the "HH:MM" start time and rounding it onto the grid.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	hour, minute, err := parseTime(r.Time)
	if err != nil {
		return nil, err
	}
	hour, minute = scheduler.RoundToGrid(hour, minute)

	return &createBooking.Request{
		BranchID:            r.BranchID,
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

// ConflictBody is the HTTP shape of an unresolved allocation conflict,
// carrying everything the confirmation dialog needs.
type ConflictBody struct {
	Type                 string `json:"type"`
	Title                string `json:"title"`
	Message              string `json:"message"`
	RequiresConfirmation bool   `json:"requiresConfirmation"`
	ExcessParticipants   int    `json:"excessParticipants,omitempty"`
	RoomName             string `json:"roomName,omitempty"`
	RoomCapacity         int    `json:"roomCapacity,omitempty"`
}

// CreateBookingResponse is the HTTP body of a create attempt.
type CreateBookingResponse struct {
	Success  bool                       `json:"success"`
	Booking  *svcmodels.BookingResponse `json:"booking,omitempty"`
	Conflict *ConflictBody              `json:"conflict,omitempty"`
}

// FromUseCaseResponse converts the use case outcome into the HTTP body.
func FromUseCaseResponse(result *createBooking.Response) *CreateBookingResponse {
	resp := &CreateBookingResponse{Success: result.Success}
	if result.Booking != nil {
		resp.Booking = svcmodels.FromDomainBooking(result.Booking)
	}
	if result.Conflict != nil {
		resp.Conflict = conflictBody(result.Conflict)
	}
	return resp
}

func conflictBody(c *scheduler.Conflict) *ConflictBody {
	presentation := scheduler.PresentConflict(*c)
	return &ConflictBody{
		Type:                 string(c.Type),
		Title:                presentation.Title,
		Message:              presentation.Message,
		RequiresConfirmation: scheduler.RequiresConfirmation(*c),
		ExcessParticipants:   presentation.ExcessParticipants,
		RoomName:             presentation.RoomName,
		RoomCapacity:         presentation.RoomCapacity,
	}
}
