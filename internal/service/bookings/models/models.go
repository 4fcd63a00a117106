package models

import (
	"time"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// BookingResponse is the outward shape of one booking.
type BookingResponse struct {
	ID       string `json:"id"`
	BranchID int64  `json:"branchId"`
	Date     string `json:"date"`
	Type     string `json:"type"`

	Hour                int  `json:"hour"`
	Minute              int  `json:"minute"`
	DurationMinutes     int  `json:"durationMinutes"`
	GameDurationMinutes *int `json:"gameDurationMinutes,omitempty"`

	Participants int `json:"participants"`

	AssignedSlots []int  `json:"assignedSlots,omitempty"`
	AssignedRoom  *int   `json:"assignedRoom,omitempty"`
	Status        string `json:"status"`

	Surbooked               bool   `json:"surbooked"`
	SurbookedParticipants   int    `json:"surbookedParticipants,omitempty"`
	RoomOvercap             bool   `json:"roomOvercap"`
	RoomOvercapParticipants int    `json:"roomOvercapParticipants,omitempty"`
	ExceptionMessage        string `json:"exceptionMessage,omitempty"`

	CustomerFirstName *string `json:"customerFirstName,omitempty"`
	CustomerLastName  *string `json:"customerLastName,omitempty"`
	CustomerPhone     *string `json:"customerPhone,omitempty"`
	CustomerEmail     *string `json:"customerEmail,omitempty"`
	CustomerNotes     *string `json:"customerNotes,omitempty"`
	Color             *string `json:"color,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a booking list.
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking converts a domain booking to its outward shape.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                      b.ID,
		BranchID:                b.BranchID,
		Date:                    b.Date,
		Type:                    string(b.Type),
		Hour:                    b.Hour,
		Minute:                  b.Minute,
		DurationMinutes:         b.DurationMinutes,
		GameDurationMinutes:     b.GameDurationMinutes,
		Participants:            b.Participants,
		AssignedSlots:           b.AssignedSlots,
		AssignedRoom:            b.AssignedRoom,
		Status:                  string(b.Status),
		Surbooked:               b.Surbooked,
		SurbookedParticipants:   b.SurbookedParticipants,
		RoomOvercap:             b.RoomOvercap,
		RoomOvercapParticipants: b.RoomOvercapParticipants,
		CustomerFirstName:       b.CustomerFirstName,
		CustomerLastName:        b.CustomerLastName,
		CustomerPhone:           b.CustomerPhone,
		CustomerEmail:           b.CustomerEmail,
		CustomerNotes:           b.CustomerNotes,
		Color:                   b.Color,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}

	if msg, ok := scheduler.ExceptionMessage(b.ToSchedulerBooking()); ok {
		resp.ExceptionMessage = msg
	}

	return resp
}

// FromDomainBookingList converts a booking list.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	list := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: list, Total: len(list)}
}
