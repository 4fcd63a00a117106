package get_agenda

import (
	"strconv"

	getAgenda "github.com/mymy770/activelaser/internal/usecase/get_agenda"
)

// TimeMarkBody is one grid line of the agenda.
type TimeMarkBody struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
}

// RoomBody is one room column header.
type RoomBody struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"maxCapacity"`
}

// BookingBody is one booking as the agenda renders it.
type BookingBody struct {
	ID                  string `json:"id"`
	Type                string `json:"type"`
	Status              string `json:"status"`
	Hour                int    `json:"hour"`
	Minute              int    `json:"minute"`
	DurationMinutes     int    `json:"durationMinutes"`
	GameDurationMinutes *int   `json:"gameDurationMinutes,omitempty"`
	Participants        int    `json:"participants"`

	AssignedSlots []int  `json:"assignedSlots,omitempty"`
	AssignedRoom  *int   `json:"assignedRoom,omitempty"`
	RoomName      string `json:"roomName,omitempty"`
	RoomStartKey  string `json:"roomStartKey,omitempty"`
	RoomEndKey    string `json:"roomEndKey,omitempty"`

	IsSplit    bool `json:"isSplit"`
	SplitParts int  `json:"splitParts,omitempty"`
	SplitIndex int  `json:"splitIndex,omitempty"`

	ExceptionMessage    string `json:"exceptionMessage,omitempty"`
	SurbookLabel        string `json:"surbookLabel,omitempty"`
	RoomCapacityWarning string `json:"roomCapacityWarning,omitempty"`

	CustomerFirstName *string `json:"customerFirstName,omitempty"`
	CustomerLastName  *string `json:"customerLastName,omitempty"`
	CustomerNotes     *string `json:"customerNotes,omitempty"`
	Color             *string `json:"color,omitempty"`
}

// AgendaResponse is the HTTP body of the day view. The occupancy maps are
// keyed by time key, then by slot/room id as decimal strings.
type AgendaResponse struct {
	BranchID int64  `json:"branchId"`
	Date     string `json:"date"`

	TotalSlots     int        `json:"totalSlots"`
	PlayersPerSlot int        `json:"playersPerSlot"`
	Rooms          []RoomBody `json:"rooms"`

	Grid []TimeMarkBody `json:"grid"`

	GameSlots  map[string]map[string]string `json:"gameSlots"`
	EventRooms map[string]map[string]string `json:"eventRooms"`

	Bookings []BookingBody `json:"bookings"`
}

// FromUseCaseResponse converts the use case outcome into the HTTP body.
func FromUseCaseResponse(result *getAgenda.Response) *AgendaResponse {
	resp := &AgendaResponse{
		BranchID:       result.BranchID,
		Date:           result.Date,
		TotalSlots:     result.TotalSlots,
		PlayersPerSlot: result.PlayersPerSlot,
		Rooms:          make([]RoomBody, 0, len(result.Rooms)),
		Grid:           make([]TimeMarkBody, 0, len(result.Grid)),
		GameSlots:      make(map[string]map[string]string, len(result.GameSlots)),
		EventRooms:     make(map[string]map[string]string, len(result.EventRooms)),
		Bookings:       make([]BookingBody, 0, len(result.Bookings)),
	}

	for _, room := range result.Rooms {
		resp.Rooms = append(resp.Rooms, RoomBody{ID: room.ID, Name: room.Name, MaxCapacity: room.MaxCapacity})
	}

	for _, mark := range result.Grid {
		resp.Grid = append(resp.Grid, TimeMarkBody{Key: string(mark.Key), Label: mark.Label})
	}

	for key, cells := range result.GameSlots {
		row := make(map[string]string, len(cells))
		for slotID, bookingID := range cells {
			row[strconv.Itoa(int(slotID))] = bookingID
		}
		resp.GameSlots[string(key)] = row
	}

	for key, cells := range result.EventRooms {
		row := make(map[string]string, len(cells))
		for roomID, bookingID := range cells {
			row[strconv.Itoa(int(roomID))] = bookingID
		}
		resp.EventRooms[string(key)] = row
	}

	for _, b := range result.Bookings {
		resp.Bookings = append(resp.Bookings, BookingBody{
			ID:                  b.ID,
			Type:                string(b.Type),
			Status:              string(b.Status),
			Hour:                b.Hour,
			Minute:              b.Minute,
			DurationMinutes:     b.DurationMinutes,
			GameDurationMinutes: b.GameDurationMinutes,
			Participants:        b.Participants,
			AssignedSlots:       b.AssignedSlots,
			AssignedRoom:        b.AssignedRoom,
			RoomName:            b.RoomName,
			RoomStartKey:        string(b.RoomStartKey),
			RoomEndKey:          string(b.RoomEndKey),
			IsSplit:             b.IsSplit,
			SplitParts:          b.SplitParts,
			SplitIndex:          b.SplitIndex,
			ExceptionMessage:    b.ExceptionMessage,
			SurbookLabel:        b.SurbookLabel,
			RoomCapacityWarning: b.RoomCapacityWarning,
			CustomerFirstName:   b.CustomerFirstName,
			CustomerLastName:    b.CustomerLastName,
			CustomerNotes:       b.CustomerNotes,
			Color:               b.Color,
		})
	}

	return resp
}
