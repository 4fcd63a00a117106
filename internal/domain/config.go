package domain

import (
	"time"

	"github.com/mymy770/activelaser/internal/scheduler"
)

// Room describes one bookable event room of a branch.
type Room struct {
	ID          int
	Name        string
	MaxCapacity int
}

// BranchScheduleConfig is the per-branch capacity configuration: how many
// parallel game slots exist, how many players each takes, and which rooms
// can be booked. Operator-adjustable, so it is always passed to the
// scheduler as explicit values, never compiled in.
type BranchScheduleConfig struct {
	ID             int64
	BranchID       int64
	TotalSlots     int
	PlayersPerSlot int
	Rooms          []Room

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToGridConfig converts the branch configuration into the scheduler's form.
func (c *BranchScheduleConfig) ToGridConfig() scheduler.GridConfig {
	rooms := make([]scheduler.RoomConfig, len(c.Rooms))
	for i, r := range c.Rooms {
		rooms[i] = scheduler.RoomConfig{
			ID:          scheduler.RoomID(r.ID),
			Name:        r.Name,
			MaxCapacity: r.MaxCapacity,
		}
	}
	return scheduler.GridConfig{
		TotalSlots:     c.TotalSlots,
		PlayersPerSlot: c.PlayersPerSlot,
		Rooms:          rooms,
	}
}

// RoomByID returns the room with the given id, or nil.
func (c *BranchScheduleConfig) RoomByID(id int) *Room {
	for i := range c.Rooms {
		if c.Rooms[i].ID == id {
			return &c.Rooms[i]
		}
	}
	return nil
}

// DefaultBranchScheduleConfig returns the stock venue layout used when a
// branch has no persisted configuration yet.
func DefaultBranchScheduleConfig(branchID int64) *BranchScheduleConfig {
	rooms := make([]Room, 0, len(DefaultRoomCapacities))
	for i, capacity := range DefaultRoomCapacities {
		rooms = append(rooms, Room{
			ID:          i + 1,
			Name:        DefaultRoomNames[i],
			MaxCapacity: capacity,
		})
	}
	return &BranchScheduleConfig{
		BranchID:       branchID,
		TotalSlots:     DefaultTotalSlots,
		PlayersPerSlot: DefaultPlayersPerSlot,
		Rooms:          rooms,
	}
}
