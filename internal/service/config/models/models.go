package models

import (
	"time"

	"github.com/mymy770/activelaser/internal/domain"
)

// RoomConfig is the outward shape of one room.
type RoomConfig struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"maxCapacity"`
}

// ScheduleConfigResponse is the outward shape of a branch configuration.
// IsDefault marks the stock layout returned for branches never configured.
type ScheduleConfigResponse struct {
	BranchID       int64        `json:"branchId"`
	TotalSlots     int          `json:"totalSlots"`
	PlayersPerSlot int          `json:"playersPerSlot"`
	TotalCapacity  int          `json:"totalCapacity"`
	Rooms          []RoomConfig `json:"rooms"`
	IsDefault      bool         `json:"isDefault"`
	UpdatedAt      *time.Time   `json:"updatedAt,omitempty"`
}

// UpdateScheduleConfigRequest replaces a branch configuration wholesale.
type UpdateScheduleConfigRequest struct {
	BranchID       int64        `json:"-"`
	TotalSlots     int          `json:"totalSlots"`
	PlayersPerSlot int          `json:"playersPerSlot"`
	Rooms          []RoomConfig `json:"rooms"`
}

// FromDomainConfig converts a branch configuration to its outward shape.
func FromDomainConfig(cfg *domain.BranchScheduleConfig, isDefault bool) *ScheduleConfigResponse {
	rooms := make([]RoomConfig, 0, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		rooms = append(rooms, RoomConfig{ID: r.ID, Name: r.Name, MaxCapacity: r.MaxCapacity})
	}

	resp := &ScheduleConfigResponse{
		BranchID:       cfg.BranchID,
		TotalSlots:     cfg.TotalSlots,
		PlayersPerSlot: cfg.PlayersPerSlot,
		TotalCapacity:  cfg.TotalSlots * cfg.PlayersPerSlot,
		Rooms:          rooms,
		IsDefault:      isDefault,
	}
	if !isDefault && !cfg.UpdatedAt.IsZero() {
		updatedAt := cfg.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ToDomainConfig converts the update request into the domain entity.
func (r *UpdateScheduleConfigRequest) ToDomainConfig() *domain.BranchScheduleConfig {
	rooms := make([]domain.Room, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		rooms = append(rooms, domain.Room{ID: room.ID, Name: room.Name, MaxCapacity: room.MaxCapacity})
	}
	return &domain.BranchScheduleConfig{
		BranchID:       r.BranchID,
		TotalSlots:     r.TotalSlots,
		PlayersPerSlot: r.PlayersPerSlot,
		Rooms:          rooms,
	}
}
