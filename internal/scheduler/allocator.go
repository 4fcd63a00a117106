package scheduler

import (
	"fmt"
	"sort"
)

// paramsGameWindowKeys returns the grid cells the requested play window
// occupies: the centered window when the request embeds a game inside a
// longer event, the plain window otherwise.
func paramsGameWindowKeys(params AllocationParams) []TimeKey {
	duration := params.GameDurationMinutes
	if duration == 0 {
		duration = params.DurationMinutes
	}
	if duration == 0 {
		duration = 60
	}
	return CalculateCenteredGameTime(params.Hour, params.Minute, duration).Keys()
}

// paramsEventWindowKeys returns the grid cells the requested room window
// occupies, using the event's own duration.
func paramsEventWindowKeys(params AllocationParams) []TimeKey {
	duration := params.DurationMinutes
	if duration == 0 {
		duration = 120
	}
	endH, endM := FromMinutes(ToMinutes(params.Hour, params.Minute) + duration)
	return RangeToKeys(params.Hour, params.Minute, endH, endM)
}

// SlotsNeeded returns how many slots a headcount requires, capped at the
// branch's slot count. Zero participants need zero slots.
func SlotsNeeded(participants int, cfg GridConfig) int {
	if participants <= 0 || cfg.PlayersPerSlot <= 0 {
		return 0
	}
	needed := (participants + cfg.PlayersPerSlot - 1) / cfg.PlayersPerSlot
	if needed > cfg.TotalSlots {
		return cfg.TotalSlots
	}
	return needed
}

// findFreeSlots scans slot ids in ascending order and collects those free
// across the entire window. A slot qualifies only if free at every instant,
// not merely at the start. The scan is exhaustive so callers also learn the
// total free capacity when fewer than limit slots exist.
func findFreeSlots(state *OccupancyState, keys []TimeKey, cfg GridConfig, excludeBookingID string) []SlotID {
	free := make([]SlotID, 0, cfg.TotalSlots)
	for id := SlotID(1); id <= SlotID(cfg.TotalSlots); id++ {
		if state.AreSlotsFree([]SlotID{id}, keys, excludeBookingID) {
			free = append(free, id)
		}
	}
	return free
}

// findSlotAllocation selects the lowest-id slots free for the whole window.
// Returns the allocation on success, a FULL or NEED_SURBOOK_CONFIRM conflict
// otherwise. With allowSurbook the shortfall is accepted and whatever free
// slots exist are taken as-is.
func findSlotAllocation(params AllocationParams, state *OccupancyState, cfg GridConfig, allowSurbook bool) (*SlotAllocation, *Conflict) {
	needed := SlotsNeeded(params.Participants, cfg)
	if needed == 0 {
		return nil, nil
	}

	keys := paramsGameWindowKeys(params)
	free := findFreeSlots(state, keys, cfg, params.ExcludeBookingID)

	if len(free) >= needed {
		return deriveSlotAllocation(free[:needed]), nil
	}

	if len(free) == 0 {
		return nil, &Conflict{
			Type:    ConflictFull,
			Message: "Tous les slots sont occupés sur ce créneau",
			Details: &ConflictDetails{
				AvailableSlots: 0,
				NeededSlots:    needed,
				Participants:   params.Participants,
			},
		}
	}

	excess := params.Participants - len(free)*cfg.PlayersPerSlot

	if allowSurbook {
		// Confirmed surbooking: take the free slots as-is, no re-search.
		return deriveSlotAllocation(free), nil
	}

	return nil, &Conflict{
		Type: ConflictNeedSurbookConfirm,
		Message: fmt.Sprintf("Capacité insuffisante: %d slot(s) libre(s) pour %d nécessaire(s), +%d personnes en surbooking",
			len(free), needed, excess),
		Details: &ConflictDetails{
			AvailableSlots:     len(free),
			NeededSlots:        needed,
			Participants:       params.Participants,
			ExcessParticipants: excess,
		},
	}
}

// findRoomAllocation selects a room for an event window. Rooms are scanned
// in ascending id order; the first room free for the whole window with
// sufficient capacity wins. When every free room is undersized, the first
// free one is proposed with NEED_ROOM_OVERCAP_CONFIRM (accepted directly
// under allowOvercap). No free room at all is NO_ROOM.
func findRoomAllocation(params AllocationParams, state *OccupancyState, cfg GridConfig, allowOvercap bool) (*RoomAllocation, *Conflict) {
	keys := paramsEventWindowKeys(params)

	rooms := make([]RoomConfig, len(cfg.Rooms))
	copy(rooms, cfg.Rooms)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	var firstFree *RoomConfig
	for i := range rooms {
		if !state.IsRoomFreeForTimeRange(rooms[i].ID, keys, params.ExcludeBookingID) {
			continue
		}
		if firstFree == nil {
			firstFree = &rooms[i]
		}
		if rooms[i].MaxCapacity >= params.Participants {
			return roomAllocationFor(rooms[i].ID, params), nil
		}
	}

	if firstFree == nil {
		return nil, &Conflict{
			Type:    ConflictNoRoom,
			Message: "Aucune salle disponible sur ce créneau",
			Details: &ConflictDetails{Participants: params.Participants},
		}
	}

	excess := params.Participants - firstFree.MaxCapacity

	if allowOvercap {
		// Confirmed overrun: first free candidate, even though undersized.
		return roomAllocationFor(firstFree.ID, params), nil
	}

	return nil, &Conflict{
		Type: ConflictNeedRoomOvercapConfirm,
		Message: fmt.Sprintf("Salle %d limitée à %d personnes, +%d en dépassement",
			firstFree.ID, firstFree.MaxCapacity, excess),
		Details: &ConflictDetails{
			RoomID:             firstFree.ID,
			RoomCapacity:       firstFree.MaxCapacity,
			Participants:       params.Participants,
			ExcessParticipants: excess,
		},
	}
}

func roomAllocationFor(roomID RoomID, params AllocationParams) *RoomAllocation {
	duration := params.DurationMinutes
	if duration == 0 {
		duration = 120
	}
	endH, endM := FromMinutes(ToMinutes(params.Hour, params.Minute) + duration)
	return &RoomAllocation{
		RoomID:       roomID,
		StartTimeKey: ToTimeKey(params.Hour, params.Minute),
		EndTimeKey:   ToTimeKey(endH, endM),
	}
}

// Allocate searches the occupancy state for a feasible placement. A game
// booking needs only a slot allocation; an event additionally needs a room
// for its own window. Selection is deterministic (lowest ids first), so the
// same params against the same state always yield the same resources.
func Allocate(params AllocationParams, state *OccupancyState, cfg GridConfig) AllocationResult {
	return AllocateWithOverride(params, state, cfg, Override{})
}

// AllocateWithOverride is Allocate with explicit, human-confirmed exceptions.
// Confirmation-required conflicts are non-fatal: the caller re-submits with
// the matching override set, and the allocator then accepts the first
// candidate resource instead of re-running the search.
func AllocateWithOverride(params AllocationParams, state *OccupancyState, cfg GridConfig, ov Override) AllocationResult {
	slotAlloc, conflict := findSlotAllocation(params, state, cfg, ov.AllowSurbook)
	if conflict != nil {
		return AllocationResult{Success: false, Conflict: conflict}
	}

	allocation := &Allocation{SlotAllocation: slotAlloc}

	if params.Type == BookingTypeEvent {
		// An event keeps its room even with zero participants.
		roomAlloc, conflict := findRoomAllocation(params, state, cfg, ov.AllowRoomOvercap)
		if conflict != nil {
			return AllocationResult{Success: false, Conflict: conflict}
		}
		allocation.RoomAllocation = roomAlloc
	}

	return AllocationResult{Success: true, Allocation: allocation}
}

// CheckRoomCapacity classifies a room assignment against a headcount for
// report-only call sites (agenda annotations). Unlike the confirmation flow
// it returns a plain ROOM_OVERCAP conflict, or nil when the room fits.
func CheckRoomCapacity(room RoomConfig, participants int) *Conflict {
	if participants <= room.MaxCapacity {
		return nil
	}
	excess := participants - room.MaxCapacity
	return &Conflict{
		Type: ConflictRoomOvercap,
		Message: fmt.Sprintf("Salle %d limitée à %d personnes, +%d en dépassement",
			room.ID, room.MaxCapacity, excess),
		Details: &ConflictDetails{
			RoomID:             room.ID,
			RoomCapacity:       room.MaxCapacity,
			Participants:       participants,
			ExcessParticipants: excess,
		},
	}
}

// CheckConsistency re-scans a booking list for two bookings claiming the
// same (resource, timeKey) cell — a state the allocator never produces
// itself, so it signals a caller bug or a concurrent edit race. The returned
// OVERLAP_DETECTED conflict is fatal for the attempted operation and must
// never be auto-resolved.
func CheckConsistency(bookings []Booking, date DateKey) *Conflict {
	slotClaims := make(map[TimeKey]map[SlotID]string)
	roomClaims := make(map[TimeKey]map[RoomID]string)

	for _, b := range bookings {
		if b.Date != date {
			continue
		}

		if len(b.AssignedSlots) > 0 {
			for _, key := range gameWindowKeys(b) {
				cells, ok := slotClaims[key]
				if !ok {
					cells = make(map[SlotID]string)
					slotClaims[key] = cells
				}
				for _, slotID := range b.AssignedSlots {
					if other, taken := cells[slotID]; taken && other != b.ID {
						return overlapConflict(fmt.Sprintf("slot %d à %s réclamé par %s et %s",
							slotID, key, other, b.ID))
					}
					cells[slotID] = b.ID
				}
			}
		}

		if b.Type == BookingTypeEvent && b.AssignedRoom != 0 {
			for _, key := range eventWindowKeys(b) {
				cells, ok := roomClaims[key]
				if !ok {
					cells = make(map[RoomID]string)
					roomClaims[key] = cells
				}
				if other, taken := cells[b.AssignedRoom]; taken && other != b.ID {
					return overlapConflict(fmt.Sprintf("salle %d à %s réclamée par %s et %s",
						b.AssignedRoom, key, other, b.ID))
				}
				cells[b.AssignedRoom] = b.ID
			}
		}
	}

	return nil
}

func overlapConflict(detail string) *Conflict {
	return &Conflict{
		Type:    ConflictOverlapDetected,
		Message: "Chevauchement détecté: " + detail,
	}
}
