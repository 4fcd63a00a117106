package get_agenda

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// UseCase assembles the agenda view of one branch day: the time grid, the
// occupancy projections, and each booking annotated with split markers,
// exception messages and room capacity warnings. Read-only, no transaction.
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	logger      Logger
}

// NewUseCase creates the use case.
func NewUseCase(bookingRepo BookingRepository, configRepo ConfigRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		logger:      logger,
	}
}

// Execute builds the agenda.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate the selection and apply the default display window.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAgenda: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the branch configuration, falling back to the stock layout.
	cfg, err := uc.configRepo.GetByBranchID(ctx, req.BranchID)
	if errors.Is(err, branchconfig.ErrConfigNotFound) {
		cfg = domain.DefaultBranchScheduleConfig(req.BranchID)
	} else if err != nil {
		uc.logger.Error("GetAgenda: failed to load branch config: %v", err)
		return nil, fmt.Errorf("%w: failed to load branch config: %v", ErrInternal, err)
	}

	// 3. Load the day's active bookings and project occupancy.
	stored, err := uc.bookingRepo.GetByBranchAndDate(ctx, req.BranchID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAgenda: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}
	active := domain.ToSchedulerBookings(stored)
	state := scheduler.BuildOccupancyState(active, scheduler.DateKey(req.Date))

	// 4. Assemble the response.
	resp := &Response{
		BranchID:       req.BranchID,
		Date:           req.Date,
		TotalSlots:     cfg.TotalSlots,
		PlayersPerSlot: cfg.PlayersPerSlot,
		Rooms:          roomViews(cfg),
		Grid:           buildGrid(req.FromHour, req.ToHour),
		GameSlots:      state.GameSlots,
		EventRooms:     state.EventRooms,
		Bookings:       make([]BookingView, 0, len(stored)),
	}

	for _, b := range stored {
		if !b.IsActive() {
			continue
		}
		resp.Bookings = append(resp.Bookings, buildBookingView(b, state, cfg))
	}

	uc.logger.Info("GetAgenda: branch=%d date=%s bookings=%d", req.BranchID, req.Date, len(resp.Bookings))
	return resp, nil
}

// buildGrid enumerates the display window's grid lines with their labels.
func buildGrid(fromHour, toHour int) []TimeMark {
	keys := scheduler.RangeToKeys(fromHour, 0, toHour, 0)
	marks := make([]TimeMark, 0, len(keys))
	for _, key := range keys {
		mark := TimeMark{Key: key}
		if h, m, err := scheduler.ParseTimeKey(key); err == nil && scheduler.ShouldShowLabel(h, m) {
			mark.Label = scheduler.FormatTimeLabel(key)
		}
		marks = append(marks, mark)
	}
	return marks
}

func roomViews(cfg *domain.BranchScheduleConfig) []RoomView {
	views := make([]RoomView, 0, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		views = append(views, RoomView{ID: r.ID, Name: r.Name, MaxCapacity: r.MaxCapacity})
	}
	return views
}

// buildBookingView renders one booking with its derived allocation facts and
// the human-readable annotations.
func buildBookingView(b *domain.Booking, state *scheduler.OccupancyState, cfg *domain.BranchScheduleConfig) BookingView {
	view := BookingView{
		ID:                  b.ID,
		Type:                b.Type,
		Status:              b.Status,
		Hour:                b.Hour,
		Minute:              b.Minute,
		DurationMinutes:     b.DurationMinutes,
		GameDurationMinutes: b.GameDurationMinutes,
		Participants:        b.Participants,
		AssignedSlots:       b.AssignedSlots,
		AssignedRoom:        b.AssignedRoom,
		CustomerFirstName:   b.CustomerFirstName,
		CustomerLastName:    b.CustomerLastName,
		CustomerNotes:       b.CustomerNotes,
		Color:               b.Color,
	}

	sb := b.ToSchedulerBooking()

	if allocation, ok := state.BookingAllocations[b.ID]; ok {
		if allocation.SlotAllocation != nil {
			view.IsSplit = allocation.SlotAllocation.IsSplit
			view.SplitParts = allocation.SlotAllocation.SplitParts
			view.SplitIndex = allocation.SlotAllocation.SplitIndex
		}
		if allocation.RoomAllocation != nil {
			view.RoomStartKey = allocation.RoomAllocation.StartTimeKey
			view.RoomEndKey = allocation.RoomAllocation.EndTimeKey
		}
	}

	if msg, ok := scheduler.ExceptionMessage(sb); ok {
		view.ExceptionMessage = msg
	}
	if label, ok := scheduler.SurbookLabel(sb); ok {
		view.SurbookLabel = label
	}

	if b.AssignedRoom != nil {
		if room := cfg.RoomByID(*b.AssignedRoom); room != nil {
			view.RoomName = room.Name
			roomCfg := scheduler.RoomConfig{
				ID:          scheduler.RoomID(room.ID),
				Name:        room.Name,
				MaxCapacity: room.MaxCapacity,
			}
			if warn := scheduler.CheckRoomCapacity(roomCfg, b.Participants); warn != nil {
				view.RoomCapacityWarning = warn.Message
			}
		}
	}

	return view
}
