package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// UseCase creates a booking: it allocates slots (and a room for events)
// against the day's occupancy and persists the result, all inside one
// serializable transaction so concurrent staff sessions cannot double-book.
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute runs the create flow. A conflict the staff can resolve (or not)
// comes back as a Response with Success=false; errors are reserved for bad
// input and infrastructure failures.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: branch=%d, date=%s, time=%02d:%02d, participants=%d",
		req.BranchID, req.Date, req.Hour, req.Minute, req.Participants)

	// 1. Validate input before touching storage.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	bookingType := domain.ClassifyEventType(req.EventType)
	duration := effectiveDuration(req.DurationMinutes, bookingType)

	var response *Response

	// 2. Allocate and persist inside a serializable transaction.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Load the branch configuration, falling back to the stock layout.
		cfg, err := uc.configRepo.GetByBranchID(txCtx, req.BranchID)
		if errors.Is(err, branchconfig.ErrConfigNotFound) {
			cfg = domain.DefaultBranchScheduleConfig(req.BranchID)
			uc.logger.Info("CreateBooking: branch=%d has no stored config, using defaults", req.BranchID)
		} else if err != nil {
			uc.logger.Error("CreateBooking: failed to load branch config: %v", err)
			return fmt.Errorf("%w: failed to load branch config: %v", ErrInternal, err)
		}
		grid := cfg.ToGridConfig()

		// 2.2. Load the day's active bookings.
		stored, err := uc.bookingRepo.GetByBranchAndDate(txCtx, req.BranchID, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load bookings: %v", err)
			return fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}
		existing := domain.ToSchedulerBookings(stored)

		// 2.3. Refuse to build on corrupted state.
		if conflict := scheduler.CheckConsistency(existing, scheduler.DateKey(req.Date)); conflict != nil {
			uc.logger.Error("CreateBooking: stored day is inconsistent: %s", conflict.Message)
			return fmt.Errorf("%w: %s", ErrOverlapDetected, conflict.Message)
		}

		// 2.4. Project occupancy and run the allocator.
		state := scheduler.BuildOccupancyState(existing, scheduler.DateKey(req.Date))
		params := scheduler.AllocationParams{
			Date:            scheduler.DateKey(req.Date),
			Hour:            req.Hour,
			Minute:          req.Minute,
			Participants:    req.Participants,
			Type:            bookingType,
			DurationMinutes: duration,
		}
		if req.GameDurationMinutes != nil {
			params.GameDurationMinutes = *req.GameDurationMinutes
		}

		result := scheduler.AllocateWithOverride(params, state, grid, scheduler.Override{
			AllowSurbook:     req.AllowSurbook,
			AllowRoomOvercap: req.AllowRoomOvercap,
		})
		uc.metrics.ObserveAllocation(allocationOutcome(result))

		if !result.Success {
			uc.logger.Warn("CreateBooking: allocation conflict %s: %s",
				result.Conflict.Type, result.Conflict.Message)
			response = &Response{Success: false, Conflict: result.Conflict}
			return nil
		}

		// 2.5. Build and persist the entity.
		booking := buildBooking(req, bookingType, duration, result.Allocation, grid, cfg)

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to persist booking: %v", err)
			return fmt.Errorf("%w: failed to persist booking: %v", ErrInternal, err)
		}

		response = &Response{Success: true, Booking: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if response.Success {
		uc.logger.Info("CreateBooking: created id=%s status=%s", response.Booking.ID, response.Booking.Status)
	}
	return response, nil
}

// effectiveDuration applies the per-type default window.
func effectiveDuration(requested int, t scheduler.BookingType) int {
	if requested > 0 {
		return requested
	}
	if t == scheduler.BookingTypeEvent {
		return domain.DefaultEventDurationMinutes
	}
	return domain.DefaultGameDurationMinutes
}

// buildBooking assembles the entity from the request and the allocator's
// placement, routing any confirmed overruns through the exception flags and
// picking the matching confirmed status.
func buildBooking(
	req *Request,
	bookingType scheduler.BookingType,
	duration int,
	allocation *scheduler.Allocation,
	grid scheduler.GridConfig,
	cfg *domain.BranchScheduleConfig,
) *domain.Booking {
	b := &domain.Booking{
		ID:                  uuid.NewString(),
		BranchID:            req.BranchID,
		Date:                req.Date,
		Type:                bookingType,
		Hour:                req.Hour,
		Minute:              req.Minute,
		DurationMinutes:     duration,
		GameDurationMinutes: req.GameDurationMinutes,
		Participants:        req.Participants,
		Status:              domain.StatusCreated,
		CustomerFirstName:   req.CustomerFirstName,
		CustomerLastName:    req.CustomerLastName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		CustomerNotes:       req.CustomerNotes,
		Color:               req.Color,
	}

	var assignedRoom *domain.Room
	if allocation.SlotAllocation != nil {
		b.AssignedSlots = make([]int, len(allocation.SlotAllocation.Slots))
		for i, id := range allocation.SlotAllocation.Slots {
			b.AssignedSlots[i] = int(id)
		}
	}
	if allocation.RoomAllocation != nil {
		roomID := int(allocation.RoomAllocation.RoomID)
		b.AssignedRoom = &roomID
		assignedRoom = cfg.RoomByID(roomID)
	}

	// Record the confirmed overruns, if any, through the exception flags.
	sb := b.ToSchedulerBooking()
	needed := scheduler.SlotsNeeded(req.Participants, grid)
	if allocation.SlotAllocation != nil && len(allocation.SlotAllocation.Slots) < needed {
		excess := req.Participants - len(allocation.SlotAllocation.Slots)*grid.PlayersPerSlot
		sb = scheduler.AllowSurbook(sb, excess)
	}
	if assignedRoom != nil && req.Participants > assignedRoom.MaxCapacity {
		sb = scheduler.AllowRoomOvercap(sb, req.Participants-assignedRoom.MaxCapacity)
	}
	b.Surbooked = sb.Surbooked
	b.SurbookedParticipants = sb.SurbookedParticipants
	b.RoomOvercap = sb.RoomOvercap
	b.RoomOvercapParticipants = sb.RoomOvercapParticipants

	b.Status = confirmedStatus(sb)
	return b
}

// confirmedStatus walks the lifecycle from created through allocated to the
// confirmed state that matches the booking's exception flags. Surbooking
// takes priority when both overruns were confirmed.
func confirmedStatus(sb scheduler.Booking) domain.BookingStatus {
	target := domain.StatusConfirmed
	if sb.Surbooked {
		target = domain.StatusSurbookConfirmed
	} else if sb.RoomOvercap {
		target = domain.StatusRoomOvercapConfirmed
	}

	status := domain.StatusCreated
	for _, next := range []domain.BookingStatus{domain.StatusAllocated, target} {
		if status.CanTransitionTo(next) {
			status = next
		}
	}
	return status
}

// allocationOutcome labels an allocator result for metrics.
func allocationOutcome(result scheduler.AllocationResult) string {
	if result.Success {
		return "success"
	}
	return string(result.Conflict.Type)
}
