package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymy770/activelaser/internal/domain"
	storage "github.com/mymy770/activelaser/internal/infra/storage/booking"
	"github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// UseCase edits a booking. The edit is a full re-allocation: the booking's
// previous slots and room are released (via self-exclusion in the occupancy
// checks) and a fresh placement is searched for the new parameters. On any
// unresolved conflict the stored booking keeps its old placement.
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

// Execute runs the edit flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%s, date=%s, time=%02d:%02d, participants=%d",
		req.BookingID, req.Date, req.Hour, req.Minute, req.Participants)

	// 1. Validate input before touching storage.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	bookingType := domain.ClassifyEventType(req.EventType)
	duration := effectiveDuration(req.DurationMinutes, bookingType)

	var response *Response

	// 2. Re-allocate and persist inside a serializable transaction.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Load the booking and check it is still editable.
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
			return ErrBookingNotFound
		}
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to load booking: %v", err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}
		if !current.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%s is %s, not editable", current.ID, current.Status)
			return ErrBookingNotEditable
		}

		// 2.2. Load the branch configuration, falling back to the stock layout.
		cfg, err := uc.configRepo.GetByBranchID(txCtx, current.BranchID)
		if errors.Is(err, branchconfig.ErrConfigNotFound) {
			cfg = domain.DefaultBranchScheduleConfig(current.BranchID)
		} else if err != nil {
			uc.logger.Error("UpdateBooking: failed to load branch config: %v", err)
			return fmt.Errorf("%w: failed to load branch config: %v", ErrInternal, err)
		}
		grid := cfg.ToGridConfig()

		// 2.3. Load the target day's active bookings. When the edit moves the
		// booking to another date, its old allocation is absent from the new
		// day anyway; on the same date the self-exclusion handles it.
		stored, err := uc.bookingRepo.GetByBranchAndDate(txCtx, current.BranchID, req.Date, false)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to load bookings: %v", err)
			return fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}
		existing := domain.ToSchedulerBookings(stored)

		// 2.4. Refuse to build on corrupted state.
		if conflict := scheduler.CheckConsistency(existing, scheduler.DateKey(req.Date)); conflict != nil {
			uc.logger.Error("UpdateBooking: stored day is inconsistent: %s", conflict.Message)
			return fmt.Errorf("%w: %s", ErrOverlapDetected, conflict.Message)
		}

		// 2.5. Project occupancy and re-run the allocator, ignoring the
		// booking's own previous placement.
		state := scheduler.BuildOccupancyState(existing, scheduler.DateKey(req.Date))
		params := scheduler.AllocationParams{
			Date:             scheduler.DateKey(req.Date),
			Hour:             req.Hour,
			Minute:           req.Minute,
			Participants:     req.Participants,
			Type:             bookingType,
			DurationMinutes:  duration,
			ExcludeBookingID: current.ID,
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
			uc.logger.Warn("UpdateBooking: allocation conflict %s: %s",
				result.Conflict.Type, result.Conflict.Message)
			response = &Response{Success: false, Conflict: result.Conflict}
			return nil
		}

		// 2.6. Apply the new shape and placement, then persist.
		applyRequest(current, req, bookingType, duration, result.Allocation, grid, cfg)

		updated, err := uc.bookingRepo.Update(txCtx, current)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to persist booking: %v", err)
			return fmt.Errorf("%w: failed to persist booking: %v", ErrInternal, err)
		}

		response = &Response{Success: true, Booking: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if response.Success {
		uc.logger.Info("UpdateBooking: updated id=%s status=%s", response.Booking.ID, response.Booking.Status)
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

// applyRequest rewrites the entity with the edited shape and the fresh
// placement. Exception flags are recomputed from scratch: an overrun
// confirmed for the old shape does not silently carry over.
func applyRequest(
	b *domain.Booking,
	req *Request,
	bookingType scheduler.BookingType,
	duration int,
	allocation *scheduler.Allocation,
	grid scheduler.GridConfig,
	cfg *domain.BranchScheduleConfig,
) {
	b.Date = req.Date
	b.Type = bookingType
	b.Hour = req.Hour
	b.Minute = req.Minute
	b.DurationMinutes = duration
	b.GameDurationMinutes = req.GameDurationMinutes
	b.Participants = req.Participants
	b.CustomerFirstName = req.CustomerFirstName
	b.CustomerLastName = req.CustomerLastName
	b.CustomerPhone = req.CustomerPhone
	b.CustomerEmail = req.CustomerEmail
	b.CustomerNotes = req.CustomerNotes
	b.Color = req.Color

	b.AssignedSlots = nil
	b.AssignedRoom = nil
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

	b.Surbooked = false
	b.SurbookedParticipants = 0
	b.RoomOvercap = false
	b.RoomOvercapParticipants = 0

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
}

// confirmedStatus picks the confirmed state matching the exception flags.
// An edit re-confirms the booking: the lifecycle map has no lateral moves
// between confirmed variants, so the variant is set directly from the new
// flags rather than walked transition by transition.
func confirmedStatus(sb scheduler.Booking) domain.BookingStatus {
	if sb.Surbooked {
		return domain.StatusSurbookConfirmed
	}
	if sb.RoomOvercap {
		return domain.StatusRoomOvercapConfirmed
	}
	return domain.StatusConfirmed
}

// allocationOutcome labels an allocator result for metrics.
func allocationOutcome(result scheduler.AllocationResult) string {
	if result.Success {
		return "success"
	}
	return string(result.Conflict.Type)
}
