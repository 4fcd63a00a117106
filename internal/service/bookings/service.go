package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mymy770/activelaser/internal/domain"
	bookingRepo "github.com/mymy770/activelaser/internal/infra/storage/booking"
	"github.com/mymy770/activelaser/internal/service/bookings/models"
)

// Service covers the read and lifecycle operations that need no allocation:
// fetching bookings and cancelling them. Creation and edits go through their
// use cases, which own the allocator.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService creates a bookings service.
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID fetches one booking.
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBranchBookings fetches the bookings of one branch on one date, ordered
// by start time. Cancelled bookings are included only on request.
func (s *Service) GetBranchBookings(ctx context.Context, branchID int64, date string, includeCancelled bool) (*models.BookingListResponse, error) {
	s.logger.Info("GetBranchBookings: branch=%d date=%s includeCancelled=%v", branchID, date, includeCancelled)

	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBranchAndDate(ctx, branchID, date, includeCancelled)
	if err != nil {
		s.logger.Error("GetBranchBookings: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: fetched %d bookings for branch=%d", len(bookings), branchID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel moves a booking to cancelled, freeing its slots and room for the
// next occupancy rebuild. Cancellation is terminal.
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%s", id)
	return nil
}
