package update_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// validateRequest rejects malformed parameters before the allocator runs.
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.BookingID); err != nil {
		return fmt.Errorf("%w: booking id must be a uuid", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Hour < 0 || req.Hour > 23 {
		return fmt.Errorf("%w: hour must be between 0 and 23", ErrInvalidInput)
	}
	if req.Minute < 0 || req.Minute > 59 {
		return fmt.Errorf("%w: minute must be between 0 and 59", ErrInvalidInput)
	}
	if req.Minute%scheduler.GranularityMinutes != 0 {
		return fmt.Errorf("%w: minute must be aligned to the %d-minute grid", ErrInvalidInput, scheduler.GranularityMinutes)
	}

	if req.Participants < 0 {
		return fmt.Errorf("%w: participants must not be negative", ErrInvalidInput)
	}
	if req.Participants > domain.MaxParticipants {
		return fmt.Errorf("%w: participants must not exceed %d", ErrInvalidInput, domain.MaxParticipants)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes%scheduler.GranularityMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidInput, scheduler.GranularityMinutes)
	}
	if req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if req.GameDurationMinutes != nil {
		gd := *req.GameDurationMinutes
		if gd <= 0 {
			return fmt.Errorf("%w: game duration must be positive when set", ErrInvalidInput)
		}
		if gd%scheduler.GranularityMinutes != 0 {
			return fmt.Errorf("%w: game duration must be a multiple of %d minutes", ErrInvalidInput, scheduler.GranularityMinutes)
		}
	}

	return nil
}
