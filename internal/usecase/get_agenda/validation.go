package get_agenda

import (
	"fmt"
	"time"

	"github.com/mymy770/activelaser/internal/domain"
)

// Default display window of the agenda.
const (
	defaultFromHour = 9
	defaultToHour   = 24
)

// maxToHour bounds windows that run past midnight.
const maxToHour = 30

// validateRequest checks the selection and applies the default display
// window. Zero FromHour and ToHour together mean "use the default".
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrInvalidInput)
	}

	if req.FromHour == 0 && req.ToHour == 0 {
		req.FromHour = defaultFromHour
		req.ToHour = defaultToHour
	}

	if req.FromHour < 0 || req.FromHour > 23 {
		return fmt.Errorf("%w: from hour must be between 0 and 23", ErrInvalidInput)
	}
	if req.ToHour <= req.FromHour || req.ToHour > maxToHour {
		return fmt.Errorf("%w: to hour must be after from hour and at most %d", ErrInvalidInput, maxToHour)
	}

	return nil
}
