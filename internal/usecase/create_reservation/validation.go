package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.SunbedID == "" {
		return fmt.Errorf("%w: sunbedID is required", ErrInvalidInput)
	}

	if !domain.IsValidDate(req.Date) {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if err := req.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot format: %v", ErrInvalidInput, err)
	}

	// Слот должен попадать в сетку салона (09:00-20:45, шаг 15 минут)
	if !domain.IsValidSlot(req.Slot) {
		return fmt.Errorf("%w: slot %s is outside the salon grid", ErrInvalidSlot, req.Slot)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date string, now time.Time) error {
	if date < now.Format(domain.DateFormat) {
		return ErrInvalidDate
	}
	return nil
}
