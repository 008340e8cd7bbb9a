package get_availability

import (
	"context"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// AvailabilityProvider интерфейс проектора доступности
type AvailabilityProvider interface {
	Table(ctx context.Context, date string) (*domain.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
