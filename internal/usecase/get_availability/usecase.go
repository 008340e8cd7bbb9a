package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// UseCase use case для получения таблицы доступности на дату
type UseCase struct {
	availability AvailabilityProvider
	sunbeds      []domain.Sunbed
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityProvider, sunbeds []domain.Sunbed, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		sunbeds:      sunbeds,
		logger:       logger,
	}
}

// Execute выполняет use case получения таблицы доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date)

	if !domain.IsValidDate(req.Date) {
		uc.logger.Warn("GetAvailability: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidDate)
	}

	table, err := uc.availability.Table(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build table for date %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to build availability table: %v", ErrInternal, err)
	}

	return toResponse(table, uc.sunbeds), nil
}
