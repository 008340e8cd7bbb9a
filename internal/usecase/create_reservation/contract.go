package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
	walletmodels "github.com/m04kA/STS-BookingService/internal/service/wallet/models"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindConflict(ctx context.Context, sunbedID, date string, slot types.TimeString) (*domain.Reservation, error)
}

// AvailabilityProvider интерфейс проектора доступности
type AvailabilityProvider interface {
	Table(ctx context.Context, date string) (*domain.DayAvailability, error)
}

// WalletService интерфейс сервиса кошельков предоплаченных часов
type WalletService interface {
	GetWallet(ctx context.Context, userID, email, displayName string) (*walletmodels.WalletResponse, error)
	Deduct(ctx context.Context, userID string, hours float64) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishReservation(ctx context.Context, key string, res *domain.Reservation, hoursDeducted float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
