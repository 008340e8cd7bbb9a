package start_session

import (
	"context"
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
	walletmodels "github.com/m04kA/STS-BookingService/internal/service/wallet/models"
	"github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error)
}

// ReservationCreator интерфейс создания бронирования
type ReservationCreator interface {
	Execute(ctx context.Context, req *create_reservation.Request) (*create_reservation.Response, error)
}

// WalletService интерфейс сервиса кошельков предоплаченных часов
type WalletService interface {
	GetWallet(ctx context.Context, userID, email, displayName string) (*walletmodels.WalletResponse, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishReservation(ctx context.Context, key string, res *domain.Reservation, hoursDeducted float64) error
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
