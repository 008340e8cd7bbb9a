package wallet

import (
	"context"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// WalletRepository интерфейс хранилища кошельков
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	CreateIfMissing(ctx context.Context, userID, email, displayName string) error
	Deduct(ctx context.Context, userID string, hours float64) error
	AddHours(ctx context.Context, userID string, hours float64) error
	CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	GetPurchases(ctx context.Context, userID string) ([]*domain.Purchase, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
