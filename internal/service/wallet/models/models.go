package models

import (
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// WalletResponse кошелек в ответе сервиса
type WalletResponse struct {
	UserID             string              `json:"userId"`
	Email              string              `json:"email,omitempty"`
	DisplayName        string              `json:"displayName,omitempty"`
	RemainingHours     float64             `json:"remainingHours"`
	RemainingMinutes   int                 `json:"remainingMinutes"`
	HoursUsedThisMonth float64             `json:"hoursUsedThisMonth"`
	Purchases          []*PurchaseResponse `json:"purchaseHistory"`
}

// PurchaseResponse запись истории покупок
type PurchaseResponse struct {
	ID        string  `json:"id"`
	Hours     float64 `json:"hours"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"date"`
}

// TopUpRequest запрос на пополнение баланса
type TopUpRequest struct {
	UserID string
	Hours  float64
	Amount float64
}

// FromDomainWallet конвертирует domain-модель в ответ сервиса
func FromDomainWallet(w *domain.Wallet, purchases []*domain.Purchase) *WalletResponse {
	out := make([]*PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, &PurchaseResponse{
			ID:        p.ID,
			Hours:     p.Hours,
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return &WalletResponse{
		UserID:             w.UserID,
		Email:              w.Email,
		DisplayName:        w.DisplayName,
		RemainingHours:     w.RemainingHours,
		RemainingMinutes:   int(w.RemainingHours * 60),
		HoursUsedThisMonth: w.HoursUsedThisMonth,
		Purchases:          out,
	}
}
