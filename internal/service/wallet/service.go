package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/fsledger"
	walletstore "github.com/m04kA/STS-BookingService/internal/infra/storage/wallet"
	"github.com/m04kA/STS-BookingService/internal/service/wallet/models"
)

// Service бизнес-логика кошельков предоплаченных часов
type Service struct {
	repo   WalletRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса кошельков
func NewService(repo WalletRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetWallet возвращает кошелек пользователя вместе с историей покупок.
// Отсутствующий кошелек заводится с нулевым балансом при первом обращении
func (s *Service) GetWallet(ctx context.Context, userID, email, displayName string) (*models.WalletResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: GetWallet - empty userID", ErrInvalidInput)
	}

	if err := s.repo.CreateIfMissing(ctx, userID, email, displayName); err != nil {
		s.logger.Error("Failed to ensure wallet exists for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetWallet - ensure wallet: %v", ErrInternal, err)
	}

	w, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWalletNotFound
		}
		s.logger.Error("Failed to get wallet for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetWallet - get wallet: %v", ErrInternal, err)
	}

	purchases, err := s.repo.GetPurchases(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get purchase history for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetWallet - get purchases: %v", ErrInternal, err)
	}

	return models.FromDomainWallet(w, purchases), nil
}

// Deduct списывает hours часов с баланса пользователя
func (s *Service) Deduct(ctx context.Context, userID string, hours float64) error {
	if userID == "" || hours <= 0 {
		return fmt.Errorf("%w: Deduct - userID=%q hours=%v", ErrInvalidInput, userID, hours)
	}

	if err := s.repo.Deduct(ctx, userID, hours); err != nil {
		switch {
		case isNotFound(err):
			return ErrWalletNotFound
		case isInsufficient(err):
			return ErrInsufficientBalance
		}
		s.logger.Error("Failed to deduct %v hours from user %s: %v", hours, userID, err)
		return fmt.Errorf("%w: Deduct - deduct hours: %v", ErrInternal, err)
	}

	s.logger.Info("Deducted %v hours from wallet of user %s", hours, userID)
	return nil
}

// TopUp пополняет баланс пользователя и записывает покупку в историю
func (s *Service) TopUp(ctx context.Context, req *models.TopUpRequest) (*models.WalletResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: TopUp - empty userID", ErrInvalidInput)
	}
	if req.Hours <= 0 {
		return nil, fmt.Errorf("%w: TopUp - hours must be positive, got %v", ErrInvalidInput, req.Hours)
	}

	if err := s.repo.AddHours(ctx, req.UserID, req.Hours); err != nil {
		if isNotFound(err) {
			return nil, ErrWalletNotFound
		}
		s.logger.Error("Failed to add %v hours to user %s: %v", req.Hours, req.UserID, err)
		return nil, fmt.Errorf("%w: TopUp - add hours: %v", ErrInternal, err)
	}

	if _, err := s.repo.CreatePurchase(ctx, &domain.Purchase{
		UserID: req.UserID,
		Hours:  req.Hours,
		Amount: req.Amount,
	}); err != nil {
		s.logger.Error("Failed to record purchase for user %s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: TopUp - record purchase: %v", ErrInternal, err)
	}

	s.logger.Info("Topped up wallet of user %s by %v hours", req.UserID, req.Hours)

	w, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("Failed to re-read wallet for user %s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: TopUp - get wallet: %v", ErrInternal, err)
	}

	purchases, err := s.repo.GetPurchases(ctx, req.UserID)
	if err != nil {
		s.logger.Error("Failed to get purchase history for user %s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: TopUp - get purchases: %v", ErrInternal, err)
	}

	return models.FromDomainWallet(w, purchases), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, walletstore.ErrWalletNotFound) || errors.Is(err, fsledger.ErrWalletNotFound)
}

func isInsufficient(err error) bool {
	return errors.Is(err, walletstore.ErrInsufficientBalance) || errors.Is(err, fsledger.ErrInsufficientBalance)
}
