package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/fsledger"
	walletstore "github.com/m04kA/STS-BookingService/internal/infra/storage/wallet"
	"github.com/m04kA/STS-BookingService/internal/service/wallet/models"
)

type fakeWalletRepo struct {
	wallets   map[string]*domain.Wallet
	purchases map[string][]*domain.Purchase

	deductErr error
	addErr    error
	ensured   int
}

func newFakeWalletRepo(wallets ...*domain.Wallet) *fakeWalletRepo {
	f := &fakeWalletRepo{
		wallets:   make(map[string]*domain.Wallet),
		purchases: make(map[string][]*domain.Purchase),
	}
	for _, w := range wallets {
		f.wallets[w.UserID] = w
	}
	return f
}

func (f *fakeWalletRepo) GetByUserID(_ context.Context, userID string) (*domain.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, walletstore.ErrWalletNotFound
	}
	return w, nil
}

func (f *fakeWalletRepo) CreateIfMissing(_ context.Context, userID, email, displayName string) error {
	f.ensured++
	if _, ok := f.wallets[userID]; !ok {
		f.wallets[userID] = &domain.Wallet{UserID: userID, Email: email, DisplayName: displayName}
	}
	return nil
}

func (f *fakeWalletRepo) Deduct(_ context.Context, userID string, hours float64) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.wallets[userID].RemainingHours -= hours
	return nil
}

func (f *fakeWalletRepo) AddHours(_ context.Context, userID string, hours float64) error {
	if f.addErr != nil {
		return f.addErr
	}
	w, ok := f.wallets[userID]
	if !ok {
		return walletstore.ErrWalletNotFound
	}
	w.RemainingHours += hours
	return nil
}

func (f *fakeWalletRepo) CreatePurchase(_ context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	p.ID = "purchase-1"
	f.purchases[p.UserID] = append(f.purchases[p.UserID], p)
	return p, nil
}

func (f *fakeWalletRepo) GetPurchases(_ context.Context, userID string) ([]*domain.Purchase, error) {
	return f.purchases[userID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetWallet_CreatesMissingWallet(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetWallet(context.Background(), "user-1", "user@example.com", "Anna")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.ensured)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, float64(0), resp.RemainingHours)
	assert.Empty(t, resp.Purchases)
}

func TestGetWallet_ExistingWallet(t *testing.T) {
	repo := newFakeWalletRepo(&domain.Wallet{
		UserID:             "user-1",
		RemainingHours:     2.5,
		HoursUsedThisMonth: 0.75,
	})
	repo.purchases["user-1"] = []*domain.Purchase{{ID: "p-1", UserID: "user-1", Hours: 3, Amount: 4500}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetWallet(context.Background(), "user-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 2.5, resp.RemainingHours)
	assert.Equal(t, 150, resp.RemainingMinutes)
	assert.Equal(t, 0.75, resp.HoursUsedThisMonth)
	require.Len(t, resp.Purchases, 1)
	assert.Equal(t, "p-1", resp.Purchases[0].ID)
}

func TestGetWallet_EmptyUserID(t *testing.T) {
	svc := NewService(newFakeWalletRepo(), nopLogger{})

	_, err := svc.GetWallet(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeduct(t *testing.T) {
	repo := newFakeWalletRepo(&domain.Wallet{UserID: "user-1", RemainingHours: 1})
	svc := NewService(repo, nopLogger{})

	err := svc.Deduct(context.Background(), "user-1", domain.SessionHours)
	require.NoError(t, err)
	assert.Equal(t, 0.75, repo.wallets["user-1"].RemainingHours)
}

func TestDeduct_MapsStorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"postgres not found", walletstore.ErrWalletNotFound, ErrWalletNotFound},
		{"firestore not found", fsledger.ErrWalletNotFound, ErrWalletNotFound},
		{"postgres insufficient", walletstore.ErrInsufficientBalance, ErrInsufficientBalance},
		{"firestore insufficient", fsledger.ErrInsufficientBalance, ErrInsufficientBalance},
		{"other", errors.New("connection refused"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeWalletRepo(&domain.Wallet{UserID: "user-1", RemainingHours: 1})
			repo.deductErr = tt.repoErr
			svc := NewService(repo, nopLogger{})

			err := svc.Deduct(context.Background(), "user-1", domain.SessionHours)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeduct_InvalidInput(t *testing.T) {
	svc := NewService(newFakeWalletRepo(), nopLogger{})

	assert.ErrorIs(t, svc.Deduct(context.Background(), "", 1), ErrInvalidInput)
	assert.ErrorIs(t, svc.Deduct(context.Background(), "user-1", 0), ErrInvalidInput)
	assert.ErrorIs(t, svc.Deduct(context.Background(), "user-1", -0.25), ErrInvalidInput)
}

func TestTopUp(t *testing.T) {
	repo := newFakeWalletRepo(&domain.Wallet{UserID: "user-1", RemainingHours: 0.5})
	svc := NewService(repo, nopLogger{})

	resp, err := svc.TopUp(context.Background(), &models.TopUpRequest{
		UserID: "user-1",
		Hours:  3,
		Amount: 4500,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.5, resp.RemainingHours)
	require.Len(t, resp.Purchases, 1)
	assert.Equal(t, float64(3), resp.Purchases[0].Hours)
	assert.Equal(t, float64(4500), resp.Purchases[0].Amount)
}

func TestTopUp_Validation(t *testing.T) {
	svc := NewService(newFakeWalletRepo(), nopLogger{})

	_, err := svc.TopUp(context.Background(), &models.TopUpRequest{UserID: "", Hours: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TopUp(context.Background(), &models.TopUpRequest{UserID: "user-1", Hours: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TopUp(context.Background(), &models.TopUpRequest{UserID: "user-1", Hours: -2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTopUp_WalletNotFound(t *testing.T) {
	repo := newFakeWalletRepo()
	repo.addErr = walletstore.ErrWalletNotFound
	svc := NewService(repo, nopLogger{})

	_, err := svc.TopUp(context.Background(), &models.TopUpRequest{UserID: "user-1", Hours: 1})
	assert.ErrorIs(t, err, ErrWalletNotFound)
}
