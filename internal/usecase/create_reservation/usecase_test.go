package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/internal/domain"
	walletsvc "github.com/m04kA/STS-BookingService/internal/service/wallet"
	walletmodels "github.com/m04kA/STS-BookingService/internal/service/wallet/models"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

type fakeRepo struct {
	conflict      *domain.Reservation
	created       *domain.Reservation
	conflictCalls int
}

func (f *fakeRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	res.ID = "res-1"
	res.CreatedAt = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
}

func (f *fakeRepo) FindConflict(_ context.Context, _, _ string, _ types.TimeString) (*domain.Reservation, error) {
	f.conflictCalls++
	return f.conflict, nil
}

type fakeAvailability struct {
	reservations []*domain.Reservation
}

func (f *fakeAvailability) Table(_ context.Context, date string) (*domain.DayAvailability, error) {
	return domain.BuildDayAvailability(date, domain.DefaultSunbeds, f.reservations), nil
}

type fakeWallet struct {
	balance   float64
	deducted  []float64
	deductErr error
}

func (f *fakeWallet) GetWallet(_ context.Context, userID, _, _ string) (*walletmodels.WalletResponse, error) {
	return &walletmodels.WalletResponse{UserID: userID, RemainingHours: f.balance}, nil
}

func (f *fakeWallet) Deduct(_ context.Context, _ string, hours float64) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.deducted = append(f.deducted, hours)
	return nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) PublishReservation(_ context.Context, key string, _ *domain.Reservation, _ float64) error {
	f.keys = append(f.keys, key)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, avail *fakeAvailability, wallet *fakeWallet, pub *fakePublisher) *UseCase {
	var publisher EventPublisher
	if pub != nil {
		publisher = pub
	}
	uc := NewUseCase(repo, avail, wallet, publisher, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    "user-1",
		UserName:  "Test User",
		UserEmail: "user@example.com",
		SunbedID:  "standard-1",
		Date:      "2026-09-02",
		Slot:      "10:15",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	wallet := &fakeWallet{balance: 1.0}
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, &fakeAvailability{}, wallet, pub)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "res-1", resp.ID)
	assert.Equal(t, "Standard Bed #1", resp.SunbedName)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.DefaultSessionMinutes, resp.DurationMinutes)
	assert.Equal(t, domain.SessionHours, resp.HoursDeducted)

	require.NotNil(t, repo.created)
	assert.Equal(t, "user-1", repo.created.UserID)
	assert.Equal(t, "Test User", repo.created.UserName)

	require.Len(t, wallet.deducted, 1)
	assert.Equal(t, domain.SessionHours, wallet.deducted[0])

	assert.Equal(t, []string{"reservation.created"}, pub.keys)
}

func TestExecute_ConflictInTransaction(t *testing.T) {
	repo := &fakeRepo{
		conflict: &domain.Reservation{ID: "other", Status: domain.StatusConfirmed},
	}
	wallet := &fakeWallet{balance: 1.0}
	uc := newTestUseCase(repo, &fakeAvailability{}, wallet, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Nil(t, repo.created)
	assert.Empty(t, wallet.deducted)
}

func TestExecute_LocalTableBusy(t *testing.T) {
	repo := &fakeRepo{}
	avail := &fakeAvailability{
		reservations: []*domain.Reservation{{
			SunbedID: "standard-1",
			Date:     "2026-09-02",
			Slot:     "10:15",
			Status:   domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, avail, &fakeWallet{balance: 1.0}, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// До транзакции дело не дошло
	assert.Zero(t, repo.conflictCalls)
}

func TestExecute_SkipAvailabilityCheck(t *testing.T) {
	repo := &fakeRepo{}
	avail := &fakeAvailability{
		reservations: []*domain.Reservation{{
			SunbedID: "standard-1",
			Date:     "2026-09-02",
			Slot:     "10:15",
			Status:   domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, avail, &fakeWallet{balance: 1.0}, nil)

	req := validRequest()
	req.SkipAvailabilityCheck = true

	// Локальная таблица занята, но проверка пропущена; конфликт решает
	// репозиторий, который здесь свободен
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ID)
	assert.Equal(t, 1, repo.conflictCalls)
}

func TestExecute_InsufficientBalance(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, &fakeAvailability{}, &fakeWallet{balance: 0.2}, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, repo.created)
}

func TestExecute_BalanceDrainedAfterCommit(t *testing.T) {
	repo := &fakeRepo{}
	wallet := &fakeWallet{balance: 0.25, deductErr: walletsvc.ErrInsufficientBalance}
	uc := newTestUseCase(repo, &fakeAvailability{}, wallet, nil)

	// Бронь сохраняется, несмотря на проигранную гонку на балансе
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ID)
	assert.Zero(t, resp.HoursDeducted)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeAvailability{}, &fakeWallet{balance: 1.0}, nil)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"неизвестный солярий", func(r *Request) { r.SunbedID = "no-such-bed" }, ErrSunbedNotFound},
		{"слот вне сетки", func(r *Request) { r.Slot = "10:10" }, ErrInvalidSlot},
		{"слот до открытия", func(r *Request) { r.Slot = "08:45" }, ErrInvalidSlot},
		{"дата в прошлом", func(r *Request) { r.Date = "2026-08-31" }, ErrInvalidDate},
		{"кривая дата", func(r *Request) { r.Date = "31.08.2026" }, ErrInvalidInput},
		{"пустой пользователь", func(r *Request) { r.UserID = "" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
