package start_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/internal/domain"
	walletmodels "github.com/m04kA/STS-BookingService/internal/service/wallet/models"
	"github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
)

type fakeRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCreator struct {
	lastReq *create_reservation.Request
	err     error
}

func (f *fakeCreator) Execute(_ context.Context, req *create_reservation.Request) (*create_reservation.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	sunbed, _ := domain.FindSunbed(domain.DefaultSunbeds, req.SunbedID)
	return &create_reservation.Response{
		ID:            "res-1",
		UserID:        req.UserID,
		SunbedID:      req.SunbedID,
		SunbedName:    sunbed.Name,
		Date:          req.Date,
		Slot:          req.Slot,
		Status:        string(domain.StatusConfirmed),
		HoursDeducted: domain.SessionHours,
	}, nil
}

type fakeWallet struct {
	balance float64
}

func (f *fakeWallet) GetWallet(_ context.Context, userID, _, _ string) (*walletmodels.WalletResponse, error) {
	return &walletmodels.WalletResponse{UserID: userID, RemainingHours: f.balance}, nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) PublishReservation(_ context.Context, key string, _ *domain.Reservation, _ float64) error {
	f.keys = append(f.keys, key)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, creator *fakeCreator, wallet *fakeWallet, now time.Time) *UseCase {
	uc := NewUseCase(repo, creator, wallet, nil, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func scanRequest() *Request {
	return &Request{
		UserID:    "user-1",
		UserName:  "Test User",
		UserEmail: "user@example.com",
		SunbedID:  "premium-1",
	}
}

func TestExecute_NewBooking(t *testing.T) {
	creator := &fakeCreator{}
	publisher := &fakePublisher{}
	now := time.Date(2026, 9, 1, 11, 22, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, creator, &fakeWallet{balance: 1.0}, now)
	uc.publisher = publisher

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	// 11:22 встает на слот 11:30
	assert.Equal(t, "11:30", resp.Slot.String())
	assert.Equal(t, "11:45", resp.SessionEnd.String())
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.False(t, resp.AlreadyBooked)
	assert.Equal(t, domain.SessionHours, resp.HoursDeducted)

	require.NotNil(t, creator.lastReq)
	assert.True(t, creator.lastReq.SkipAvailabilityCheck)
	assert.Equal(t, "premium-1", creator.lastReq.SunbedID)

	assert.Equal(t, []string{"session.started"}, publisher.keys)
}

func TestExecute_ExistingReservationCoversSession(t *testing.T) {
	repo := &fakeRepo{
		reservations: []*domain.Reservation{{
			ID:         "res-9",
			UserID:     "user-1",
			SunbedID:   "premium-1",
			SunbedName: "Premium Bed",
			Date:       "2026-09-01",
			Slot:       "11:30",
			Status:     domain.StatusConfirmed,
		}},
	}
	creator := &fakeCreator{}
	now := time.Date(2026, 9, 1, 11, 28, 0, 0, time.UTC)
	uc := newTestUseCase(repo, creator, &fakeWallet{balance: 1.0}, now)

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	assert.True(t, resp.AlreadyBooked)
	assert.Equal(t, "res-9", resp.ReservationID)
	assert.Zero(t, resp.HoursDeducted)

	// Новую бронь не создавали
	assert.Nil(t, creator.lastReq)
}

func TestExecute_ExistingBookingAllowsZeroBalance(t *testing.T) {
	repo := &fakeRepo{
		reservations: []*domain.Reservation{{
			ID:       "res-9",
			UserID:   "user-1",
			SunbedID: "premium-1",
			Date:     "2026-09-01",
			Slot:     "11:30",
			Status:   domain.StatusConfirmed,
		}},
	}
	now := time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeCreator{}, &fakeWallet{balance: 0}, now)

	// Часы уже списаны при бронировании - пустой баланс не мешает сеансу
	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)
	assert.True(t, resp.AlreadyBooked)
}

func TestExecute_InsufficientBalance(t *testing.T) {
	creator := &fakeCreator{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, creator, &fakeWallet{balance: 0.2}, now)

	_, err := uc.Execute(context.Background(), scanRequest())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, creator.lastReq)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCreator{}, &fakeWallet{balance: 1.0},
		time.Date(2026, 9, 1, 22, 10, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), scanRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotTaken(t *testing.T) {
	creator := &fakeCreator{err: create_reservation.ErrSlotNotAvailable}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, creator, &fakeWallet{balance: 1.0}, now)

	_, err := uc.Execute(context.Background(), scanRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_UnknownSunbed(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCreator{}, &fakeWallet{balance: 1.0},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	req := scanRequest()
	req.SunbedID = "no-such-bed"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSunbedNotFound)
}
