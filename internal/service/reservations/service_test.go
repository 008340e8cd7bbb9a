package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/STS-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/STS-BookingService/internal/service/reservations/models"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

type fakeRepo struct {
	byID          map[string]*domain.Reservation
	byUser        map[string][]*domain.Reservation
	statusUpdates map[string]domain.ReservationStatus
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	f := &fakeRepo{
		byID:          make(map[string]*domain.Reservation),
		byUser:        make(map[string][]*domain.Reservation),
		statusUpdates: make(map[string]domain.ReservationStatus),
	}
	for _, r := range reservations {
		f.byID[r.ID] = r
		f.byUser[r.UserID] = append(f.byUser[r.UserID], r)
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string) ([]*domain.Reservation, error) {
	return f.byUser[userID], nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.statusUpdates[id] = status
	return nil
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

func reservation(id, userID, date, slot string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:       id,
		UserID:   userID,
		SunbedID: "standard-1",
		Date:     date,
		Slot:     types.TimeString(slot),
		Status:   status,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo(reservation("res-1", "user-1", "2026-09-02", "10:00", domain.StatusConfirmed))
	svc := NewService(repo, nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), "res-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ID)
	assert.Equal(t, "10:00", resp.Slot)

	_, err = svc.GetByID(context.Background(), "res-1", "user-2")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations_UpcomingFilter(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakeRepo(
		reservation("past", "user-1", "2026-08-30", "10:00", domain.StatusConfirmed),
		reservation("today-earlier", "user-1", "2026-09-01", "09:00", domain.StatusConfirmed),
		reservation("today-later", "user-1", "2026-09-01", "15:00", domain.StatusConfirmed),
		reservation("tomorrow", "user-1", "2026-09-02", "10:00", domain.StatusConfirmed),
		reservation("completed", "user-1", "2026-09-03", "10:00", domain.StatusCompleted),
	)
	svc := NewService(repo, nil, nopLogger{})
	svc.timeProvider = fixedTime{t: now}

	all, err := svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)

	upcoming, err := svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: "user-1", UpcomingOnly: true})
	require.NoError(t, err)
	require.Equal(t, 2, upcoming.Total)

	ids := []string{upcoming.Reservations[0].ID, upcoming.Reservations[1].ID}
	assert.Contains(t, ids, "today-later")
	assert.Contains(t, ids, "tomorrow")
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(reservation("res-1", "user-1", "2026-09-02", "10:00", domain.StatusConfirmed))
	pub := &fakePublisher{}
	svc := NewService(repo, pub, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), "res-1", "user-1"))
	assert.Equal(t, domain.StatusCancelled, repo.statusUpdates["res-1"])
	assert.Equal(t, []string{"reservation.cancelled"}, pub.keys)
}

func TestCancel_Errors(t *testing.T) {
	cancelled := reservation("cancelled", "user-1", "2026-09-02", "10:00", domain.StatusCancelled)
	completed := reservation("completed", "user-1", "2026-09-02", "11:00", domain.StatusCompleted)
	foreign := reservation("foreign", "user-2", "2026-09-02", "12:00", domain.StatusConfirmed)

	svc := NewService(newFakeRepo(cancelled, completed, foreign), nil, nopLogger{})

	assert.ErrorIs(t, svc.Cancel(context.Background(), "missing", "user-1"), ErrReservationNotFound)
	assert.ErrorIs(t, svc.Cancel(context.Background(), "cancelled", "user-1"), ErrCannotCancel)
	assert.ErrorIs(t, svc.Cancel(context.Background(), "completed", "user-1"), ErrCannotCancel)
	assert.ErrorIs(t, svc.Cancel(context.Background(), "foreign", "user-1"), ErrAccessDenied)
}
