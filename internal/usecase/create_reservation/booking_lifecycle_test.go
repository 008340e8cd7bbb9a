package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/STS-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/STS-BookingService/internal/service/reservations"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// fakeLedger журнал бронирований с состоянием: FindConflict видит все
// ранее созданные брони с учетом смены статусов
type fakeLedger struct {
	seq          int
	reservations map[string]*domain.Reservation
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{reservations: make(map[string]*domain.Reservation)}
}

func (f *fakeLedger) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.seq++
	res.ID = fmt.Sprintf("res-%d", f.seq)
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	f.reservations[res.ID] = res
	return res, nil
}

func (f *fakeLedger) FindConflict(_ context.Context, sunbedID, date string, slot types.TimeString) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.IsConfirmed() && r.SunbedID == sunbedID && r.Date == date && r.Slot == slot {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeLedger) GetByUserID(_ context.Context, userID string) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.UserID == userID && !r.IsCancelled() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.Status = status
	return nil
}

// ledgerAvailability строит таблицу доступности из текущего набора
// броней журнала, как это делает сервис доступности
type ledgerAvailability struct {
	ledger *fakeLedger
}

func (a *ledgerAvailability) Table(_ context.Context, date string) (*domain.DayAvailability, error) {
	confirmed := make([]*domain.Reservation, 0, len(a.ledger.reservations))
	for _, r := range a.ledger.reservations {
		if r.IsConfirmed() {
			confirmed = append(confirmed, r)
		}
	}
	return domain.BuildDayAvailability(date, domain.DefaultSunbeds, confirmed), nil
}

// Полный цикл за слот: первый пользователь бронирует, второй получает
// отказ на ту же ячейку, после отмены первым повторная попытка проходит
func TestBookingLifecycle_SlotFreedAfterCancel(t *testing.T) {
	ledger := newFakeLedger()
	availability := &ledgerAvailability{ledger: ledger}

	uc := NewUseCase(ledger, availability, &fakeWallet{balance: 1.0}, nil, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	cancelSvc := reservations.NewService(ledger, nil, nopLogger{})

	request := func(userID string) *Request {
		return &Request{
			UserID:    userID,
			UserName:  "User " + userID,
			UserEmail: userID + "@example.com",
			SunbedID:  "standard-1",
			Date:      "2025-06-01",
			Slot:      "10:00",
		}
	}

	// Пользователь A бронирует ячейку
	created, err := uc.Execute(context.Background(), request("user-a"))
	require.NoError(t, err)
	assert.Equal(t, "user-a", created.UserID)

	// Попытка B на ту же ячейку отклоняется
	_, err = uc.Execute(context.Background(), request("user-b"))
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// A отменяет свое бронирование
	require.NoError(t, cancelSvc.Cancel(context.Background(), created.ID, "user-a"))

	// Повторная попытка B занимает освободившуюся ячейку
	retried, err := uc.Execute(context.Background(), request("user-b"))
	require.NoError(t, err)
	assert.Equal(t, "user-b", retried.UserID)
	assert.NotEqual(t, created.ID, retried.ID)

	// В журнале ровно одна подтвержденная бронь на ячейку
	conflict, err := ledger.FindConflict(context.Background(), "standard-1", "2025-06-01", types.TimeString("10:00"))
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, retried.ID, conflict.ID)
}
