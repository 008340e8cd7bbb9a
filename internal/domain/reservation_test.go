package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/STS-BookingService/pkg/types"
)

func TestReservation_CanBeCancelled(t *testing.T) {
	r := &Reservation{Status: StatusConfirmed}
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusCancelled
	assert.False(t, r.CanBeCancelled())

	r.Status = StatusCompleted
	assert.False(t, r.CanBeCancelled())
}

func TestReservation_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   string
		slot   string
		status ReservationStatus
		want   bool
	}{
		{"завтра", "2026-09-02", "09:00", StatusConfirmed, true},
		{"вчера", "2026-08-31", "18:00", StatusConfirmed, false},
		{"сегодня позже", "2026-09-01", "15:00", StatusConfirmed, true},
		{"сегодня текущий слот", "2026-09-01", "12:00", StatusConfirmed, true},
		{"сегодня раньше", "2026-09-01", "09:00", StatusConfirmed, false},
		{"отмененное не предстоит", "2026-09-02", "09:00", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{
				Date:   tt.date,
				Slot:   types.TimeString(tt.slot),
				Status: tt.status,
			}
			assert.Equal(t, tt.want, r.IsUpcoming(now))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2026-09-01"))
	assert.False(t, IsValidDate("2026-9-1"))
	assert.False(t, IsValidDate("01.09.2026"))
	assert.False(t, IsValidDate(""))
}

func TestFindSunbed(t *testing.T) {
	sb, ok := FindSunbed(DefaultSunbeds, "premium-1")
	assert.True(t, ok)
	assert.Equal(t, CategoryPremium, sb.Category)

	_, ok = FindSunbed(DefaultSunbeds, "no-such-bed")
	assert.False(t, ok)
}
