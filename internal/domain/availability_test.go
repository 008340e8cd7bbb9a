package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/pkg/types"
)

const testDate = "2026-09-01"

func confirmedReservation(sunbedID string, slot types.TimeString) *Reservation {
	return &Reservation{
		ID:       "r-" + sunbedID + "-" + string(slot),
		UserID:   "user-1",
		SunbedID: sunbedID,
		Date:     testDate,
		Slot:     slot,
		Status:   StatusConfirmed,
	}
}

func TestBuildDayAvailability_EmptySet(t *testing.T) {
	table := BuildDayAvailability(testDate, DefaultSunbeds, nil)

	require.Len(t, table.Sunbeds, len(DefaultSunbeds))
	for _, sb := range DefaultSunbeds {
		slots, ok := table.Sunbeds[sb.ID]
		require.True(t, ok, "sunbed %s missing from table", sb.ID)
		require.Len(t, slots, len(TimeSlots))
		for _, slot := range TimeSlots {
			assert.True(t, slots[slot])
		}
	}
}

func TestBuildDayAvailability_ConfirmedBlocksCell(t *testing.T) {
	reservations := []*Reservation{
		confirmedReservation("standard-1", "10:15"),
		confirmedReservation("premium-1", "18:00"),
	}

	table := BuildDayAvailability(testDate, DefaultSunbeds, reservations)

	assert.False(t, table.IsAvailable("standard-1", "10:15"))
	assert.False(t, table.IsAvailable("premium-1", "18:00"))

	// Соседние ячейки не затронуты
	assert.True(t, table.IsAvailable("standard-1", "10:00"))
	assert.True(t, table.IsAvailable("standard-1", "10:30"))
	assert.True(t, table.IsAvailable("standard-2", "10:15"))
	assert.True(t, table.IsAvailable("premium-1", "10:15"))
}

func TestBuildDayAvailability_IgnoresNonBlocking(t *testing.T) {
	cancelled := confirmedReservation("standard-1", "11:00")
	cancelled.Status = StatusCancelled

	otherDate := confirmedReservation("standard-1", "12:00")
	otherDate.Date = "2026-09-02"

	unknownSunbed := confirmedReservation("no-such-bed", "13:00")

	table := BuildDayAvailability(testDate, DefaultSunbeds, []*Reservation{
		cancelled, otherDate, unknownSunbed,
	})

	assert.True(t, table.IsAvailable("standard-1", "11:00"))
	assert.True(t, table.IsAvailable("standard-1", "12:00"))
	for _, sb := range DefaultSunbeds {
		assert.True(t, table.IsAvailable(sb.ID, "13:00"))
	}
}

func TestBuildDayAvailability_Idempotent(t *testing.T) {
	reservations := []*Reservation{confirmedReservation("standing-1", "09:00")}

	first := BuildDayAvailability(testDate, DefaultSunbeds, reservations)
	second := BuildDayAvailability(testDate, DefaultSunbeds, reservations)

	assert.Equal(t, first, second)
}

func TestDayAvailability_IsAvailable_Unknown(t *testing.T) {
	table := BuildDayAvailability(testDate, DefaultSunbeds, nil)

	assert.False(t, table.IsAvailable("no-such-bed", "10:00"))
	assert.False(t, table.IsAvailable("standard-1", "21:00"))
}

func TestDayAvailability_AvailableSlots(t *testing.T) {
	reservations := []*Reservation{
		confirmedReservation("standard-1", "09:00"),
		confirmedReservation("standard-1", "20:45"),
	}
	table := BuildDayAvailability(testDate, DefaultSunbeds, reservations)

	slots := table.AvailableSlots("standard-1")
	require.Len(t, slots, len(TimeSlots)-2)
	assert.Equal(t, types.TimeString("09:15"), slots[0])
	assert.Equal(t, types.TimeString("20:30"), slots[len(slots)-1])

	assert.Empty(t, table.AvailableSlots("no-such-bed"))
}
