package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STS-BookingService/pkg/types"
)

func TestTimeSlots_Catalog(t *testing.T) {
	require.Len(t, TimeSlots, 48)

	assert.Equal(t, types.TimeString("09:00"), TimeSlots[0])
	assert.Equal(t, types.TimeString("20:45"), TimeSlots[len(TimeSlots)-1])

	// Сетка строго возрастает с шагом 15 минут
	for i := 1; i < len(TimeSlots); i++ {
		prev, err := TimeSlots[i-1].Minutes()
		require.NoError(t, err)
		cur, err := TimeSlots[i].Minutes()
		require.NoError(t, err)
		assert.Equal(t, SlotStepMinutes, cur-prev)
	}
}

func TestIsValidSlot(t *testing.T) {
	assert.True(t, IsValidSlot("09:00"))
	assert.True(t, IsValidSlot("14:30"))
	assert.True(t, IsValidSlot("20:45"))

	assert.False(t, IsValidSlot("08:45"))
	assert.False(t, IsValidSlot("21:00"))
	assert.False(t, IsValidSlot("14:10"))
	assert.False(t, IsValidSlot("24:00"))
	assert.False(t, IsValidSlot(""))
}

func TestNearestSlot(t *testing.T) {
	tests := []struct {
		name string
		time string
		want types.TimeString
	}{
		{"грид-поинт без сдвига", "11:00", "11:00"},
		{"округление вниз к :00", "11:02", "11:00"},
		{"в пяти минутах от :15", "11:10", "11:15"},
		{"между поинтами - следующий", "11:06", "11:15"},
		{"между поинтами - вверх к :30", "11:22", "11:30"},
		{"округление вниз к :45", "11:50", "11:45"},
		{"m>=55 - ноль следующего часа", "11:58", "12:00"},
		{"после :45 вне окна - следующий час", "11:53", "12:00"},
		{"ровно пять минут после :30", "11:35", "11:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := time.Parse("15:04", tt.time)
			require.NoError(t, err)
			now := time.Date(2026, 9, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)

			assert.Equal(t, tt.want, NearestSlot(now))
		})
	}
}

func TestNearestSlot_OutsideGrid(t *testing.T) {
	// Поздний вечер дает слот за пределами сетки - его отсекает IsValidSlot
	late := time.Date(2026, 9, 1, 22, 58, 0, 0, time.UTC)
	slot := NearestSlot(late)
	assert.Equal(t, types.TimeString("23:00"), slot)
	assert.False(t, IsValidSlot(slot))

	early := time.Date(2026, 9, 1, 7, 20, 0, 0, time.UTC)
	assert.False(t, IsValidSlot(NearestSlot(early)))
}
