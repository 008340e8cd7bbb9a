package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/STS-BookingService/pkg/types"
)

// TimeSlots is the fixed ordered slot catalog: 48 HH:MM values from
// 09:00 inclusive to 21:00 exclusive, stepping by 15 minutes.
// Identical every day; no per-day customization
var TimeSlots = generateTimeSlots()

func generateTimeSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, (CloseHour-OpenHour)*60/SlotStepMinutes)
	for hour := OpenHour; hour < CloseHour; hour++ {
		for minute := 0; minute < 60; minute += SlotStepMinutes {
			slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", hour, minute)))
		}
	}
	return slots
}

// IsValidSlot reports whether slot belongs to the slot catalog
func IsValidSlot(slot types.TimeString) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// NearestSlot maps a wall-clock time to the nearest bookable slot for
// walk-up sessions, without a manual picker.
//
// If the current minute is within 5 minutes of a quarter-hour grid point,
// that grid point wins (11:06 resolves to 11:00). The :00 point is also
// reachable by rounding up from m >= 55, in which case the slot belongs to
// the next hour. Otherwise the next grid point strictly after the current
// minute is taken; past :45 that is the next hour's :00.
//
// Pure function of the input timestamp. The hour is not wrapped past 23:
// out-of-catalog results are rejected downstream by IsValidSlot
func NearestSlot(t time.Time) types.TimeString {
	h := t.Hour()
	m := t.Minute()

	candidates := []int{0, 15, 30, 45}

	for _, c := range candidates {
		diff := m - c
		if diff < 0 {
			diff = -diff
		}
		if diff <= 5 || (c == 0 && m >= 55) {
			if c == 0 && m >= 55 {
				return types.TimeString(fmt.Sprintf("%02d:00", h+1))
			}
			return types.TimeString(fmt.Sprintf("%02d:%02d", h, c))
		}
	}

	for _, c := range candidates {
		if c > m {
			return types.TimeString(fmt.Sprintf("%02d:%02d", h, c))
		}
	}

	return types.TimeString(fmt.Sprintf("%02d:00", h+1))
}
