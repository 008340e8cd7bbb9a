package domain

import "github.com/m04kA/STS-BookingService/pkg/types"

// DayAvailability is the derived availability table for one date:
// sunbed id -> slot -> true when bookable.
// Not persisted; a pure function of (catalog, confirmed reservations).
// Once built the table is treated as an immutable snapshot: on every
// change a whole new table replaces the previous one
type DayAvailability struct {
	Date    string
	Sunbeds map[string]map[types.TimeString]bool
}

// BuildDayAvailability computes the availability table for date from the
// given reservation set.
//
// Every (sunbed, slot) pair starts available; each confirmed reservation
// matching the date flips its cell to false. Reservations for other dates,
// non-confirmed statuses and unknown sunbed ids are ignored.
// The output always covers the full sunbed x slot grid
func BuildDayAvailability(date string, sunbeds []Sunbed, reservations []*Reservation) *DayAvailability {
	table := &DayAvailability{
		Date:    date,
		Sunbeds: make(map[string]map[types.TimeString]bool, len(sunbeds)),
	}

	for i := range sunbeds {
		slots := make(map[types.TimeString]bool, len(TimeSlots))
		for _, slot := range TimeSlots {
			slots[slot] = true
		}
		table.Sunbeds[sunbeds[i].ID] = slots
	}

	for _, r := range reservations {
		if !r.IsConfirmed() || r.Date != date {
			continue
		}
		if slots, ok := table.Sunbeds[r.SunbedID]; ok {
			slots[r.Slot] = false
		}
	}

	return table
}

// IsAvailable reports whether the (sunbed, slot) cell is bookable.
// Unknown sunbeds and slots report false
func (a *DayAvailability) IsAvailable(sunbedID string, slot types.TimeString) bool {
	slots, ok := a.Sunbeds[sunbedID]
	if !ok {
		return false
	}
	return slots[slot]
}

// AvailableSlots returns the ordered list of bookable slots for one sunbed
func (a *DayAvailability) AvailableSlots(sunbedID string) []types.TimeString {
	slots, ok := a.Sunbeds[sunbedID]
	if !ok {
		return []types.TimeString{}
	}
	out := make([]types.TimeString, 0, len(slots))
	for _, slot := range TimeSlots {
		if slots[slot] {
			out = append(out, slot)
		}
	}
	return out
}
