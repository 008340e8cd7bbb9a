package watch_availability

import (
	"github.com/m04kA/STS-BookingService/internal/service/availability"
)

// AvailabilityEvent payload одного SSE события
type AvailabilityEvent struct {
	Date     string                     `json:"date"`
	Table    map[string]map[string]bool `json:"availability"`
	Degraded bool                       `json:"degraded,omitempty"`
}

func toEvent(s availability.Snapshot) *AvailabilityEvent {
	event := &AvailabilityEvent{
		Date:     s.Table.Date,
		Table:    make(map[string]map[string]bool, len(s.Table.Sunbeds)),
		Degraded: s.Degraded,
	}
	for sunbedID, slots := range s.Table.Sunbeds {
		cells := make(map[string]bool, len(slots))
		for slot, free := range slots {
			cells[slot.String()] = free
		}
		event.Table[sunbedID] = cells
	}
	return event
}
