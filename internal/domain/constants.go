package domain

// Operating window of the studio: slots are generated from OpenHour
// (inclusive) to CloseHour (exclusive) with SlotStepMinutes granularity
const (
	OpenHour        = 9
	CloseHour       = 21
	SlotStepMinutes = 15
)

// Session accounting constants
const (
	DefaultSessionMinutes = 15
	SessionHours          = 0.25 // 15 minutes in wallet hours
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that occupy a slot
// Only confirmed reservations block a slot from being booked again
var BlockingStatuses = []ReservationStatus{
	StatusConfirmed,
}
