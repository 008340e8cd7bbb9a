package domain

import (
	"time"

	"github.com/m04kA/STS-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	// StatusCompleted is reachable but no code path sets it yet;
	// reserved for session bookkeeping
	StatusCompleted ReservationStatus = "completed"
)

// ValidStatus reports whether s is a known reservation status
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation represents a sunbed reservation
type Reservation struct {
	ID     string
	UserID string

	// Denormalized user data captured at creation time
	UserName  string
	UserEmail string

	SunbedID string
	// Denormalized sunbed name for history views
	SunbedName string

	Date            string           // YYYY-MM-DD
	Slot            types.TimeString // HH:MM, one of the slot catalog
	DurationMinutes int
	Status          ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation currently blocks its slot
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsUpcoming reports whether the reservation is still ahead of the given
// moment (same-day reservations count up to and including their slot)
func (r *Reservation) IsUpcoming(now time.Time) bool {
	if !r.IsConfirmed() {
		return false
	}
	today := now.Format(DateFormat)
	if r.Date > today {
		return true
	}
	if r.Date < today {
		return false
	}
	return !r.Slot.IsBefore(types.NewTimeString(now))
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date
func IsValidDate(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
