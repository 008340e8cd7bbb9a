package domain

import "time"

// Wallet is the prepaid-hours balance of a user.
// Owned by the wallet storage; the booking core only reads the balance as
// a precondition and asks for a decrement after a successful booking
type Wallet struct {
	UserID             string
	Email              string
	DisplayName        string
	RemainingHours     float64
	HoursUsedThisMonth float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanBook returns true if the balance covers one session
func (w *Wallet) CanBook() bool {
	return w.RemainingHours >= SessionHours
}

// Purchase is one prepaid-hours top-up record
type Purchase struct {
	ID        string
	UserID    string
	Hours     float64
	Amount    float64
	CreatedAt time.Time
}
