package domain

import "time"

// Booking reserves a single interview slot for one user at one company.
// The (UserID, CompanyID, BookingDate) triple is unique; the owner is fixed
// at creation and never reassigned.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CompanyID   int64     `json:"company_id"`
	BookingDate time.Time `json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`

	Company *Company `json:"company,omitempty"`
	User    *User    `json:"user,omitempty"`
}

// NormalizeSlot pins a requested slot to UTC so duplicate detection compares
// instants, not client-formatted strings.
func NormalizeSlot(t time.Time) time.Time {
	return t.UTC()
}
