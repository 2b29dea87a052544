package booking

import "time"

// Caller is the authenticated identity the engine trusts verbatim.
type Caller struct {
	ID   int64
	Role string
}

type CreateBookingRequest struct {
	BookingDate time.Time `json:"booking_date" binding:"required"`
}

// UpdateBookingRequest moves a booking to another slot. Nil fields keep
// their current value; the owner is never patchable.
type UpdateBookingRequest struct {
	BookingDate *time.Time `json:"booking_date"`
	CompanyID   *int64     `json:"company_id"`
}

type BookingView struct {
	ID          int64     `json:"id"`
	BookingDate time.Time `json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`

	Company CompanyView `json:"company"`
	User    UserView    `json:"user"`
}

type CompanyView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Province string `json:"province"`
	Tel      string `json:"tel"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Tel   string `json:"tel,omitempty"`
}
