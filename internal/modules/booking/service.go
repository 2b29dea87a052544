package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"jobfair/internal/config"
	"jobfair/internal/domain"
	"jobfair/internal/repository"
)

// Service is the booking admission engine: it validates a requested slot
// against the allowed window, the per-user quota and duplicate-slot rules,
// then commits. The commit is the only step that writes; every earlier
// failure leaves the store untouched.
type Service struct {
	bookings  BookingRepository
	companies CompanyRepository
	rules     config.BookingConfig
}

func NewService(bookings BookingRepository, companies CompanyRepository, rules config.BookingConfig) *Service {
	return &Service{
		bookings:  bookings,
		companies: companies,
		rules:     rules,
	}
}

func (s *Service) isAdmin(caller Caller) bool {
	return domain.UserRole(caller.Role).IsAdmin()
}

// authorize is the single ownership check shared by update and delete.
func authorize(caller Caller, ownerID int64) error {
	if caller.ID == ownerID || domain.UserRole(caller.Role).IsAdmin() {
		return nil
	}
	return ErrForbidden
}

func (s *Service) insideWindow(date time.Time) bool {
	return !date.Before(s.rules.WindowStart) && !date.After(s.rules.WindowEnd)
}

// SubmitBooking admits one booking request. Ordered checks, each with a
// distinct failure: company existence, date window, quota (admins exempt),
// duplicate slot, then commit. Concurrent submissions racing past the
// read-side checks are caught at commit: the unique slot index surfaces
// as ErrDuplicateSlot, and a post-commit recount compensates quota
// violations by removing the just-created row.
func (s *Service) SubmitBooking(ctx context.Context, caller Caller, companyID int64, bookingDate time.Time) (*domain.Booking, error) {
	if bookingDate.IsZero() {
		return nil, ErrValidation
	}

	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	date := domain.NormalizeSlot(bookingDate)
	if !s.insideWindow(date) {
		return nil, ErrOutOfWindow
	}

	if !s.isAdmin(caller) {
		count, err := s.bookings.CountByUser(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.rules.MaxActiveBookings) {
			return nil, ErrQuotaExceeded
		}
	}

	existing, err := s.bookings.FindSlot(ctx, caller.ID, companyID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSlot
	}

	b := &domain.Booking{
		UserID:      caller.ID,
		CompanyID:   companyID,
		BookingDate: date,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if isDuplicateSlotErr(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}

	if !s.isAdmin(caller) {
		// Two racing submissions can both pass the quota read. Recount after
		// commit and back out the later write if the quota tipped over.
		count, err := s.bookings.CountByUser(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if count > int64(s.rules.MaxActiveBookings) {
			_ = s.bookings.Delete(ctx, b.ID)
			return nil, ErrQuotaExceeded
		}
	}

	return b, nil
}

// UpdateBooking moves a booking to a new slot. Only the owner or an admin
// may patch, and patched values re-run the window and duplicate checks so
// updates cannot sidestep admission rules.
func (s *Service) UpdateBooking(ctx context.Context, caller Caller, bookingID int64, patch UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := authorize(caller, b.UserID); err != nil {
		return nil, err
	}

	companyID := b.CompanyID
	if patch.CompanyID != nil {
		companyID = *patch.CompanyID
		if _, err := s.companies.GetByID(ctx, companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, err
		}
	}

	date := b.BookingDate
	if patch.BookingDate != nil {
		if patch.BookingDate.IsZero() {
			return nil, ErrValidation
		}
		date = domain.NormalizeSlot(*patch.BookingDate)
	}

	if !s.insideWindow(date) {
		return nil, ErrOutOfWindow
	}

	occupied, err := s.bookings.FindSlot(ctx, b.UserID, companyID, date)
	if err != nil {
		return nil, err
	}
	if occupied != nil && occupied.ID != b.ID {
		return nil, ErrDuplicateSlot
	}

	b.CompanyID = companyID
	b.BookingDate = date
	if err := s.bookings.Update(ctx, b); err != nil {
		if isDuplicateSlotErr(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}

	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, caller Caller, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if err := authorize(caller, b.UserID); err != nil {
		return err
	}

	return s.bookings.Delete(ctx, bookingID)
}

// GetBooking returns one booking with its joined summaries, scoped to the
// owner or an admin.
func (s *Service) GetBooking(ctx context.Context, caller Caller, bookingID int64) (*BookingView, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := authorize(caller, b.UserID); err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListDetailed(ctx, repository.BookingFilters{UserID: b.UserID, CompanyID: b.CompanyID})
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.ID == b.ID {
			v := toBookingView(r)
			return &v, nil
		}
	}
	return nil, ErrBookingNotFound
}

// ListBookings returns bookings joined with company and user summaries.
// Non-admin callers always see their own bookings only, whatever filter
// they pass; admins see everything, optionally narrowed to one company.
func (s *Service) ListBookings(ctx context.Context, caller Caller, companyFilter int64) ([]BookingView, error) {
	var f repository.BookingFilters
	if s.isAdmin(caller) {
		f.CompanyID = companyFilter
	} else {
		f.UserID = caller.ID
	}

	rows, err := s.bookings.ListDetailed(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		out = append(out, toBookingView(r))
	}
	return out, nil
}

func toBookingView(r repository.BookingDetails) BookingView {
	return BookingView{
		ID:          r.ID,
		BookingDate: r.BookingDate,
		CreatedAt:   r.CreatedAt,
		Company: CompanyView{
			ID:       r.CompanyID,
			Name:     r.CompanyName,
			Address:  r.CompanyAddress,
			Province: r.CompanyProvince,
			Tel:      r.CompanyTel,
		},
		User: UserView{
			ID:    r.UserID,
			Name:  r.UserName,
			Email: r.UserEmail,
			Tel:   r.UserTel,
		},
	}
}

// isDuplicateSlotErr recognizes a unique-index violation on the slot triple
// from either driver: translated gorm errors (sqlite) or raw pg errors.
func isDuplicateSlotErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
