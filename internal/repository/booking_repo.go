package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jobfair/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_booking_slot"`
	CompanyID   int64     `gorm:"column:company_id;uniqueIndex:idx_booking_slot"`
	BookingDate time.Time `gorm:"column:booking_date;uniqueIndex:idx_booking_slot"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// BookingFilters narrows listings. Zero values mean "no restriction".
type BookingFilters struct {
	UserID    int64
	CompanyID int64
}

// BookingDetails is a booking row joined with its company summary and the
// owning user's contact fields, for display only.
type BookingDetails struct {
	ID          int64     `gorm:"column:id"`
	UserID      int64     `gorm:"column:user_id"`
	CompanyID   int64     `gorm:"column:company_id"`
	BookingDate time.Time `gorm:"column:booking_date"`
	CreatedAt   time.Time `gorm:"column:created_at"`

	CompanyName     string `gorm:"column:company_name"`
	CompanyAddress  string `gorm:"column:company_address"`
	CompanyProvince string `gorm:"column:company_province"`
	CompanyTel      string `gorm:"column:company_tel"`

	UserName  string `gorm:"column:user_name"`
	UserEmail string `gorm:"column:user_email"`
	UserTel   string `gorm:"column:user_tel"`
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		UserID:      m.UserID,
		CompanyID:   m.CompanyID,
		BookingDate: m.BookingDate,
		CreatedAt:   m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		UserID:      b.UserID,
		CompanyID:   b.CompanyID,
		BookingDate: b.BookingDate,
		CreatedAt:   b.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListDetailed returns bookings joined with company and user summaries,
// oldest first, honoring the given filters.
func (r *BookingRepository) ListDetailed(ctx context.Context, f BookingFilters) ([]BookingDetails, error) {
	q := `
SELECT b.id, b.user_id, b.company_id, b.booking_date, b.created_at,
       c.name     AS company_name,
       c.address  AS company_address,
       c.province AS company_province,
       c.tel      AS company_tel,
       u.name     AS user_name,
       u.email    AS user_email,
       u.tel      AS user_tel
FROM bookings b
JOIN companies c ON c.id = b.company_id
JOIN users u     ON u.id = b.user_id
`
	args := make([]any, 0, 2)
	where := ""
	if f.UserID != 0 {
		where = "WHERE b.user_id = ?"
		args = append(args, f.UserID)
	}
	if f.CompanyID != 0 {
		if where == "" {
			where = "WHERE b.company_id = ?"
		} else {
			where += " AND b.company_id = ?"
		}
		args = append(args, f.CompanyID)
	}

	var rows []BookingDetails
	tx := r.db.WithContext(ctx).Raw(q+where+" ORDER BY b.id", args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// CountByUser counts every booking currently held by the user, across all
// companies. The quota check reads this.
func (r *BookingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("user_id = ?", userID).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// FindSlot looks up a booking with the exact (user, company, date) triple.
// Returns (nil, nil) when the slot is free.
func (r *BookingRepository) FindSlot(ctx context.Context, userID, companyID int64, date time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ? AND booking_date = ?", userID, companyID, date).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	// Owner and creation timestamp are immutable; only the slot may move.
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"company_id":   b.CompanyID,
			"booking_date": b.BookingDate,
		})
	return tx.Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}
