package booking

import (
	"context"
	"time"

	"jobfair/internal/domain"
	"jobfair/internal/repository"
)

// BookingRepository is the store surface the admission engine consumes.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListDetailed(ctx context.Context, f repository.BookingFilters) ([]repository.BookingDetails, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	FindSlot(ctx context.Context, userID, companyID int64, date time.Time) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
}

// CompanyRepository resolves booking targets.
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}
