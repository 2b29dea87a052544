package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"jobfair/internal/config"
	"jobfair/internal/domain"
	"jobfair/internal/repository"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListDetailed(ctx context.Context, f repository.BookingFilters) ([]repository.BookingDetails, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindSlot(ctx context.Context, userID, companyID int64, date time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, userID, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func testRules() config.BookingConfig {
	return config.BookingConfig{
		WindowStart:       time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC),
		WindowEnd:         time.Date(2022, 5, 13, 23, 59, 59, 999000000, time.UTC),
		MaxActiveBookings: 3,
	}
}

func newTestService() (*Service, *MockBookingRepository, *MockCompanyRepository) {
	mockBookings := new(MockBookingRepository)
	mockCompanies := new(MockCompanyRepository)
	return NewService(mockBookings, mockCompanies, testRules()), mockBookings, mockCompanies
}

var (
	user  = Caller{ID: 7, Role: string(domain.RoleUser)}
	admin = Caller{ID: 1, Role: string(domain.RoleAdmin)}
)

func TestSubmitBooking_Success(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(0), nil).Once()
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), slot).Return(nil, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(1), nil).Once()

	b, err := svc.SubmitBooking(context.Background(), user, 42, slot)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, user.ID, b.UserID)
	assert.Equal(t, int64(42), b.CompanyID)
	assert.Equal(t, slot, b.BookingDate)
	mockBookings.AssertExpectations(t)
}

func TestSubmitBooking_NormalizesDateToUTC(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	bangkok := time.FixedZone("ICT", 7*60*60)
	local := time.Date(2022, 5, 11, 17, 0, 0, 0, bangkok)
	utc := local.UTC()

	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(0), nil).Once()
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), utc).Return(nil, nil)
	mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.BookingDate.Equal(utc) && b.BookingDate.Location() == time.UTC
	})).Return(nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(1), nil).Once()

	b, err := svc.SubmitBooking(context.Background(), user, 42, local)

	assert.NoError(t, err)
	assert.Equal(t, utc, b.BookingDate)
}

func TestSubmitBooking_MissingDate(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	_, err := svc.SubmitBooking(context.Background(), user, 42, time.Time{})

	assert.ErrorIs(t, err, ErrValidation)
	mockCompanies.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_CompanyNotFound(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	mockCompanies.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SubmitBooking(context.Background(), user, 404, time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrCompanyNotFound)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_OutOfWindow(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)

	for _, date := range []time.Time{
		time.Date(2022, 5, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 5, 9, 23, 59, 59, 0, time.UTC),
	} {
		_, err := svc.SubmitBooking(context.Background(), user, 42, date)
		assert.ErrorIs(t, err, ErrOutOfWindow)
	}

	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_WindowBoundsInclusive(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()
	rules := testRules()

	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(0), nil)
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), mock.Anything).Return(nil, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	for _, date := range []time.Time{rules.WindowStart, rules.WindowEnd} {
		_, err := svc.SubmitBooking(context.Background(), user, 42, date)
		assert.NoError(t, err)
	}
}

func TestSubmitBooking_QuotaExceeded(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(3), nil)

	_, err := svc.SubmitBooking(context.Background(), user, 42, time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_AdminExemptFromQuota(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("FindSlot", mock.Anything, admin.ID, int64(42), slot).Return(nil, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.SubmitBooking(context.Background(), admin, 42, slot)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	mockBookings.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
}

func TestSubmitBooking_DuplicateSlot(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(1), nil)
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), slot).
		Return(&domain.Booking{ID: 5, UserID: user.ID, CompanyID: 42, BookingDate: slot}, nil)

	_, err := svc.SubmitBooking(context.Background(), user, 42, slot)

	assert.ErrorIs(t, err, ErrDuplicateSlot)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_DuplicateRaceAtCommit(t *testing.T) {
	storeErrs := map[string]error{
		"translated": gorm.ErrDuplicatedKey,
		"postgres":   &pgconn.PgError{Code: "23505", ConstraintName: "idx_booking_slot"},
	}

	for name, storeErr := range storeErrs {
		t.Run(name, func(t *testing.T) {
			svc, mockBookings, mockCompanies := newTestService()

			slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
			mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
			mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(0), nil)
			// the racing writer commits between our read and our write
			mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), slot).Return(nil, nil)
			mockBookings.On("Create", mock.Anything, mock.Anything).Return(storeErr)

			_, err := svc.SubmitBooking(context.Background(), user, 42, slot)

			assert.ErrorIs(t, err, ErrDuplicateSlot)
		})
	}
}

func TestSubmitBooking_QuotaRaceCompensated(t *testing.T) {
	svc, mockBookings, mockCompanies := newTestService()

	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	mockCompanies.On("GetByID", mock.Anything, int64(42)).Return(&domain.Company{ID: 42}, nil)
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(2), nil).Once()
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), slot).Return(nil, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	// a concurrent submission landed first, tipping the recount past the quota
	mockBookings.On("CountByUser", mock.Anything, user.ID).Return(int64(4), nil).Once()
	mockBookings.On("Delete", mock.Anything, int64(999)).Return(nil)

	_, err := svc.SubmitBooking(context.Background(), user, 42, slot)

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	mockBookings.AssertCalled(t, "Delete", mock.Anything, int64(999))
}

func TestUpdateBooking_NotFound(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateBooking(context.Background(), user, 12, UpdateBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBooking_ForbiddenForNonOwner(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID:          12,
		UserID:      99, // someone else's booking
		CompanyID:   42,
		BookingDate: time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC),
	}, nil)

	_, err := svc.UpdateBooking(context.Background(), user, 12, UpdateBookingRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBooking_AdminMayPatchAnyBooking(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	current := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	next := time.Date(2022, 5, 12, 14, 0, 0, 0, time.UTC)
	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: 99, CompanyID: 42, BookingDate: current,
	}, nil)
	mockBookings.On("FindSlot", mock.Anything, int64(99), int64(42), next).Return(nil, nil)
	mockBookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 12 && b.UserID == 99 && b.BookingDate.Equal(next)
	})).Return(nil)

	b, err := svc.UpdateBooking(context.Background(), admin, 12, UpdateBookingRequest{BookingDate: &next})

	assert.NoError(t, err)
	assert.Equal(t, int64(99), b.UserID) // owner never changes
}

func TestUpdateBooking_RevalidatesWindow(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: user.ID, CompanyID: 42,
		BookingDate: time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC),
	}, nil)

	outside := time.Date(2022, 5, 14, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateBooking(context.Background(), user, 12, UpdateBookingRequest{BookingDate: &outside})

	assert.ErrorIs(t, err, ErrOutOfWindow)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBooking_RejectsOccupiedTargetSlot(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	next := time.Date(2022, 5, 12, 14, 0, 0, 0, time.UTC)
	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: user.ID, CompanyID: 42,
		BookingDate: time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC),
	}, nil)
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), next).
		Return(&domain.Booking{ID: 77, UserID: user.ID, CompanyID: 42, BookingDate: next}, nil)

	_, err := svc.UpdateBooking(context.Background(), user, 12, UpdateBookingRequest{BookingDate: &next})

	assert.ErrorIs(t, err, ErrDuplicateSlot)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBooking_SelfSlotIsNotADuplicate(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	existing := &domain.Booking{ID: 12, UserID: user.ID, CompanyID: 42, BookingDate: slot}
	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(existing, nil)
	mockBookings.On("FindSlot", mock.Anything, user.ID, int64(42), slot).Return(existing, nil)
	mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateBooking(context.Background(), user, 12, UpdateBookingRequest{BookingDate: &slot})

	assert.NoError(t, err)
}

func TestDeleteBooking_ForbiddenForNonOwner(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: 99, CompanyID: 42,
	}, nil)

	err := svc.DeleteBooking(context.Background(), user, 12)

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBooking_OwnerDeletes(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: user.ID, CompanyID: 42,
	}, nil)
	mockBookings.On("Delete", mock.Anything, int64(12)).Return(nil)

	err := svc.DeleteBooking(context.Background(), user, 12)

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
}

func TestListBookings_NonAdminScopedToSelf(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	// a non-admin passing a company filter still only sees their own rows
	mockBookings.On("ListDetailed", mock.Anything, repository.BookingFilters{UserID: user.ID}).
		Return([]repository.BookingDetails{{ID: 1, UserID: user.ID, CompanyID: 42, CompanyName: "Acme"}}, nil)

	views, err := svc.ListBookings(context.Background(), user, 42)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "Acme", views[0].Company.Name)
	mockBookings.AssertExpectations(t)
}

func TestListBookings_AdminFilterByCompany(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("ListDetailed", mock.Anything, repository.BookingFilters{CompanyID: 42}).
		Return([]repository.BookingDetails{
			{ID: 1, UserID: 7, CompanyID: 42, UserName: "Somchai", UserEmail: "somchai@example.com"},
			{ID: 2, UserID: 8, CompanyID: 42},
		}, nil)

	views, err := svc.ListBookings(context.Background(), admin, 42)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "somchai@example.com", views[0].User.Email)
}

func TestGetBooking_ForbiddenForStranger(t *testing.T) {
	svc, mockBookings, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(12)).Return(&domain.Booking{
		ID: 12, UserID: 99, CompanyID: 42,
	}, nil)

	_, err := svc.GetBooking(context.Background(), user, 12)

	assert.ErrorIs(t, err, ErrForbidden)
}
