package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"jobfair/internal/domain"
	"jobfair/internal/repository"
)

type Service struct {
	companies *repository.CompanyRepository
}

func NewService(companies *repository.CompanyRepository) *Service {
	return &Service{companies: companies}
}

func (s *Service) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *Service) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*domain.Company, error) {
	c := &domain.Company{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Location:    req.Location,
		Website:     req.Website,
		Address:     req.Address,
		District:    req.District,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		Tel:         req.Tel,
		Region:      req.Region,
		Salary:      req.Salary,
	}

	if err := s.companies.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, id int64, req UpdateCompanyRequest) (*domain.Company, error) {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.Image != "" {
		c.Image = req.Image
	}
	if req.Location != "" {
		c.Location = req.Location
	}
	if req.Website != "" {
		c.Website = req.Website
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.District != "" {
		c.District = req.District
	}
	if req.Province != "" {
		c.Province = req.Province
	}
	if req.PostalCode != "" {
		c.PostalCode = req.PostalCode
	}
	if req.Tel != "" {
		c.Tel = req.Tel
	}
	if req.Region != "" {
		c.Region = req.Region
	}
	if req.Salary != "" {
		c.Salary = req.Salary
	}

	if err := s.companies.Update(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return c, nil
}

// DeleteCompany cascades every booking held against the company before the
// company row itself, inside one transaction.
func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	if _, err := s.GetCompany(ctx, id); err != nil {
		return err
	}
	return s.companies.DeleteCascade(ctx, id)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
