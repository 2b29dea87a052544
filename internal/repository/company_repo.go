package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobfair/internal/domain"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

type companyModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;size:50;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Image       string    `gorm:"column:image"`
	Location    string    `gorm:"column:location"`
	Website     string    `gorm:"column:website"`
	Address     string    `gorm:"column:address"`
	District    string    `gorm:"column:district"`
	Province    string    `gorm:"column:province"`
	PostalCode  string    `gorm:"column:postal_code;size:5"`
	Tel         string    `gorm:"column:tel"`
	Region      string    `gorm:"column:region"`
	Salary      string    `gorm:"column:salary"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (companyModel) TableName() string { return "companies" }

func toDomainCompany(m companyModel) *domain.Company {
	return &domain.Company{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Location:    m.Location,
		Website:     m.Website,
		Address:     m.Address,
		District:    m.District,
		Province:    m.Province,
		PostalCode:  m.PostalCode,
		Tel:         m.Tel,
		Region:      m.Region,
		Salary:      m.Salary,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCompanyModel(c *domain.Company) companyModel {
	return companyModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Location:    c.Location,
		Website:     c.Website,
		Address:     c.Address,
		District:    c.District,
		Province:    c.Province,
		PostalCode:  c.PostalCode,
		Tel:         c.Tel,
		Region:      c.Region,
		Salary:      c.Salary,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	m := toCompanyModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCompany(m)
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	var m companyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCompany(m), nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	var models []companyModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Company, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCompany(m))
	}
	return out, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	m := toCompanyModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCompany(m)
	return nil
}

// DeleteCascade removes a company and every booking held against it in one
// transaction, so readers never observe orphaned bookings or a half-done
// cascade.
func (r *CompanyRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&companyModel{}, id).Error
	})
}
