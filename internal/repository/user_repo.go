package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"jobfair/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Tel          *string   `gorm:"column:tel"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var tel string
	if m.Tel != nil {
		tel = *m.Tel
	}

	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Tel:          tel,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var tel *string
	if u.Tel != "" {
		v := u.Tel
		tel = &v
	}

	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		Tel:          tel,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}
