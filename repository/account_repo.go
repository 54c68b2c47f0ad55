package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Count(ctx context.Context) (int64, error)
}

type PartnerRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Partner, error)
	Create(ctx context.Context, partner *models.Partner) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) FindByUsername(ctx context.Context, username string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	return r.db.WithContext(ctx).Create(partner).Error
}
