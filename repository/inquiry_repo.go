package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.ContactInquiry) error
	FindAll(ctx context.Context, skip, limit int) ([]models.ContactInquiry, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) FindAll(ctx context.Context, skip, limit int) ([]models.ContactInquiry, error) {
	var inquiries []models.ContactInquiry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactInquiry{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *inquiryRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.ContactInquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
