package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.ConsultationBooking) error
	FindByID(ctx context.Context, id string) (*models.ConsultationBooking, error)
	FindAll(ctx context.Context, skip, limit int) ([]models.ConsultationBooking, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	SetNotificationSent(ctx context.Context, id string, sent bool) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.ConsultationBooking) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.ConsultationBooking, error) {
	var booking models.ConsultationBooking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, skip, limit int) ([]models.ConsultationBooking, error) {
	var bookings []models.ConsultationBooking
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ConsultationBooking{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *bookingRepository) SetNotificationSent(ctx context.Context, id string, sent bool) error {
	return r.db.WithContext(ctx).Model(&models.ConsultationBooking{}).
		Where("id = ?", id).
		Update("notification_sent", sent).Error
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.ConsultationBooking{}).
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
