package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

type TimeslotRepository interface {
	FindAvailable(ctx context.Context, date string) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// MarkUnavailableIfAvailable flips is_available to false iff it is
	// currently true. Returns false when the slot is missing or already
	// taken; this is the atomic claim that serializes racing bookings.
	MarkUnavailableIfAvailable(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type timeslotRepository struct {
	db *gorm.DB
}

func NewTimeslotRepository(db *gorm.DB) TimeslotRepository {
	return &timeslotRepository{db: db}
}

func (r *timeslotRepository) FindAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	q := r.db.WithContext(ctx).Where("is_available = ?", true)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	err := q.Order("date ASC, time ASC").Find(&slots).Error
	return slots, err
}

func (r *timeslotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeslotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timeslotRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.TimeSlot{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *timeslotRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.TimeSlot{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *timeslotRepository) MarkUnavailableIfAvailable(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	return res.RowsAffected > 0, res.Error
}
