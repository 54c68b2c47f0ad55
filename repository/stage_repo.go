package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

// StageRepository covers stages and the service rows embedded in them.
type StageRepository interface {
	FindAll(ctx context.Context) ([]models.Stage, error)
	FindByID(ctx context.Context, id int) (*models.Stage, error)
	Create(ctx context.Context, stage *models.Stage) error
	Update(ctx context.Context, id int, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)

	FindServiceByServiceID(ctx context.Context, serviceID string) (*models.Service, error)
	AddService(ctx context.Context, stageID int, service *models.Service) (bool, error)
	UpdateService(ctx context.Context, stageID int, serviceID string, updates map[string]interface{}) (bool, error)
	DeleteService(ctx context.Context, stageID int, serviceID string) (bool, error)
}

type stageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) FindAll(ctx context.Context) ([]models.Stage, error) {
	var stages []models.Stage
	err := r.db.WithContext(ctx).Preload("Services").Order("id ASC").Find(&stages).Error
	return stages, err
}

func (r *stageRepository) FindByID(ctx context.Context, id int) (*models.Stage, error) {
	var stage models.Stage
	if err := r.db.WithContext(ctx).Preload("Services").First(&stage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *stageRepository) Create(ctx context.Context, stage *models.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Stage{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *stageRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Stage{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *stageRepository) FindServiceByServiceID(ctx context.Context, serviceID string) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "service_id = ?", serviceID).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *stageRepository) AddService(ctx context.Context, stageID int, service *models.Service) (bool, error) {
	// Adding to a missing stage must report not-found, not orphan the row.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Stage{}).Where("id = ?", stageID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	service.StageID = stageID
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *stageRepository) UpdateService(ctx context.Context, stageID int, serviceID string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Service{}).
		Where("stage_id = ? AND service_id = ?", stageID, serviceID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *stageRepository) DeleteService(ctx context.Context, stageID int, serviceID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("stage_id = ? AND service_id = ?", stageID, serviceID).
		Delete(&models.Service{})
	return res.RowsAffected > 0, res.Error
}
