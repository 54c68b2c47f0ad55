package repository

import (
	"context"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

// ClientRepository scopes every operation by partner id. A client belonging
// to a different partner behaves exactly like a missing client, so callers
// cannot distinguish "not yours" from "does not exist".
type ClientRepository interface {
	FindByPartner(ctx context.Context, partnerID string) ([]models.Client, error)
	FindOwned(ctx context.Context, partnerID, clientID string) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, partnerID, clientID string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, partnerID, clientID string) (bool, error)

	AddService(ctx context.Context, partnerID, clientID string, service *models.ClientService) (bool, error)
	UpdateService(ctx context.Context, partnerID, clientID, serviceID string, updates map[string]interface{}) (bool, error)
	DeleteService(ctx context.Context, partnerID, clientID, serviceID string) (bool, error)

	RevenueByPartner(ctx context.Context, partnerID string) (*models.RevenueSummary, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByPartner(ctx context.Context, partnerID string) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Preload("Services").
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepository) FindOwned(ctx context.Context, partnerID, clientID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Preload("Services").
		First(&client, "id = ? AND partner_id = ?", clientID, partnerID).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, partnerID, clientID string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ? AND partner_id = ?", clientID, partnerID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *clientRepository) Delete(ctx context.Context, partnerID, clientID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND partner_id = ?", clientID, partnerID).
		Delete(&models.Client{})
	return res.RowsAffected > 0, res.Error
}

func (r *clientRepository) AddService(ctx context.Context, partnerID, clientID string, service *models.ClientService) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ? AND partner_id = ?", clientID, partnerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	service.ClientID = clientID
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *clientRepository) UpdateService(ctx context.Context, partnerID, clientID, serviceID string, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ClientService{}).
		Where("id = ? AND client_id = ?", serviceID, clientID).
		Where("client_id IN (?)", r.ownedClientIDs(ctx, partnerID)).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *clientRepository) DeleteService(ctx context.Context, partnerID, clientID, serviceID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", serviceID, clientID).
		Where("client_id IN (?)", r.ownedClientIDs(ctx, partnerID)).
		Delete(&models.ClientService{})
	return res.RowsAffected > 0, res.Error
}

func (r *clientRepository) ownedClientIDs(ctx context.Context, partnerID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Client{}).
		Select("id").
		Where("partner_id = ?", partnerID)
}

func (r *clientRepository) RevenueByPartner(ctx context.Context, partnerID string) (*models.RevenueSummary, error) {
	summary := &models.RevenueSummary{ByClient: []models.ClientRevenue{}}

	rows := []struct {
		ClientID string
		FullName string
		Total    float64
		Count    int64
	}{}

	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Select("clients.id AS client_id, clients.full_name, COALESCE(SUM(client_services.price), 0) AS total, COUNT(client_services.id) AS count").
		Joins("LEFT JOIN client_services ON client_services.client_id = clients.id").
		Where("clients.partner_id = ?", partnerID).
		Group("clients.id, clients.full_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summary.TotalRevenue += row.Total
		summary.TotalClients++
		summary.TotalServices += row.Count
		summary.ByClient = append(summary.ByClient, models.ClientRevenue{
			ClientID:     row.ClientID,
			FullName:     row.FullName,
			Revenue:      row.Total,
			ServiceCount: row.Count,
		})
	}
	return summary, nil
}
