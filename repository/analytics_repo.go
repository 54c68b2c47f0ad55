package repository

import (
	"context"
	"time"

	"bizdesk-backend/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Track(ctx context.Context, event *models.AnalyticsEvent) error
	Summary(ctx context.Context, start, end *time.Time) (*models.AnalyticsSummary, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Track(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *analyticsRepository) Summary(ctx context.Context, start, end *time.Time) (*models.AnalyticsSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.AnalyticsEvent{})
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	rows := []struct {
		EventType string
		Count     int64
	}{}
	if err := q.Select("event_type, COUNT(*) AS count").Group("event_type").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{
		TotalEvents: total,
		ByType:      make(map[string]int64, len(rows)),
	}
	for _, row := range rows {
		summary.ByType[row.EventType] = row.Count
	}
	return summary, nil
}
