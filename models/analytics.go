package models

import (
	"time"

	"gorm.io/datatypes"
)

type AnalyticsEvent struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	EventType string         `gorm:"size:64;index" json:"event_type"` // page_view, form_submit, booking, ...
	Page      string         `gorm:"size:255" json:"page,omitempty"`
	UserAgent string         `gorm:"size:512" json:"user_agent,omitempty"`
	IPAddress string         `gorm:"size:64" json:"ip_address,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

// AnalyticsSummary is the aggregate shape returned by the admin analytics
// endpoint.
type AnalyticsSummary struct {
	TotalEvents int64            `json:"total_events"`
	ByType      map[string]int64 `json:"by_type"`
}
