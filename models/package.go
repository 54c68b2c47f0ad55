package models

import (
	"time"

	"gorm.io/datatypes"
)

// ServicePackage bundles several services under one price.
// Services holds a JSON array of service_id strings.
type ServicePackage struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Services    datatypes.JSON `json:"services"`
	Price       float64        `json:"price"`
	Duration    string         `gorm:"size:64" json:"duration"`
	Features    datatypes.JSON `json:"features"`
	Popular     bool           `gorm:"default:false" json:"popular"`
	Published   bool           `gorm:"default:true;index" json:"published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
