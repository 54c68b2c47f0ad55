package models

import (
	"time"

	"gorm.io/datatypes"
)

type Blog struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Title         string         `gorm:"size:255" json:"title"`
	Slug          string         `gorm:"uniqueIndex;size:255" json:"slug"`
	Excerpt       string         `gorm:"type:text" json:"excerpt"`
	Content       string         `gorm:"type:text" json:"content"`
	Author        string         `gorm:"size:255" json:"author"`
	Category      string         `gorm:"size:100" json:"category"`
	Tags          datatypes.JSON `json:"tags"`
	FeaturedImage string         `gorm:"size:512" json:"featured_image,omitempty"`
	Published     bool           `gorm:"default:false;index" json:"published"`
	Views         int            `gorm:"default:0" json:"views"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
