package models

import (
	"time"

	"gorm.io/datatypes"
)

type EmailTemplate struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Name         string         `gorm:"size:255" json:"name"`
	Subject      string         `gorm:"size:255" json:"subject"`
	HTMLContent  string         `gorm:"type:text;column:html_content" json:"html_content"`
	TemplateType string         `gorm:"size:64;index" json:"template_type"`
	Variables    datatypes.JSON `json:"variables"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
