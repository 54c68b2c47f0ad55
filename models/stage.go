package models

import (
	"time"

	"gorm.io/datatypes"
)

// Stage groups the services offered for one phase of a business lifecycle.
// IDs are small integers chosen by the admin, not auto-generated.
type Stage struct {
	ID       int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title    string    `gorm:"size:255" json:"title"`
	Subtitle string    `gorm:"size:255" json:"subtitle"`
	Phase    string    `gorm:"size:100" json:"phase"`
	Services []Service `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is a single offering embedded in a stage. ServiceID is the public
// identifier used in URLs; the numeric ID is internal.
type Service struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ServiceID string `gorm:"uniqueIndex;size:64" json:"service_id"`
	StageID   int    `gorm:"index" json:"stage_id"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:64" json:"icon,omitempty"`
	Details     string `gorm:"type:text" json:"details,omitempty"`
	Price       string `gorm:"size:64" json:"price,omitempty"`
	Duration    string `gorm:"size:64" json:"duration,omitempty"`

	// JSON arrays of strings. RelevantFor must never be empty; see
	// DefaultRelevantFor.
	RelevantFor datatypes.JSON `gorm:"column:relevant_for" json:"relevant_for"`
	Features    datatypes.JSON `json:"features,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultRelevantFor is applied when a service is created or updated with an
// absent or malformed audience tag list.
var DefaultRelevantFor = []string{"startup", "msme"}
