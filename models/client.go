package models

import (
	"time"

	"gorm.io/datatypes"
)

// Client belongs to exactly one Partner. Ownership is enforced in every
// partner-facing query: a client outside the caller's partner scope is
// indistinguishable from a missing one.
type Client struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	PartnerID string          `gorm:"size:36;index" json:"partner_id"`
	FullName  string          `gorm:"size:255" json:"full_name"`
	Email     string          `gorm:"size:255" json:"email,omitempty"`
	Phone     string          `gorm:"size:50" json:"phone,omitempty"`
	Company   string          `gorm:"size:255" json:"company,omitempty"`
	Services  []ClientService `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"services"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ClientService is a purchased line item used for partner revenue reporting.
type ClientService struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	ClientID     string         `gorm:"size:36;index" json:"-"`
	ServiceID    string         `gorm:"size:64" json:"service_id"`
	ServiceName  string         `gorm:"size:255" json:"service_name,omitempty"`
	Price        float64        `json:"price"`
	PurchaseDate time.Time      `json:"purchase_date"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
}
