package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsID is the fixed primary key of the single settings row.
const SettingsID = "settings"

type SiteSettings struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	CompanyName     string         `gorm:"size:255" json:"company_name"`
	CompanyEmail    string         `gorm:"size:255" json:"company_email"`
	CompanyPhone    string         `gorm:"size:100" json:"company_phone"`
	CompanyAddress  string         `gorm:"size:512" json:"company_address"`
	SiteTitle       string         `gorm:"size:255" json:"site_title"`
	SiteDescription string         `gorm:"size:512" json:"site_description"`
	CompanyLogoURL  string         `gorm:"size:512" json:"company_logo_url,omitempty"`
	FaviconURL      string         `gorm:"size:512" json:"favicon_url,omitempty"`
	SMTPHost        string         `gorm:"size:255" json:"smtp_host,omitempty"`
	SMTPPort        int            `json:"smtp_port,omitempty"`
	SMTPUser        string         `gorm:"size:255" json:"smtp_user,omitempty"`
	SMTPPassword    string         `gorm:"size:255" json:"-"`
	RecipientEmail  string         `gorm:"size:255" json:"recipient_email,omitempty"`
	SocialLinks     datatypes.JSON `json:"social_links,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// DefaultSettings returns the fallback returned when no settings row exists.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		ID:              SettingsID,
		CompanyName:     "BizDesk Advisory",
		CompanyEmail:    "hello@bizdesk.example",
		CompanyPhone:    "+91-000-000-0000",
		CompanyAddress:  "Your Business Address",
		SiteTitle:       "BizDesk - Business Solutions",
		SiteDescription: "End-to-end business solutions from startup to IPO",
	}
}
