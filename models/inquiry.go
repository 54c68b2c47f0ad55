package models

import "time"

const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusQualified = "qualified"
	InquiryStatusClosed    = "closed"
)

type ContactInquiry struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	FullName        string    `gorm:"size:255" json:"full_name"`
	Email           string    `gorm:"size:255;index" json:"email"`
	Phone           string    `gorm:"size:50" json:"phone,omitempty"`
	Company         string    `gorm:"size:255" json:"company,omitempty"`
	Message         string    `gorm:"type:text" json:"message"`
	ServiceInterest string    `gorm:"size:255" json:"service_interest,omitempty"`
	Status          string    `gorm:"size:32;default:new;index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidInquiryStatus reports whether s is one of the known inquiry statuses.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusQualified, InquiryStatusClosed:
		return true
	}
	return false
}
