package models

import "time"

type Testimonial struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255" json:"name"`
	Company     string    `gorm:"size:255" json:"company"`
	Designation string    `gorm:"size:255" json:"designation,omitempty"`
	Text        string    `gorm:"type:text" json:"text"`
	Rating      int       `gorm:"default:5" json:"rating"`
	Image       string    `gorm:"size:512" json:"image,omitempty"`
	Published   bool      `gorm:"default:true;index" json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
