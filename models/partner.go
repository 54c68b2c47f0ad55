package models

import "time"

type Partner struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string    `gorm:"size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	Phone        string    `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
