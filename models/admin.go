package models

import "time"

type Admin struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Email        string    `gorm:"size:255" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}
