package models

import "time"

// TimeSlot is a bookable consultation slot. IsAvailable is the single source
// of truth for bookability; it flips to false when a booking claims the slot
// and never flips back except by an admin edit.
type TimeSlot struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Date        string    `gorm:"size:10;index:idx_slot_date_time" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"size:5;index:idx_slot_date_time" json:"time"`  // HH:MM
	IsAvailable bool      `gorm:"default:true;index" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
