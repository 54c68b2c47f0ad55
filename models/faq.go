package models

import "time"

type FAQ struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Category  string    `gorm:"size:100" json:"category"`
	Order     int       `gorm:"column:sort_order;default:0" json:"order"`
	Published bool      `gorm:"default:true;index" json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
