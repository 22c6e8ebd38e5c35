package model

import "time"

// Setting is a typed key-value pair. Value is stored raw and checked against Type on write.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"size:255;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Group       string    `gorm:"size:255;not null;index" json:"group"`
	Type        string    `gorm:"size:20;not null;default:string" json:"type"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
