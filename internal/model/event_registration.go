package model

import "time"

// EventRegistration is a user's sign-up for an event
type EventRegistration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;index" json:"event_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Event        *Event    `gorm:"constraint:OnDelete:CASCADE" json:"event,omitempty"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
