package model

import "time"

// Testimonial is feedback left by a user, optionally about an event
type Testimonial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Rating      int       `gorm:"not null;default:5" json:"rating"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"is_featured"`
	IsPublished bool      `gorm:"not null;default:false" json:"is_published"`
	ProgramID   *uint     `json:"program_id"`
	EventID     *uint     `gorm:"index" json:"event_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
