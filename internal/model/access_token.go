package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessToken records an issued bearer token so it can be expired or revoked
type AccessToken struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	Revoked    bool       `gorm:"not null;default:false" json:"revoked"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a random token id
func (t *AccessToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = "tok_" + uuid.NewString()
	}
	return nil
}

// IsExpired checks if the token is expired
func (t *AccessToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid checks if the token is neither expired nor revoked
func (t *AccessToken) IsValid() bool {
	return !t.Revoked && !t.IsExpired()
}
