package model

import (
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/slug"
	"gorm.io/gorm"
)

// PartnershipTypes lists the accepted partnership_type values
var PartnershipTypes = []string{"corporate", "educational", "government", "startup"}

// Partner is an organisation working with the community
type Partner struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Slug            string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     *string   `gorm:"type:text" json:"description"`
	Logo            *string   `gorm:"size:255" json:"logo"`
	WebsiteURL      *string   `gorm:"size:255" json:"website_url"`
	ContactEmail    *string   `gorm:"size:255" json:"contact_email"`
	ContactPhone    *string   `gorm:"size:20" json:"contact_phone"`
	PartnershipType string    `gorm:"size:20;not null" json:"partnership_type"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	IsFeatured      bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeSave derives the slug from the name on every write
func (p *Partner) BeforeSave(tx *gorm.DB) error {
	p.Slug = slug.Make(p.Name)
	return nil
}
