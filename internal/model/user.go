package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a community member
type User struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	Name               string                      `gorm:"size:255;not null" json:"name"`
	Email              string                      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password           string                      `gorm:"size:255;not null" json:"-"`
	Phone              *string                     `gorm:"size:15" json:"phone"`
	ProfilePhoto       *string                     `gorm:"size:2048" json:"profile_photo"`
	Bio                *string                     `gorm:"type:text" json:"bio"`
	Skills             datatypes.JSONSlice[string] `json:"skills"`
	JobTitle           *string                     `gorm:"size:100" json:"job_title"`
	Company            *string                     `gorm:"size:100" json:"company"`
	Linkedin           *string                     `gorm:"size:255" json:"linkedin"`
	Github             *string                     `gorm:"size:255" json:"github"`
	PortfolioURL       *string                     `gorm:"size:255" json:"portfolio_url"`
	Location           *string                     `gorm:"size:100" json:"location"`
	IsActive           bool                        `gorm:"not null" json:"is_active"`
	Role               string                      `gorm:"size:20;not null;default:member" json:"role"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
	EventRegistrations []EventRegistration         `gorm:"constraint:OnDelete:CASCADE" json:"event_registrations,omitempty"`
	Testimonials       []Testimonial               `gorm:"constraint:OnDelete:CASCADE" json:"testimonials,omitempty"`
}

// SetPassword stores the bcrypt hash of plain
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
