package model

import (
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/slug"
	"gorm.io/gorm"
)

// EventTypes lists the accepted event_type values
var EventTypes = []string{"bootcamp", "workshop", "seminar", "mentoring", "meetup"}

// EventStatuses lists the accepted status values
var EventStatuses = []string{"draft", "published", "cancelled", "completed"}

// Event represents a bootcamp, workshop or other community event
type Event struct {
	ID                   uint                `gorm:"primaryKey" json:"id"`
	Title                string              `gorm:"size:255;not null" json:"title"`
	Slug                 string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description          *string             `gorm:"type:text" json:"description"`
	Content              *string             `gorm:"type:text" json:"content"`
	FeaturedImage        *string             `gorm:"size:255" json:"featured_image"`
	EventType            string              `gorm:"size:20;not null" json:"event_type"`
	Status               string              `gorm:"size:20;not null;default:draft" json:"status"`
	StartDate            time.Time           `gorm:"not null" json:"start_date"`
	EndDate              time.Time           `gorm:"not null" json:"end_date"`
	Location             *string             `gorm:"size:255" json:"location"`
	IsOnline             bool                `gorm:"not null;default:false" json:"is_online"`
	MeetingLink          *string             `gorm:"size:255" json:"meeting_link"`
	MaxParticipants      *int                `json:"max_participants"`
	RegistrationFee      float64             `gorm:"type:decimal(12,2);not null;default:0" json:"registration_fee"`
	RegistrationDeadline *time.Time          `json:"registration_deadline"`
	OrganizerID          uint                `gorm:"index" json:"organizer_id"`
	CreatedBy            uint                `json:"created_by"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	EventRegistrations   []EventRegistration `gorm:"constraint:OnDelete:CASCADE" json:"event_registrations,omitempty"`
}

// BeforeSave derives the slug from the title on every write
func (e *Event) BeforeSave(tx *gorm.DB) error {
	e.Slug = slug.Make(e.Title)
	return nil
}

// RegistrationClosed reports whether the registration deadline has passed at now
func (e *Event) RegistrationClosed(now time.Time) bool {
	return e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline)
}
