package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func defaultSettings() []model.Setting {
	return []model.Setting{
		{Key: "site_name", Value: "Narai Coder", Group: "general", Type: "string", Description: strPtr("Website name")},
		{Key: "site_description", Value: "Platform for coding education and tech events", Group: "general", Type: "string", Description: strPtr("Website description")},
		{Key: "contact_email", Value: "contact@naraicoder.com", Group: "contact", Type: "string", Description: strPtr("Contact email address")},
		{Key: "facebook_url", Value: "https://facebook.com/naraicoder", Group: "social", Type: "string", Description: strPtr("Facebook page URL")},
		{Key: "twitter_url", Value: "https://twitter.com/naraicoder", Group: "social", Type: "string", Description: strPtr("Twitter profile URL")},
		{Key: "instagram_url", Value: "https://instagram.com/naraicoder", Group: "social", Type: "string", Description: strPtr("Instagram profile URL")},
	}
}

func defaultPartners() []model.Partner {
	return []model.Partner{
		{
			Name:            "Tech Corp International",
			Description:     strPtr("Leading technology solutions provider"),
			WebsiteURL:      strPtr("https://techcorp.com"),
			ContactEmail:    strPtr("partner@techcorp.com"),
			PartnershipType: "corporate",
			IsActive:        true,
			IsFeatured:      true,
		},
		{
			Name:            "Digital Academy",
			Description:     strPtr("Premier coding bootcamp and education center"),
			WebsiteURL:      strPtr("https://digitalacademy.edu"),
			ContactEmail:    strPtr("info@digitalacademy.edu"),
			PartnershipType: "educational",
			IsActive:        true,
			IsFeatured:      true,
		},
		{
			Name:            "StartupHub",
			Description:     strPtr("Innovative startup incubator"),
			WebsiteURL:      strPtr("https://startuphub.io"),
			ContactEmail:    strPtr("connect@startuphub.io"),
			PartnershipType: "startup",
			IsActive:        true,
		},
	}
}

func defaultEvents(now time.Time, organizerID uint) []model.Event {
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	return []model.Event{
		{
			Title:                "Web Development Bootcamp 2025",
			Description:          strPtr("Intensive 12-week web development bootcamp covering full-stack development"),
			Content:              strPtr("Learn modern web development from industry experts. Topics include HTML, CSS, JavaScript, React, Node.js, and more."),
			EventType:            "bootcamp",
			Status:               "published",
			StartDate:            now.Add(30 * day),
			EndDate:              now.Add(114 * day),
			Location:             strPtr("Bangkok Tech Hub"),
			RegistrationDeadline: at(25 * day),
			OrganizerID:          organizerID,
			CreatedBy:            organizerID,
		},
		{
			Title:                "Introduction to AI Workshop",
			Description:          strPtr("One-day workshop on artificial intelligence fundamentals"),
			Content:              strPtr("Get started with AI concepts, machine learning basics, and practical applications."),
			EventType:            "workshop",
			Status:               "published",
			StartDate:            now.Add(15 * day),
			EndDate:              now.Add(15*day + 8*time.Hour),
			IsOnline:             true,
			MeetingLink:          strPtr("https://zoom.us/j/example"),
			RegistrationDeadline: at(13 * day),
			OrganizerID:          organizerID,
			CreatedBy:            organizerID,
		},
	}
}

// Seed inserts default settings, partners and events into empty tables
func Seed(ctx context.Context, db *gorm.DB) error {
	log := logger.GetLogger()
	db = db.WithContext(ctx)

	seeded, err := seedIfEmpty(db, &model.Setting{}, func(tx *gorm.DB) error {
		settings := defaultSettings()
		return tx.Create(&settings).Error
	})
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	log.Info("Settings seed checked", zap.Bool("inserted", seeded))

	seeded, err = seedIfEmpty(db, &model.Partner{}, func(tx *gorm.DB) error {
		partners := defaultPartners()
		return tx.Create(&partners).Error
	})
	if err != nil {
		return fmt.Errorf("seed partners: %w", err)
	}
	log.Info("Partners seed checked", zap.Bool("inserted", seeded))

	seeded, err = seedIfEmpty(db, &model.Event{}, func(tx *gorm.DB) error {
		organizer, err := seedOrganizer(tx)
		if err != nil {
			return err
		}
		events := defaultEvents(time.Now().UTC(), organizer.ID)
		return tx.Create(&events).Error
	})
	if err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	log.Info("Events seed checked", zap.Bool("inserted", seeded))

	return nil
}

func seedIfEmpty(db *gorm.DB, table interface{}, insert func(tx *gorm.DB) error) (bool, error) {
	var count int64
	if err := db.Model(table).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, db.Transaction(insert)
}

// seedOrganizer returns the first user, creating a placeholder admin when there is none
func seedOrganizer(tx *gorm.DB) (*model.User, error) {
	var user model.User
	err := tx.Order("id").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = model.User{
		Name:     "Narai Coder Organizer",
		Email:    "organizer@naraicoder.com",
		IsActive: true,
		Role:     model.RoleAdmin,
	}
	// random password; the account exists to own seeded events
	if err := user.SetPassword(uuid.NewString()); err != nil {
		return nil, err
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
