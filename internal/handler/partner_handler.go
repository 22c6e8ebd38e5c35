package handler

import (
	"strings"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/query"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var partnerQuery = query.Options{
	Filters: []query.Filter{
		{Param: "partnership_type", Column: "partnership_type"},
		{Param: "is_active", Column: "is_active", Kind: query.Bool},
		{Param: "is_featured", Column: "is_featured", Kind: query.Bool},
	},
	SearchColumns: []string{"name", "description"},
	SortColumns:   []string{"created_at", "updated_at", "name", "partnership_type"},
}

var partnerRules = validation.Rules{
	"name":             {"required", "string", "max:255"},
	"description":      {"nullable", "string"},
	"logo":             {"nullable", "string"},
	"website_url":      {"nullable", "url"},
	"contact_email":    {"nullable", "email"},
	"contact_phone":    {"nullable", "string", "max:20"},
	"partnership_type": {"required", "in:" + strings.Join(model.PartnershipTypes, ",")},
	"is_active":        {"boolean"},
	"is_featured":      {"boolean"},
}

var partnerUpdateRules = withSometimes(partnerRules)

func applyPartner(p *model.Partner, data validation.Data) {
	if data.Has("name") {
		p.Name = data.String("name")
	}
	if data.Has("description") {
		p.Description = data.StringPtr("description")
	}
	if data.Has("logo") {
		p.Logo = data.StringPtr("logo")
	}
	if data.Has("website_url") {
		p.WebsiteURL = data.StringPtr("website_url")
	}
	if data.Has("contact_email") {
		p.ContactEmail = data.StringPtr("contact_email")
	}
	if data.Has("contact_phone") {
		p.ContactPhone = data.StringPtr("contact_phone")
	}
	if data.Has("partnership_type") {
		p.PartnershipType = data.String("partnership_type")
	}
	if data.Has("is_active") {
		p.IsActive = data.Bool("is_active")
	}
	if data.Has("is_featured") {
		p.IsFeatured = data.Bool("is_featured")
	}
}

func findPartner(tx *gorm.DB, id uint) (*model.Partner, error) {
	var partner model.Partner
	if err := tx.First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func savePartner(tx *gorm.DB, p *model.Partner) error {
	if err := checkSlug(tx, &model.Partner{}, "name", p.Name, p.ID); err != nil {
		return err
	}
	return tx.Save(p).Error
}

// ListPartners is public
func ListPartners(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_partners")(time.Now())
	page, err := query.Paginate[model.Partner](db(c), partnerQuery, c.QueryParams(), listURL(c))
	if err != nil {
		return failure(c, err, "Partner", "Failed to list partners")
	}

	log.Info("Partners listed", zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("partner", "list")
	return response.OK(c, "Partners retrieved successfully", page)
}

// CreatePartner creates a partner, active unless stated otherwise
func CreatePartner(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, partnerRules)
	if err != nil {
		return err
	}

	partner := model.Partner{IsActive: true}
	applyPartner(&partner, data)

	defer prometheus.TrackDBOperation("create_partner")(time.Now())
	if err := savePartner(db(c), &partner); err != nil {
		return failure(c, err, "Partner", "Failed to create partner")
	}

	log.Info("Partner created", zap.Uint("partner_id", partner.ID), zap.String("slug", partner.Slug))
	prometheus.RecordResourceOperation("partner", "create")
	return response.Created(c, "Partner created successfully", partner)
}

// GetPartner returns one partner
func GetPartner(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Partner")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_partner")(time.Now())
	partner, err := findPartner(db(c), id)
	if err != nil {
		return failure(c, err, "Partner", "Failed to get partner")
	}

	log.Info("Partner retrieved", zap.Uint("partner_id", id))
	prometheus.RecordResourceOperation("partner", "get")
	return response.OK(c, "Partner retrieved successfully", partner)
}

// UpdatePartner applies a partial update
func UpdatePartner(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Partner")
	if err != nil {
		return err
	}

	partner, err := findPartner(db(c), id)
	if err != nil {
		return failure(c, err, "Partner", "Failed to get partner")
	}

	data, err := validateRequest(c, partnerUpdateRules)
	if err != nil {
		return err
	}
	applyPartner(partner, data)

	defer prometheus.TrackDBOperation("update_partner")(time.Now())
	if err := savePartner(db(c), partner); err != nil {
		return failure(c, err, "Partner", "Failed to update partner")
	}

	log.Info("Partner updated", zap.Uint("partner_id", id))
	prometheus.RecordResourceOperation("partner", "update")
	return response.OK(c, "Partner updated successfully", partner)
}

// DeletePartner removes a partner
func DeletePartner(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Partner")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_partner")(time.Now())
	partner, err := findPartner(db(c), id)
	if err != nil {
		return failure(c, err, "Partner", "Failed to get partner")
	}

	if err := db(c).Delete(partner).Error; err != nil {
		return failure(c, err, "Partner", "Failed to delete partner")
	}

	log.Info("Partner deleted", zap.Uint("partner_id", id))
	prometheus.RecordResourceOperation("partner", "delete")
	return response.OK(c, "Partner deleted successfully", nil)
}
