package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/cache"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/query"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/internal/settingtype"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var settingQuery = query.Options{
	Filters: []query.Filter{
		{Param: "group", Column: "group"},
		{Param: "type", Column: "type"},
	},
	SearchColumns: []string{"key", "description"},
}

func settingRules(ignoreID uint) validation.Rules {
	unique := "unique:settings,key"
	if ignoreID != 0 {
		unique = fmt.Sprintf("unique:settings,key,%d", ignoreID)
	}
	return validation.Rules{
		"key":         {"required", "string", "max:255", unique},
		"value":       {"required", "string"},
		"group":       {"required", "string", "max:255"},
		"type":        {"required", "in:" + strings.Join(settingtype.Types, ",")},
		"description": {"nullable", "string"},
	}
}

func applySetting(s *model.Setting, data validation.Data) {
	if data.Has("key") {
		s.Key = data.String("key")
	}
	if data.Has("value") {
		s.Value = data.String("value")
	}
	if data.Has("group") {
		s.Group = data.String("group")
	}
	if data.Has("type") {
		s.Type = data.String("type")
	}
	if data.Has("description") {
		s.Description = data.StringPtr("description")
	}
}

// groupSettings keeps the incoming order within each group
func groupSettings(settings []model.Setting) cache.Grouped {
	grouped := cache.Grouped{}
	for _, s := range settings {
		grouped[s.Group] = append(grouped[s.Group], s)
	}
	return grouped
}

func findSetting(tx *gorm.DB, id uint) (*model.Setting, error) {
	var setting model.Setting
	if err := tx.First(&setting, id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// checkSettingValue validates the merged value against the merged type
func checkSettingValue(c echo.Context, s *model.Setting) error {
	if err := settingtype.Check(s.Value, s.Type); err != nil {
		logger.FromContext(c).Warn("Setting value does not match its type",
			zap.String("key", s.Key),
			zap.String("type", s.Type))
		return apperror.BusinessRule(err.Error())
	}
	return nil
}

// ListSettings is public and returns every matching setting grouped by group
func ListSettings(c echo.Context) error {
	log := logger.FromContext(c)

	key := cache.Key(c.QueryParams())
	if grouped, ok := cache.Default().Get(key); ok {
		log.Debug("Settings served from cache")
		return response.OK(c, "Settings retrieved successfully", grouped)
	}

	defer prometheus.TrackDBOperation("list_settings")(time.Now())
	filtered, err := settingQuery.Filter(db(c).Model(&model.Setting{}), c.QueryParams())
	if err != nil {
		return failure(c, err, "Setting", "Failed to list settings")
	}

	var settings []model.Setting
	if err := filtered.Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return failure(c, err, "Setting", "Failed to list settings")
	}

	grouped := groupSettings(settings)
	cache.Default().Set(key, grouped)

	log.Info("Settings listed", zap.Int("count", len(settings)), zap.Int("groups", len(grouped)))
	prometheus.RecordResourceOperation("setting", "list")
	return response.OK(c, "Settings retrieved successfully", grouped)
}

// CreateSetting creates a setting whose value parses as its type
func CreateSetting(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, settingRules(0))
	if err != nil {
		return err
	}

	var setting model.Setting
	applySetting(&setting, data)
	if err := checkSettingValue(c, &setting); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("create_setting")(time.Now())
	if err := db(c).Create(&setting).Error; err != nil {
		return failure(c, err, "Setting", "Failed to create setting")
	}
	cache.Default().Flush()

	log.Info("Setting created", zap.Uint("setting_id", setting.ID), zap.String("key", setting.Key))
	prometheus.RecordResourceOperation("setting", "create")
	return response.Created(c, "Setting created successfully", setting)
}

// GetSetting returns one setting
func GetSetting(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Setting")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_setting")(time.Now())
	setting, err := findSetting(db(c), id)
	if err != nil {
		return failure(c, err, "Setting", "Failed to get setting")
	}

	log.Info("Setting retrieved", zap.Uint("setting_id", id))
	prometheus.RecordResourceOperation("setting", "get")
	return response.OK(c, "Setting retrieved successfully", setting)
}

// UpdateSetting applies a partial update and re-checks the merged value
func UpdateSetting(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Setting")
	if err != nil {
		return err
	}

	setting, err := findSetting(db(c), id)
	if err != nil {
		return failure(c, err, "Setting", "Failed to get setting")
	}

	data, err := validateRequest(c, withSometimes(settingRules(id)))
	if err != nil {
		return err
	}

	applySetting(setting, data)
	if err := checkSettingValue(c, setting); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("update_setting")(time.Now())
	if err := db(c).Save(setting).Error; err != nil {
		return failure(c, err, "Setting", "Failed to update setting")
	}
	cache.Default().Flush()

	log.Info("Setting updated", zap.Uint("setting_id", id))
	prometheus.RecordResourceOperation("setting", "update")
	return response.OK(c, "Setting updated successfully", setting)
}

// DeleteSetting removes a setting
func DeleteSetting(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Setting")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_setting")(time.Now())
	setting, err := findSetting(db(c), id)
	if err != nil {
		return failure(c, err, "Setting", "Failed to get setting")
	}

	if err := db(c).Delete(setting).Error; err != nil {
		return failure(c, err, "Setting", "Failed to delete setting")
	}
	cache.Default().Flush()

	log.Info("Setting deleted", zap.Uint("setting_id", id))
	prometheus.RecordResourceOperation("setting", "delete")
	return response.OK(c, "Setting deleted successfully", nil)
}
