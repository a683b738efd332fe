package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

const (
	catalogCacheKey      = "catalog"
	catalogCacheTTL      = 10 * time.Minute
	catalogCleanupPeriod = 30 * time.Minute
)

// DefaultCatalog is written on first start.
func DefaultCatalog() models.Catalog {
	return models.Catalog{
		CancerTypes: []models.CodeLabel{
			{Code: "head_neck", Label: "Head and neck"},
			{Code: "lung", Label: "Lung"},
			{Code: "breast", Label: "Breast"},
			{Code: "esophagus", Label: "Esophagus"},
			{Code: "liver", Label: "Liver"},
			{Code: "colorectal", Label: "Colorectal"},
			{Code: "prostate", Label: "Prostate"},
			{Code: "cervical", Label: "Cervical"},
			{Code: "other", Label: "Other"},
		},
		TreatmentIntents: []models.CodeLabel{
			{Code: "curative", Label: "Curative"},
			{Code: "palliative", Label: "Palliative"},
			{Code: "adjuvant", Label: "Adjuvant"},
		},
		StaffList: []string{"Dietitian", "SDM"},
		AlertRules: []models.AlertRule{
			{CancerType: models.AlertRuleDefault, SDMThreshold: -3, NutritionThreshold: -5},
			{CancerType: "head_neck", SDMThreshold: -3, NutritionThreshold: -5},
		},
		UnableReasons: []models.CodeLabel{
			{Code: "bedridden", Label: "Bedridden"},
			{Code: "wheelchair", Label: "Wheelchair"},
			{Code: "refused", Label: "Refused"},
			{Code: "other", Label: "Other"},
		},
		PauseReasons: []models.PauseReason{
			{Code: "side_effect", Label: "Side effect"},
			{Code: "infection", Label: "Infection"},
			{Code: "hospitalized", Label: "Hospitalized"},
			{Code: "patient_request", Label: "Patient request"},
			{Code: "other", Label: "Other", RequiresText: true},
		},
	}
}

func (t *Tracker) catalogCache() *cache.Cache {
	t.cacheOnce.Do(func() {
		t.cache = cache.New(catalogCacheTTL, catalogCleanupPeriod)
	})
	return t.cache
}

func (t *Tracker) catalog(ctx context.Context) (*models.Catalog, error) {
	c := t.catalogCache()
	if cached, found := c.Get(catalogCacheKey); found {
		return cached.(*models.Catalog), nil
	}

	var rows []models.Setting
	if err := t.Db.Session(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	catalog := &models.Catalog{}
	for _, row := range rows {
		var target any
		switch row.Key {
		case models.SettingKeyCancerTypes:
			target = &catalog.CancerTypes
		case models.SettingKeyTreatmentIntents:
			target = &catalog.TreatmentIntents
		case models.SettingKeyStaffList:
			target = &catalog.StaffList
		case models.SettingKeyAlertRules:
			target = &catalog.AlertRules
		case models.SettingKeyUnableReasons:
			target = &catalog.UnableReasons
		case models.SettingKeyPauseReasons:
			target = &catalog.PauseReasons
		default:
			continue
		}
		if err := json.Unmarshal(row.Value, target); err != nil {
			return nil, fmt.Errorf("setting %s holds malformed json: %w", row.Key, err)
		}
	}

	c.SetDefault(catalogCacheKey, catalog)
	return catalog, nil
}

func (t *Tracker) invalidateCatalog() {
	t.catalogCache().Delete(catalogCacheKey)
}

func putSetting(tx *gorm.DB, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	setting := models.Setting{Key: key, Value: datatypes.JSON(raw)}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&setting).Error
}

func (t *Tracker) putSetting(ctx context.Context, key string, value any) error {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategorySettings)

	logger.Info("Received setting", zap.String("key", key), zap.Reflect("value", value))

	defer t.invalidateCatalog()
	if err := putSetting(t.Db.Session(ctx), key, value); err != nil {
		return err
	}

	logger.Info("Upserted setting", zap.String("key", key))
	return nil
}

func validateCodeLabels(key string, items []models.CodeLabel) error {
	seen := map[string]bool{}
	for _, item := range items {
		if err := validateCode(key+" code", item.Code); err != nil {
			return err
		}
		if strings.TrimSpace(item.Label) == "" {
			return apperrors.NewValidationError("%s %s needs a label", key, item.Code)
		}
		if seen[item.Code] {
			return apperrors.NewValidationError("%s code %s is listed twice", key, item.Code)
		}
		seen[item.Code] = true
	}
	return nil
}

func (t *Tracker) setCodeLabels(ctx context.Context, key string, items []models.CodeLabel) error {
	if err := validateCodeLabels(key, items); err != nil {
		return err
	}
	return t.putSetting(ctx, key, items)
}

func (t *Tracker) setPauseReasons(ctx context.Context, items []models.PauseReason) error {
	plain := common.Mapper(items, func(r models.PauseReason) models.CodeLabel {
		return models.CodeLabel{Code: r.Code, Label: r.Label}
	})
	if err := validateCodeLabels(models.SettingKeyPauseReasons, plain); err != nil {
		return err
	}
	return t.putSetting(ctx, models.SettingKeyPauseReasons, items)
}

func (t *Tracker) setStaffList(ctx context.Context, staff []string) error {
	cleaned := make([]string, 0, len(staff))
	for _, name := range staff {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return t.putSetting(ctx, models.SettingKeyStaffList, cleaned)
}

func (t *Tracker) setAlertRules(ctx context.Context, alertRules []models.AlertRule) error {
	if err := rules.ValidateAlertRules(alertRules); err != nil {
		return err
	}
	return t.putSetting(ctx, models.SettingKeyAlertRules, alertRules)
}

func (t *Tracker) ensureDefaults(ctx context.Context) error {
	return t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Setting{}).Where("key = ?", models.SettingKeyInitialized).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		defaults := DefaultCatalog()
		for key, value := range map[string]any{
			models.SettingKeyCancerTypes:      defaults.CancerTypes,
			models.SettingKeyTreatmentIntents: defaults.TreatmentIntents,
			models.SettingKeyStaffList:        defaults.StaffList,
			models.SettingKeyAlertRules:       defaults.AlertRules,
			models.SettingKeyUnableReasons:    defaults.UnableReasons,
			models.SettingKeyPauseReasons:     defaults.PauseReasons,
			models.SettingKeyInitialized:      true,
		} {
			if err := putSetting(tx, key, value); err != nil {
				return err
			}
		}
		t.invalidateCatalog()

		common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategorySettings).
			Info("Default settings initialized")
		return nil
	})
}

type ISettingsImpl struct {
	tracker *Tracker
}

func (is *ISettingsImpl) Catalog(ctx context.Context) (*models.Catalog, error) {
	return is.tracker.catalog(ctx)
}

func (is *ISettingsImpl) SetCancerTypes(ctx context.Context, items []models.CodeLabel) error {
	return is.tracker.setCodeLabels(ctx, models.SettingKeyCancerTypes, items)
}

func (is *ISettingsImpl) SetTreatmentIntents(ctx context.Context, items []models.CodeLabel) error {
	return is.tracker.setCodeLabels(ctx, models.SettingKeyTreatmentIntents, items)
}

func (is *ISettingsImpl) SetUnableReasons(ctx context.Context, items []models.CodeLabel) error {
	return is.tracker.setCodeLabels(ctx, models.SettingKeyUnableReasons, items)
}

func (is *ISettingsImpl) SetPauseReasons(ctx context.Context, items []models.PauseReason) error {
	return is.tracker.setPauseReasons(ctx, items)
}

func (is *ISettingsImpl) SetStaffList(ctx context.Context, staff []string) error {
	return is.tracker.setStaffList(ctx, staff)
}

func (is *ISettingsImpl) SetAlertRules(ctx context.Context, alertRules []models.AlertRule) error {
	return is.tracker.setAlertRules(ctx, alertRules)
}

func (is *ISettingsImpl) EnsureDefaults(ctx context.Context) error {
	return is.tracker.ensureDefaults(ctx)
}

func (is *ISettingsImpl) Invalidate() {
	is.tracker.invalidateCatalog()
}

func (t *Tracker) GetISettings() ISettings {
	return &ISettingsImpl{tracker: t}
}
