package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

type CodeLabelItem struct {
	Code         string `json:"code" zog:"code"`
	Label        string `json:"label" zog:"label"`
	RequiresText bool   `json:"requires_text" zog:"requires_text"`
}

type AlertRuleItem struct {
	CancerType         string  `json:"cancer_type" zog:"cancer_type"`
	SDMThreshold       float64 `json:"sdm_threshold" zog:"sdm_threshold"`
	NutritionThreshold float64 `json:"nutrition_threshold" zog:"nutrition_threshold"`
}

type SettingRequest struct {
	CodeLabels []CodeLabelItem `json:"code_labels" zog:"code_labels"`
	Staff      []string        `json:"staff" zog:"staff"`
	AlertRules []AlertRuleItem `json:"alert_rules" zog:"alert_rules"`
}

var settingRequestSchema = z.Struct(z.Shape{
	"CodeLabels": z.Slice(z.Struct(z.Shape{
		"Code":         z.String().Required(),
		"Label":        z.String().Required(),
		"RequiresText": z.Bool(),
	})),
	"Staff": z.Slice(z.String()),
	"AlertRules": z.Slice(z.Struct(z.Shape{
		"CancerType":         z.String().Required(),
		"SDMThreshold":       z.Float64().Required(),
		"NutritionThreshold": z.Float64().Required(),
	})),
})

func (rs *RestfulServer) GetSettings(c *gin.Context) {
	catalog, err := rs.Tracker.Settings.Catalog(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// PutSetting replaces one reference list. The body field that is read depends on the key:
// code_labels for the coded lists, staff for staff_list, alert_rules for alert_rules.
func (rs *RestfulServer) PutSetting(c *gin.Context) {
	var req SettingRequest
	if issues := settingRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	ctx := c.Request.Context()
	settings := rs.Tracker.Settings
	codeLabels := func() []models.CodeLabel {
		items := make([]models.CodeLabel, 0, len(req.CodeLabels))
		for _, item := range req.CodeLabels {
			items = append(items, models.CodeLabel{Code: item.Code, Label: item.Label})
		}
		return items
	}

	var err error
	switch key := c.Param("key"); key {
	case models.SettingKeyCancerTypes:
		err = settings.SetCancerTypes(ctx, codeLabels())
	case models.SettingKeyTreatmentIntents:
		err = settings.SetTreatmentIntents(ctx, codeLabels())
	case models.SettingKeyUnableReasons:
		err = settings.SetUnableReasons(ctx, codeLabels())
	case models.SettingKeyPauseReasons:
		reasons := make([]models.PauseReason, 0, len(req.CodeLabels))
		for _, item := range req.CodeLabels {
			reasons = append(reasons, models.PauseReason{Code: item.Code, Label: item.Label, RequiresText: item.RequiresText})
		}
		err = settings.SetPauseReasons(ctx, reasons)
	case models.SettingKeyStaffList:
		err = settings.SetStaffList(ctx, req.Staff)
	case models.SettingKeyAlertRules:
		alertRules := make([]models.AlertRule, 0, len(req.AlertRules))
		for _, item := range req.AlertRules {
			alertRules = append(alertRules, models.AlertRule(item))
		}
		err = settings.SetAlertRules(ctx, alertRules)
	default:
		err = apperrors.NewNotFoundError("setting", key)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	rs.GetSettings(c)
}

func (rs *RestfulServer) GetStats(c *gin.Context) {
	stats, err := rs.Tracker.Report.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (rs *RestfulServer) ExportBackup(c *gin.Context) {
	snapshot, err := rs.Tracker.Backup.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sela-backup.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// ImportBackup replaces the whole store with the uploaded snapshot.
func (rs *RestfulServer) ImportBackup(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		writeError(c, apperrors.NewValidationError("snapshot is not valid json: %v", err))
		return
	}

	if err := rs.Tracker.Backup.Import(c.Request.Context(), &snapshot); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
