package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

func (t *Tracker) checkAndStoreAlerts(ctx context.Context, treatment *models.Treatment, record *models.WeightRecord) (*models.Intervention, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryAlert)

	if record.ChangeRate == nil {
		return nil, nil
	}
	if t.Settings == nil || t.Intervention == nil {
		return nil, fmt.Errorf("settings or intervention service not available")
	}

	catalog, err := t.Settings.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	kind, found := rules.ResolveAlert(*record.ChangeRate, treatment.CancerType, catalog.AlertRules)
	if !found {
		return nil, nil
	}

	logger.Info("Alert found for treatment",
		zap.String(common.LoggerFieldTreatmentID, treatment.ID),
		zap.String(common.LoggerFieldInterventionType, string(kind)),
		zap.Float64("change_rate", *record.ChangeRate))

	intervention, created, err := t.Intervention.EnsurePending(ctx, treatment.ID, kind, record.ChangeRate)
	if err != nil {
		return nil, err
	}

	if !created {
		t.Metrics.AlertSuppressed(string(kind))
		logger.Info("Alert already pending, skipped",
			zap.String(common.LoggerFieldTreatmentID, treatment.ID),
			zap.String(common.LoggerFieldInterventionType, string(kind)))
		return intervention, nil
	}

	t.Metrics.AlertTriggered(string(kind))
	logger.Info("Alert saved",
		zap.String(common.LoggerFieldTreatmentID, treatment.ID),
		zap.String(common.LoggerFieldInterventionID, intervention.ID),
		zap.String(common.LoggerFieldInterventionType, string(kind)))
	return intervention, nil
}

type IAlertImpl struct {
	tracker *Tracker
}

func (ia *IAlertImpl) CheckAndStoreAlerts(ctx context.Context, treatment *models.Treatment, record *models.WeightRecord) (*models.Intervention, error) {
	return ia.tracker.checkAndStoreAlerts(ctx, treatment, record)
}

func (t *Tracker) GetIAlert() IAlert {
	return &IAlertImpl{tracker: t}
}
