package tracker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

const importBatchSize = 200

func (t *Tracker) export(ctx context.Context) (*models.Snapshot, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryBackup)

	snapshot := &models.Snapshot{
		Version:       models.SnapshotVersion,
		ExportedAt:    t.Clock.Now(),
		Patients:      []models.Patient{},
		Treatments:    []models.Treatment{},
		WeightRecords: []models.WeightRecord{},
		Interventions: []models.Intervention{},
		Settings:      []models.Setting{},
	}

	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		for _, dest := range []any{
			&snapshot.Patients,
			&snapshot.Treatments,
			&snapshot.WeightRecords,
			&snapshot.Interventions,
			&snapshot.Settings,
		} {
			if err := tx.Find(dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Exported snapshot",
		zap.Int("patients", len(snapshot.Patients)),
		zap.Int("treatments", len(snapshot.Treatments)),
		zap.Int("weight_records", len(snapshot.WeightRecords)),
		zap.Int("interventions", len(snapshot.Interventions)))
	return snapshot, nil
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, importBatchSize).Error
}

// validateSnapshot checks the invariants the services keep on every write.
func validateSnapshot(snapshot *models.Snapshot) error {
	for _, setting := range snapshot.Settings {
		if setting.Key != models.SettingKeyAlertRules {
			continue
		}
		var alertRules []models.AlertRule
		if err := json.Unmarshal(setting.Value, &alertRules); err != nil {
			return apperrors.NewValidationError("snapshot setting %s is not readable: %v", setting.Key, err)
		}
		if err := rules.ValidateAlertRules(alertRules); err != nil {
			return err
		}
	}

	ongoing := map[string]string{}
	for _, tr := range snapshot.Treatments {
		if !tr.Status.IsOngoing() {
			continue
		}
		if other, found := ongoing[tr.PatientID]; found {
			return apperrors.NewConflictError(apperrors.CodeOngoingTreatment,
				"patient %s has treatments %s and %s ongoing", tr.PatientID, other, tr.ID)
		}
		ongoing[tr.PatientID] = tr.ID
	}

	type pendingKey struct {
		treatmentID string
		kind        models.InterventionType
	}
	pending := map[pendingKey]bool{}
	for _, iv := range snapshot.Interventions {
		if iv.Status != models.InterventionStatusPending {
			continue
		}
		if !iv.Type.IsAutomatic() {
			return apperrors.NewValidationError("intervention %s of type %s cannot be pending", iv.ID, iv.Type)
		}
		key := pendingKey{treatmentID: iv.TreatmentID, kind: iv.Type}
		if pending[key] {
			return apperrors.NewConflictError(apperrors.CodeDuplicatePending,
				"treatment %s has more than one pending %s intervention", iv.TreatmentID, iv.Type)
		}
		pending[key] = true
	}
	return nil
}

// importSnapshot wipes every collection and loads the snapshot in its place.
// It is all or nothing: a failing row rolls the whole import back.
func (t *Tracker) importSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryBackup)

	if snapshot == nil {
		return apperrors.NewValidationError("snapshot is empty")
	}
	if snapshot.Version != models.SnapshotVersion {
		return apperrors.NewValidationError("snapshot version %d is not supported, expected %d",
			snapshot.Version, models.SnapshotVersion)
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	logger.Info("Received snapshot",
		zap.Int("version", snapshot.Version),
		zap.Time("exported_at", snapshot.ExportedAt))

	defer t.invalidateCatalog()
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.Intervention{},
			&models.WeightRecord{},
			&models.Treatment{},
			&models.Patient{},
			&models.Setting{},
		} {
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}

		if err := insertAll(tx, snapshot.Patients); err != nil {
			return err
		}
		if err := insertAll(tx, snapshot.Treatments); err != nil {
			return err
		}
		if err := insertAll(tx, snapshot.WeightRecords); err != nil {
			return err
		}
		if err := insertAll(tx, snapshot.Interventions); err != nil {
			return err
		}
		return insertAll(tx, snapshot.Settings)
	})
	if err != nil {
		return err
	}

	logger.Info("Imported snapshot",
		zap.Int("patients", len(snapshot.Patients)),
		zap.Int("treatments", len(snapshot.Treatments)),
		zap.Int("weight_records", len(snapshot.WeightRecords)),
		zap.Int("interventions", len(snapshot.Interventions)))
	return nil
}

type IBackupImpl struct {
	tracker *Tracker
}

func (ib *IBackupImpl) Export(ctx context.Context) (*models.Snapshot, error) {
	return ib.tracker.export(ctx)
}

func (ib *IBackupImpl) Import(ctx context.Context, snapshot *models.Snapshot) error {
	return ib.tracker.importSnapshot(ctx, snapshot)
}

func (t *Tracker) GetIBackup() IBackup {
	return &IBackupImpl{tracker: t}
}
