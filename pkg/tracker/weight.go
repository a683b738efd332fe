package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

func (t *Tracker) ensureDateFree(ctx context.Context, treatmentID string, date string, exceptID string) error {
	query := t.Db.Session(ctx).Model(&models.WeightRecord{}).
		Where("treatment_id = ? AND measure_date = ?", treatmentID, date)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError(apperrors.CodeDuplicateDate,
			"treatment %s already has a record on %s", treatmentID, date)
	}
	return nil
}

func (t *Tracker) resolveRecordDate(date string) (string, error) {
	if date == "" {
		return t.today(), nil
	}
	return date, validateDate("measure_date", date)
}

func (t *Tracker) checkAlerts(ctx context.Context, treatment *models.Treatment, record *models.WeightRecord) error {
	if record.ChangeRate == nil {
		return nil
	}
	if t.Alert == nil {
		return fmt.Errorf("alert service not available")
	}
	_, err := t.Alert.CheckAndStoreAlerts(ctx, treatment, record)
	return err
}

// addRecord stores a measurement, derives its change rate from the current
// baseline and hands the rate to the alert service.
func (t *Tracker) addRecord(ctx context.Context, treatmentID string, weight float64, date string) (*models.WeightRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryWeight)

	if err := validateWeight(weight); err != nil {
		return nil, err
	}
	date, err := t.resolveRecordDate(date)
	if err != nil {
		return nil, err
	}

	record := models.WeightRecord{
		ID:          uuid.NewString(),
		TreatmentID: treatmentID,
		MeasureDate: date,
		Weight:      &weight,
	}

	logger.Info("Received weight record", zap.Reflect("record", record))

	err = t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		treatment, err := t.loadTreatment(ctx, treatmentID)
		if err != nil {
			return err
		}
		if err := t.ensureDateFree(ctx, treatmentID, date, ""); err != nil {
			return err
		}

		record.ChangeRate = rules.ChangeRate(record.Weight, treatment.BaselineWeight)
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := t.checkAlerts(ctx, treatment, &record); err != nil {
			return err
		}

		if treatment.BaselineUnmeasurable {
			if err := tx.Model(&models.Treatment{}).Where("id = ?", treatment.ID).
				Update("baseline_unmeasurable", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.WeightRecorded("add")
	logger.Info("Saved weight record",
		zap.String(common.LoggerFieldWeightRecordID, record.ID),
		zap.String(common.LoggerFieldTreatmentID, treatmentID))
	return &record, nil
}

// addUnmeasurable records that no weight could be taken on date. It keeps the
// treatment tracked without producing a rate or an alert.
func (t *Tracker) addUnmeasurable(ctx context.Context, treatmentID string, date string) (*models.WeightRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryWeight)

	date, err := t.resolveRecordDate(date)
	if err != nil {
		return nil, err
	}

	record := models.WeightRecord{
		ID:              uuid.NewString(),
		TreatmentID:     treatmentID,
		MeasureDate:     date,
		UnableToMeasure: true,
	}

	err = t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := t.loadTreatment(ctx, treatmentID); err != nil {
			return err
		}
		if err := t.ensureDateFree(ctx, treatmentID, date, ""); err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.WeightRecorded("unmeasurable")
	logger.Info("Saved unmeasurable record",
		zap.String(common.LoggerFieldWeightRecordID, record.ID),
		zap.String(common.LoggerFieldTreatmentID, treatmentID))
	return &record, nil
}

func (t *Tracker) updateRecord(ctx context.Context, id string, weight float64, date string) (*models.WeightRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryWeight)

	if err := validateWeight(weight); err != nil {
		return nil, err
	}

	var record *models.WeightRecord
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if record, err = t.getRecord(ctx, id); err != nil {
			return err
		}
		if date == "" {
			date = record.MeasureDate
		}
		if err := validateDate("measure_date", date); err != nil {
			return err
		}
		treatment, err := t.loadTreatment(ctx, record.TreatmentID)
		if err != nil {
			return err
		}
		if err := t.ensureDateFree(ctx, record.TreatmentID, date, id); err != nil {
			return err
		}

		record.Weight = &weight
		record.UnableToMeasure = false
		record.MeasureDate = date
		record.ChangeRate = rules.ChangeRate(record.Weight, treatment.BaselineWeight)
		if err := tx.Save(record).Error; err != nil {
			return err
		}

		if treatment.BaselineUnmeasurable {
			if err := tx.Model(&models.Treatment{}).Where("id = ?", treatment.ID).
				Update("baseline_unmeasurable", false).Error; err != nil {
				return err
			}
		}

		if t.Options.AlertOnUpdate {
			return t.checkAlerts(ctx, treatment, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.WeightRecorded("update")
	logger.Info("Updated weight record", zap.String(common.LoggerFieldWeightRecordID, id))
	return record, nil
}

func (t *Tracker) deleteRecord(ctx context.Context, id string) error {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryWeight)

	result := t.Db.Session(ctx).Where("id = ?", id).Delete(&models.WeightRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("weight record", id)
	}

	t.Metrics.WeightRecorded("delete")
	logger.Info("Deleted weight record", zap.String(common.LoggerFieldWeightRecordID, id))
	return nil
}

func (t *Tracker) getRecord(ctx context.Context, id string) (*models.WeightRecord, error) {
	var record models.WeightRecord
	if err := t.Db.Session(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, notFound(err, "weight record", id)
	}
	return &record, nil
}

func (t *Tracker) listRecords(ctx context.Context, treatmentID string) ([]models.WeightRecord, error) {
	if _, err := t.loadTreatment(ctx, treatmentID); err != nil {
		return nil, err
	}
	records := []models.WeightRecord{}
	if err := t.Db.Session(ctx).Where("treatment_id = ?", treatmentID).
		Order("measure_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type IWeightImpl struct {
	tracker *Tracker
}

func (iw *IWeightImpl) AddRecord(ctx context.Context, treatmentID string, weight float64, date string) (*models.WeightRecord, error) {
	return iw.tracker.addRecord(ctx, treatmentID, weight, date)
}

func (iw *IWeightImpl) AddUnmeasurable(ctx context.Context, treatmentID string, date string) (*models.WeightRecord, error) {
	return iw.tracker.addUnmeasurable(ctx, treatmentID, date)
}

func (iw *IWeightImpl) UpdateRecord(ctx context.Context, id string, weight float64, date string) (*models.WeightRecord, error) {
	return iw.tracker.updateRecord(ctx, id, weight, date)
}

func (iw *IWeightImpl) DeleteRecord(ctx context.Context, id string) error {
	return iw.tracker.deleteRecord(ctx, id)
}

func (iw *IWeightImpl) GetRecord(ctx context.Context, id string) (*models.WeightRecord, error) {
	return iw.tracker.getRecord(ctx, id)
}

func (iw *IWeightImpl) ListByTreatment(ctx context.Context, treatmentID string) ([]models.WeightRecord, error) {
	return iw.tracker.listRecords(ctx, treatmentID)
}

func (t *Tracker) GetIWeight() IWeight {
	return &IWeightImpl{tracker: t}
}
