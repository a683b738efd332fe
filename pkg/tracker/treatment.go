package tracker

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

var ongoingStatuses = []models.TreatmentStatus{models.TreatmentStatusActive, models.TreatmentStatusPaused}

func inCatalog(list []models.CodeLabel, code string) bool {
	// an empty catalogue accepts anything
	if len(list) == 0 {
		return true
	}
	return slices.ContainsFunc(list, func(cl models.CodeLabel) bool { return cl.Code == code })
}

func (t *Tracker) validateTreatmentCodes(ctx context.Context, input models.TreatmentInput) error {
	catalog, err := t.catalog(ctx)
	if err != nil {
		return err
	}
	if input.CancerType != "" && !inCatalog(catalog.CancerTypes, input.CancerType) {
		return apperrors.NewValidationError("cancer type %q is not configured", input.CancerType)
	}
	if input.TreatmentIntent != "" && !inCatalog(catalog.TreatmentIntents, input.TreatmentIntent) {
		return apperrors.NewValidationError("treatment intent %q is not configured", input.TreatmentIntent)
	}
	if input.UnmeasurableReason != "" && !inCatalog(catalog.UnableReasons, input.UnmeasurableReason) {
		return apperrors.NewValidationError("unable reason %q is not configured", input.UnmeasurableReason)
	}
	return nil
}

func validateBaseline(input models.TreatmentInput) error {
	if input.BaselineWeight != nil && input.BaselineUnmeasurable {
		return apperrors.NewValidationError("baseline weight and unable_to_measure are mutually exclusive")
	}
	if input.BaselineWeight != nil {
		return validateWeight(*input.BaselineWeight)
	}
	return nil
}

func (t *Tracker) createTreatment(ctx context.Context, input models.TreatmentInput) (*models.Treatment, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryTreatment)

	if err := validateCode("cancer_type", input.CancerType); err != nil {
		return nil, err
	}
	if input.StartDate == "" {
		input.StartDate = t.today()
	}
	if err := validateDate("treatment_start", input.StartDate); err != nil {
		return nil, err
	}
	if err := validateBaseline(input); err != nil {
		return nil, err
	}
	if input.BaselineWeight == nil && !input.BaselineUnmeasurable {
		return nil, apperrors.NewValidationError("either baseline weight or unable_to_measure is required")
	}
	if err := t.validateTreatmentCodes(ctx, input); err != nil {
		return nil, err
	}

	treatment := models.Treatment{
		ID:                   uuid.NewString(),
		PatientID:            input.PatientID,
		CancerType:           input.CancerType,
		TreatmentIntent:      input.TreatmentIntent,
		StartDate:            input.StartDate,
		BaselineWeight:       input.BaselineWeight,
		BaselineUnmeasurable: input.BaselineUnmeasurable,
		Status:               models.TreatmentStatusActive,
	}
	if input.BaselineUnmeasurable {
		treatment.UnmeasurableReason = input.UnmeasurableReason
	}

	logger.Info("Received treatment", zap.Reflect("treatment", treatment))

	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := t.getPatient(ctx, input.PatientID); err != nil {
			return err
		}
		var ongoing int64
		if err := tx.Model(&models.Treatment{}).
			Where("patient_id = ? AND status IN ?", input.PatientID, ongoingStatuses).
			Count(&ongoing).Error; err != nil {
			return err
		}
		if ongoing > 0 {
			return apperrors.NewConflictError(apperrors.CodeOngoingTreatment,
				"patient %s already has an ongoing treatment", input.PatientID)
		}
		return tx.Create(&treatment).Error
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.TreatmentTransition(string(models.TreatmentStatusActive))
	logger.Info("Saved treatment",
		zap.String(common.LoggerFieldTreatmentID, treatment.ID),
		zap.String(common.LoggerFieldPatientID, treatment.PatientID))
	return &treatment, nil
}

// updateTreatment edits the descriptive fields of a treatment. A new baseline
// rewrites the stored change rate of every existing record.
func (t *Tracker) updateTreatment(ctx context.Context, id string, input models.TreatmentInput) (*models.Treatment, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryTreatment)

	if input.StartDate != "" {
		if err := validateDate("treatment_start", input.StartDate); err != nil {
			return nil, err
		}
	}
	if err := validateBaseline(input); err != nil {
		return nil, err
	}
	if err := t.validateTreatmentCodes(ctx, input); err != nil {
		return nil, err
	}

	var treatment *models.Treatment
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if treatment, err = t.loadTreatment(ctx, id); err != nil {
			return err
		}

		if input.CancerType != "" {
			treatment.CancerType = input.CancerType
		}
		if input.TreatmentIntent != "" {
			treatment.TreatmentIntent = input.TreatmentIntent
		}
		if input.StartDate != "" {
			treatment.StartDate = input.StartDate
		}

		baselineChanged := false
		switch {
		case input.BaselineWeight != nil:
			baselineChanged = treatment.BaselineWeight == nil || *treatment.BaselineWeight != *input.BaselineWeight
			treatment.BaselineWeight = input.BaselineWeight
			treatment.BaselineUnmeasurable = false
			treatment.UnmeasurableReason = ""
		case input.BaselineUnmeasurable:
			baselineChanged = treatment.BaselineWeight != nil
			treatment.BaselineWeight = nil
			treatment.BaselineUnmeasurable = true
			treatment.UnmeasurableReason = input.UnmeasurableReason
		}

		if err := tx.Save(treatment).Error; err != nil {
			return err
		}
		if baselineChanged {
			return t.recomputeRates(ctx, treatment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Updated treatment", zap.String(common.LoggerFieldTreatmentID, id))
	return treatment, nil
}

func (t *Tracker) recomputeRates(ctx context.Context, treatment *models.Treatment) error {
	tx := t.Db.Session(ctx)

	var records []models.WeightRecord
	if err := tx.Where("treatment_id = ?", treatment.ID).Find(&records).Error; err != nil {
		return err
	}
	for _, r := range records {
		rate := rules.ChangeRate(r.Weight, treatment.BaselineWeight)
		if err := tx.Model(&models.WeightRecord{}).Where("id = ?", r.ID).
			Update("change_rate", rate).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) loadTreatment(ctx context.Context, id string) (*models.Treatment, error) {
	var treatment models.Treatment
	if err := t.Db.Session(ctx).Where("id = ?", id).First(&treatment).Error; err != nil {
		return nil, notFound(err, "treatment", id)
	}
	return &treatment, nil
}

// transition moves a treatment to status `to` when its current status is one of `from`.
func (t *Tracker) transition(
	ctx context.Context,
	id string,
	from []models.TreatmentStatus,
	to models.TreatmentStatus,
	mutate func(*models.Treatment),
) (*models.Treatment, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryTreatment)

	var (
		treatment *models.Treatment
		previous  models.TreatmentStatus
	)
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if treatment, err = t.loadTreatment(ctx, id); err != nil {
			return err
		}
		previous = treatment.Status
		if !slices.Contains(from, previous) {
			return apperrors.NewConflictError(apperrors.CodeInvalidTransition,
				"treatment %s is %s and cannot become %s", id, previous, to)
		}
		treatment.Status = to
		mutate(treatment)
		return tx.Save(treatment).Error
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.TreatmentTransition(string(to))
	logger.Info("Treatment status changed",
		zap.String(common.LoggerFieldTreatmentID, id),
		zap.String(common.LoggerFieldTreatmentStatusFrom, string(previous)),
		zap.String(common.LoggerFieldTreatmentStatusTo, string(to)))
	return treatment, nil
}

func (t *Tracker) pauseTreatment(ctx context.Context, id string, reasonCode string, note string) (*models.Treatment, error) {
	catalog, err := t.catalog(ctx)
	if err != nil {
		return nil, err
	}
	reason, ok := catalog.FindPauseReason(reasonCode)
	if !ok {
		return nil, apperrors.NewValidationError("pause reason %q is not configured", reasonCode)
	}
	note = strings.TrimSpace(note)
	if reason.RequiresText && note == "" {
		return nil, apperrors.NewValidationError("pause reason %q requires a note", reasonCode)
	}

	now := t.Clock.Now()
	return t.transition(ctx, id,
		[]models.TreatmentStatus{models.TreatmentStatusActive},
		models.TreatmentStatusPaused,
		func(tr *models.Treatment) {
			tr.PauseReason = reason.Code
			tr.PauseNote = note
			tr.PausedAt = &now
		})
}

func (t *Tracker) resumeTreatment(ctx context.Context, id string) (*models.Treatment, error) {
	return t.transition(ctx, id,
		[]models.TreatmentStatus{models.TreatmentStatusPaused},
		models.TreatmentStatusActive,
		func(tr *models.Treatment) {
			tr.PauseReason = ""
			tr.PauseNote = ""
			tr.PausedAt = nil
		})
}

func (t *Tracker) completeTreatment(ctx context.Context, id string) (*models.Treatment, error) {
	today := t.today()
	return t.transition(ctx, id, ongoingStatuses, models.TreatmentStatusCompleted,
		func(tr *models.Treatment) {
			tr.EndDate = today
		})
}

func (t *Tracker) terminateTreatment(ctx context.Context, id string, reason string) (*models.Treatment, error) {
	today := t.today()
	return t.transition(ctx, id, ongoingStatuses, models.TreatmentStatusTerminated,
		func(tr *models.Treatment) {
			tr.EndDate = today
			tr.TerminateReason = strings.TrimSpace(reason)
		})
}

func (t *Tracker) getTreatment(ctx context.Context, id string) (*models.TreatmentView, error) {
	treatment, err := t.loadTreatment(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := t.enrichTreatments(ctx, []models.Treatment{*treatment})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (t *Tracker) listTreatmentsByStatus(ctx context.Context, status models.TreatmentStatus) ([]models.TreatmentView, error) {
	switch status {
	case models.TreatmentStatusActive, models.TreatmentStatusPaused,
		models.TreatmentStatusCompleted, models.TreatmentStatusTerminated:
	default:
		return nil, apperrors.NewValidationError("unknown treatment status %q", status)
	}

	var treatments []models.Treatment
	if err := t.Db.Session(ctx).Where("status = ?", status).Find(&treatments).Error; err != nil {
		return nil, err
	}
	views, err := t.enrichTreatments(ctx, treatments)
	if err != nil {
		return nil, err
	}
	sortByMedicalID(views)
	return views, nil
}

func (t *Tracker) listTreatmentsByPatient(ctx context.Context, patientID string) ([]models.TreatmentView, error) {
	if _, err := t.getPatient(ctx, patientID); err != nil {
		return nil, err
	}
	var treatments []models.Treatment
	if err := t.Db.Session(ctx).Where("patient_id = ?", patientID).
		Order("start_date DESC").Find(&treatments).Error; err != nil {
		return nil, err
	}
	return t.enrichTreatments(ctx, treatments)
}

type ITreatmentImpl struct {
	tracker *Tracker
}

func (it *ITreatmentImpl) Create(ctx context.Context, input models.TreatmentInput) (*models.Treatment, error) {
	return it.tracker.createTreatment(ctx, input)
}

func (it *ITreatmentImpl) Update(ctx context.Context, id string, input models.TreatmentInput) (*models.Treatment, error) {
	return it.tracker.updateTreatment(ctx, id, input)
}

func (it *ITreatmentImpl) Pause(ctx context.Context, id string, reasonCode string, note string) (*models.Treatment, error) {
	return it.tracker.pauseTreatment(ctx, id, reasonCode, note)
}

func (it *ITreatmentImpl) Resume(ctx context.Context, id string) (*models.Treatment, error) {
	return it.tracker.resumeTreatment(ctx, id)
}

func (it *ITreatmentImpl) Complete(ctx context.Context, id string) (*models.Treatment, error) {
	return it.tracker.completeTreatment(ctx, id)
}

func (it *ITreatmentImpl) Terminate(ctx context.Context, id string, reason string) (*models.Treatment, error) {
	return it.tracker.terminateTreatment(ctx, id, reason)
}

func (it *ITreatmentImpl) Get(ctx context.Context, id string) (*models.TreatmentView, error) {
	return it.tracker.getTreatment(ctx, id)
}

func (it *ITreatmentImpl) ListByStatus(ctx context.Context, status models.TreatmentStatus) ([]models.TreatmentView, error) {
	return it.tracker.listTreatmentsByStatus(ctx, status)
}

func (it *ITreatmentImpl) ListByPatient(ctx context.Context, patientID string) ([]models.TreatmentView, error) {
	return it.tracker.listTreatmentsByPatient(ctx, patientID)
}

func (t *Tracker) GetITreatment() ITreatment {
	return &ITreatmentImpl{tracker: t}
}
