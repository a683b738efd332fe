package tracker

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

func (t *Tracker) findPending(ctx context.Context, treatmentID string, kind models.InterventionType, exceptID string) (*models.Intervention, error) {
	query := t.Db.Session(ctx).
		Where("treatment_id = ? AND type = ? AND status = ?", treatmentID, kind, models.InterventionStatusPending)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var pending []models.Intervention
	if err := query.Limit(1).Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}
	return &pending[0], nil
}

// ensurePending returns the pending intervention of kind for the treatment,
// creating it when there is none. The bool reports whether one was created.
func (t *Tracker) ensurePending(ctx context.Context, treatmentID string, kind models.InterventionType, triggerRate *float64) (*models.Intervention, bool, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryIntervention)

	// manual kinds are logged executed and never queue
	if !kind.IsAutomatic() {
		return nil, false, apperrors.NewValidationError("intervention type %q cannot be pending", kind)
	}

	var (
		intervention *models.Intervention
		created      bool
	)
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := t.loadTreatment(ctx, treatmentID); err != nil {
			return err
		}
		existing, err := t.findPending(ctx, treatmentID, kind, "")
		if err != nil {
			return err
		}
		if existing != nil {
			intervention = existing
			return nil
		}

		intervention = &models.Intervention{
			ID:          uuid.NewString(),
			TreatmentID: treatmentID,
			Type:        kind,
			TriggerRate: triggerRate,
			Status:      models.InterventionStatusPending,
		}
		created = true
		return tx.Create(intervention).Error
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.Info("Saved pending intervention",
			zap.String(common.LoggerFieldInterventionID, intervention.ID),
			zap.String(common.LoggerFieldTreatmentID, treatmentID),
			zap.String(common.LoggerFieldInterventionType, string(kind)))
	}
	return intervention, created, nil
}

// closeIntervention moves a pending intervention to a terminal status.
func (t *Tracker) closeIntervention(ctx context.Context, id string, to models.InterventionStatus, mutate func(*models.Intervention)) (*models.Intervention, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryIntervention)

	var intervention *models.Intervention
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if intervention, err = t.getIntervention(ctx, id); err != nil {
			return err
		}
		if intervention.Status != models.InterventionStatusPending {
			return apperrors.NewConflictError(apperrors.CodeInvalidTransition,
				"intervention %s is %s and cannot become %s", id, intervention.Status, to)
		}
		intervention.Status = to
		mutate(intervention)
		return tx.Save(intervention).Error
	})
	if err != nil {
		return nil, err
	}

	t.Metrics.InterventionClosed(string(to))
	logger.Info("Intervention closed",
		zap.String(common.LoggerFieldInterventionID, id),
		zap.String("status", string(to)))
	return intervention, nil
}

func (t *Tracker) resolveExecuteDate(date string) (string, error) {
	if date == "" {
		return t.today(), nil
	}
	return date, validateDate("execute_date", date)
}

func (t *Tracker) executeIntervention(ctx context.Context, id string, executor string, notes string, executeDate string) (*models.Intervention, error) {
	executeDate, err := t.resolveExecuteDate(executeDate)
	if err != nil {
		return nil, err
	}
	now := t.Clock.Now()
	return t.closeIntervention(ctx, id, models.InterventionStatusExecuted, func(iv *models.Intervention) {
		iv.Executor = strings.TrimSpace(executor)
		iv.Notes = notes
		iv.ExecuteDate = executeDate
		iv.ExecutedAt = &now
	})
}

func (t *Tracker) skipIntervention(ctx context.Context, id string, reason string) (*models.Intervention, error) {
	now := t.Clock.Now()
	return t.closeIntervention(ctx, id, models.InterventionStatusSkipped, func(iv *models.Intervention) {
		iv.SkipReason = strings.TrimSpace(reason)
		iv.SkippedAt = &now
	})
}

// createManual records an intervention staff already carried out, it never passes through pending.
func (t *Tracker) createManual(ctx context.Context, treatmentID string, notes string, executor string, date string) (*models.Intervention, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryIntervention)

	date, err := t.resolveExecuteDate(date)
	if err != nil {
		return nil, err
	}
	now := t.Clock.Now()
	intervention := models.Intervention{
		ID:          uuid.NewString(),
		TreatmentID: treatmentID,
		Type:        models.InterventionTypeManual,
		Status:      models.InterventionStatusExecuted,
		Executor:    strings.TrimSpace(executor),
		ExecuteDate: date,
		ExecutedAt:  &now,
		Notes:       notes,
	}

	err = t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := t.loadTreatment(ctx, treatmentID); err != nil {
			return err
		}
		return tx.Create(&intervention).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Saved manual intervention",
		zap.String(common.LoggerFieldInterventionID, intervention.ID),
		zap.String(common.LoggerFieldTreatmentID, treatmentID))
	return &intervention, nil
}

func (t *Tracker) updateIntervention(ctx context.Context, id string, edit models.InterventionEdit) (*models.Intervention, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryIntervention)

	if edit.Type != "" && !edit.Type.IsKnown() {
		return nil, apperrors.NewValidationError("unknown intervention type %q", edit.Type)
	}
	if edit.ExecuteDate != "" {
		if err := validateDate("execute_date", edit.ExecuteDate); err != nil {
			return nil, err
		}
	}

	var intervention *models.Intervention
	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if intervention, err = t.getIntervention(ctx, id); err != nil {
			return err
		}

		if edit.Type != "" && !edit.Type.IsAutomatic() && intervention.Status == models.InterventionStatusPending {
			return apperrors.NewValidationError("a pending intervention cannot become %s, execute it first", edit.Type)
		}
		if edit.Type != "" && edit.Type != intervention.Type && intervention.Status == models.InterventionStatusPending {
			clash, err := t.findPending(ctx, intervention.TreatmentID, edit.Type, id)
			if err != nil {
				return err
			}
			if clash != nil {
				return apperrors.NewConflictError(apperrors.CodeDuplicatePending,
					"treatment %s already has a pending %s intervention", intervention.TreatmentID, edit.Type)
			}
		}

		if edit.Type != "" {
			intervention.Type = edit.Type
		}
		if edit.ExecuteDate != "" {
			intervention.ExecuteDate = edit.ExecuteDate
		}
		if edit.Executor != "" {
			intervention.Executor = strings.TrimSpace(edit.Executor)
		}
		if edit.Notes != "" {
			intervention.Notes = edit.Notes
		}
		return tx.Save(intervention).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Updated intervention", zap.String(common.LoggerFieldInterventionID, id))
	return intervention, nil
}

func (t *Tracker) deleteIntervention(ctx context.Context, id string) error {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryIntervention)

	result := t.Db.Session(ctx).Where("id = ?", id).Delete(&models.Intervention{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("intervention", id)
	}

	logger.Info("Deleted intervention", zap.String(common.LoggerFieldInterventionID, id))
	return nil
}

func (t *Tracker) getIntervention(ctx context.Context, id string) (*models.Intervention, error) {
	var intervention models.Intervention
	if err := t.Db.Session(ctx).Where("id = ?", id).First(&intervention).Error; err != nil {
		return nil, notFound(err, "intervention", id)
	}
	return &intervention, nil
}

func (t *Tracker) listInterventions(ctx context.Context, treatmentID string) ([]models.Intervention, error) {
	if _, err := t.loadTreatment(ctx, treatmentID); err != nil {
		return nil, err
	}
	interventions := []models.Intervention{}
	if err := t.Db.Session(ctx).Where("treatment_id = ?", treatmentID).
		Order("created_at DESC").Find(&interventions).Error; err != nil {
		return nil, err
	}
	return interventions, nil
}

// listPending is the global worklist: pending interventions whose treatment is
// active. Paused and closed treatments keep their pending rows but drop out here.
func (t *Tracker) listPending(ctx context.Context) ([]models.PendingIntervention, error) {
	session := t.Db.Session(ctx)

	var interventions []models.Intervention
	if err := session.
		Joins("JOIN treatments ON treatments.id = interventions.treatment_id").
		Where("interventions.status = ? AND treatments.status = ?",
			models.InterventionStatusPending, models.TreatmentStatusActive).
		Order("interventions.created_at").
		Find(&interventions).Error; err != nil {
		return nil, err
	}

	result := make([]models.PendingIntervention, 0, len(interventions))
	if len(interventions) == 0 {
		return result, nil
	}

	treatmentIDs := common.Mapper(interventions, func(iv models.Intervention) string { return iv.TreatmentID })
	var treatments []models.Treatment
	if err := session.Where("id IN ?", treatmentIDs).Find(&treatments).Error; err != nil {
		return nil, err
	}
	treatmentByID := map[string]models.Treatment{}
	for _, tr := range treatments {
		treatmentByID[tr.ID] = tr
	}

	patientIDs := common.Mapper(treatments, func(tr models.Treatment) string { return tr.PatientID })
	var patients []models.Patient
	if err := session.Where("id IN ?", patientIDs).Find(&patients).Error; err != nil {
		return nil, err
	}
	patientByID := map[string]models.Patient{}
	for _, p := range patients {
		patientByID[p.ID] = p
	}

	for _, iv := range interventions {
		tr := treatmentByID[iv.TreatmentID]
		result = append(result, models.PendingIntervention{
			Intervention: iv,
			Treatment:    tr,
			Patient:      patientByID[tr.PatientID],
		})
	}
	return result, nil
}

type IInterventionImpl struct {
	tracker *Tracker
}

func (ii *IInterventionImpl) EnsurePending(ctx context.Context, treatmentID string, kind models.InterventionType, triggerRate *float64) (*models.Intervention, bool, error) {
	return ii.tracker.ensurePending(ctx, treatmentID, kind, triggerRate)
}

func (ii *IInterventionImpl) Execute(ctx context.Context, id string, executor string, notes string, executeDate string) (*models.Intervention, error) {
	return ii.tracker.executeIntervention(ctx, id, executor, notes, executeDate)
}

func (ii *IInterventionImpl) Skip(ctx context.Context, id string, reason string) (*models.Intervention, error) {
	return ii.tracker.skipIntervention(ctx, id, reason)
}

func (ii *IInterventionImpl) CreateManual(ctx context.Context, treatmentID string, notes string, executor string, date string) (*models.Intervention, error) {
	return ii.tracker.createManual(ctx, treatmentID, notes, executor, date)
}

func (ii *IInterventionImpl) Update(ctx context.Context, id string, edit models.InterventionEdit) (*models.Intervention, error) {
	return ii.tracker.updateIntervention(ctx, id, edit)
}

func (ii *IInterventionImpl) Delete(ctx context.Context, id string) error {
	return ii.tracker.deleteIntervention(ctx, id)
}

func (ii *IInterventionImpl) Get(ctx context.Context, id string) (*models.Intervention, error) {
	return ii.tracker.getIntervention(ctx, id)
}

func (ii *IInterventionImpl) ListByTreatment(ctx context.Context, treatmentID string) ([]models.Intervention, error) {
	return ii.tracker.listInterventions(ctx, treatmentID)
}

func (ii *IInterventionImpl) ListPending(ctx context.Context) ([]models.PendingIntervention, error) {
	return ii.tracker.listPending(ctx)
}

func (t *Tracker) GetIIntervention() IIntervention {
	return &IInterventionImpl{tracker: t}
}
