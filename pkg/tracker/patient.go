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

func validatePatient(input *models.Patient) error {
	name := strings.TrimSpace(input.Name)
	if issues := nameSchema.Validate(&name); len(issues) > 0 {
		return apperrors.NewValidationError("patient name is required: %v", issues)
	}
	if err := validateGender(input.Gender); err != nil {
		return err
	}
	if input.BirthDate != "" {
		if err := validateDate("birth_date", input.BirthDate); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) createPatient(ctx context.Context, input *models.Patient) (*models.Patient, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryPatient)

	medicalID, err := PadMedicalID(input.MedicalID)
	if err != nil {
		return nil, err
	}
	if err := validatePatient(input); err != nil {
		return nil, err
	}

	patient := models.Patient{
		ID:        uuid.NewString(),
		MedicalID: medicalID,
		Name:      strings.TrimSpace(input.Name),
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
	}

	logger.Info("Received patient", zap.Reflect("patient", patient))

	err = t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Patient{}).Where("medical_id = ?", medicalID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewConflictError(apperrors.CodeDuplicateMedicalID, "medical id %s is already registered", medicalID)
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Saved patient", zap.String(common.LoggerFieldPatientID, patient.ID))
	return &patient, nil
}

func (t *Tracker) updatePatient(ctx context.Context, id string, input *models.Patient) (*models.Patient, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryPatient)

	patient, err := t.getPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.MedicalID != "" {
		medicalID, err := PadMedicalID(input.MedicalID)
		if err != nil {
			return nil, err
		}
		if medicalID != patient.MedicalID {
			return nil, apperrors.NewValidationError("medical id of patient %s cannot be changed", id)
		}
	}
	if err := validatePatient(input); err != nil {
		return nil, err
	}

	patient.Name = strings.TrimSpace(input.Name)
	patient.Gender = input.Gender
	patient.BirthDate = input.BirthDate

	if err := t.Db.Session(ctx).Save(patient).Error; err != nil {
		return nil, err
	}

	logger.Info("Updated patient", zap.String(common.LoggerFieldPatientID, patient.ID))
	return patient, nil
}

func (t *Tracker) getPatient(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := t.Db.Session(ctx).Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, notFound(err, "patient", id)
	}
	return &patient, nil
}

func (t *Tracker) getPatientByMedicalID(ctx context.Context, medicalID string) (*models.Patient, error) {
	padded, err := PadMedicalID(medicalID)
	if err != nil {
		return nil, err
	}
	var patient models.Patient
	if err := t.Db.Session(ctx).Where("medical_id = ?", padded).First(&patient).Error; err != nil {
		return nil, notFound(err, "patient", padded)
	}
	return &patient, nil
}

func (t *Tracker) listPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	if err := t.Db.Session(ctx).Order("medical_id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// searchPatients matches the keyword against the medical id (raw or zero padded)
// and, case-insensitively, against the name.
func (t *Tracker) searchPatients(ctx context.Context, keyword string) ([]models.Patient, error) {
	patients := []models.Patient{}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return patients, nil
	}

	like := "%" + strings.ToLower(keyword) + "%"
	query := t.Db.Session(ctx).Where("medical_id LIKE ?", like).Or("LOWER(name) LIKE ?", like)
	if padded, err := PadMedicalID(keyword); err == nil {
		query = query.Or("medical_id = ?", padded)
	}

	if err := query.Order("medical_id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (t *Tracker) getPatientWithTreatments(ctx context.Context, id string) (*models.PatientWithTreatments, error) {
	patient, err := t.getPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	var treatments []models.Treatment
	if err := t.Db.Session(ctx).Where("patient_id = ?", id).Order("start_date DESC").Find(&treatments).Error; err != nil {
		return nil, err
	}
	views, err := t.enrichTreatments(ctx, treatments)
	if err != nil {
		return nil, err
	}

	result := &models.PatientWithTreatments{Patient: *patient, Treatments: views}
	for i := range views {
		if views[i].Status.IsOngoing() {
			result.OngoingTreatment = &views[i]
			break
		}
	}
	return result, nil
}

// deletePatient removes the patient together with every treatment, weight record
// and intervention hanging off it.
func (t *Tracker) deletePatient(ctx context.Context, id string) error {
	logger := common.GetCategoryLogger(common.LoggerNameTrackerCore, common.LoggerCategoryPatient)

	err := t.Db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := t.getPatient(ctx, id); err != nil {
			return err
		}

		var treatmentIDs []string
		if err := tx.Model(&models.Treatment{}).Where("patient_id = ?", id).Pluck("id", &treatmentIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("treatment_id IN ?", treatmentIDs).Delete(&models.Intervention{}).Error; err != nil {
			return err
		}
		if err := tx.Where("treatment_id IN ?", treatmentIDs).Delete(&models.WeightRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.Treatment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Patient{}).Error
	})
	if err != nil {
		return err
	}

	logger.Info("Deleted patient with all treatments", zap.String(common.LoggerFieldPatientID, id))
	return nil
}

type IPatientImpl struct {
	tracker *Tracker
}

func (ip *IPatientImpl) Create(ctx context.Context, input *models.Patient) (*models.Patient, error) {
	return ip.tracker.createPatient(ctx, input)
}

func (ip *IPatientImpl) Update(ctx context.Context, id string, input *models.Patient) (*models.Patient, error) {
	return ip.tracker.updatePatient(ctx, id, input)
}

func (ip *IPatientImpl) Get(ctx context.Context, id string) (*models.Patient, error) {
	return ip.tracker.getPatient(ctx, id)
}

func (ip *IPatientImpl) GetByMedicalID(ctx context.Context, medicalID string) (*models.Patient, error) {
	return ip.tracker.getPatientByMedicalID(ctx, medicalID)
}

func (ip *IPatientImpl) GetWithTreatments(ctx context.Context, id string) (*models.PatientWithTreatments, error) {
	return ip.tracker.getPatientWithTreatments(ctx, id)
}

func (ip *IPatientImpl) List(ctx context.Context) ([]models.Patient, error) {
	return ip.tracker.listPatients(ctx)
}

func (ip *IPatientImpl) Search(ctx context.Context, keyword string) ([]models.Patient, error) {
	return ip.tracker.searchPatients(ctx, keyword)
}

func (ip *IPatientImpl) Delete(ctx context.Context, id string) error {
	return ip.tracker.deletePatient(ctx, id)
}

func (t *Tracker) GetIPatient() IPatient {
	return &IPatientImpl{tracker: t}
}
