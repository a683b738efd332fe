package tracker

import (
	"context"
	"sort"

	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

// enrichTreatments builds the read-side views of treatments in a fixed number of
// queries: records, pending interventions and patients are fetched in batches.
func (t *Tracker) enrichTreatments(ctx context.Context, treatments []models.Treatment) ([]models.TreatmentView, error) {
	views := make([]models.TreatmentView, 0, len(treatments))
	if len(treatments) == 0 {
		return views, nil
	}

	catalog, err := t.catalog(ctx)
	if err != nil {
		return nil, err
	}

	treatmentIDs := make([]string, 0, len(treatments))
	patientIDs := make([]string, 0, len(treatments))
	for _, tr := range treatments {
		treatmentIDs = append(treatmentIDs, tr.ID)
		patientIDs = append(patientIDs, tr.PatientID)
	}

	session := t.Db.Session(ctx)

	var records []models.WeightRecord
	if err := session.Where("treatment_id IN ?", treatmentIDs).
		Order("measure_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	latestAny := map[string]*models.WeightRecord{}
	latestMeasured := map[string]*models.WeightRecord{}
	for i := range records {
		r := &records[i]
		if _, ok := latestAny[r.TreatmentID]; !ok {
			latestAny[r.TreatmentID] = r
		}
		if _, ok := latestMeasured[r.TreatmentID]; !ok && r.Weight != nil {
			latestMeasured[r.TreatmentID] = r
		}
	}

	var pending []models.Intervention
	if err := session.Where("treatment_id IN ? AND status = ?", treatmentIDs, models.InterventionStatusPending).
		Order("created_at").Find(&pending).Error; err != nil {
		return nil, err
	}
	pendingByTreatment := map[string][]models.Intervention{}
	for _, iv := range pending {
		pendingByTreatment[iv.TreatmentID] = append(pendingByTreatment[iv.TreatmentID], iv)
	}

	var patients []models.Patient
	if err := session.Where("id IN ?", patientIDs).Find(&patients).Error; err != nil {
		return nil, err
	}
	patientByID := map[string]*models.Patient{}
	for i := range patients {
		patientByID[patients[i].ID] = &patients[i]
	}

	for _, tr := range treatments {
		view := models.TreatmentView{
			Treatment:            tr,
			CancerTypeLabel:      catalog.CancerTypeLabel(tr.CancerType),
			TreatmentIntentLabel: catalog.TreatmentIntentLabel(tr.TreatmentIntent),
			Patient:              patientByID[tr.PatientID],
			PendingInterventions: pendingByTreatment[tr.ID],
		}
		if view.PendingInterventions == nil {
			view.PendingInterventions = []models.Intervention{}
		}

		if latest := latestMeasured[tr.ID]; latest != nil {
			view.LatestWeight = latest
			view.ChangeRate = rules.ChangeRate(latest.Weight, tr.BaselineWeight)
		}

		lastDate := tr.StartDate
		if latest := latestAny[tr.ID]; latest != nil {
			lastDate = latest.MeasureDate
		}
		view.TrackingStatus = rules.TrackingStatusOf(lastDate, t.Clock)

		views = append(views, view)
	}
	return views, nil
}

func sortByMedicalID(views []models.TreatmentView) {
	sort.SliceStable(views, func(i, j int) bool {
		return medicalIDOf(views[i]) < medicalIDOf(views[j])
	})
}

func medicalIDOf(view models.TreatmentView) string {
	if view.Patient == nil {
		return ""
	}
	return view.Patient.MedicalID
}
