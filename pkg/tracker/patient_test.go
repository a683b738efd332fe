package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

func TestPadMedicalID(t *testing.T) {
	for in, want := range map[string]string{
		"1":       "0000001",
		" 12345 ": "0012345",
		"1234567": "1234567",
		"0000042": "0000042",
	} {
		got, err := PadMedicalID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "12345678", "12a", "-1"} {
		_, err := PadMedicalID(bad)
		assert.True(t, apperrors.IsValidation(err), bad)
	}
}

func TestCreatePatient(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p, err := tr.Patient.Create(ctx, &models.Patient{MedicalID: "42", Name: "  Chen Mei  ", Gender: models.GenderFemale, BirthDate: "1960-05-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "0000042", p.MedicalID)
	assert.Equal(t, "Chen Mei", p.Name)

	_, err = tr.Patient.Create(ctx, &models.Patient{MedicalID: "0000042", Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateMedicalID, apperrors.CodeOf(err))

	_, err = tr.Patient.Create(ctx, &models.Patient{MedicalID: "43", Name: ""})
	assert.True(t, apperrors.IsValidation(err))

	_, err = tr.Patient.Create(ctx, &models.Patient{MedicalID: "43", Name: "X", Gender: "Q"})
	assert.True(t, apperrors.IsValidation(err))

	found, err := tr.Patient.GetByMedicalID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = tr.Patient.GetByMedicalID(ctx, "44")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePatient(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	p := mustPatient(t, tr, "77", "Before")

	updated, err := tr.Patient.Update(ctx, p.ID, &models.Patient{MedicalID: "77", Name: "After", Gender: models.GenderMale})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "0000077", updated.MedicalID)

	_, err = tr.Patient.Update(ctx, p.ID, &models.Patient{MedicalID: "78", Name: "After"})
	assert.True(t, apperrors.IsValidation(err), "medical id is immutable")

	_, err = tr.Patient.Update(ctx, "ghost", &models.Patient{Name: "Nobody"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchPatients(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	mustPatient(t, tr, "1234", "Lin Ya-Ting")
	mustPatient(t, tr, "5678", "Chen Lin")
	mustPatient(t, tr, "9999", "Wang")

	found, err := tr.Patient.Search(ctx, "lin")
	require.NoError(t, err)
	assert.Len(t, found, 2, "name match is case insensitive")

	found, err = tr.Patient.Search(ctx, "0001234")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lin Ya-Ting", found[0].Name)

	found, err = tr.Patient.Search(ctx, "567")
	require.NoError(t, err)
	require.Len(t, found, 1, "partial medical id")
	assert.Equal(t, "0005678", found[0].MedicalID)

	found, err = tr.Patient.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, found)

	all, err := tr.Patient.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "0001234", all[0].MedicalID)
}

func TestGetPatientWithTreatments(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	p := mustPatient(t, tr, "55", "Ho")

	old := mustTreatment(t, tr, p.ID, "2024-01-01", 60)
	_, err := tr.Treatment.Complete(ctx, old.ID)
	require.NoError(t, err)
	current := mustTreatment(t, tr, p.ID, "2025-03-10", 58)

	result, err := tr.Patient.GetWithTreatments(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "0000055", result.MedicalID)
	require.Len(t, result.Treatments, 2)
	require.NotNil(t, result.OngoingTreatment)
	assert.Equal(t, current.ID, result.OngoingTreatment.ID)
}

func TestDeletePatient_Cascade(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "321", "Cascade")
	other := mustPatient(t, tr, "322", "Bystander")

	first := mustTreatment(t, tr, p.ID, "2024-10-01", 70)
	for _, date := range []string{"2024-10-05", "2024-10-12"} {
		_, err := tr.Weight.AddRecord(ctx, first.ID, 69, date)
		require.NoError(t, err)
	}
	_, err := tr.Intervention.CreateManual(ctx, first.ID, "counselling", "Dietitian", "2024-10-13")
	require.NoError(t, err)
	_, err = tr.Treatment.Complete(ctx, first.ID)
	require.NoError(t, err)

	second := mustTreatment(t, tr, p.ID, "2025-03-01", 70)
	for _, r := range []struct {
		w    float64
		date string
	}{{69, "2025-03-05"}, {67.5, "2025-03-10"}, {66, "2025-03-15"}} {
		_, err := tr.Weight.AddRecord(ctx, second.ID, r.w, r.date)
		require.NoError(t, err)
	}
	// 67.5 opens sdm, 66 opens nutrition

	otherTreatment := mustTreatment(t, tr, other.ID, "2025-03-01", 80)
	_, err = tr.Weight.AddRecord(ctx, otherTreatment.ID, 79, "2025-03-05")
	require.NoError(t, err)

	ids := []string{first.ID, second.ID}
	require.EqualValues(t, 2, countRows(t, tr, &models.Treatment{}, "patient_id = ?", p.ID))
	require.EqualValues(t, 5, countRows(t, tr, &models.WeightRecord{}, "treatment_id IN ?", ids))
	require.EqualValues(t, 3, countRows(t, tr, &models.Intervention{}, "treatment_id IN ?", ids))

	require.NoError(t, tr.Patient.Delete(ctx, p.ID))

	assert.Zero(t, countRows(t, tr, &models.Patient{}, "id = ?", p.ID))
	assert.Zero(t, countRows(t, tr, &models.Treatment{}, "patient_id = ?", p.ID))
	assert.Zero(t, countRows(t, tr, &models.WeightRecord{}, "treatment_id IN ?", ids))
	assert.Zero(t, countRows(t, tr, &models.Intervention{}, "treatment_id IN ?", ids))

	assert.EqualValues(t, 1, countRows(t, tr, &models.WeightRecord{}, "treatment_id = ?", otherTreatment.ID),
		"other patients are untouched")

	assert.True(t, apperrors.IsNotFound(tr.Patient.Delete(ctx, p.ID)))
}
