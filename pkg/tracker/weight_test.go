package tracker

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

func TestAddRecord_EndToEndScenario(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "1234", "Chen")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 70)

	first, err := tr.Weight.AddRecord(ctx, treatment.ID, 68.5, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, first.ChangeRate)
	assert.InDelta(t, -2.14, *first.ChangeRate, 0.01)

	interventions, err := tr.Intervention.ListByTreatment(ctx, treatment.ID)
	require.NoError(t, err)
	assert.Empty(t, interventions, "a -2.14% drop stays under every threshold")

	second, err := tr.Weight.AddRecord(ctx, treatment.ID, 66.0, "2025-03-17")
	require.NoError(t, err)
	assert.InDelta(t, -5.71, *second.ChangeRate, 0.01)

	pending, err := tr.Intervention.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.InterventionTypeNutrition, pending[0].Type)
	assert.Equal(t, models.InterventionStatusPending, pending[0].Status)
	assert.InDelta(t, -5.71, *pending[0].TriggerRate, 0.01)
	assert.Equal(t, p.MedicalID, pending[0].Patient.MedicalID)

	executed, err := tr.Intervention.Execute(ctx, pending[0].ID, "A", "diet plan", "")
	require.NoError(t, err)
	assert.Equal(t, models.InterventionStatusExecuted, executed.Status)
	assert.Equal(t, "A", executed.Executor)
	assert.Equal(t, testToday, executed.ExecuteDate)

	_, err = tr.Weight.AddRecord(ctx, treatment.ID, 65.0, "2025-03-19")
	require.NoError(t, err)

	reloaded, err := tr.Intervention.Get(ctx, executed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterventionStatusExecuted, reloaded.Status, "a closed intervention is never reopened")

	pending, err = tr.Intervention.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "a further drop opens a new cycle once the previous one is resolved")
	assert.NotEqual(t, executed.ID, pending[0].ID)
	assert.Equal(t, models.InterventionTypeNutrition, pending[0].Type)
}

func TestAddRecord_DuplicateDate(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "1", "Lin")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 60)

	_, err := tr.Weight.AddRecord(ctx, treatment.ID, 59.5, "2025-03-05")
	require.NoError(t, err)

	_, err = tr.Weight.AddRecord(ctx, treatment.ID, 59.0, "2025-03-05")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, apperrors.CodeDuplicateDate, apperrors.CodeOf(err))

	_, err = tr.Weight.AddRecord(ctx, treatment.ID, 59.0, "2025-03-06")
	require.NoError(t, err)

	records, err := tr.Weight.ListByTreatment(ctx, treatment.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-03-06", records[0].MeasureDate, "newest first")
	assert.Equal(t, "2025-03-05", records[1].MeasureDate)
}

func TestAddRecord_Validation(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "2", "Wang")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 60)

	for _, w := range []float64{0, -1, 300.01} {
		_, err := tr.Weight.AddRecord(ctx, treatment.ID, w, "2025-03-05")
		assert.True(t, apperrors.IsValidation(err), "weight %v", w)
	}

	_, err := tr.Weight.AddRecord(ctx, treatment.ID, 300, "2025-03-05")
	assert.NoError(t, err, "the ceiling itself is accepted")

	_, err = tr.Weight.AddRecord(ctx, treatment.ID, 50, "2025-02-30")
	assert.True(t, apperrors.IsValidation(err))

	_, err = tr.Weight.AddRecord(ctx, "missing", 50, "2025-03-06")
	assert.True(t, apperrors.IsNotFound(err))

	record, err := tr.Weight.AddRecord(ctx, treatment.ID, 50, "")
	require.NoError(t, err)
	assert.Equal(t, testToday, record.MeasureDate, "an empty date means today")
}

func TestAddRecord_CallsAlertOnlyWithRate(t *testing.T) {
	ctrl, tr, mockIAlert, _, _ := GetMockTrackerWithMemorySqliteDialector(t, true, false, false)
	defer ctrl.Finish()
	ctx := context.Background()

	p := mustPatient(t, tr, "3", "Hsu")
	withBaseline := mustTreatment(t, tr, p.ID, "2025-03-01", 80)

	mockIAlert.EXPECT().
		CheckAndStoreAlerts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, treatment *models.Treatment, record *models.WeightRecord) (*models.Intervention, error) {
			assert.Equal(t, withBaseline.ID, treatment.ID)
			assert.InDelta(t, -2.5, *record.ChangeRate, 0.0001)
			return nil, nil
		}).
		Times(1)

	_, err := tr.Weight.AddRecord(ctx, withBaseline.ID, 78, "2025-03-05")
	require.NoError(t, err)

	_, err = tr.Treatment.Complete(ctx, withBaseline.ID)
	require.NoError(t, err)

	noBaseline, err := tr.Treatment.Create(ctx, models.TreatmentInput{
		PatientID:            p.ID,
		CancerType:           "lung",
		StartDate:            "2025-03-10",
		BaselineUnmeasurable: true,
		UnmeasurableReason:   "bedridden",
	})
	require.NoError(t, err)

	// no baseline, no rate, no alert call
	record, err := tr.Weight.AddRecord(ctx, noBaseline.ID, 70, "2025-03-12")
	require.NoError(t, err)
	assert.Nil(t, record.ChangeRate)

	reloaded, err := tr.Treatment.Get(ctx, noBaseline.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.BaselineUnmeasurable, "a real measurement clears the unmeasurable flag")
}

func TestUpdateRecord_MeasuredClearsUnmeasurableBaseline(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "8", "Wu")
	treatment, err := tr.Treatment.Create(ctx, models.TreatmentInput{
		PatientID:            p.ID,
		CancerType:           "lung",
		StartDate:            "2025-03-10",
		BaselineUnmeasurable: true,
		UnmeasurableReason:   "bedridden",
	})
	require.NoError(t, err)

	record, err := tr.Weight.AddUnmeasurable(ctx, treatment.ID, "2025-03-12")
	require.NoError(t, err)

	view, err := tr.Treatment.Get(ctx, treatment.ID)
	require.NoError(t, err)
	assert.True(t, view.BaselineUnmeasurable, "an attempt alone keeps the flag")

	updated, err := tr.Weight.UpdateRecord(ctx, record.ID, 61.5, "")
	require.NoError(t, err)
	assert.False(t, updated.UnableToMeasure)

	view, err = tr.Treatment.Get(ctx, treatment.ID)
	require.NoError(t, err)
	assert.False(t, view.BaselineUnmeasurable, "an edited measurement clears the unmeasurable flag")
}

func TestAddRecord_AlertFailureRollsBack(t *testing.T) {
	ctrl, tr, mockIAlert, _, _ := GetMockTrackerWithMemorySqliteDialector(t, true, false, false)
	defer ctrl.Finish()
	ctx := context.Background()

	p := mustPatient(t, tr, "4", "Kao")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 80)

	mockIAlert.EXPECT().
		CheckAndStoreAlerts(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewInternalError("queue down", nil))

	_, err := tr.Weight.AddRecord(ctx, treatment.ID, 70, "2025-03-05")
	require.Error(t, err)

	assert.Zero(t, countRows(t, tr, &models.WeightRecord{}, "treatment_id = ?", treatment.ID),
		"the record is not kept when its alert could not be stored")
}

func TestUpdateRecord(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	p := mustPatient(t, tr, "5", "Tsai")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 50)

	a, err := tr.Weight.AddRecord(ctx, treatment.ID, 49.5, "2025-03-05")
	require.NoError(t, err)
	_, err = tr.Weight.AddRecord(ctx, treatment.ID, 49.0, "2025-03-06")
	require.NoError(t, err)

	_, err = tr.Weight.UpdateRecord(ctx, a.ID, 49.5, "2025-03-06")
	assert.Equal(t, apperrors.CodeDuplicateDate, apperrors.CodeOf(err))

	// keeping its own date is not a clash
	updated, err := tr.Weight.UpdateRecord(ctx, a.ID, 45, "2025-03-05")
	require.NoError(t, err)
	assert.InDelta(t, -10, *updated.ChangeRate, 0.0001)

	interventions, err := tr.Intervention.ListByTreatment(ctx, treatment.ID)
	require.NoError(t, err)
	assert.Empty(t, interventions, "edits do not trigger alerts by default")

	tr.Options.AlertOnUpdate = true
	_, err = tr.Weight.UpdateRecord(ctx, a.ID, 44, "")
	require.NoError(t, err)

	interventions, err = tr.Intervention.ListByTreatment(ctx, treatment.ID)
	require.NoError(t, err)
	require.Len(t, interventions, 1)
	assert.Equal(t, models.InterventionTypeNutrition, interventions[0].Type)

	_, err = tr.Weight.UpdateRecord(ctx, "missing", 44, "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddUnmeasurableAndDelete(t *testing.T) {
	var buf bytes.Buffer
	tr := newTestTracker(t)
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)
	ctx := context.Background()

	p := mustPatient(t, tr, "6", "Lee")
	treatment := mustTreatment(t, tr, p.ID, "2025-03-01", 50)

	record, err := tr.Weight.AddUnmeasurable(ctx, treatment.ID, "2025-03-18")
	require.NoError(t, err)
	assert.True(t, record.UnableToMeasure)
	assert.Nil(t, record.Weight)
	assert.Nil(t, record.ChangeRate)

	view, err := tr.Treatment.Get(ctx, treatment.ID)
	require.NoError(t, err)
	assert.Nil(t, view.LatestWeight, "only measured records count as the latest weight")
	assert.Equal(t, models.TrackingStateNormal, view.TrackingStatus.State, "an attempt still counts as follow-up")

	_, err = tr.Weight.AddUnmeasurable(ctx, treatment.ID, "2025-03-18")
	assert.True(t, apperrors.IsConflict(err))

	require.NoError(t, tr.Weight.DeleteRecord(ctx, record.ID))
	assert.True(t, apperrors.IsNotFound(tr.Weight.DeleteRecord(ctx, record.ID)))

	logs := ParseLogs(&buf)
	saved := findLog(logs, "Saved unmeasurable record")
	require.NotNil(t, saved)
	assert.Equal(t, common.LoggerCategoryWeight, saved["category"])
	assert.Equal(t, treatment.ID, saved[common.LoggerFieldTreatmentID])
	assert.NotNil(t, findLog(logs, "Deleted weight record"))
}
