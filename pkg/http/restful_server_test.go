package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/db"
	"liyu1981.xyz/sela-weight-tracker/pkg/metrics"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	_ "liyu1981.xyz/sela-weight-tracker/pkg/testing"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker/mocks"
)

func setupTestServer(t *testing.T) *RestfulServer {
	t.Helper()
	common.SetTestLoggerNop()
	gin.SetMode(gin.TestMode)

	instance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	tr := (&tracker.Tracker{
		Db:      *instance,
		Clock:   clock.FixedOn("2025-03-20"),
		Metrics: metrics.New("sela_test"),
	}).WithDefaultServices()
	require.NoError(t, tr.Settings.EnsureDefaults(context.Background()))

	rs := &RestfulServer{
		Server:  gin.New(),
		Tracker: tr,
		Metrics: tr.Metrics,
		// no limiter by default, assign rs.RateLimiterStore = tracker.NewRateLimiterStore(...) when needed
	}

	rs.Setup()

	return rs
}

func do(rs *RestfulServer, method string, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func seedTreatment(t *testing.T, rs *RestfulServer, medicalID string, baseline float64) models.Treatment {
	t.Helper()

	w := do(rs, "POST", "/api/patients", map[string]any{"medical_id": medicalID, "name": "Patient " + medicalID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	patient := decode[models.Patient](t, w)

	w = do(rs, "POST", "/api/treatments", map[string]any{
		"patient_id":      patient.ID,
		"cancer_type":     "head_neck",
		"treatment_start": "2025-03-01",
		"baseline_weight": baseline,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Treatment](t, w)
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer(t)

	w := do(rs, "GET", "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPostWeightAndWorklist(t *testing.T) {
	rs := setupTestServer(t)
	treatment := seedTreatment(t, rs, "1234", 70)

	w := do(rs, "POST", "/api/treatments/"+treatment.ID+"/weights", map[string]any{
		"weight":       68.5,
		"measure_date": "2025-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decode[models.WeightRecord](t, w)
	assert.InDelta(t, -2.14, *record.ChangeRate, 0.01)

	w = do(rs, "GET", "/api/pending-interventions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.PendingIntervention](t, w))

	w = do(rs, "POST", "/api/treatments/"+treatment.ID+"/weights", map[string]any{
		"weight":       66.0,
		"measure_date": "2025-03-17",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(rs, "GET", "/api/pending-interventions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[[]models.PendingIntervention](t, w)
	require.Len(t, pending, 1)
	assert.Equal(t, models.InterventionTypeNutrition, pending[0].Type)
	assert.Equal(t, "0001234", pending[0].Patient.MedicalID)

	w = do(rs, "POST", "/api/interventions/"+pending[0].ID+"/execute", map[string]any{"executor": "A"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.InterventionStatusExecuted, decode[models.Intervention](t, w).Status)

	w = do(rs, "POST", "/api/interventions/"+pending[0].ID+"/skip", map[string]any{"reason": "late"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(rs, "GET", "/api/treatments/"+treatment.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.TreatmentView](t, w)
	assert.Equal(t, "Head and neck", view.CancerTypeLabel)
	assert.InDelta(t, 66, *view.LatestWeight.Weight, 0.0001)
	assert.Empty(t, view.PendingInterventions)
}

func TestPostWeight_ErrorMapping(t *testing.T) {
	rs := setupTestServer(t)
	treatment := seedTreatment(t, rs, "77", 60)
	path := "/api/treatments/" + treatment.ID + "/weights"

	w := do(rs, "POST", path, map[string]any{"weight": 59, "measure_date": "2025-03-05"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(rs, "POST", path, map[string]any{"weight": 58, "measure_date": "2025-03-05"})
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "CONFLICT", body["error_type"])
	assert.Equal(t, "duplicate_date", body["code"])

	w = do(rs, "POST", path, map[string]any{"weight": 301, "measure_date": "2025-03-06"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", decode[map[string]any](t, w)["error_type"])

	w = do(rs, "POST", path, map[string]any{"measure_date": "2025-03-06"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "neither weight nor unable_to_measure")

	w = do(rs, "POST", path, map[string]any{"unable_to_measure": true, "measure_date": "2025-03-06"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, decode[models.WeightRecord](t, w).UnableToMeasure)

	w = do(rs, "POST", "/api/treatments/"+uuid.NewString()+"/weights", map[string]any{"weight": 50})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[map[string]any](t, w)["error_type"])
}

func TestPostWeight_RateLimited(t *testing.T) {
	rs := setupTestServer(t)
	rs.RateLimiterStore = tracker.NewRateLimiterStore(rate.Limit(0.001), 2)
	treatment := seedTreatment(t, rs, "88", 60)
	path := "/api/treatments/" + treatment.ID + "/weights"

	for i, date := range []string{"2025-03-05", "2025-03-06"} {
		w := do(rs, "POST", path, map[string]any{"weight": 59, "measure_date": date})
		assert.Equal(t, http.StatusCreated, w.Code, "request %d", i)
	}

	w := do(rs, "POST", path, map[string]any{"weight": 59, "measure_date": "2025-03-07"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(rs, "POST", "/api/treatments/"+treatment.ID+"/limiter", map[string]any{"rate": 100, "burst": 10})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(rs, "POST", path, map[string]any{"weight": 59, "measure_date": "2025-03-07"})
	assert.Equal(t, http.StatusCreated, w.Code, "a raised limit lets writes through again")
}

func TestTreatmentLifecycleRoutes(t *testing.T) {
	rs := setupTestServer(t)
	treatment := seedTreatment(t, rs, "99", 60)
	base := "/api/treatments/" + treatment.ID

	w := do(rs, "POST", "/api/treatments", map[string]any{
		"patient_id":      treatment.PatientID,
		"cancer_type":     "lung",
		"baseline_weight": 60,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ongoing_treatment", decode[map[string]any](t, w)["code"])

	w = do(rs, "POST", base+"/pause", map[string]any{"reason": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "other needs a note")

	w = do(rs, "POST", base+"/pause", map[string]any{"reason": "infection"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.TreatmentStatusPaused, decode[models.Treatment](t, w).Status)

	w = do(rs, "GET", "/api/treatments?status=paused", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.TreatmentView](t, w), 1)

	w = do(rs, "GET", "/api/treatments?status=sleeping", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, "POST", base+"/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(rs, "POST", base+"/terminate", map[string]any{"reason": "transferred"})
	require.Equal(t, http.StatusOK, w.Code)
	terminated := decode[models.Treatment](t, w)
	assert.Equal(t, models.TreatmentStatusTerminated, terminated.Status)
	assert.Equal(t, "2025-03-20", terminated.EndDate)

	w = do(rs, "POST", base+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", decode[map[string]any](t, w)["code"])

	w = do(rs, "GET", "/api/patients/"+treatment.PatientID+"/treatments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.TreatmentView](t, w), 1)
}

func TestPatientRoutes(t *testing.T) {
	rs := setupTestServer(t)

	w := do(rs, "POST", "/api/patients", map[string]any{"medical_id": "42", "name": "Chen Mei", "gender": "F"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	patient := decode[models.Patient](t, w)
	assert.Equal(t, "0000042", patient.MedicalID)

	w = do(rs, "POST", "/api/patients", map[string]any{"medical_id": "42", "name": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(rs, "POST", "/api/patients", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, "GET", "/api/patients?q=chen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Patient](t, w), 1)

	w = do(rs, "GET", "/api/patients?medical_id=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, patient.ID, decode[[]models.Patient](t, w)[0].ID)

	w = do(rs, "PUT", "/api/patients/"+patient.ID, map[string]any{"medical_id": "42", "name": "Chen Mei-Ling"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chen Mei-Ling", decode[models.Patient](t, w).Name)

	w = do(rs, "GET", "/api/patients/"+patient.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[models.PatientWithTreatments](t, w).OngoingTreatment)

	w = do(rs, "DELETE", "/api/patients/"+patient.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(rs, "GET", "/api/patients/"+patient.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsRoutes(t *testing.T) {
	rs := setupTestServer(t)

	w := do(rs, "GET", "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	catalog := decode[models.Catalog](t, w)
	assert.Len(t, catalog.PauseReasons, 5)

	w = do(rs, "PUT", "/api/settings/alert_rules", map[string]any{
		"alert_rules": []map[string]any{
			{"cancer_type": "default", "sdm_threshold": -2, "nutrition_threshold": -4},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, -2.0, decode[models.Catalog](t, w).AlertRules[0].SDMThreshold)

	w = do(rs, "PUT", "/api/settings/alert_rules", map[string]any{
		"alert_rules": []map[string]any{
			{"cancer_type": "default", "sdm_threshold": -6, "nutrition_threshold": -4},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, "PUT", "/api/settings/staff_list", map[string]any{"staff": []string{"Nurse Lin", "Dr. Wu"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Nurse Lin", "Dr. Wu"}, decode[models.Catalog](t, w).StaffList)

	w = do(rs, "PUT", "/api/settings/cancer_types", map[string]any{
		"code_labels": []map[string]any{{"code": "lung", "label": "Lung"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.Catalog](t, w).CancerTypes, 1)

	w = do(rs, "PUT", "/api/settings/colours", map[string]any{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportAndBackupRoutes(t *testing.T) {
	rs := setupTestServer(t)
	treatment := seedTreatment(t, rs, "501", 70)
	w := do(rs, "POST", "/api/treatments/"+treatment.ID+"/weights", map[string]any{"weight": 66, "measure_date": "2025-03-17"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(rs, "GET", "/api/report/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.Stats](t, w)
	assert.Equal(t, 1, stats.ActiveCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 1, stats.WeightDistribution[models.WeightBandSevere])

	w = do(rs, "GET", "/api/backup/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sela-backup.json")
	snapshot := w.Body.Bytes()

	w = do(rs, "DELETE", "/api/patients/"+treatment.PatientID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	req := httptest.NewRequest("POST", "/api/backup/import", bytes.NewReader(snapshot))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(rs, "GET", "/api/treatments/"+treatment.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "restored from the snapshot")

	req = httptest.NewRequest("POST", "/api/backup/import", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalErrorsAreMasked(t *testing.T) {
	rs := setupTestServer(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIIntervention := mocks.NewMockIIntervention(ctrl)
	rs.Tracker.Intervention = mockIIntervention
	mockIIntervention.EXPECT().
		ListPending(gomock.Any()).
		Return(nil, fmt.Errorf("database is locked")).
		Times(1)

	w := do(rs, "GET", "/api/pending-interventions", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "INTERNAL", body["error_type"])
	assert.Equal(t, "internal error", body["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	rs := setupTestServer(t)

	do(rs, "GET", "/healthz", nil)
	w := do(rs, "GET", "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sela_test_http_request_duration_seconds_count{method="GET",path="/healthz",status="200"} 1`)
}
