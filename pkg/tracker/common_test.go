package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/db"
	"liyu1981.xyz/sela-weight-tracker/pkg/metrics"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	_ "liyu1981.xyz/sela-weight-tracker/pkg/testing"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker/mocks"
)

const testToday = "2025-03-20"

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	common.SetTestLoggerNop()

	instance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	tracker := (&Tracker{
		Db:      *instance,
		Clock:   clock.FixedOn(testToday),
		Metrics: metrics.New("sela_test"),
	}).WithDefaultServices()
	require.NoError(t, tracker.Settings.EnsureDefaults(context.Background()))
	return tracker
}

func GetMockTrackerWithMemorySqliteDialector(t *testing.T, useMockIAlert, useMockIIntervention, useMockISettings bool) (
	*gomock.Controller,
	*Tracker,
	*mocks.MockIAlert,
	*mocks.MockIIntervention,
	*mocks.MockISettings,
) {
	ctrl := gomock.NewController(t)

	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIIntervention := mocks.NewMockIIntervention(ctrl)
	mockISettings := mocks.NewMockISettings(ctrl)

	tracker := newTestTracker(t)

	opts := ServiceOpts{}
	if useMockIAlert {
		opts.Alert = mockIAlert
	}
	if useMockIIntervention {
		opts.Intervention = mockIIntervention
	}
	if useMockISettings {
		opts.Settings = mockISettings
	}
	tracker.WithServices(opts)

	return ctrl, tracker, mockIAlert, mockIIntervention, mockISettings
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		if m, ok := l.(map[string]any); ok && m["msg"] == msg {
			return m
		}
	}
	return nil
}

func ptr(f float64) *float64 { return &f }

func mustPatient(t *testing.T, tr *Tracker, medicalID string, name string) *models.Patient {
	t.Helper()
	p, err := tr.Patient.Create(context.Background(), &models.Patient{MedicalID: medicalID, Name: name})
	require.NoError(t, err)
	return p
}

func mustTreatment(t *testing.T, tr *Tracker, patientID string, start string, baseline float64) *models.Treatment {
	t.Helper()
	treatment, err := tr.Treatment.Create(context.Background(), models.TreatmentInput{
		PatientID:      patientID,
		CancerType:     "head_neck",
		StartDate:      start,
		BaselineWeight: ptr(baseline),
	})
	require.NoError(t, err)
	return treatment
}

func countRows(t *testing.T, tr *Tracker, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, tr.Db.Conn.Model(model).Where(where, args...).Count(&n).Error)
	return n
}
