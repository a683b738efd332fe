package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/db"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	_ "liyu1981.xyz/sela-weight-tracker/pkg/testing"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker/mocks"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client  *WeightTrackerClient
	tracker *tracker.Tracker
}

func startTestServer(t *testing.T, limiter *tracker.RateLimiterStore) testEnv {
	t.Helper()
	common.SetTestLoggerNop()

	instance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)
	tr := (&tracker.Tracker{Db: *instance, Clock: clock.FixedOn("2025-03-20")}).WithDefaultServices()
	require.NoError(t, tr.Settings.EnsureDefaults(context.Background()))

	listener := bufconn.Listen(bufSize)
	grpcServer := WeightTrackerGrpcServer{Tracker: tr, RateLimiterStore: limiter}
	interceptor := grpc.UnaryInterceptor(grpcServer.CreateRateLimitInterceptor([]string{MethodRecordWeight}))
	server := grpc.NewServer(interceptor)
	RegisterWeightTrackerServer(server, &grpcServer)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return testEnv{client: NewWeightTrackerClient(conn), tracker: tr}
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func seedTreatment(t *testing.T, tr *tracker.Tracker, medicalID string, baseline float64) *models.Treatment {
	t.Helper()
	ctx := context.Background()
	patient, err := tr.Patient.Create(ctx, &models.Patient{MedicalID: medicalID, Name: "Patient " + medicalID})
	require.NoError(t, err)
	treatment, err := tr.Treatment.Create(ctx, models.TreatmentInput{
		PatientID:      patient.ID,
		CancerType:     "head_neck",
		StartDate:      "2025-03-01",
		BaselineWeight: &baseline,
	})
	require.NoError(t, err)
	return treatment
}

func TestRecordWeightAndExecute(t *testing.T) {
	env := startTestServer(t, nil)
	ctx := context.Background()
	treatment := seedTreatment(t, env.tracker, "1234", 70)

	resp, err := env.client.RecordWeight(ctx, request(t, map[string]any{
		"treatment_id": treatment.ID,
		"weight":       66.0,
		"measure_date": "2025-03-17",
	}))
	require.NoError(t, err)
	fields := resp.AsMap()
	require.Equal(t, true, fields["success"], fields["message"])
	record := fields["record"].(map[string]any)
	assert.InDelta(t, -5.71, record["change_rate"].(float64), 0.01)

	resp, err = env.client.ListPendingInterventions(ctx, request(t, nil))
	require.NoError(t, err)
	pending := resp.AsMap()["interventions"].([]any)
	require.Len(t, pending, 1)
	first := pending[0].(map[string]any)
	assert.Equal(t, "nutrition", first["type"])
	assert.Equal(t, "0001234", first["patient"].(map[string]any)["medical_id"])

	resp, err = env.client.ExecuteIntervention(ctx, request(t, map[string]any{
		"intervention_id": first["id"],
		"executor":        "A",
	}))
	require.NoError(t, err)
	assert.Equal(t, true, resp.AsMap()["success"])
	assert.Equal(t, "executed", resp.AsMap()["intervention"].(map[string]any)["status"])

	resp, err = env.client.SkipIntervention(ctx, request(t, map[string]any{"intervention_id": first["id"]}))
	require.NoError(t, err)
	assert.Equal(t, false, resp.AsMap()["success"])
	assert.Equal(t, "CONFLICT", resp.AsMap()["error_type"])
	assert.Equal(t, "invalid_transition", resp.AsMap()["code"])

	resp, err = env.client.GetTreatment(ctx, request(t, map[string]any{"treatment_id": treatment.ID}))
	require.NoError(t, err)
	view := resp.AsMap()["treatment"].(map[string]any)
	assert.Equal(t, "Head and neck", view["cancer_type_label"])
	assert.Empty(t, view["pending_interventions"])
}

func TestRecordWeight_Failures(t *testing.T) {
	env := startTestServer(t, nil)
	ctx := context.Background()
	treatment := seedTreatment(t, env.tracker, "55", 60)

	cases := []struct {
		name      string
		fields    map[string]any
		errorType string
		code      string
	}{
		{"missing treatment id", map[string]any{"weight": 50.0}, "VALIDATION", "invalid_value"},
		{"weight not a number", map[string]any{"treatment_id": treatment.ID, "weight": "heavy"}, "VALIDATION", "invalid_value"},
		{"weight out of range", map[string]any{"treatment_id": treatment.ID, "weight": 0.0}, "VALIDATION", "invalid_value"},
		{"unknown treatment", map[string]any{"treatment_id": uuid.NewString(), "weight": 50.0}, "NOT_FOUND", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := env.client.RecordWeight(ctx, request(t, c.fields))
			require.NoError(t, err)
			fields := resp.AsMap()
			assert.Equal(t, false, fields["success"])
			assert.Equal(t, c.errorType, fields["error_type"])
			assert.Equal(t, c.code, fields["code"])
		})
	}

	first := request(t, map[string]any{"treatment_id": treatment.ID, "weight": 59.0, "measure_date": "2025-03-05"})
	resp, err := env.client.RecordWeight(ctx, first)
	require.NoError(t, err)
	require.Equal(t, true, resp.AsMap()["success"])

	resp, err = env.client.RecordWeight(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "duplicate_date", resp.AsMap()["code"])

	resp, err = env.client.RecordWeight(ctx, request(t, map[string]any{
		"treatment_id":      treatment.ID,
		"unable_to_measure": true,
		"measure_date":      "2025-03-06",
	}))
	require.NoError(t, err)
	assert.Equal(t, true, resp.AsMap()["record"].(map[string]any)["unable_to_measure"])
}

func TestRateLimitInterceptor(t *testing.T) {
	env := startTestServer(t, tracker.NewRateLimiterStore(rate.Limit(0.001), 1))
	ctx := context.Background()
	treatment := seedTreatment(t, env.tracker, "66", 60)

	resp, err := env.client.RecordWeight(ctx, request(t, map[string]any{
		"treatment_id": treatment.ID, "weight": 59.0, "measure_date": "2025-03-05",
	}))
	require.NoError(t, err)
	assert.Equal(t, true, resp.AsMap()["success"])

	_, err = env.client.RecordWeight(ctx, request(t, map[string]any{
		"treatment_id": treatment.ID, "weight": 58.0, "measure_date": "2025-03-06",
	}))
	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// other treatments and other methods are not throttled
	other := seedTreatment(t, env.tracker, "67", 60)
	resp, err = env.client.RecordWeight(ctx, request(t, map[string]any{
		"treatment_id": other.ID, "weight": 59.0, "measure_date": "2025-03-05",
	}))
	require.NoError(t, err)
	assert.Equal(t, true, resp.AsMap()["success"])

	for i := 0; i < 3; i++ {
		_, err = env.client.GetTreatment(ctx, request(t, map[string]any{"treatment_id": treatment.ID}))
		require.NoError(t, err)
	}
}

func TestInternalErrorIsMasked(t *testing.T) {
	env := startTestServer(t, nil)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIIntervention := mocks.NewMockIIntervention(ctrl)
	env.tracker.Intervention = mockIIntervention
	mockIIntervention.EXPECT().
		ListPending(gomock.Any()).
		Return(nil, fmt.Errorf("disk I/O error")).
		Times(1)

	resp, err := env.client.ListPendingInterventions(context.Background(), request(t, nil))
	require.NoError(t, err)
	assert.Equal(t, false, resp.AsMap()["success"])
	assert.Equal(t, "INTERNAL", resp.AsMap()["error_type"])
	assert.Equal(t, "internal error", resp.AsMap()["message"])
}
