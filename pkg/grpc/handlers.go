package grpc

import (
	"context"
	"encoding/json"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
)

var idValidator = z.String().Min(1).Required()

func validateID(name string, id *string) error {
	if issues := idValidator.Validate(id); len(issues) > 0 {
		return apperrors.NewValidationError("%s: %v", name, issues)
	}
	return nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// numberField returns nil when the field is absent or not a number.
func numberField(req *structpb.Struct, name string) *float64 {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return nil
	}
	n := v.GetNumberValue()
	return &n
}

// toValue round-trips a model through json so the response carries the same
// field names as the REST api.
func toValue(v any) (*structpb.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	value := &structpb.Value{}
	if err := protojson.Unmarshal(raw, value); err != nil {
		return nil, err
	}
	return value, nil
}

func okResponse(key string, payload any) (*structpb.Struct, error) {
	resp := &structpb.Struct{Fields: map[string]*structpb.Value{
		"success": structpb.NewBoolValue(true),
		"message": structpb.NewStringValue("OK"),
	}}
	if key != "" {
		value, err := toValue(payload)
		if err != nil {
			return nil, err
		}
		resp.Fields[key] = value
	}
	return resp, nil
}

func errorResponse(method string, err error) (*structpb.Struct, error) {
	errType := apperrors.TypeOf(err)
	message := err.Error()
	if errType == apperrors.ErrorTypeInternal {
		common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Call failed",
			zap.String("method", method), zap.Error(err))
		message = "internal error"
	}
	return structpb.NewStruct(map[string]any{
		"success":    false,
		"message":    message,
		"error_type": string(errType),
		"code":       apperrors.CodeOf(err),
	})
}

func (s *WeightTrackerGrpcServer) RecordWeight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	treatmentID := stringField(req, "treatment_id")
	if err := validateID("treatment_id", &treatmentID); err != nil {
		return errorResponse(MethodRecordWeight, err)
	}
	date := stringField(req, "measure_date")

	if req.GetFields()["unable_to_measure"].GetBoolValue() {
		record, err := s.Tracker.Weight.AddUnmeasurable(ctx, treatmentID, date)
		if err != nil {
			return errorResponse(MethodRecordWeight, err)
		}
		return okResponse("record", record)
	}

	weight := numberField(req, "weight")
	if weight == nil {
		return errorResponse(MethodRecordWeight, apperrors.NewValidationError("weight must be a number"))
	}

	record, err := s.Tracker.Weight.AddRecord(ctx, treatmentID, *weight, date)
	if err != nil {
		return errorResponse(MethodRecordWeight, err)
	}
	return okResponse("record", record)
}

func (s *WeightTrackerGrpcServer) GetTreatment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	treatmentID := stringField(req, "treatment_id")
	if err := validateID("treatment_id", &treatmentID); err != nil {
		return errorResponse(MethodGetTreatment, err)
	}

	view, err := s.Tracker.Treatment.Get(ctx, treatmentID)
	if err != nil {
		return errorResponse(MethodGetTreatment, err)
	}
	return okResponse("treatment", view)
}

func (s *WeightTrackerGrpcServer) ListPendingInterventions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	pending, err := s.Tracker.Intervention.ListPending(ctx)
	if err != nil {
		return errorResponse(MethodListPendingInterventions, err)
	}
	return okResponse("interventions", pending)
}

func (s *WeightTrackerGrpcServer) ExecuteIntervention(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	interventionID := stringField(req, "intervention_id")
	if err := validateID("intervention_id", &interventionID); err != nil {
		return errorResponse(MethodExecuteIntervention, err)
	}
	executor := stringField(req, "executor")
	if err := validateID("executor", &executor); err != nil {
		return errorResponse(MethodExecuteIntervention, err)
	}

	intervention, err := s.Tracker.Intervention.Execute(ctx, interventionID, executor,
		stringField(req, "notes"), stringField(req, "execute_date"))
	if err != nil {
		return errorResponse(MethodExecuteIntervention, err)
	}
	return okResponse("intervention", intervention)
}

func (s *WeightTrackerGrpcServer) SkipIntervention(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	interventionID := stringField(req, "intervention_id")
	if err := validateID("intervention_id", &interventionID); err != nil {
		return errorResponse(MethodSkipIntervention, err)
	}

	intervention, err := s.Tracker.Intervention.Skip(ctx, interventionID, stringField(req, "reason"))
	if err != nil {
		return errorResponse(MethodSkipIntervention, err)
	}
	return okResponse("intervention", intervention)
}
