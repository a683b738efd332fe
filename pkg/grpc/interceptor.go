package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
)

// CreateRateLimitInterceptor throttles the listed methods per treatment_id.
func (s *WeightTrackerGrpcServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targetMethodMap[info.FullMethod] {
			if r, ok := req.(*structpb.Struct); ok {
				treatmentID := stringField(r, "treatment_id")
				if treatmentID != "" && !s.CheckTreatmentLimiter(treatmentID) {
					common.GetLoggerWith(common.LoggerNameGrpcServer).Warn("Rate limit exceeded",
						zap.String("method", info.FullMethod),
						zap.String(common.LoggerFieldTreatmentID, treatmentID))
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
