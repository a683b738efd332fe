package grpc

import (
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker"
)

type WeightTrackerGrpcServer struct {
	Tracker          *tracker.Tracker
	RateLimiterStore *tracker.RateLimiterStore
}

func (s *WeightTrackerGrpcServer) CheckTreatmentLimiter(treatmentID string) bool {
	return s.RateLimiterStore.Allow(treatmentID)
}
