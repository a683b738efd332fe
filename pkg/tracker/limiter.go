package tracker

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore throttles weight writes per treatment: treatment_id -> rate limiter.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewRateLimiterStore builds a store whose treatments start at defaultRate weight
// writes per second, with defaultBurst writes allowed back to back (a ward
// catching up on a day of paper records). SELA_DEFAULT_RATE and
// SELA_DEFAULT_BURST feed both values.
func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

// GetLimiter returns the limiter guarding weight writes of treatmentID, creating
// one with the store defaults on the first write. Limiters raised through
// SetLimiter are kept until the treatment is completed or terminated.
func (s *RateLimiterStore) GetLimiter(treatmentID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[treatmentID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[treatmentID] = limiter
	}
	return limiter
}

// SetLimiter overrides the allowance of one treatment, e.g. while backfilling.
func (s *RateLimiterStore) SetLimiter(treatmentID string, treatmentRate rate.Limit, treatmentBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[treatmentID] = rate.NewLimiter(treatmentRate, treatmentBurst)
}

// Allow takes one token for treatmentID. A nil store never throttles.
func (s *RateLimiterStore) Allow(treatmentID string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(treatmentID).Allow()
}

// Forget drops the limiter of a treatment that no longer takes writes.
func (s *RateLimiterStore) Forget(treatmentID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.limiters, treatmentID)
}
