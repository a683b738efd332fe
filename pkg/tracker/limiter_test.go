package tracker

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("treatment1")
	require.NotNil(t, limiter)
	assert.EqualValues(t, 1, limiter.Limit())
	assert.Equal(t, 2, limiter.Burst())
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("treatment2", 5, 10)
	limiter := store.GetLimiter("treatment2")

	assert.EqualValues(t, 5, limiter.Limit())
	assert.Equal(t, 10, limiter.Burst())
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	treatmentID := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, store.GetLimiter(treatmentID))
		}()
	}
	wg.Wait()

	assert.Same(t, store.GetLimiter(treatmentID), store.GetLimiter(treatmentID))
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec
	treatmentID := uuid.NewString()

	assert.True(t, store.Allow(treatmentID))
	assert.True(t, store.Allow(treatmentID))
	assert.False(t, store.Allow(treatmentID), "third write inside the window is throttled")

	// other treatments keep their own budget
	assert.True(t, store.Allow(uuid.NewString()))

	time.Sleep(600 * time.Millisecond)
	assert.True(t, store.Allow(treatmentID), "one token refilled")
}

func TestRateLimiterStore_ForgetAndNil(t *testing.T) {
	store := NewRateLimiterStore(1, 1)
	treatmentID := uuid.NewString()

	assert.True(t, store.Allow(treatmentID))
	assert.False(t, store.Allow(treatmentID))

	store.Forget(treatmentID)
	assert.True(t, store.Allow(treatmentID), "a forgotten treatment starts with a full bucket")

	var none *RateLimiterStore
	assert.True(t, none.Allow(treatmentID))
	none.Forget(treatmentID)
}
