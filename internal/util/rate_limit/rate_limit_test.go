package rate_limit

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testProjectKey() string {
	return fmt.Sprintf("WET%s", uuid.New().String()[:4])
}

func Test_CheckRateLimit_WithinLimits_AllowsRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	projectKey := testProjectKey()
	rpsLimit := 10
	burstLimit := 20

	rateLimiter.ResetRateLimit(projectKey)

	result, err := rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, burstLimit-1, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now().Add(-time.Second)))
}

func Test_CheckRateLimit_ExceedsBurstLimit_DeniesRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	projectKey := testProjectKey()
	rpsLimit := 1
	burstLimit := 2

	rateLimiter.ResetRateLimit(projectKey)

	for i := 0; i < burstLimit; i++ {
		result, err := rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.True(t, result.RetryAfterSec > 0)
	assert.True(t, result.ResetTime.After(time.Now()))
}

func Test_CheckRateLimit_TokensRefillOverTime_AllowsRequestsAfterWait(t *testing.T) {
	rateLimiter := NewRateLimiter()
	projectKey := testProjectKey()
	rpsLimit := 10
	burstLimit := 1

	rateLimiter.ResetRateLimit(projectKey)

	result, err := rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)

	result, err = rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	time.Sleep(150 * time.Millisecond)

	result, err = rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_ResetRateLimit_RestoresFullBucket(t *testing.T) {
	rateLimiter := NewRateLimiter()
	projectKey := testProjectKey()
	rpsLimit := 1
	burstLimit := 3

	rateLimiter.ResetRateLimit(projectKey)

	for i := 0; i < burstLimit; i++ {
		rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	}

	err := rateLimiter.ResetRateLimit(projectKey)
	assert.NoError(t, err)

	result, err := rateLimiter.CheckRateLimit(projectKey, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, burstLimit-1, result.Remaining)
}
