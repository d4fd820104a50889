package orders

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorIs(t *testing.T) {
	err := NewAPIError("/api/orders/sales", "too many requests", http.StatusTooManyRequests)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.False(t, errors.Is(err, ErrNotFound))

	err = NewAPIError("/api/orders/sales", "upstream down", http.StatusBadGateway)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestAPIErrorRetryable(t *testing.T) {
	assert.True(t, NewAPIError("", "", http.StatusTooManyRequests).IsRetryable())
	assert.True(t, NewAPIError("", "", http.StatusInternalServerError).IsRetryable())
	assert.False(t, NewAPIError("", "", http.StatusBadRequest).IsRetryable())
	assert.False(t, NewAPIError("", "", http.StatusUnauthorized).IsRetryable())
}

func TestAPIErrorCategory(t *testing.T) {
	assert.Equal(t, CategoryAuthentication, NewAPIError("", "", http.StatusUnauthorized).Category())
	assert.Equal(t, CategoryRateLimit, NewAPIError("", "", http.StatusTooManyRequests).Category())
	assert.Equal(t, CategoryServer, NewAPIError("", "", http.StatusServiceUnavailable).Category())
	assert.Equal(t, CategoryValidation, NewAPIError("", "", http.StatusBadRequest).Category())
}

func TestRetryPolicyBackoffCaps(t *testing.T) {
	p := DefaultRetryPolicy()
	for attempt := 1; attempt < 20; attempt++ {
		assert.LessOrEqual(t, p.DelayForAttempt(attempt), p.maxDelay+p.maxDelay/10)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	p := DefaultRetryPolicy()
	calls := 0
	res := p.Retry(context.Background(), func() error {
		calls++
		return NewAPIError("/x", "bad request", http.StatusBadRequest)
	})
	assert.Equal(t, 1, calls)
	assert.Error(t, res.LastError)
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	p := DefaultRetryPolicy().WithInitialDelay(0)
	calls := 0
	res := p.Retry(context.Background(), func() error {
		calls++
		if calls < 2 {
			return NewAPIError("/x", "flaky", http.StatusBadGateway)
		}
		return nil
	})
	assert.Equal(t, 2, res.Attempts)
	assert.NoError(t, res.LastError)
}
