package orders

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines the retry behavior for Orders API calls.
type RetryPolicy struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	jitterFactor float64
}

// DefaultRetryPolicy returns the retry policy used for upstream fetches.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		maxAttempts:  3,
		initialDelay: 500 * time.Millisecond,
		maxDelay:     10 * time.Second,
		multiplier:   2.0,
		jitterFactor: 0.1,
	}
}

// NoRetryPolicy returns a policy that never retries. Used for write
// operations where a duplicate request is worse than a failed one.
func NoRetryPolicy() *RetryPolicy {
	return &RetryPolicy{maxAttempts: 1}
}

// WithMaxAttempts sets the maximum number of attempts.
func (p *RetryPolicy) WithMaxAttempts(n int) *RetryPolicy {
	p.maxAttempts = n
	return p
}

// WithInitialDelay sets the initial delay between retries.
func (p *RetryPolicy) WithInitialDelay(d time.Duration) *RetryPolicy {
	p.initialDelay = d
	return p
}

// MaxAttempts returns the maximum number of attempts.
func (p *RetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// ShouldRetry determines if an error should be retried.
func (p *RetryPolicy) ShouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= p.maxAttempts {
		return false
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.IsRetryable()
	}
	// Transport-level failures (connection refused, timeouts) are retryable.
	return true
}

// DelayForAttempt calculates the backoff delay before the next attempt.
func (p *RetryPolicy) DelayForAttempt(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(p.initialDelay) * math.Pow(p.multiplier, float64(attempt-1))
	if p.jitterFactor > 0 {
		delay += delay * p.jitterFactor * (rand.Float64()*2 - 1)
	}
	if delay > float64(p.maxDelay) {
		delay = float64(p.maxDelay)
	}
	return time.Duration(delay)
}

// waitForRetry sleeps for the backoff delay. Returns false if the context
// is cancelled during the wait.
func (p *RetryPolicy) waitForRetry(ctx context.Context, attempt int) bool {
	delay := p.DelayForAttempt(attempt)
	if delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// RetryResult holds the outcome of a retried operation.
type RetryResult struct {
	Attempts  int
	LastError error
	Duration  time.Duration
}

// Retry runs the operation with backoff according to the policy.
func (p *RetryPolicy) Retry(ctx context.Context, operation func() error) *RetryResult {
	start := time.Now()
	result := &RetryResult{}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		result.Attempts = attempt

		err := operation()
		if err == nil {
			result.LastError = nil
			break
		}
		result.LastError = err

		if !p.ShouldRetry(err, attempt) {
			break
		}
		if !p.waitForRetry(ctx, attempt) {
			result.LastError = ctx.Err()
			break
		}
	}

	result.Duration = time.Since(start)
	return result
}
