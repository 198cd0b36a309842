package errors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryWithResultReturnsFirstSuccess(t *testing.T) {
	calls := 0
	result, err := RetryWithResult(context.Background(), FixedRetryConfig(3, time.Millisecond), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Equal(t, 1, calls)
}

func TestRetryWithResultRetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := RetryWithResult(context.Background(), FixedRetryConfig(3, time.Millisecond), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(fmt.Errorf("boom"), "temporary upstream failure")
		}
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, result)
	require.Equal(t, 3, calls)
}

func TestRetryWithResultStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := RetryWithResult(context.Background(), FixedRetryConfig(3, time.Millisecond), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewPermanentError(fmt.Errorf("bad key"), "authentication failed")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryWithResultExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := RetryWithResult(context.Background(), FixedRetryConfig(3, time.Millisecond), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(fmt.Errorf("boom"), "")
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "max retries exceeded")
	require.Equal(t, 3, calls)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, DefaultRetryConfig(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "context cancelled")
}

func TestIsTransientClassification(t *testing.T) {
	require.True(t, IsTransient(fmt.Errorf("API error: status 429")))
	require.True(t, IsTransient(fmt.Errorf("upstream returned 503 service unavailable")))
	require.True(t, IsTransient(fmt.Errorf("dial tcp: connection refused")))
	require.False(t, IsTransient(fmt.Errorf("API error: status 401 unauthorized")))
	require.False(t, IsTransient(fmt.Errorf("unsupported platform")))
	require.False(t, IsTransient(nil))
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})

	fail := func(ctx context.Context) error { return fmt.Errorf("boom") }

	require.Error(t, cb.Execute(context.Background(), fail))
	require.Equal(t, StateClosed, cb.State())
	require.Error(t, cb.Execute(context.Background(), fail))
	require.Equal(t, StateOpen, cb.State())

	// subsequent request is rejected with a degraded error
	err := cb.Execute(context.Background(), func(ctx context.Context) error { return nil })
	require.True(t, IsDegraded(err))
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Millisecond,
	})

	require.Error(t, cb.Execute(context.Background(), func(ctx context.Context) error { return fmt.Errorf("boom") }))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)

	require.NoError(t, cb.Execute(context.Background(), func(ctx context.Context) error { return nil }))
	require.Equal(t, StateClosed, cb.State())
}
