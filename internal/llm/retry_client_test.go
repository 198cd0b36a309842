package llm

import (
	"context"
	"fmt"
	"testing"
	"time"

	triperrors "tripcraft/internal/errors"
	"tripcraft/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig() triperrors.RetryConfig {
	return triperrors.FixedRetryConfig(3, time.Millisecond)
}

func TestRetryClientPassesThroughSuccess(t *testing.T) {
	mock := NewMockClient("hello")
	breaker := triperrors.NewCircuitBreaker("test", triperrors.DefaultCircuitBreakerConfig())
	client := NewRetryClient(mock, fastRetryConfig(), breaker, nil)

	resp, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "hello", resp)
	require.Equal(t, 1, mock.Calls())
}

func TestRetryClientRetriesTransientFailures(t *testing.T) {
	mock := NewFailingMockClient(fmt.Errorf("gemini API error: status 503: overloaded"))
	breaker := triperrors.NewCircuitBreaker("test", triperrors.DefaultCircuitBreakerConfig())
	client := NewRetryClient(mock, fastRetryConfig(), breaker, nil)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Equal(t, 3, mock.Calls())
}

func TestRetryClientDoesNotRetryAuthFailures(t *testing.T) {
	mock := NewFailingMockClient(fmt.Errorf("gemini API error: status 401: invalid api key"))
	breaker := triperrors.NewCircuitBreaker("test", triperrors.DefaultCircuitBreakerConfig())
	client := NewRetryClient(mock, fastRetryConfig(), breaker, nil)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Equal(t, 1, mock.Calls())
}

func TestRetryClientModel(t *testing.T) {
	client := WrapWithRetry(NewMockClient("x"), fastRetryConfig(), triperrors.DefaultCircuitBreakerConfig(), nil)
	require.Equal(t, "mock", client.Model())
}

func TestRetryClientRecordsRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics("llmtest", reg)
	require.NoError(t, err)

	breaker := triperrors.NewCircuitBreaker("test", triperrors.DefaultCircuitBreakerConfig())
	client := NewRetryClient(NewMockClient("ok"), fastRetryConfig(), breaker, metrics)

	_, err = client.Complete(context.Background(), "prompt")
	require.NoError(t, err)

	series, err := testutil.GatherAndCount(reg, "llmtest_llm_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, series)

	observations, err := testutil.GatherAndCount(reg, "llmtest_llm_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, observations)

	failing := NewRetryClient(NewFailingMockClient(fmt.Errorf("status 401")), fastRetryConfig(), breaker, metrics)
	_, err = failing.Complete(context.Background(), "prompt")
	require.Error(t, err)

	series, err = testutil.GatherAndCount(reg, "llmtest_llm_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, series)
}

func TestClassifyLLMError(t *testing.T) {
	require.True(t, triperrors.IsTransient(classifyLLMError(fmt.Errorf("429 rate limit"))))
	require.True(t, triperrors.IsPermanent(classifyLLMError(fmt.Errorf("status 403 forbidden"))))
	require.NoError(t, classifyLLMError(nil))
}
