package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	triperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
	"tripcraft/internal/observability"
)

// retryClient wraps a Client with retry logic and a circuit breaker.
type retryClient struct {
	underlying     Client
	retryConfig    triperrors.RetryConfig
	circuitBreaker *triperrors.CircuitBreaker
	logger         logging.Logger
	metrics        *observability.Metrics
}

// NewRetryClient wraps a client with retry and circuit breaker logic.
// metrics may be nil.
func NewRetryClient(client Client, retryConfig triperrors.RetryConfig, circuitBreaker *triperrors.CircuitBreaker, metrics *observability.Metrics) Client {
	return &retryClient{
		underlying:     client,
		retryConfig:    retryConfig,
		circuitBreaker: circuitBreaker,
		logger:         logging.NewComponentLogger("llm-retry"),
		metrics:        metrics,
	}
}

// WrapWithRetry wraps an existing client with retry logic and a dedicated
// circuit breaker.
func WrapWithRetry(client Client, retryConfig triperrors.RetryConfig, breakerConfig triperrors.CircuitBreakerConfig, metrics *observability.Metrics) Client {
	breaker := triperrors.NewCircuitBreaker(
		fmt.Sprintf("llm-%s", client.Model()),
		breakerConfig,
	)
	return NewRetryClient(client, retryConfig, breaker, metrics)
}

func (c *retryClient) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()

	resp, err := triperrors.RetryWithResultAndLog(ctx, c.retryConfig, func(ctx context.Context) (string, error) {
		return triperrors.ExecuteFunc(c.circuitBreaker, ctx, func(ctx context.Context) (string, error) {
			response, err := c.underlying.Complete(ctx, prompt)
			if err != nil {
				return "", classifyLLMError(err)
			}
			return response, nil
		})
	}, c.logger)

	duration := time.Since(startTime)
	c.metrics.RecordLLMRequest(c.underlying.Model(), duration, err)

	if err != nil {
		c.logger.Warn("LLM request failed after retries (took %v): %v", duration.Round(time.Millisecond), err)
		return "", err
	}

	if duration > 5*time.Second {
		c.logger.Debug("LLM request succeeded after %v", duration.Round(time.Millisecond))
	}

	return resp, nil
}

func (c *retryClient) Model() string {
	return c.underlying.Model()
}

// classifyLLMError marks transient upstream failures so the retry loop knows
// what is worth another attempt.
func classifyLLMError(err error) error {
	if err == nil {
		return nil
	}

	lowerErr := strings.ToLower(err.Error())

	if strings.Contains(lowerErr, "429") || strings.Contains(lowerErr, "rate limit") || strings.Contains(lowerErr, "resource_exhausted") {
		return triperrors.NewTransientError(err, "API rate limit reached, retrying with backoff")
	}

	for _, code := range []string{"500", "502", "503", "504"} {
		if strings.Contains(lowerErr, code) {
			return triperrors.NewTransientError(err, fmt.Sprintf("upstream server error (%s), retrying", code))
		}
	}

	if strings.Contains(lowerErr, "timeout") || strings.Contains(lowerErr, "deadline exceeded") ||
		strings.Contains(lowerErr, "connection refused") || strings.Contains(lowerErr, "connection reset") {
		return triperrors.NewTransientError(err, "network failure talking to the model, retrying")
	}

	if strings.Contains(lowerErr, "401") || strings.Contains(lowerErr, "unauthorized") ||
		strings.Contains(lowerErr, "api key") {
		return triperrors.NewPermanentError(err, "authentication failed, check the API key configuration")
	}

	if strings.Contains(lowerErr, "403") || strings.Contains(lowerErr, "forbidden") {
		return triperrors.NewPermanentError(err, "permission denied for this model")
	}

	if strings.Contains(lowerErr, "404") || strings.Contains(lowerErr, "not found") {
		return triperrors.NewPermanentError(err, "model or endpoint not found")
	}

	if strings.Contains(lowerErr, "400") || strings.Contains(lowerErr, "bad request") {
		return triperrors.NewPermanentError(err, "invalid request parameters")
	}

	return err
}
