package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// RetryConfig controls how RetryingProvider backs off between attempts.
type RetryConfig struct {
	// MaxRetries is the number of extra attempts after the first; 0 disables retry.
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Logger          *slog.Logger
}

// DefaultRetryConfig returns three retries starting at 500ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// RetryingProvider wraps an LLMProvider and retries transient failures
// (rate limits, network errors, 5xx) with exponential backoff.
type RetryingProvider struct {
	inner  LLMProvider
	config RetryConfig
	logger *slog.Logger
}

var _ LLMProvider = (*RetryingProvider)(nil)

// NewRetryingProvider wraps inner with retry behaviour.
func NewRetryingProvider(inner LLMProvider, config RetryConfig) *RetryingProvider {
	if config.InitialInterval <= 0 {
		config.InitialInterval = DefaultRetryConfig().InitialInterval
	}
	if config.MaxInterval <= 0 {
		config.MaxInterval = DefaultRetryConfig().MaxInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RetryingProvider{
		inner:  inner,
		config: config,
		logger: logger.With("component", "llm_retry", "provider", inner.Name()),
	}
}

// Name returns the wrapped provider's name.
func (p *RetryingProvider) Name() string {
	return p.inner.Name()
}

// Complete calls the wrapped provider, retrying errors that IsRetryable
// reports as transient. The last provider error is returned when the
// attempts run out or ctx ends.
func (p *RetryingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if p.config.MaxRetries <= 0 {
		return p.inner.Complete(ctx, req)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.config.InitialInterval
	policy.MaxInterval = p.config.MaxInterval
	policy.MaxElapsedTime = 0

	var (
		resp     *CompletionResponse
		lastErr  error
		attempts int
	)

	operation := func() error {
		attempts++
		var err error
		resp, err = p.inner.Complete(ctx, req)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		p.logger.WarnContext(ctx, "retrying completion",
			"attempt", attempts,
			"wait", wait,
			"code", types.CodeOf(err),
			"error", err)
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(p.config.MaxRetries)), ctx),
		notify)
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, TranslateError(p.inner.Name(), err)
	}

	return resp, nil
}

// Health delegates to the wrapped provider.
func (p *RetryingProvider) Health(ctx context.Context) types.HealthStatus {
	return p.inner.Health(ctx)
}
