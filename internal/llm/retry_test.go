package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// scriptedProvider returns errs in order, then a fixed answer.
type scriptedProvider struct {
	errs  []error
	calls int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return nil, err
	}
	return &CompletionResponse{Message: NewAssistantMessage("answer")}, nil
}

func (p *scriptedProvider) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("")
}

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetryingProvider_RetriesTransientErrors(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		TranslateError("scripted", errors.New("429 too many requests")),
		TranslateError("scripted", errors.New("connection reset")),
	}}
	p := NewRetryingProvider(inner, fastRetry(3))

	resp, err := p.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Message.Content)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProvider_DoesNotRetryPermanentErrors(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		TranslateError("scripted", errors.New("401 invalid api key")),
	}}
	p := NewRetryingProvider(inner, fastRetry(3))

	_, err := p.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, ErrProviderUnauthorized, types.CodeOf(err))
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingProvider_GivesUpAfterMaxRetries(t *testing.T) {
	rateLimited := TranslateError("scripted", errors.New("rate limit"))
	inner := &scriptedProvider{errs: []error{rateLimited, rateLimited, rateLimited, rateLimited}}
	p := NewRetryingProvider(inner, fastRetry(2))

	_, err := p.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, ErrProviderRateLimited, types.CodeOf(err))
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProvider_ZeroRetriesCallsOnce(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		TranslateError("scripted", errors.New("503 overloaded")),
	}}
	p := NewRetryingProvider(inner, fastRetry(0))

	_, err := p.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "scripted", p.Name())
}
