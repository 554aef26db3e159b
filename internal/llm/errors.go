package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// LLM error codes
const (
	// Provider errors
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"

	// Model errors
	ErrModelNotFound        types.ErrorCode = "LLM_MODEL_NOT_FOUND"
	ErrModelContextExceeded types.ErrorCode = "LLM_MODEL_CONTEXT_EXCEEDED"

	// Request errors
	ErrInvalidRequest types.ErrorCode = "LLM_INVALID_REQUEST"

	// Completion errors
	ErrCompletionFailed types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrContentFiltered  types.ErrorCode = "LLM_CONTENT_FILTERED"
	ErrInvalidResponse  types.ErrorCode = "LLM_INVALID_RESPONSE"
	ErrTimeoutExceeded  types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"
	ErrContextCanceled  types.ErrorCode = "LLM_CONTEXT_CANCELED"

	// Network errors
	ErrNetworkFailed types.ErrorCode = "LLM_NETWORK_FAILED"
)

func init() {
	types.RegisterKind(types.KindConfiguration, ErrProviderInitFailed)
	types.RegisterKind(types.KindExternalService,
		ErrProviderUnavailable, ErrProviderUnauthorized, ErrProviderRateLimited,
		ErrModelNotFound, ErrModelContextExceeded, ErrCompletionFailed,
		ErrContentFiltered, ErrInvalidResponse, ErrContextCanceled, ErrNetworkFailed)
	types.RegisterKind(types.KindTimeout, ErrTimeoutExceeded)
	types.RegisterKind(types.KindInvalidArgument, ErrInvalidRequest)
}

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var typed *types.Error
	if !errors.As(err, &typed) {
		return false
	}

	if typed.Retryable {
		return true
	}

	switch typed.Code {
	case ErrNetworkFailed, ErrProviderRateLimited, ErrProviderUnavailable, ErrTimeoutExceeded:
		return true
	default:
		return false
	}
}

// NewProviderInitError creates an error for a provider that could not be constructed.
func NewProviderInitError(provider string, cause error) *types.Error {
	return types.WrapError(ErrProviderInitFailed,
		fmt.Sprintf("failed to initialize provider '%s'", provider), cause)
}

// NewProviderUnauthorizedError creates an error for rejected or missing credentials.
func NewProviderUnauthorizedError(provider string, cause error) *types.Error {
	return types.WrapError(ErrProviderUnauthorized,
		fmt.Sprintf("provider '%s' authentication failed", provider), cause)
}

// NewInvalidRequestError creates an error for invalid requests
func NewInvalidRequestError(message string) *types.Error {
	return types.NewError(ErrInvalidRequest, message)
}

// NewInvalidResponseError creates an error for a response with no usable content.
func NewInvalidResponseError(provider, message string) *types.Error {
	return types.NewError(ErrInvalidResponse, provider+": "+message)
}

// TranslateError maps a raw provider error onto an LLM error code based on
// the context state and the message content. Typed errors pass through.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.WrapRetryableError(ErrTimeoutExceeded,
			fmt.Sprintf("request to provider '%s' timed out", provider), err)
	case errors.Is(err, context.Canceled):
		return types.WrapError(ErrContextCanceled,
			fmt.Sprintf("request to provider '%s' cancelled", provider), err)
	}

	lowerMsg := strings.ToLower(err.Error())

	switch {
	case containsAny(lowerMsg, "unauthorized", "authentication", "api key", "401", "403"):
		return NewProviderUnauthorizedError(provider, err)
	case containsAny(lowerMsg, "rate limit", "too many requests", "429"):
		return types.WrapRetryableError(ErrProviderRateLimited,
			fmt.Sprintf("rate limit exceeded for provider '%s'", provider), err)
	case containsAny(lowerMsg, "context length", "maximum context", "context_length_exceeded"):
		return types.WrapError(ErrModelContextExceeded, "prompt exceeds the model context window", err)
	case containsAny(lowerMsg, "model not found", "does not exist", "model_not_found"):
		return types.WrapError(ErrModelNotFound,
			fmt.Sprintf("model not available on provider '%s'", provider), err)
	case containsAny(lowerMsg, "content filter", "content_filter", "content management policy"):
		return types.WrapError(ErrContentFiltered, "response blocked by content filter", err)
	case containsAny(lowerMsg, "timeout", "deadline"):
		return types.WrapRetryableError(ErrTimeoutExceeded,
			fmt.Sprintf("request to provider '%s' timed out", provider), err)
	case containsAny(lowerMsg, "network", "connection", "eof", "no such host"):
		return types.WrapRetryableError(ErrNetworkFailed,
			fmt.Sprintf("network failure talking to provider '%s'", provider), err)
	case containsAny(lowerMsg, "500", "502", "503", "overloaded", "server error", "unavailable"):
		return types.WrapRetryableError(ErrProviderUnavailable,
			fmt.Sprintf("provider '%s' temporarily unavailable", provider), err)
	default:
		return types.WrapError(ErrCompletionFailed,
			fmt.Sprintf("completion failed on provider '%s'", provider), err)
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
