package llm

import (
	"context"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// LLMProvider defines the interface that all LLM providers must implement.
// It abstracts over hosted chat models (OpenAI, Anthropic) and local ones
// (Ollama) so the answer generator never depends on a specific vendor.
type LLMProvider interface {
	// Name returns the provider name (e.g., "openai", "anthropic", "ollama")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}
