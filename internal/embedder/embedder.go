package embedder

import (
	"context"
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// Embedder turns text into a fixed-length vector.
// Implementations must be thread-safe for concurrent access.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the dimensionality of embedding vectors.
	Dimensions() int

	// Model returns the name of the embedding model being used.
	Model() string

	// Health returns the health status of the embedder.
	Health(ctx context.Context) types.HealthStatus
}

// EmbedderConfig holds configuration for embedding providers.
type EmbedderConfig struct {
	// Provider specifies which embedder implementation to use: "openai" or "mock".
	Provider string `mapstructure:"provider" yaml:"provider" validate:"required,oneof=openai mock"`

	// Model is the embedding model. It must match the model that populated
	// the vector index, otherwise similarity scores are meaningless.
	Model string `mapstructure:"model" yaml:"model" validate:"required"`

	// Dimensions is the expected vector length; 0 skips the check.
	Dimensions int `mapstructure:"dimensions" yaml:"dimensions" validate:"min=0"`

	// APIKey for the embedding provider. Falls back to OPENAI_API_KEY.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds a single Embed call.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// Validate checks if the EmbedderConfig is valid.
func (c *EmbedderConfig) Validate() error {
	if c.Provider == "" {
		return types.NewError(ErrCodeInvalidConfig, "embedder provider cannot be empty")
	}

	if c.Model == "" {
		return types.NewError(ErrCodeInvalidConfig, "embedder model cannot be empty")
	}

	if c.Dimensions < 0 {
		return types.NewError(ErrCodeInvalidConfig, "dimensions must be non-negative")
	}

	if c.Timeout < 0 {
		return types.NewError(ErrCodeInvalidConfig, "timeout must be non-negative")
	}

	return nil
}

// DefaultEmbedderConfig returns the configuration matching the moviePlots
// index, which was built with text-embedding-ada-002.
func DefaultEmbedderConfig() EmbedderConfig {
	return EmbedderConfig{
		Provider:   string(EmbedderTypeOpenAI),
		Model:      "text-embedding-ada-002",
		Dimensions: 1536,
		BaseURL:    "",
		Timeout:    30 * time.Second,
	}
}
