package embedder

import (
	"fmt"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// EmbedderType represents available embedder implementations.
type EmbedderType string

const (
	// EmbedderTypeOpenAI uses the OpenAI embeddings API through langchaingo.
	EmbedderTypeOpenAI EmbedderType = "openai"

	// EmbedderTypeMock produces deterministic hash-seeded vectors, no network.
	EmbedderTypeMock EmbedderType = "mock"
)

// CreateEmbedder creates an embedder based on the provided configuration.
func CreateEmbedder(config EmbedderConfig) (Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch EmbedderType(config.Provider) {
	case EmbedderTypeOpenAI:
		return NewOpenAIEmbedder(config)

	case EmbedderTypeMock:
		mock := NewMockEmbedder()
		mock.SetModel(config.Model)
		if config.Dimensions > 0 {
			mock.SetDimensions(config.Dimensions)
		}
		return mock, nil

	default:
		return nil, types.NewError(ErrCodeInvalidConfig,
			fmt.Sprintf("unknown embedder provider '%s' - must be 'openai' or 'mock'",
				config.Provider))
	}
}
