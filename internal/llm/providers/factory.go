package providers

import (
	"fmt"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// NewProvider creates a new LLM provider based on the configuration
func NewProvider(cfg llm.ProviderConfig) (llm.LLMProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, llm.NewProviderInitError(string(cfg.Type), err)
	}

	switch cfg.Type {
	case llm.ProviderOpenAI:
		return NewOpenAIProvider(cfg)

	case llm.ProviderAnthropic:
		return NewAnthropicProvider(cfg)

	case llm.ProviderOllama:
		return NewOllamaProvider(cfg)

	case llm.ProviderMock:
		return NewMockProvider([]string{"Mock response"}), nil

	default:
		return nil, llm.NewProviderInitError(string(cfg.Type),
			types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("unknown provider type: %s", cfg.Type)))
	}
}
