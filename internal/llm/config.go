package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// ProviderType represents the type of LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig contains configuration for the answer-generating model.
type ProviderConfig struct {
	Type        ProviderType  `mapstructure:"type" yaml:"type" validate:"required,oneof=openai anthropic ollama mock"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	Model       string        `mapstructure:"model" yaml:"model" validate:"required"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens" validate:"min=0"`
	MaxRetries  int           `mapstructure:"max_retries" yaml:"max_retries" validate:"min=0,max=10"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// DefaultProviderConfig returns the OpenAI gpt-4o configuration.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Type:        ProviderOpenAI,
		Model:       "gpt-4o",
		Temperature: 0,
		MaxRetries:  3,
		Timeout:     60 * time.Second,
	}
}

// Validate performs validation on the ProviderConfig.
func (p *ProviderConfig) Validate() error {
	if p.Type == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "provider type cannot be empty")
	}

	switch p.Type {
	case ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderMock:
	default:
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("invalid provider type '%s', must be one of: openai, anthropic, ollama, mock", p.Type),
		)
	}

	if strings.TrimSpace(p.Model) == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "model cannot be empty")
	}

	if p.Temperature < 0 || p.Temperature > 2 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("temperature must be between 0 and 2, got %f", p.Temperature))
	}

	if p.MaxTokens < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("max_tokens must be non-negative, got %d", p.MaxTokens))
	}

	if p.MaxRetries < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("max_retries must be non-negative, got %d", p.MaxRetries))
	}

	if p.Timeout < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "timeout must be non-negative")
	}

	return nil
}

// GetBaseURL returns the base URL for a provider, with defaults for known providers.
func (p *ProviderConfig) GetBaseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}

	switch p.Type {
	case ProviderAnthropic:
		return "https://api.anthropic.com"
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// NormalizeProviderName normalizes provider names to lowercase for consistent lookup.
func NormalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
