package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// AnthropicProvider implements LLMProvider for Anthropic's Claude models
type AnthropicProvider struct {
	client llms.Model
	config llm.ProviderConfig
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(cfg llm.ProviderConfig) (*AnthropicProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewProviderInitError("anthropic",
			types.NewError(types.CONFIG_VALIDATION_FAILED, "ANTHROPIC_API_KEY is not set"))
	}

	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
	}

	if cfg.Model != "" {
		opts = append(opts, anthropic.WithModel(cfg.Model))
	}

	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("anthropic", err)
	}

	return &AnthropicProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete sends a completion request. Anthropic requires max_tokens, so a
// zero value falls back to 1024.
func (p *AnthropicProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	cfg := p.config
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	return complete(ctx, p.client, p.Name(), cfg, req)
}

// Health checks the provider health
func (p *AnthropicProvider) Health(ctx context.Context) types.HealthStatus {
	if err := healthProbe(ctx, p, p.config.Model); err != nil {
		return types.Unhealthy(err.Error())
	}
	return types.Healthy("")
}
