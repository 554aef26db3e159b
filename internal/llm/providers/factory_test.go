package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

func TestNewProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	tests := []struct {
		name     string
		cfg      llm.ProviderConfig
		wantName string
		wantCode types.ErrorCode
	}{
		{
			name:     "mock",
			cfg:      llm.ProviderConfig{Type: llm.ProviderMock, Model: "mock"},
			wantName: "mock",
		},
		{
			name:     "openai with key",
			cfg:      llm.ProviderConfig{Type: llm.ProviderOpenAI, Model: "gpt-4o", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "anthropic with key",
			cfg:      llm.ProviderConfig{Type: llm.ProviderAnthropic, Model: "claude-3-5-sonnet-latest", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "ollama needs no key",
			cfg:      llm.ProviderConfig{Type: llm.ProviderOllama, Model: "llama3"},
			wantName: "ollama",
		},
		{
			name:     "openai without key",
			cfg:      llm.ProviderConfig{Type: llm.ProviderOpenAI, Model: "gpt-4o"},
			wantCode: llm.ErrProviderInitFailed,
		},
		{
			name:     "invalid config",
			cfg:      llm.ProviderConfig{Type: "google", Model: "gemini"},
			wantCode: llm.ErrProviderInitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, types.CodeOf(err))
				assert.Equal(t, types.KindConfiguration, types.KindOfError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
