package embedder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

func TestCreateEmbedder(t *testing.T) {
	tests := []struct {
		name     string
		config   EmbedderConfig
		wantErr  bool
		wantCode types.ErrorCode
	}{
		{
			name:   "mock provider",
			config: EmbedderConfig{Provider: "mock", Model: "mock-ada", Dimensions: 8},
		},
		{
			name:     "unknown provider",
			config:   EmbedderConfig{Provider: "cohere", Model: "embed-v3"},
			wantErr:  true,
			wantCode: ErrCodeInvalidConfig,
		},
		{
			name:     "missing model",
			config:   EmbedderConfig{Provider: "mock"},
			wantErr:  true,
			wantCode: ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := CreateEmbedder(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, types.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.config.Model, e.Model())
			assert.Equal(t, tt.config.Dimensions, e.Dimensions())
		})
	}
}

func TestDefaultEmbedderConfig(t *testing.T) {
	cfg := DefaultEmbedderConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "text-embedding-ada-002", cfg.Model)
	assert.Equal(t, 1536, cfg.Dimensions)
}
