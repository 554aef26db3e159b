package embedder

import "github.com/paulowiz/genai-fundamentals/internal/types"

// Embedder error codes
const (
	ErrCodeEmbedderUnavailable types.ErrorCode = "EMBEDDER_UNAVAILABLE"
	ErrCodeEmbeddingFailed     types.ErrorCode = "EMBEDDING_FAILED"
	ErrCodeEmbeddingRateLimit  types.ErrorCode = "EMBEDDING_RATE_LIMITED"
	ErrCodeEmbeddingTimeout    types.ErrorCode = "EMBEDDING_TIMEOUT"
	ErrCodeInvalidConfig       types.ErrorCode = "INVALID_EMBEDDER_CONFIG"
)

func init() {
	types.RegisterKind(types.KindExternalService,
		ErrCodeEmbedderUnavailable, ErrCodeEmbeddingFailed, ErrCodeEmbeddingRateLimit)
	types.RegisterKind(types.KindTimeout, ErrCodeEmbeddingTimeout)
	types.RegisterKind(types.KindConfiguration, ErrCodeInvalidConfig)
}
