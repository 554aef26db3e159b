package embedder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// queryEmbedder is the slice of langchaingo's embeddings.Embedder we use.
type queryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder embeds text with an OpenAI embedding model via langchaingo.
type OpenAIEmbedder struct {
	client     queryEmbedder
	model      string
	dimensions int
	timeout    time.Duration
}

// NewOpenAIEmbedder builds an embedder from config. The API key falls back
// to OPENAI_API_KEY.
func NewOpenAIEmbedder(cfg EmbedderConfig) (*OpenAIEmbedder, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(ErrCodeInvalidConfig,
			"OpenAI embedder requires api_key (or OPENAI_API_KEY environment variable)")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(ErrCodeEmbedderUnavailable, "failed to create OpenAI client", err)
	}

	client, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, types.WrapError(ErrCodeEmbedderUnavailable, "failed to create embedder", err)
	}

	return newOpenAIEmbedder(client, cfg), nil
}

func newOpenAIEmbedder(client queryEmbedder, cfg EmbedderConfig) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		timeout:    cfg.Timeout,
	}
}

// Embed returns the embedding of text as float64 values, which is what the
// Neo4j driver sends for a LIST<FLOAT> parameter.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	vector, err := e.client.EmbedQuery(ctx, text)
	if err != nil {
		return nil, translateError(err, e.timeout)
	}

	if len(vector) == 0 {
		return nil, types.NewError(ErrCodeEmbeddingFailed, "embedding API returned an empty vector")
	}
	if e.dimensions > 0 && len(vector) != e.dimensions {
		return nil, types.NewError(ErrCodeEmbeddingFailed,
			fmt.Sprintf("embedding has %d dimensions, expected %d for model %s",
				len(vector), e.dimensions, e.model))
	}

	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = float64(v)
	}
	return out, nil
}

// Dimensions returns the configured vector length (0 when unchecked).
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// Model returns the embedding model name.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// Health embeds a short probe string.
func (e *OpenAIEmbedder) Health(ctx context.Context) types.HealthStatus {
	if _, err := e.Embed(ctx, "health check"); err != nil {
		return types.Unhealthy(err.Error())
	}
	return types.Healthy("embedding model " + e.model + " reachable")
}

// translateError maps provider failures onto embedder error codes.
func translateError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(ErrCodeEmbeddingTimeout,
			fmt.Sprintf("embedding request exceeded %s", timeout), err)
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "too many requests") || strings.Contains(lower, "429"):
		return types.WrapRetryableError(ErrCodeEmbeddingRateLimit, "embedding API rate limit exceeded", err)
	case strings.Contains(lower, "connection") || strings.Contains(lower, "network") || strings.Contains(lower, "eof"):
		return types.WrapRetryableError(ErrCodeEmbedderUnavailable, "embedding API unreachable", err)
	default:
		return types.WrapError(ErrCodeEmbeddingFailed, "embedding request failed", err)
	}
}
