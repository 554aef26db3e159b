package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// MockEmbedder generates deterministic unit vectors seeded from the SHA-256
// of the input, so the same text always maps to the same vector.
type MockEmbedder struct {
	mu         sync.RWMutex
	dimensions int
	model      string
	inputs     []string
	embedError error
}

// NewMockEmbedder creates a mock embedder with ada-002 sized vectors.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		dimensions: 1536,
		model:      "mock-embedder",
	}
}

// Embed records text and returns its deterministic vector.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inputs = append(m.inputs, text)
	if m.embedError != nil {
		return nil, m.embedError
	}
	if err := ctx.Err(); err != nil {
		return nil, types.WrapError(ErrCodeEmbeddingTimeout, "context done before embedding", err)
	}

	return m.generateEmbedding(text), nil
}

func (m *MockEmbedder) generateEmbedding(text string) []float64 {
	hash := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(hash[:8]))
	rng := rand.New(rand.NewSource(seed))

	embedding := make([]float64, m.dimensions)
	var sum float64
	for i := range embedding {
		embedding[i] = rng.Float64()*2 - 1
		sum += embedding[i] * embedding[i]
	}

	if sum == 0 {
		return embedding
	}
	norm := math.Sqrt(sum)
	for i := range embedding {
		embedding[i] /= norm
	}
	return embedding
}

// Dimensions returns the dimensionality of the embedding vectors.
func (m *MockEmbedder) Dimensions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dimensions
}

// Model returns the name of the mock embedding model.
func (m *MockEmbedder) Model() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.model
}

// Health always reports healthy.
func (m *MockEmbedder) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("mock embedder")
}

// SetDimensions allows changing the embedding dimensions for testing.
func (m *MockEmbedder) SetDimensions(dims int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions = dims
}

// SetModel allows changing the model name for testing.
func (m *MockEmbedder) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.model = model
}

// SetEmbedError configures Embed() to return an error.
func (m *MockEmbedder) SetEmbedError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedError = err
}

// Inputs returns every text passed to Embed, in call order.
func (m *MockEmbedder) Inputs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inputs := make([]string, len(m.inputs))
	copy(inputs, m.inputs)
	return inputs
}
