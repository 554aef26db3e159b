package config

import (
	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/observability"
)

// DefaultTopK is the number of records retrieved when neither the config
// nor the command line sets one.
const DefaultTopK = 5

// DefaultConfig returns a Config with sensible default values. Neo4j
// credentials are left empty and must be supplied.
func DefaultConfig() *Config {
	graphDefaults := graph.DefaultConfig()

	return &Config{
		Neo4j: Neo4jConfig{
			MaxConnectionPoolSize: graphDefaults.MaxConnectionPoolSize,
			ConnectionTimeout:     graphDefaults.ConnectionTimeout,
			QueryTimeout:          graphDefaults.QueryTimeout,
			ConnectAttempts:       graphDefaults.ConnectAttempts,
		},
		Embedder: embedder.DefaultEmbedderConfig(),
		LLM:      llm.DefaultProviderConfig(),
		Retriever: RetrieverConfig{
			IndexName: retriever.DefaultIndexName,
			TopK:      DefaultTopK,
		},
		RAG: RAGConfig{
			MaxContextChars: graphrag.DefaultMaxContextChars,
		},
		Logging: observability.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: observability.TracingConfig{
			Enabled:     false,
			Provider:    "otlp",
			ServiceName: "movierag",
			SampleRate:  1.0,
		},
	}
}
