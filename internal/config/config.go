package config

import (
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/observability"
)

// Config is the root configuration for movierag.
type Config struct {
	Neo4j     Neo4jConfig                 `mapstructure:"neo4j" yaml:"neo4j" validate:"required"`
	Embedder  embedder.EmbedderConfig     `mapstructure:"embedder" yaml:"embedder"`
	LLM       llm.ProviderConfig          `mapstructure:"llm" yaml:"llm"`
	Retriever RetrieverConfig             `mapstructure:"retriever" yaml:"retriever"`
	RAG       RAGConfig                   `mapstructure:"rag" yaml:"rag"`
	Logging   observability.LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing   observability.TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// Neo4jConfig contains the graph database connection settings. URI,
// username and password usually come from NEO4J_URI, NEO4J_USERNAME and
// NEO4J_PASSWORD.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username              string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password              string        `mapstructure:"password" yaml:"password" validate:"required"`
	Database              string        `mapstructure:"database" yaml:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size" validate:"min=1,max=500"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	QueryTimeout          time.Duration `mapstructure:"query_timeout" yaml:"query_timeout" validate:"min=1s"`
	ConnectAttempts       int           `mapstructure:"connect_attempts" yaml:"connect_attempts" validate:"min=1,max=20"`
}

// GraphClientConfig converts the settings into a graph client configuration.
func (c Neo4jConfig) GraphClientConfig() graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                   c.URI,
		Username:              c.Username,
		Password:              c.Password,
		Database:              c.Database,
		MaxConnectionPoolSize: c.MaxConnectionPoolSize,
		ConnectionTimeout:     c.ConnectionTimeout,
		QueryTimeout:          c.QueryTimeout,
		ConnectAttempts:       c.ConnectAttempts,
	}
}

// RetrieverConfig controls the vector search and the enrichment traversal.
type RetrieverConfig struct {
	IndexName string `mapstructure:"index_name" yaml:"index_name" validate:"required"`
	TopK      int    `mapstructure:"top_k" yaml:"top_k" validate:"min=0,max=100"`

	// EnrichmentQuery replaces the built-in movie traversal. It may only
	// reference the node and score variables.
	EnrichmentQuery string `mapstructure:"enrichment_query" yaml:"enrichment_query"`
}

// RAGConfig controls prompt construction.
type RAGConfig struct {
	MaxContextChars int    `mapstructure:"max_context_chars" yaml:"max_context_chars" validate:"min=0"`
	SystemPrompt    string `mapstructure:"system_prompt" yaml:"system_prompt"`
	UserTemplate    string `mapstructure:"user_template" yaml:"user_template"`
}

const redactedValue = "********"

// Redacted returns a copy of c with credentials masked, for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redactedValue
	}
	c.Neo4j.Password = mask(c.Neo4j.Password)
	c.LLM.APIKey = mask(c.LLM.APIKey)
	c.Embedder.APIKey = mask(c.Embedder.APIKey)
	return c
}
