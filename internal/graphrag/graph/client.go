package graph

import (
	"context"
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// GraphClient is the connection handle to a graph database.
// A client is owned by one process run: Connect once, Close on every exit path.
type GraphClient interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources. Calling it more than once is a no-op;
	// queries issued after Close fail with ErrCodeGraphConnectionClosed.
	Close(ctx context.Context) error

	// Health returns the current health status of the connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a read-only Cypher query with the given parameters.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	Records []map[string]any

	// ExecutionTime is the wall time spent inside Query.
	ExecutionTime time.Duration
}

// GraphClientConfig contains configuration options for graph database clients.
type GraphClientConfig struct {
	// URI is the connection URI, e.g. "neo4j+s://demo.neo4jlabs.com:7687".
	// Encryption is selected by the scheme (bolt, bolt+s, neo4j, neo4j+s).
	URI string

	Username string
	Password string

	// Database name to connect to. Empty string uses the default database.
	Database string

	// MaxConnectionPoolSize limits the number of pooled connections.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout bounds connection acquisition and caps retry backoff.
	ConnectionTimeout time.Duration

	// QueryTimeout bounds a single Query call.
	QueryTimeout time.Duration

	// ConnectAttempts is the number of connectivity checks Connect makes
	// before giving up.
	ConnectAttempts int
}

// DefaultConfig returns a GraphClientConfig with sensible defaults.
// Credentials are left empty and must be supplied.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		MaxConnectionPoolSize: 10,
		ConnectionTimeout:     30 * time.Second,
		QueryTimeout:          30 * time.Second,
		ConnectAttempts:       5,
	}
}

// Validate checks if the configuration is valid.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.QueryTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "QueryTimeout must be positive")
	}
	if c.ConnectAttempts <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectAttempts must be positive")
	}
	return nil
}
