package graph

import "github.com/paulowiz/genai-fundamentals/internal/types"

// Graph database error codes
const (
	// Connection errors
	ErrCodeGraphConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeGraphAuthFailed       types.ErrorCode = "GRAPH_AUTH_FAILED"
	ErrCodeGraphConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	// Configuration errors
	ErrCodeGraphInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	// Query errors
	ErrCodeGraphQueryFailed  types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeGraphQueryTimeout types.ErrorCode = "GRAPH_QUERY_TIMEOUT"
)

func init() {
	types.RegisterKind(types.KindConnection,
		ErrCodeGraphConnectionFailed, ErrCodeGraphAuthFailed,
		ErrCodeGraphConnectionClosed, ErrCodeGraphQueryFailed)
	types.RegisterKind(types.KindConfiguration, ErrCodeGraphInvalidConfig)
	types.RegisterKind(types.KindTimeout, ErrCodeGraphQueryTimeout)
}
