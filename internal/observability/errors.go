package observability

import "github.com/paulowiz/genai-fundamentals/internal/types"

// Observability error codes
const (
	// ErrExporterConnection indicates failure to build or reach a span exporter.
	ErrExporterConnection types.ErrorCode = "OBSERVABILITY_EXPORTER_CONNECTION"

	// ErrInvalidConfig indicates malformed logging or tracing settings.
	ErrInvalidConfig types.ErrorCode = "OBSERVABILITY_INVALID_CONFIG"

	// ErrShutdownTimeout indicates pending spans could not be flushed in time.
	ErrShutdownTimeout types.ErrorCode = "OBSERVABILITY_SHUTDOWN_TIMEOUT"
)

func init() {
	types.RegisterKind(types.KindConfiguration, ErrInvalidConfig)
	types.RegisterKind(types.KindExternalService, ErrExporterConnection)
	types.RegisterKind(types.KindTimeout, ErrShutdownTimeout)
}

// NewExporterConnectionError creates an error for an exporter that could not be set up.
func NewExporterConnectionError(endpoint string, cause error) *types.Error {
	return types.WrapError(ErrExporterConnection, "failed to connect to exporter at "+endpoint, cause)
}
