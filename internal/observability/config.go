package observability

import (
	"fmt"
	"strings"
)

// LoggingConfig selects the slog handler and minimum level.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}

// TracingConfig contains distributed tracing configuration for observability.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider     string  `yaml:"provider" mapstructure:"provider"`
	Endpoint     string  `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate   float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"min=0,max=1"`
	TLSCertFile  string  `yaml:"tls_cert_file" mapstructure:"tls_cert_file"` // CA bundle for the collector
	InsecureMode bool    `yaml:"insecure_mode" mapstructure:"insecure_mode"` // Plaintext gRPC (local collectors only)
}

// Validate validates the TracingConfig fields.
// Returns an error if Provider is not otlp or noop, or if SampleRate is
// out of range.
func (c *TracingConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	provider := strings.ToLower(c.Provider)
	if provider != "otlp" && provider != "noop" {
		return fmt.Errorf("invalid tracing provider: %s (must be one of: otlp, noop)", c.Provider)
	}

	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("invalid sample rate: %f (must be between 0.0 and 1.0)", c.SampleRate)
	}

	if provider == "otlp" && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when tracing is enabled")
	}

	return nil
}
