package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// sensitiveFields are attribute keys whose values never reach the log
// output. Keys are compared lowercased with underscores removed.
var sensitiveFields = map[string]bool{
	"prompt":     true,
	"prompts":    true,
	"apikey":     true,
	"secret":     true,
	"password":   true,
	"token":      true,
	"credential": true,
	"secretkey":  true,
}

const redacted = "[REDACTED]"

// NewLogger builds a slog.Logger from cfg that writes to w. Every record
// logged with a context carrying a span gets trace_id and span_id.
func NewLogger(cfg LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = NewJSONHandler(w, level)
	case "text":
		handler = NewTextHandler(w, level)
	default:
		return nil, types.NewError(ErrInvalidConfig,
			fmt.Sprintf("unknown log format %q (must be json or text)", cfg.Format))
	}

	return slog.New(NewCorrelatingHandler(handler)), nil
}

// ParseLevel converts a level name to slog.Level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, types.NewError(ErrInvalidConfig,
			fmt.Sprintf("unknown log level %q (must be debug, info, warn or error)", level))
	}
}

// NewJSONHandler creates a new JSON log handler with the specified output and level.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
}

// NewTextHandler creates a new text log handler with the specified output and level.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
}

// redactAttr replaces the value of sensitive attributes.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if isSensitive(a.Key) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func isSensitive(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(key, "_", ""))
	return sensitiveFields[normalized]
}

// CorrelatingHandler adds OpenTelemetry trace and span IDs from the record
// context to every record.
type CorrelatingHandler struct {
	inner slog.Handler
}

// NewCorrelatingHandler wraps inner.
func NewCorrelatingHandler(inner slog.Handler) *CorrelatingHandler {
	return &CorrelatingHandler{inner: inner}
}

// Enabled reports whether the inner handler handles level.
func (h *CorrelatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds trace_id and span_id when ctx carries a valid span.
func (h *CorrelatingHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			r.AddAttrs(
				slog.String("trace_id", spanCtx.TraceID().String()),
				slog.String("span_id", spanCtx.SpanID().String()),
			)
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a correlating handler over inner.WithAttrs.
func (h *CorrelatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CorrelatingHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a correlating handler over inner.WithGroup.
func (h *CorrelatingHandler) WithGroup(name string) slog.Handler {
	return &CorrelatingHandler{inner: h.inner.WithGroup(name)}
}
