package retriever

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// SpanRetrieve is the span name for a retrieval.
const SpanRetrieve = "movierag.retrieve"

// TracedRetriever wraps a Retriever with OpenTelemetry tracing.
type TracedRetriever struct {
	inner  Retriever
	tracer trace.Tracer
}

// NewTracedRetriever creates a new traced retriever.
//
// Example:
//
//	traced := NewTracedRetriever(inner, otel.Tracer("movierag.retriever"))
func NewTracedRetriever(inner Retriever, tracer trace.Tracer) *TracedRetriever {
	return &TracedRetriever{inner: inner, tracer: tracer}
}

// Retrieve records top_k, index, result count and duration on a span.
func (t *TracedRetriever) Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]Record, error) {
	ctx, span := t.tracer.Start(ctx, SpanRetrieve)
	defer span.End()

	span.SetAttributes(
		attribute.Int("movierag.retriever.top_k", opts.TopK),
		attribute.String("movierag.retriever.index", opts.IndexName),
	)

	startTime := time.Now()
	records, err := t.inner.Retrieve(ctx, query, opts)
	span.SetAttributes(attribute.Float64("movierag.retriever.duration_ms", float64(time.Since(startTime).Milliseconds())))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.code", string(types.CodeOf(err))))
		return nil, err
	}

	span.SetAttributes(attribute.Int("movierag.retriever.result_count", len(records)))
	span.SetStatus(codes.Ok, "")
	return records, nil
}
