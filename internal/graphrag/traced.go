package graphrag

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// SpanSearch is the span name for a full question-answer round trip.
const SpanSearch = "movierag.search"

// TracedSearcher wraps a Searcher with OpenTelemetry tracing.
type TracedSearcher struct {
	inner  Searcher
	tracer trace.Tracer
}

// NewTracedSearcher creates a new traced searcher.
func NewTracedSearcher(inner Searcher, tracer trace.Tracer) *TracedSearcher {
	return &TracedSearcher{inner: inner, tracer: tracer}
}

// Search wraps the inner search in a movierag.search span.
func (t *TracedSearcher) Search(ctx context.Context, req SearchRequest) (*Answer, error) {
	ctx, span := t.tracer.Start(ctx, SpanSearch)
	defer span.End()

	span.SetAttributes(
		attribute.Int("movierag.search.top_k", req.TopK),
		attribute.Bool("movierag.search.include_context", req.IncludeContext),
	)

	answer, err := t.inner.Search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String("error.code", string(types.CodeOf(err))),
			attribute.String("error.kind", string(types.KindOfError(err))),
		)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("movierag.answer.id", answer.ID),
		attribute.String("movierag.answer.model", answer.Model),
		attribute.Int("movierag.answer.context_records", len(answer.Context)),
	)
	span.SetStatus(codes.Ok, "")
	return answer, nil
}
