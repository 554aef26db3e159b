package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracedRetriever(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	inner, _, _ := newTestRetriever(t,
		movieRow("Interstellar", 0.9, 4.1),
		movieRow("Solaris", 0.8, nil),
	)
	traced := NewTracedRetriever(inner, tp.Tracer("test"))

	records, err := traced.Retrieve(context.Background(), "space", RetrieveOptions{TopK: 5})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = traced.Retrieve(context.Background(), "space", RetrieveOptions{TopK: -1})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, SpanRetrieve, ok.Name())
	assert.Equal(t, codes.Ok, ok.Status().Code)
	assert.Contains(t, ok.Attributes(), attribute.Int("movierag.retriever.result_count", 2))

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Contains(t, failed.Attributes(), attribute.String("error.code", string(ErrCodeInvalidArgument)))
}
