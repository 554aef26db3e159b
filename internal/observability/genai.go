package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// GenAI attribute keys following OpenTelemetry GenAI semantic conventions
// https://opentelemetry.io/docs/specs/semconv/gen-ai/
const (
	// GenAISystem identifies the Generative AI product or service being used
	GenAISystem = "gen_ai.system"

	// GenAIRequestModel is the name of the LLM model requested
	GenAIRequestModel = "gen_ai.request.model"

	// GenAIRequestTemperature is the temperature setting for the LLM request
	GenAIRequestTemperature = "gen_ai.request.temperature"

	// GenAIRequestMaxTokens is the maximum number of tokens requested
	GenAIRequestMaxTokens = "gen_ai.request.max_tokens"

	GenAIRequestTopP = "gen_ai.request.top_p"

	// GenAIResponseModel is the name of the model that generated the response
	GenAIResponseModel = "gen_ai.response.model"

	GenAIResponseFinishReason = "gen_ai.response.finish_reason"

	GenAIUsageInputTokens  = "gen_ai.usage.input_tokens"
	GenAIUsageOutputTokens = "gen_ai.usage.output_tokens"

	// EmbedModel and EmbedDimensions describe a query embedding call.
	EmbedModel      = "movierag.embed.model"
	EmbedDimensions = "movierag.embed.dimensions"
	EmbedInputChars = "movierag.embed.input_chars"
)

// Span names.
const (
	// SpanGenAIChat represents a chat completion operation
	SpanGenAIChat = "gen_ai.chat"

	// SpanEmbed represents embedding one query string
	SpanEmbed = "movierag.embed"
)

// RequestAttributes creates span attributes from a completion request.
// Prompt text is never recorded.
func RequestAttributes(req *llm.CompletionRequest, provider string) []attribute.KeyValue {
	if req == nil {
		return []attribute.KeyValue{}
	}

	attrs := []attribute.KeyValue{
		attribute.String(GenAISystem, provider),
		attribute.String(GenAIRequestModel, req.Model),
	}

	if req.Temperature > 0 {
		attrs = append(attrs, attribute.Float64(GenAIRequestTemperature, req.Temperature))
	}
	if req.MaxTokens > 0 {
		attrs = append(attrs, attribute.Int(GenAIRequestMaxTokens, req.MaxTokens))
	}
	if req.TopP > 0 {
		attrs = append(attrs, attribute.Float64(GenAIRequestTopP, req.TopP))
	}

	return attrs
}

// ResponseAttributes creates span attributes from a completion response.
func ResponseAttributes(resp *llm.CompletionResponse) []attribute.KeyValue {
	if resp == nil {
		return []attribute.KeyValue{}
	}

	return []attribute.KeyValue{
		attribute.String(GenAIResponseModel, resp.Model),
		attribute.String(GenAIResponseFinishReason, string(resp.FinishReason)),
	}
}

// UsageAttributes creates span attributes from token usage statistics.
func UsageAttributes(usage llm.CompletionTokenUsage) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(GenAIUsageInputTokens, usage.PromptTokens),
		attribute.Int(GenAIUsageOutputTokens, usage.CompletionTokens),
	}
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(
		attribute.String("error.code", string(types.CodeOf(err))),
		attribute.String("error.kind", string(types.KindOfError(err))),
	)
}

// TracedProvider wraps an LLMProvider so every Complete call produces a
// gen_ai.chat span.
type TracedProvider struct {
	inner  llm.LLMProvider
	tracer trace.Tracer
}

// NewTracedProvider creates a new traced provider.
func NewTracedProvider(inner llm.LLMProvider, tracer trace.Tracer) *TracedProvider {
	return &TracedProvider{inner: inner, tracer: tracer}
}

// Name returns the wrapped provider's name.
func (p *TracedProvider) Name() string {
	return p.inner.Name()
}

// Complete delegates to the wrapped provider inside a gen_ai.chat span.
func (p *TracedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	ctx, span := p.tracer.Start(ctx, SpanGenAIChat,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(RequestAttributes(&req, strings.ToLower(p.inner.Name()))...),
	)
	defer span.End()

	resp, err := p.inner.Complete(ctx, req)
	if err != nil {
		recordFailure(span, err)
		return nil, err
	}

	span.SetAttributes(ResponseAttributes(resp)...)
	span.SetAttributes(UsageAttributes(resp.Usage)...)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Health delegates to the wrapped provider.
func (p *TracedProvider) Health(ctx context.Context) types.HealthStatus {
	return p.inner.Health(ctx)
}

// TracedEmbedder wraps an Embedder so every Embed call produces a
// movierag.embed span.
type TracedEmbedder struct {
	inner  embedder.Embedder
	tracer trace.Tracer
}

// NewTracedEmbedder creates a new traced embedder.
func NewTracedEmbedder(inner embedder.Embedder, tracer trace.Tracer) *TracedEmbedder {
	return &TracedEmbedder{inner: inner, tracer: tracer}
}

// Embed delegates to the wrapped embedder inside a movierag.embed span.
func (e *TracedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, span := e.tracer.Start(ctx, SpanEmbed,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(EmbedModel, e.inner.Model()),
			attribute.Int(EmbedInputChars, len(text)),
		),
	)
	defer span.End()

	vector, err := e.inner.Embed(ctx, text)
	if err != nil {
		recordFailure(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int(EmbedDimensions, len(vector)))
	span.SetStatus(codes.Ok, "")
	return vector, nil
}

// Dimensions returns the wrapped embedder's dimensions.
func (e *TracedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Model returns the wrapped embedder's model.
func (e *TracedEmbedder) Model() string {
	return e.inner.Model()
}

// Health delegates to the wrapped embedder.
func (e *TracedEmbedder) Health(ctx context.Context) types.HealthStatus {
	return e.inner.Health(ctx)
}
