package main

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/paulowiz/genai-fundamentals/internal/config"
	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/llm/providers"
	"github.com/paulowiz/genai-fundamentals/internal/observability"
)

const tracerName = "github.com/paulowiz/genai-fundamentals/cmd/movierag"

// newGraphClient builds the graph client; tests replace it with a mock.
var newGraphClient = func(cfg graph.GraphClientConfig) (graph.GraphClient, error) {
	return graph.NewNeo4jClient(cfg)
}

// pipeline holds the components of one run. The graph connection is owned
// by the pipeline and released by Close.
type pipeline struct {
	client   graph.GraphClient
	embedder embedder.Embedder
	provider llm.LLMProvider
	searcher graphrag.Searcher
}

// connectGraph creates and connects the graph client.
func connectGraph(ctx context.Context, cfg *config.Config) (graph.GraphClient, error) {
	client, err := newGraphClient(cfg.Neo4j.GraphClientConfig())
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// newPipeline wires the graph client, embedder, retriever, LLM provider and
// orchestrator. On failure anything already opened is closed.
func newPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger, tp trace.TracerProvider) (p *pipeline, err error) {
	tracer := tp.Tracer(tracerName)

	client, err := connectGraph(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, client.Close(context.WithoutCancel(ctx)))
		}
	}()

	emb, err := embedder.CreateEmbedder(cfg.Embedder)
	if err != nil {
		return nil, err
	}
	tracedEmbedder := observability.NewTracedEmbedder(emb, tracer)

	ret, err := retriever.NewVectorCypherRetriever(client, tracedEmbedder,
		retriever.WithIndexName(cfg.Retriever.IndexName),
		retriever.WithEnrichmentQuery(cfg.Retriever.EnrichmentQuery),
		retriever.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	base, err := providers.NewProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}
	provider := observability.NewTracedProvider(
		llm.NewRetryingProvider(base, llm.RetryConfig{
			MaxRetries: cfg.LLM.MaxRetries,
			Logger:     logger,
		}),
		tracer,
	)

	rag, err := graphrag.New(retriever.NewTracedRetriever(ret, tracer), provider, graphrag.Options{
		Model:           cfg.LLM.Model,
		SystemPrompt:    cfg.RAG.SystemPrompt,
		UserTemplate:    cfg.RAG.UserTemplate,
		MaxContextChars: cfg.RAG.MaxContextChars,
		Temperature:     cfg.LLM.Temperature,
		MaxTokens:       cfg.LLM.MaxTokens,
		IndexName:       cfg.Retriever.IndexName,
		EnrichmentQuery: cfg.Retriever.EnrichmentQuery,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return &pipeline{
		client:   client,
		embedder: tracedEmbedder,
		provider: provider,
		searcher: graphrag.NewTracedSearcher(rag, tracer),
	}, nil
}

// Close releases the graph connection. It runs even when ctx is cancelled.
func (p *pipeline) Close(ctx context.Context) error {
	return p.client.Close(context.WithoutCancel(ctx))
}
