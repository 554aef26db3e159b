// Package retriever finds movies for a free-text question by combining a
// Neo4j vector index lookup with a Cypher traversal over the movie graph.
package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// Retriever returns the records most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]Record, error)
}

// RetrieveOptions controls a single retrieval. Empty IndexName and
// EnrichmentQuery fall back to the retriever defaults.
type RetrieveOptions struct {
	// TopK is the number of nearest neighbours requested and the maximum
	// number of records returned.
	TopK int

	IndexName string

	// EnrichmentQuery runs after the vector stage and may refer only to the
	// bound variables node and score.
	EnrichmentQuery string
}

// VectorCypherRetriever embeds the query, looks up the nearest nodes in a
// vector index and enriches each one with a Cypher query, in a single
// statement.
type VectorCypherRetriever struct {
	client          graph.GraphClient
	embedder        embedder.Embedder
	indexName       string
	enrichmentQuery string
	logger          *slog.Logger
}

var _ Retriever = (*VectorCypherRetriever)(nil)

// Option configures a VectorCypherRetriever.
type Option func(*VectorCypherRetriever)

// WithIndexName sets the default vector index.
func WithIndexName(name string) Option {
	return func(r *VectorCypherRetriever) {
		if name != "" {
			r.indexName = name
		}
	}
}

// WithEnrichmentQuery sets the default enrichment query.
func WithEnrichmentQuery(query string) Option {
	return func(r *VectorCypherRetriever) {
		if strings.TrimSpace(query) != "" {
			r.enrichmentQuery = query
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *VectorCypherRetriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewVectorCypherRetriever creates a retriever over client and emb.
func NewVectorCypherRetriever(client graph.GraphClient, emb embedder.Embedder, opts ...Option) (*VectorCypherRetriever, error) {
	if client == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "graph client is required")
	}
	if emb == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "embedder is required")
	}

	r := &VectorCypherRetriever{
		client:          client,
		embedder:        emb,
		indexName:       DefaultIndexName,
		enrichmentQuery: MovieEnrichmentQuery,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "retriever", "index", r.indexName)

	return r, nil
}

// Retrieve returns at most opts.TopK records ordered by user rating.
// TopK of zero returns an empty result without contacting any service.
func (r *VectorCypherRetriever) Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]Record, error) {
	if opts.TopK < 0 {
		return nil, types.NewError(ErrCodeInvalidArgument,
			fmt.Sprintf("top_k must be non-negative, got %d", opts.TopK))
	}
	if opts.TopK == 0 {
		return []Record{}, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, types.NewError(ErrCodeInvalidArgument, "query must not be empty")
	}

	indexName := r.indexName
	if opts.IndexName != "" {
		indexName = opts.IndexName
	}
	enrichment := r.enrichmentQuery
	if strings.TrimSpace(opts.EnrichmentQuery) != "" {
		enrichment = opts.EnrichmentQuery
	}

	start := time.Now()

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "embedding failed", "error", err)
		return nil, err
	}

	params := map[string]any{
		"index_name":   indexName,
		"top_k":        opts.TopK,
		"query_vector": vector,
	}

	result, err := r.client.Query(ctx, buildStatement(enrichment), params)
	if err != nil {
		r.logger.ErrorContext(ctx, "vector query failed", "error", err)
		return nil, err
	}

	records := make([]Record, 0, len(result.Records))
	for i, row := range result.Records {
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, types.WrapError(ErrCodeDecodeFailed,
				fmt.Sprintf("row %d of enrichment result", i), err)
		}
		records = append(records, rec)
	}

	sortByRating(records)
	if len(records) > opts.TopK {
		records = records[:opts.TopK]
	}

	r.logger.DebugContext(ctx, "retrieved records",
		"top_k", opts.TopK,
		"index_name", indexName,
		"count", len(records),
		"query_time", result.ExecutionTime,
		"duration", time.Since(start))

	return records, nil
}
