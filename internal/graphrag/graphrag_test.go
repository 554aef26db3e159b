package graphrag

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/llm/providers"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// stubRetriever returns fixed records and remembers its last options.
type stubRetriever struct {
	records  []retriever.Record
	err      error
	calls    int
	lastOpts retriever.RetrieveOptions
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, opts retriever.RetrieveOptions) ([]retriever.Record, error) {
	s.calls++
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	if opts.TopK < len(s.records) {
		return s.records[:opts.TopK], nil
	}
	return s.records, nil
}

func newTestRAG(t *testing.T, ret retriever.Retriever, answers ...string) (*GraphRAG, *providers.MockProvider) {
	t.Helper()
	provider := providers.NewMockProvider(answers)
	rag, err := New(ret, provider, Options{Model: "gpt-4o"})
	require.NoError(t, err)
	return rag, provider
}

func TestSearch_ReturnsAnswerWithContext(t *testing.T) {
	ret := &stubRetriever{records: sampleRecords(5)}
	rag, provider := newTestRAG(t, ret, "Movie 0 is the best.")

	answer, err := rag.Search(context.Background(), SearchRequest{
		Query:          "Find the highest rated action movie about travelling to other planets",
		TopK:           5,
		IncludeContext: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Movie 0 is the best.", answer.Text)
	assert.Len(t, answer.Context, 5)
	assert.Equal(t, ret.records, answer.Context)
	assert.NotEmpty(t, answer.ID)
	assert.Equal(t, "gpt-4o", answer.Model)

	calls := provider.GetCalls()
	require.Len(t, calls, 1)
	msgs := calls[0].Request.Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[1].Content, "Movie 0")
	assert.Contains(t, msgs[1].Content, "travelling to other planets")
}

func TestSearch_ContextOmittedWhenNotRequested(t *testing.T) {
	rag, _ := newTestRAG(t, &stubRetriever{records: sampleRecords(3)}, "ok")

	answer, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 3})
	require.NoError(t, err)
	assert.Nil(t, answer.Context)
}

func TestSearch_EmptyRetrievalStillGenerates(t *testing.T) {
	rag, provider := newTestRAG(t, &stubRetriever{}, "I could not find anything relevant.")

	answer, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 5, IncludeContext: true})
	require.NoError(t, err)

	assert.Empty(t, answer.Context)
	require.Len(t, provider.GetCalls(), 1)
	assert.Contains(t, provider.GetCalls()[0].Request.Messages[1].Content, NoEvidenceContext)
}

func TestSearch_TopKZero(t *testing.T) {
	ret := &stubRetriever{records: sampleRecords(3)}
	rag, provider := newTestRAG(t, ret, "no evidence")

	answer, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 0, IncludeContext: true})
	require.NoError(t, err)

	assert.Empty(t, answer.Context)
	assert.Contains(t, provider.GetCalls()[0].Request.Messages[1].Content, NoEvidenceContext)
}

func TestSearch_InvalidQuery(t *testing.T) {
	ret := &stubRetriever{}
	rag, provider := newTestRAG(t, ret, "unused")

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := rag.Search(context.Background(), SearchRequest{Query: q, TopK: 5})
		assert.Equal(t, ErrCodeInvalidQuery, types.CodeOf(err))
		assert.Equal(t, types.KindInvalidArgument, types.KindOfError(err))
	}
	assert.Zero(t, ret.calls)
	assert.Empty(t, provider.GetCalls())
}

func TestSearch_RetrievalErrorSkipsGeneration(t *testing.T) {
	ret := &stubRetriever{err: types.NewError(graph.ErrCodeGraphConnectionFailed, "unreachable")}
	rag, provider := newTestRAG(t, ret, "unused")

	_, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
	assert.Equal(t, types.KindConnection, types.KindOfError(err))
	assert.Empty(t, provider.GetCalls())
}

func TestSearch_GenerationErrors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		rag, provider := newTestRAG(t, &stubRetriever{records: sampleRecords(1)}, "unused")
		provider.QueueError(errors.New("API returned unexpected status code: 429"))

		_, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 1})
		assert.Equal(t, llm.ErrProviderRateLimited, types.CodeOf(err))
		assert.Equal(t, types.KindExternalService, types.KindOfError(err))
	})

	t.Run("empty answer", func(t *testing.T) {
		rag, _ := newTestRAG(t, &stubRetriever{records: sampleRecords(1)}, "   ")

		_, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 1})
		assert.Equal(t, ErrCodeEmptyAnswer, types.CodeOf(err))
	})
}

// slowProvider blocks each call until its own per-call timeout fires,
// then succeeds once failures reaches zero.
type slowProvider struct {
	timeout  time.Duration
	failures int
	calls    int
}

func (p *slowProvider) Name() string { return "slow" }

func (p *slowProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	if p.failures > 0 {
		p.failures--
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		<-callCtx.Done()
		return nil, llm.TranslateError(p.Name(), callCtx.Err())
	}
	return &llm.CompletionResponse{Message: llm.NewAssistantMessage("recovered")}, nil
}

func (p *slowProvider) Health(ctx context.Context) types.HealthStatus { return types.Healthy("") }

func TestSearch_GenerationTimeout(t *testing.T) {
	provider := &slowProvider{timeout: 10 * time.Millisecond, failures: 1}
	rag, err := New(&stubRetriever{}, provider, Options{})
	require.NoError(t, err)

	_, err = rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 1})
	assert.Equal(t, llm.ErrTimeoutExceeded, types.CodeOf(err))
	assert.Equal(t, types.KindTimeout, types.KindOfError(err))
}

func TestSearch_TimedOutAttemptIsRetried(t *testing.T) {
	provider := &slowProvider{timeout: 10 * time.Millisecond, failures: 2}
	retrying := llm.NewRetryingProvider(provider, llm.RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	})
	rag, err := New(&stubRetriever{}, retrying, Options{})
	require.NoError(t, err)

	answer, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 1})
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer.Text)
	assert.Equal(t, 3, provider.calls)
}

func TestAnswer_JSONDistinguishesEmptyFromOmittedContext(t *testing.T) {
	rag, _ := newTestRAG(t, &stubRetriever{}, "ok", "ok")

	requested, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 5, IncludeContext: true})
	require.NoError(t, err)
	data, err := json.Marshal(requested)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"context":[]`)

	omitted, err := rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
	require.NoError(t, err)
	data, err = json.Marshal(omitted)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"context":null`)
}

func TestSearch_PassesRetrieverOverrides(t *testing.T) {
	ret := &stubRetriever{}
	rag, err := New(ret, providers.NewMockProvider([]string{"ok"}), Options{
		IndexName:       "moviePlotsV2",
		EnrichmentQuery: "RETURN node.title AS title, score AS similarityScore",
	})
	require.NoError(t, err)

	_, err = rag.Search(context.Background(), SearchRequest{Query: "q", TopK: 2})
	require.NoError(t, err)
	assert.Equal(t, "moviePlotsV2", ret.lastOpts.IndexName)
	assert.Equal(t, 2, ret.lastOpts.TopK)
}

func TestNew_Validation(t *testing.T) {
	provider := providers.NewMockProvider([]string{"ok"})

	_, err := New(nil, provider, Options{})
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))

	_, err = New(&stubRetriever{}, nil, Options{})
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))

	_, err = New(&stubRetriever{}, provider, Options{MaxContextChars: -1})
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))

	_, err = New(&stubRetriever{}, provider, Options{UserTemplate: "{{.Context"})
	assert.Equal(t, types.KindConfiguration, types.KindOfError(err))
}

func TestSearch_EndToEndWithMocks(t *testing.T) {
	client := graph.NewMockGraphClient()
	require.NoError(t, client.Connect(context.Background()))
	client.AddQueryResult(graph.QueryResult{Records: []map[string]any{
		{"title": "Solaris", "similarityScore": 0.97, "userRating": nil},
		{"title": "Interstellar", "similarityScore": 0.93, "userRating": 4.4,
			"genres": []any{"Sci-Fi"}, "directors": []any{"Christopher Nolan"}},
		{"title": "Ad Astra", "similarityScore": 0.91, "userRating": 3.2},
	}})

	emb := embedder.NewMockEmbedder()
	emb.SetDimensions(16)

	ret, err := retriever.NewVectorCypherRetriever(client, emb)
	require.NoError(t, err)

	rag, provider := newTestRAG(t, ret, "Interstellar")

	answer, err := rag.Search(context.Background(), SearchRequest{
		Query:          "Find the highest rated action movie about travelling to other planets",
		TopK:           3,
		IncludeContext: true,
	})
	require.NoError(t, err)

	require.Len(t, answer.Context, 3)
	assert.Equal(t, "Interstellar", answer.Context[0].Title)
	assert.Equal(t, "Solaris", answer.Context[2].Title)

	prompt := provider.GetCalls()[0].Request.Messages[1].Content
	assert.Less(t, strings.Index(prompt, "Interstellar"), strings.Index(prompt, "Ad Astra"))
	assert.Contains(t, prompt, "Christopher Nolan")
}
