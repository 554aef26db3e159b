package graphrag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// DefaultMaxContextChars bounds the serialized context block.
const DefaultMaxContextChars = 8000

// Searcher answers a question from the knowledge graph.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*Answer, error)
}

// SearchRequest is one question.
type SearchRequest struct {
	Query string
	// TopK is the number of records to retrieve; zero skips retrieval.
	TopK           int
	IncludeContext bool
}

// Answer is the generated response with optional supporting records.
type Answer struct {
	ID    string `json:"id"`
	Query string `json:"query"`
	Text  string `json:"answer"`
	Model string `json:"model"`
	// Context holds every retrieved record when requested, nil otherwise.
	// An empty retrieval encodes as [] and an unrequested one as null.
	Context  []retriever.Record       `json:"context"`
	Usage    llm.CompletionTokenUsage `json:"usage"`
	Duration time.Duration            `json:"duration"`
}

// Options configures a GraphRAG.
type Options struct {
	// Model is passed to the provider on every request.
	Model string

	SystemPrompt string

	// UserTemplate is a text/template with .Context and .Question fields.
	UserTemplate string

	// MaxContextChars bounds the context block; 0 uses DefaultMaxContextChars.
	MaxContextChars int

	Temperature float64
	MaxTokens   int

	// IndexName and EnrichmentQuery override the retriever defaults.
	IndexName       string
	EnrichmentQuery string

	Logger *slog.Logger
}

// GraphRAG wires a retriever to an LLM.
type GraphRAG struct {
	retriever retriever.Retriever
	provider  llm.LLMProvider
	opts      Options
	template  *template.Template
	logger    *slog.Logger
}

var _ Searcher = (*GraphRAG)(nil)

// New creates a GraphRAG. Retriever and provider are required.
func New(ret retriever.Retriever, provider llm.LLMProvider, opts Options) (*GraphRAG, error) {
	if ret == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "retriever is required")
	}
	if provider == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "llm provider is required")
	}
	if opts.MaxContextChars < 0 {
		return nil, types.NewError(ErrCodeInvalidConfig,
			fmt.Sprintf("max_context_chars must be non-negative, got %d", opts.MaxContextChars))
	}
	if opts.MaxContextChars == 0 {
		opts.MaxContextChars = DefaultMaxContextChars
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}

	tmpl := userPrompt
	if opts.UserTemplate != "" {
		parsed, err := template.New("user").Option("missingkey=error").Parse(opts.UserTemplate)
		if err != nil {
			return nil, types.WrapError(ErrCodeInvalidConfig, "invalid user prompt template", err)
		}
		tmpl = parsed
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GraphRAG{
		retriever: ret,
		provider:  provider,
		opts:      opts,
		template:  tmpl,
		logger:    logger.With("component", "graphrag"),
	}, nil
}

// Search retrieves supporting records for req.Query and asks the LLM once
// to answer from them. An empty retrieval is not an error: the model is
// told no evidence was found.
func (g *GraphRAG) Search(ctx context.Context, req SearchRequest) (*Answer, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, types.NewError(ErrCodeInvalidQuery, "query must not be empty")
	}

	start := time.Now()

	records, err := g.retriever.Retrieve(ctx, query, retriever.RetrieveOptions{
		TopK:            req.TopK,
		IndexName:       g.opts.IndexName,
		EnrichmentQuery: g.opts.EnrichmentQuery,
	})
	if err != nil {
		return nil, err
	}

	contextBlock, included := buildContext(records, g.opts.MaxContextChars)
	if included < len(records) {
		g.logger.WarnContext(ctx, "context budget exceeded, dropping records",
			"retrieved", len(records),
			"included", included,
			"max_context_chars", g.opts.MaxContextChars)
	}

	userText, err := renderUserPrompt(g.template, contextBlock, query)
	if err != nil {
		return nil, types.WrapError(ErrCodePromptFailed, "failed to render prompt", err)
	}

	completion := llm.NewCompletionRequest(g.opts.Model,
		[]llm.Message{
			llm.NewSystemMessage(g.opts.SystemPrompt),
			llm.NewUserMessage(userText),
		},
		llm.WithTemperature(g.opts.Temperature),
		llm.WithMaxTokens(g.opts.MaxTokens),
	)

	// Providers apply llm.timeout per attempt; no outer deadline here.
	resp, err := g.provider.Complete(ctx, completion)
	if err != nil {
		return nil, llm.TranslateError(g.provider.Name(), err)
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return nil, types.NewError(ErrCodeEmptyAnswer,
			fmt.Sprintf("provider %s returned an empty answer", g.provider.Name()))
	}

	model := resp.Model
	if model == "" {
		model = g.opts.Model
	}

	answer := &Answer{
		ID:       uuid.New().String(),
		Query:    query,
		Text:     text,
		Model:    model,
		Usage:    resp.Usage,
		Duration: time.Since(start),
	}
	if req.IncludeContext {
		answer.Context = records
		if answer.Context == nil {
			answer.Context = []retriever.Record{}
		}
	}

	g.logger.InfoContext(ctx, "answered query",
		"answer_id", answer.ID,
		"records", len(records),
		"model", model,
		"total_tokens", resp.Usage.TotalTokens,
		"duration", answer.Duration)

	return answer, nil
}
