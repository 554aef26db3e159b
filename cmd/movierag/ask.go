package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/paulowiz/genai-fundamentals/cmd/movierag/internal"
	"github.com/paulowiz/genai-fundamentals/internal/config"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag"
)

// DefaultQuestion is asked when no question is given.
const DefaultQuestion = "Find the highest rated action movie about travelling to other planets"

type askOptions struct {
	query          string
	topK           int
	includeContext bool
	indexName      string
}

var askOpts askOptions

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer a question from the movie graph",
	Long: `Embed the question, search the movie plot vector index, enrich every hit
with genres, actors, directors and average user rating, and ask the LLM to
answer from those records. The records are listed after the answer under
CONTEXT: unless --context=false is given.`,
	Example: `  movierag ask "Which space movie has the best ratings?"
  movierag ask -q "a heist in a dream" -k 3 -o json
  movierag ask --context=false`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askOpts.query, "query", "q", "", "Question to ask (alternative to positional arguments)")
	askCmd.Flags().IntVarP(&askOpts.topK, "top-k", "k", config.DefaultTopK, "Number of records to retrieve")
	askCmd.Flags().BoolVar(&askOpts.includeContext, "context", true, "Print the retrieved records after the answer")
	askCmd.Flags().StringVar(&askOpts.indexName, "index", "", "Vector index to search (default from config: moviePlots)")
}

// resolveQuestion picks --query, then positional arguments, then the default.
func resolveQuestion(flagValue string, args []string) string {
	if q := strings.TrimSpace(flagValue); q != "" {
		return q
	}
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q
	}
	return DefaultQuestion
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appState.cfg
	logger := appState.logger

	if askOpts.topK < 0 {
		return internal.NewCLIError(internal.ExitUsage, "--top-k must be non-negative")
	}
	topK := askOpts.topK
	if !cmd.Flags().Changed("top-k") {
		topK = cfg.Retriever.TopK
	}
	if askOpts.indexName != "" {
		cfg.Retriever.IndexName = askOpts.indexName
	}

	p, err := newPipeline(ctx, cfg, logger, appState.tracerProvider)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := p.Close(ctx); closeErr != nil {
			logger.Warn("failed to close graph connection", "error", closeErr)
		}
	}()

	question := resolveQuestion(askOpts.query, args)
	logger.Debug("asking", "top_k", topK, "index", cfg.Retriever.IndexName)

	answer, err := p.searcher.Search(ctx, graphrag.SearchRequest{
		Query:          question,
		TopK:           topK,
		IncludeContext: askOpts.includeContext,
	})
	if err != nil {
		return err
	}

	return internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout()).PrintAnswer(answer)
}
