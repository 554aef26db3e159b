package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/paulowiz/genai-fundamentals/cmd/movierag/internal"
	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/llm/providers"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

const healthCheckTimeout = 10 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check Neo4j connectivity and provider configuration",
	Long: `Connect to Neo4j and report the health of the graph connection, the
embedder and the LLM provider. Exits non-zero when Neo4j is unreachable.`,
	RunE: runHealth,
}

// runHealth probes the three dependencies concurrently. Probe failures are
// reported as unhealthy checks; only an unreachable Neo4j fails the command.
func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), healthCheckTimeout)
	defer cancel()

	cfg := appState.cfg
	checks := []internal.HealthCheck{{Name: "neo4j"}, {Name: "embedder"}, {Name: "llm"}}
	var connectErr error

	var g errgroup.Group
	g.Go(func() error {
		client, err := connectGraph(ctx, cfg)
		if err != nil {
			connectErr = err
			checks[0].Status = types.Unhealthy(err.Error())
			return nil
		}
		defer func() { _ = client.Close(context.WithoutCancel(ctx)) }()
		checks[0].Status = client.Health(ctx)
		return nil
	})
	g.Go(func() error {
		emb, err := embedder.CreateEmbedder(cfg.Embedder)
		if err != nil {
			checks[1].Status = types.Unhealthy(err.Error())
			return nil
		}
		checks[1].Status = emb.Health(ctx)
		return nil
	})
	g.Go(func() error {
		provider, err := providers.NewProvider(cfg.LLM)
		if err != nil {
			checks[2].Status = types.Unhealthy(err.Error())
			return nil
		}
		checks[2].Status = provider.Health(ctx)
		return nil
	})
	_ = g.Wait()

	if err := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout()).PrintHealth(checks); err != nil {
		return err
	}

	if connectErr != nil {
		return internal.WrapError(internal.ExitConnectionError, "neo4j is unreachable", connectErr)
	}
	return nil
}
