package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/paulowiz/genai-fundamentals/internal/config"
	"github.com/paulowiz/genai-fundamentals/internal/observability"
)

const tracingShutdownTimeout = 5 * time.Second

// appState is populated by loadConfig before a command that needs it runs.
var appState struct {
	cfg            *config.Config
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
}

var rootCmd = &cobra.Command{
	Use:   "movierag",
	Short: "movierag - question answering over a Neo4j movie graph",
	Long: `movierag answers questions about movies by combining a vector search
over movie plots with a Cypher traversal of the surrounding graph
(genres, actors, directors, user ratings), then asking an LLM to
answer from the retrieved records.

Connection settings are read from NEO4J_URI, NEO4J_USERNAME,
NEO4J_PASSWORD and OPENAI_API_KEY, optionally via a .env file.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Spans are flushed on error paths too, where PersistentPostRun is skipped.
	defer shutdownTelemetry()

	return rootCmd.ExecuteContext(ctx)
}

// skipConfig reports commands that run without configuration.
func skipConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// loadConfig is called before any command runs to load configuration and
// set up logging and tracing.
func loadConfig(cmd *cobra.Command, args []string) error {
	flags, err := ParseGlobalFlags(cmd)
	if err != nil {
		return err
	}

	if skipConfig(cmd) {
		return nil
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: flags.ConfigFile,
		EnvFile:    flags.EnvFile,
	})
	if err != nil {
		return err
	}
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := observability.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	tp, err := observability.InitTracing(cmd.Context(), cfg.Tracing)
	if err != nil {
		return err
	}

	appState.cfg = cfg
	appState.logger = logger
	appState.tracerProvider = tp

	logger.Debug("configuration loaded",
		"neo4j_uri", cfg.Neo4j.URI,
		"llm", cfg.LLM.Type,
		"model", cfg.LLM.Model,
		"index", cfg.Retriever.IndexName,
		"tracing", cfg.Tracing.Enabled,
	)
	return nil
}

// shutdownTelemetry flushes pending spans after the command completes.
func shutdownTelemetry() {
	if appState.tracerProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
	defer cancel()

	if err := observability.ShutdownTracing(ctx, appState.tracerProvider); err != nil {
		appState.logger.Warn("failed to flush traces", "error", err)
	}
	appState.tracerProvider = nil
}

func init() {
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for movierag.

Bash:

  $ source <(movierag completion bash)

Zsh:

  $ movierag completion zsh > "${fpath[1]}/_movierag"

Fish:

  $ movierag completion fish | source

PowerShell:

  PS> movierag completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			_ = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			_ = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			_ = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			_ = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
