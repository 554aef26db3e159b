package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

var managedEnv = []string{
	"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
	"OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	"MOVIERAG_NEO4J_URI", "MOVIERAG_NEO4J_USERNAME", "MOVIERAG_NEO4J_PASSWORD", "MOVIERAG_NEO4J_DATABASE",
	"MOVIERAG_LLM_MODEL", "MOVIERAG_LLM_TYPE", "MOVIERAG_RETRIEVER_TOP_K", "MOVIERAG_NEO4J_QUERY_TIMEOUT",
	"MOVIERAG_LOGGING_LEVEL",
}

// isolateEnv clears every variable the loader reads and points HOME at an
// empty directory. Original values are restored when the test ends.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HOME", t.TempDir())
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "moviePlots", cfg.Retriever.IndexName)
	assert.Equal(t, 5, cfg.Retriever.TopK)
	assert.Equal(t, 8000, cfg.RAG.MaxContextChars)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Type)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "text-embedding-ada-002", cfg.Embedder.Model)
	assert.Equal(t, 5, cfg.Neo4j.ConnectAttempts)
	assert.Empty(t, cfg.Neo4j.URI)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Neo4j.QueryTimeout)
}

func TestLoad_PrefixedOverridesWin(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	t.Setenv("MOVIERAG_NEO4J_URI", "neo4j+s://demo.neo4jlabs.com:7687")
	t.Setenv("MOVIERAG_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("MOVIERAG_RETRIEVER_TOP_K", "3")
	t.Setenv("MOVIERAG_NEO4J_QUERY_TIMEOUT", "45s")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "neo4j+s://demo.neo4jlabs.com:7687", cfg.Neo4j.URI)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Retriever.TopK)
	assert.Equal(t, 45*time.Second, cfg.Neo4j.QueryTimeout)
}

func TestLoad_MissingNeo4jVariables(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		message string
	}{
		{"uri", "NEO4J_URI", "neo4j.uri is required (set NEO4J_URI)"},
		{"username", "NEO4J_USERNAME", "neo4j.username is required (set NEO4J_USERNAME)"},
		{"password", "NEO4J_PASSWORD", "neo4j.password is required (set NEO4J_PASSWORD)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			setRequiredEnv(t)
			require.NoError(t, os.Unsetenv(tt.unset))

			_, err := Load(LoadOptions{})
			require.Error(t, err)
			assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
			assert.Equal(t, types.KindConfiguration, types.KindOfError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_EnvFile(t *testing.T) {
	isolateEnv(t)
	envFile := writeFile(t, "test.env", `
NEO4J_URI=bolt://graph:7687
NEO4J_USERNAME=reader
NEO4J_PASSWORD=from-dotenv
OPENAI_API_KEY=sk-dotenv
`)

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "reader", cfg.Neo4j.Username)
	assert.Equal(t, "from-dotenv", cfg.Neo4j.Password)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	envFile := writeFile(t, "test.env", "NEO4J_PASSWORD=from-dotenv\n")

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
}

func TestLoad_ExplicitEnvFileMissing(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)

	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_NOT_FOUND, types.CodeOf(err))
}

func TestLoad_YAMLFile(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	configFile := writeFile(t, "config.yaml", `
neo4j:
  database: movies
  query_timeout: 10s
retriever:
  index_name: plotIndex
  top_k: 8
  enrichment_query: "RETURN node.title AS title, score AS similarityScore"
llm:
  type: anthropic
  model: claude-sonnet
logging:
  level: debug
  format: json
`)
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	cfg, err := Load(LoadOptions{ConfigFile: configFile})
	require.NoError(t, err)

	assert.Equal(t, "movies", cfg.Neo4j.Database)
	assert.Equal(t, 10*time.Second, cfg.Neo4j.QueryTimeout)
	assert.Equal(t, "plotIndex", cfg.Retriever.IndexName)
	assert.Equal(t, 8, cfg.Retriever.TopK)
	assert.Contains(t, cfg.Retriever.EnrichmentQuery, "node.title")
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Type)
	assert.Equal(t, "ak-test", cfg.LLM.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverridesYAML(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	configFile := writeFile(t, "config.yaml", "logging:\n  level: debug\n")
	t.Setenv("MOVIERAG_LOGGING_LEVEL", "error")

	cfg, err := Load(LoadOptions{ConfigFile: configFile})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_DefaultConfigPathIsOptional(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)

	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".movierag")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(DefaultConfigPath(dir), []byte("retriever:\n  top_k: 2\n"), 0o600))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Retriever.TopK)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_NOT_FOUND, types.CodeOf(err))
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	configFile := writeFile(t, "config.yaml", "neo4j: [unclosed\n")

	_, err := Load(LoadOptions{ConfigFile: configFile})
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_PARSE_FAILED, types.CodeOf(err))
}

func TestNeo4jConfig_GraphClientConfig(t *testing.T) {
	cfg := Neo4jConfig{
		URI:                   "neo4j://localhost:7687",
		Username:              "neo4j",
		Password:              "pw",
		Database:              "movies",
		MaxConnectionPoolSize: 4,
		ConnectionTimeout:     time.Second,
		QueryTimeout:          2 * time.Second,
		ConnectAttempts:       3,
	}

	gc := cfg.GraphClientConfig()
	assert.Equal(t, cfg.URI, gc.URI)
	assert.Equal(t, cfg.Database, gc.Database)
	assert.Equal(t, 4, gc.MaxConnectionPoolSize)
	assert.Equal(t, 3, gc.ConnectAttempts)
	require.NoError(t, gc.Validate())
}

func TestLoad_ExpandsTildeInConfigPath(t *testing.T) {
	isolateEnv(t)
	setRequiredEnv(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, "rag.yaml"), []byte("rag:\n  max_context_chars: 1200\n"), 0o600))

	cfg, err := Load(LoadOptions{ConfigFile: "~/rag.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.RAG.MaxContextChars)
}
