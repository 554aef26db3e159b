package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
	"github.com/paulowiz/genai-fundamentals/internal/util"
)

// EnvPrefix prefixes every environment override, e.g. MOVIERAG_LLM_MODEL.
const EnvPrefix = "MOVIERAG"

// LoadOptions selects the files read by a ConfigLoader.
type LoadOptions struct {
	// ConfigFile is an explicit YAML file. It must exist when set. When
	// empty, ~/.movierag/config.yaml is read if present.
	ConfigFile string

	// EnvFile is an explicit dotenv file. It must exist when set. When
	// empty, ./.env is read if present.
	EnvFile string
}

// ConfigLoader assembles a Config from defaults, files and the environment.
type ConfigLoader interface {
	Load(opts LoadOptions) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load resolves configuration in increasing precedence: defaults, YAML
// file, environment (after loading the dotenv file). Variables already
// present in the process environment win over the dotenv file.
func (l *viperConfigLoader) Load(opts LoadOptions) (*Config, error) {
	if err := util.ExpandPaths(&opts.ConfigFile, &opts.EnvFile); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "invalid path", err)
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional Neo4j variables are accepted without the prefix.
	for key, env := range map[string]string{
		"neo4j.uri":      "NEO4J_URI",
		"neo4j.username": "NEO4J_USERNAME",
		"neo4j.password": "NEO4J_PASSWORD",
		"neo4j.database": "NEO4J_DATABASE",
	} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to bind "+env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	resolveAPIKeys(&cfg)
	if err := util.ExpandPaths(&cfg.Tracing.TLSCertFile); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "invalid tracing.tls_cert_file", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load is a convenience wrapper using the default validator.
func Load(opts LoadOptions) (*Config, error) {
	return NewConfigLoader(NewValidator()).Load(opts)
}

// loadEnvFile reads path, or ./.env when path is empty. Only an explicit
// path is required to exist.
func loadEnvFile(path string) error {
	if path == "" {
		err := godotenv.Load(DefaultEnvFile)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return types.WrapError(types.CONFIG_PARSE_FAILED, "failed to parse "+DefaultEnvFile, err)
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.WrapError(types.CONFIG_NOT_FOUND, "env file not found: "+path, err)
		}
		return types.WrapError(types.CONFIG_PARSE_FAILED, "failed to parse env file "+path, err)
	}
	return nil
}

// readConfigFile merges a YAML file into v. An explicit path must exist;
// the default path is optional.
func readConfigFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath(DefaultHomeDir())
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	} else if _, err := os.Stat(path); err != nil {
		return types.WrapError(types.CONFIG_NOT_FOUND, "config file not found: "+path, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return types.WrapError(types.CONFIG_PARSE_FAILED, fmt.Sprintf("failed to read config file %s", path), err)
	}
	return nil
}

// resolveAPIKeys fills provider keys from the vendors' own variables.
func resolveAPIKeys(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Type {
		case llm.ProviderOpenAI:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case llm.ProviderAnthropic:
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if cfg.Embedder.APIKey == "" && cfg.Embedder.Provider == "openai" {
		cfg.Embedder.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("neo4j.uri", d.Neo4j.URI)
	v.SetDefault("neo4j.username", d.Neo4j.Username)
	v.SetDefault("neo4j.password", d.Neo4j.Password)
	v.SetDefault("neo4j.database", d.Neo4j.Database)
	v.SetDefault("neo4j.max_connection_pool_size", d.Neo4j.MaxConnectionPoolSize)
	v.SetDefault("neo4j.connection_timeout", d.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.query_timeout", d.Neo4j.QueryTimeout)
	v.SetDefault("neo4j.connect_attempts", d.Neo4j.ConnectAttempts)

	v.SetDefault("embedder.provider", d.Embedder.Provider)
	v.SetDefault("embedder.model", d.Embedder.Model)
	v.SetDefault("embedder.dimensions", d.Embedder.Dimensions)
	v.SetDefault("embedder.api_key", d.Embedder.APIKey)
	v.SetDefault("embedder.base_url", d.Embedder.BaseURL)
	v.SetDefault("embedder.timeout", d.Embedder.Timeout)

	v.SetDefault("llm.type", string(d.LLM.Type))
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("retriever.index_name", d.Retriever.IndexName)
	v.SetDefault("retriever.top_k", d.Retriever.TopK)
	v.SetDefault("retriever.enrichment_query", d.Retriever.EnrichmentQuery)

	v.SetDefault("rag.max_context_chars", d.RAG.MaxContextChars)
	v.SetDefault("rag.system_prompt", d.RAG.SystemPrompt)
	v.SetDefault("rag.user_template", d.RAG.UserTemplate)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.provider", d.Tracing.Provider)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.tls_cert_file", d.Tracing.TLSCertFile)
	v.SetDefault("tracing.insecure_mode", d.Tracing.InsecureMode)
}
