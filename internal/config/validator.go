package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// envHints names the environment variable that usually supplies a field,
// so a missing value can be reported in the terms the user sets it.
var envHints = map[string]string{
	"neo4j.uri":        "NEO4J_URI",
	"neo4j.username":   "NEO4J_USERNAME",
	"neo4j.password":   "NEO4J_PASSWORD",
	"llm.api_key":      "OPENAI_API_KEY",
	"embedder.api_key": "OPENAI_API_KEY",
}

// ConfigValidator validates configuration values.
type ConfigValidator interface {
	Validate(cfg *Config) error
}

// validatorImpl implements ConfigValidator using go-playground/validator.
type validatorImpl struct {
	validate *validator.Validate
}

// NewValidator creates a new ConfigValidator instance.
func NewValidator() ConfigValidator {
	return &validatorImpl{
		validate: validator.New(),
	}
}

// Validate validates the configuration and returns detailed error messages.
// All problems are reported together as a single CONFIG_VALIDATION_FAILED error.
func (v *validatorImpl) Validate(cfg *Config) error {
	if cfg == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "configuration is nil")
	}

	var errorMessages []string

	if err := v.validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return types.WrapError(types.CONFIG_VALIDATION_FAILED, "validation error", err)
		}
		for _, e := range validationErrs {
			errorMessages = append(errorMessages, formatValidationError(e))
		}
	}

	if err := cfg.Tracing.Validate(); err != nil {
		errorMessages = append(errorMessages, "tracing: "+err.Error())
	}

	if requiresOpenAIKey(cfg) {
		errorMessages = append(errorMessages, "an OpenAI API key is required (set OPENAI_API_KEY)")
	}

	if len(errorMessages) > 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(errorMessages, "\n  - ")))
	}

	return nil
}

// requiresOpenAIKey reports whether an OpenAI-backed component has no key.
// A custom base URL may point at a keyless compatible server.
func requiresOpenAIKey(cfg *Config) bool {
	if cfg.LLM.Type == "openai" && cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
		return true
	}
	if cfg.Embedder.Provider == "openai" && cfg.Embedder.APIKey == "" && cfg.Embedder.BaseURL == "" {
		return true
	}
	return false
}

// formatValidationError formats a single validation error with field path and details.
func formatValidationError(e validator.FieldError) string {
	fieldPath := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		if env, ok := envHints[fieldPath]; ok {
			return fmt.Sprintf("%s is required (set %s)", fieldPath, env)
		}
		return fmt.Sprintf("%s is required", fieldPath)
	case "min":
		return fmt.Sprintf("%s must be at least %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", fieldPath, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation '%s' (got: %v)", fieldPath, e.Tag(), e.Value())
	}
}

// formatFieldPath converts validator namespace to a more readable field path.
// Example: "Config.Neo4j.QueryTimeout" -> "neo4j.query_timeout"
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return namespace
	}

	result := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		result = append(result, camelToSnake(parts[i]))
	}

	return strings.Join(result, ".")
}

// camelToSnake converts CamelCase to snake_case. Runs of capitals such as
// "URI", "LLM" or "APIKey" stay together.
func camelToSnake(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if i > 0 && isUpper(r) {
			prevLower := !isUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !isUpper(runes[i+1])
			if prevLower || nextLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
